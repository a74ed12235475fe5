package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/gripdoc/gripdoc"
)

// Ensure LoggingSitemapService implements gripdoc.SitemapService.
var _ gripdoc.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with debug logging.
type LoggingSitemapService struct {
	next   gripdoc.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next gripdoc.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// Fetch delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) Fetch(ctx context.Context, sitemapURL string) (entries []gripdoc.SitemapEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap fetch",
			"url", sitemapURL,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Fetch(ctx, sitemapURL)
}
