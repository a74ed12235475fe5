// Package slog provides logging decorators for the gripdoc service
// interfaces, built on the standard library structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/gripdoc/gripdoc"
)

// Ensure LoggingFetcher implements gripdoc.Fetcher.
var _ gripdoc.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with summary logging.
type LoggingFetcher struct {
	next   gripdoc.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next gripdoc.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchAll delegates to the wrapped fetcher and logs the batch outcome.
func (f *LoggingFetcher) FetchAll(ctx context.Context, urls []string) []gripdoc.FetchResult {
	begin := time.Now()
	results := f.next.FetchAll(ctx, urls)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	f.logger.Info("batch fetch",
		"urls", len(urls),
		"failed", failed,
		"duration", time.Since(begin),
	)
	return results
}
