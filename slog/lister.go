package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/gripdoc/gripdoc"
)

// Ensure LoggingRepoLister implements gripdoc.RepoLister.
var _ gripdoc.RepoLister = (*LoggingRepoLister)(nil)

// LoggingRepoLister wraps a RepoLister with debug logging.
type LoggingRepoLister struct {
	next   gripdoc.RepoLister
	logger *slog.Logger
}

// NewLoggingRepoLister creates a new LoggingRepoLister.
func NewLoggingRepoLister(next gripdoc.RepoLister, logger *slog.Logger) *LoggingRepoLister {
	return &LoggingRepoLister{next: next, logger: logger}
}

// ListMarkdown delegates to the wrapped lister and logs the operation.
func (l *LoggingRepoLister) ListMarkdown(ctx context.Context, path string) (files []gripdoc.RepoFile, err error) {
	defer func(begin time.Time) {
		l.logger.Info("repository listing",
			"path", path,
			"count", len(files),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.ListMarkdown(ctx, path)
}
