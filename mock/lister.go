package mock

import (
	"context"

	"github.com/gripdoc/gripdoc"
)

var _ gripdoc.RepoLister = (*RepoLister)(nil)

// RepoLister is a mock implementation of gripdoc.RepoLister.
type RepoLister struct {
	ListMarkdownFn func(ctx context.Context, path string) ([]gripdoc.RepoFile, error)
}

func (l *RepoLister) ListMarkdown(ctx context.Context, path string) ([]gripdoc.RepoFile, error) {
	return l.ListMarkdownFn(ctx, path)
}
