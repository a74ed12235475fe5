package mock

import (
	"context"

	"github.com/gripdoc/gripdoc"
)

var _ gripdoc.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of gripdoc.SitemapService.
type SitemapService struct {
	FetchFn func(ctx context.Context, sitemapURL string) ([]gripdoc.SitemapEntry, error)
}

func (s *SitemapService) Fetch(ctx context.Context, sitemapURL string) ([]gripdoc.SitemapEntry, error) {
	return s.FetchFn(ctx, sitemapURL)
}
