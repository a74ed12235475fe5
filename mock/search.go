package mock

import (
	"context"

	"github.com/gripdoc/gripdoc"
)

var _ gripdoc.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of gripdoc.SearchService.
type SearchService struct {
	SearchPagesFn        func(ctx context.Context, query, source string, limit int) ([]gripdoc.PageMatch, error)
	PageByURLFn          func(ctx context.Context, url string) (*gripdoc.Page, error)
	PageByTitleFn        func(ctx context.Context, title string) (*gripdoc.Page, error)
	SectionsByPageFn     func(ctx context.Context, pageID int64) ([]gripdoc.Section, error)
	ExamplesByPageFn     func(ctx context.Context, pageID int64) ([]gripdoc.CodeExample, error)
	SearchNodesFn        func(ctx context.Context, query, category string, limit int) ([]gripdoc.NodeMatch, error)
	NodeByNameFn         func(ctx context.Context, name string) (*gripdoc.NodeDetail, error)
	CategoriesFn         func(ctx context.Context) (*gripdoc.Taxonomy, error)
	SearchCodeExamplesFn func(ctx context.Context, query string, limit int) ([]gripdoc.ExampleMatch, error)
}

func (s *SearchService) SearchPages(ctx context.Context, query, source string, limit int) ([]gripdoc.PageMatch, error) {
	return s.SearchPagesFn(ctx, query, source, limit)
}

func (s *SearchService) PageByURL(ctx context.Context, url string) (*gripdoc.Page, error) {
	return s.PageByURLFn(ctx, url)
}

func (s *SearchService) PageByTitle(ctx context.Context, title string) (*gripdoc.Page, error) {
	return s.PageByTitleFn(ctx, title)
}

func (s *SearchService) SectionsByPage(ctx context.Context, pageID int64) ([]gripdoc.Section, error) {
	return s.SectionsByPageFn(ctx, pageID)
}

func (s *SearchService) ExamplesByPage(ctx context.Context, pageID int64) ([]gripdoc.CodeExample, error) {
	return s.ExamplesByPageFn(ctx, pageID)
}

func (s *SearchService) SearchNodes(ctx context.Context, query, category string, limit int) ([]gripdoc.NodeMatch, error) {
	return s.SearchNodesFn(ctx, query, category, limit)
}

func (s *SearchService) NodeByName(ctx context.Context, name string) (*gripdoc.NodeDetail, error) {
	return s.NodeByNameFn(ctx, name)
}

func (s *SearchService) Categories(ctx context.Context) (*gripdoc.Taxonomy, error) {
	return s.CategoriesFn(ctx)
}

func (s *SearchService) SearchCodeExamples(ctx context.Context, query string, limit int) ([]gripdoc.ExampleMatch, error) {
	return s.SearchCodeExamplesFn(ctx, query, limit)
}
