package mock

import (
	"context"

	"github.com/gripdoc/gripdoc"
)

var _ gripdoc.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is a mock implementation of gripdoc.CorpusStore.
type CorpusStore struct {
	UpsertPageFn        func(ctx context.Context, page *gripdoc.Page) error
	InsertSectionFn     func(ctx context.Context, section *gripdoc.Section) error
	InsertCodeExampleFn func(ctx context.Context, example *gripdoc.CodeExample) error
	InsertNodeFn        func(ctx context.Context, node *gripdoc.Node) error
}

func (s *CorpusStore) UpsertPage(ctx context.Context, page *gripdoc.Page) error {
	return s.UpsertPageFn(ctx, page)
}

func (s *CorpusStore) InsertSection(ctx context.Context, section *gripdoc.Section) error {
	return s.InsertSectionFn(ctx, section)
}

func (s *CorpusStore) InsertCodeExample(ctx context.Context, example *gripdoc.CodeExample) error {
	return s.InsertCodeExampleFn(ctx, example)
}

func (s *CorpusStore) InsertNode(ctx context.Context, node *gripdoc.Node) error {
	return s.InsertNodeFn(ctx, node)
}
