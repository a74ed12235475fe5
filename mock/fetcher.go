// Package mock provides function-field mock implementations of the
// gripdoc service interfaces for use in tests.
package mock

import (
	"context"

	"github.com/gripdoc/gripdoc"
)

var _ gripdoc.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of gripdoc.Fetcher.
type Fetcher struct {
	FetchAllFn func(ctx context.Context, urls []string) []gripdoc.FetchResult
}

func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []gripdoc.FetchResult {
	return f.FetchAllFn(ctx, urls)
}
