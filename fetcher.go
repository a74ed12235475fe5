package gripdoc

import "context"

// FetchResult holds the outcome of fetching a single URL. Exactly one of
// Body or Err is meaningful. Results form an unordered bag keyed by URL:
// callers must never assume arrival order matches submission order.
type FetchResult struct {
	URL  string
	Body string
	Err  error
}

// Fetcher retrieves content from URLs with bounded concurrency and
// throttling. Per-URL failures are isolated: FetchAll produces one result
// per URL and never fails the batch.
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) []FetchResult
}

// SitemapEntry is one (url, lastmod) pair from a sitemap. LastMod is
// empty when the sitemap omits it.
type SitemapEntry struct {
	URL     string
	LastMod string
}

// SitemapService fetches and parses a sitemap XML document into its
// ordered sequence of entries.
type SitemapService interface {
	Fetch(ctx context.Context, sitemapURL string) ([]SitemapEntry, error)
}
