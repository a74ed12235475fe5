package scrape_test

import (
	"context"
	"strings"
	"testing"

	"github.com/gripdoc/gripdoc"
	"github.com/gripdoc/gripdoc/mock"
	"github.com/gripdoc/gripdoc/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodesScraper_Run(t *testing.T) {
	t.Parallel()

	t.Run("normalizes and dedupes sitemap URLs", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			FetchFn: func(_ context.Context, _ string) ([]gripdoc.SitemapEntry, error) {
				// The same page listed with and without the version
				// prefix, plus a skipped page.
				return []gripdoc.SitemapEntry{
					{URL: "https://docs.griptapenodes.com/nodes/image/load_image/", LastMod: "2025-05-01"},
					{URL: "https://docs.griptapenodes.com/en/stable/nodes/image/load_image/", LastMod: "2025-05-02"},
					{URL: "https://docs.griptapenodes.com/en/stable/search.html"},
				}, nil
			},
		}

		var fetched []string
		fetcher := &mock.Fetcher{
			FetchAllFn: func(_ context.Context, urls []string) []gripdoc.FetchResult {
				fetched = urls
				results := make([]gripdoc.FetchResult, 0, len(urls))
				for _, url := range urls {
					results = append(results, gripdoc.FetchResult{URL: url, Body: "html"})
				}
				return results
			},
		}
		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*gripdoc.Extraction, error) {
				return &gripdoc.Extraction{Title: "Load Image", Content: "Loads an image from disk."}, nil
			},
		}
		store := newRecordingStore()

		scraper := &scrape.NodesScraper{
			Sitemaps:  sitemaps,
			Fetcher:   fetcher,
			Extractor: extractor,
			Store:     store,
		}
		stats, err := scraper.Run(context.Background())
		require.NoError(t, err)

		require.Equal(t, []string{"https://docs.griptapenodes.com/en/stable/nodes/image/load_image/"}, fetched)
		assert.Equal(t, 1, stats.Pages)
		assert.Equal(t, 1, stats.Nodes)

		require.Len(t, store.pages, 1)
		page := store.pages[0]
		assert.Equal(t, gripdoc.SourceNodes, page.Source)
		// The last sitemap entry for the canonical URL wins.
		assert.Equal(t, "2025-05-02", page.LastModified)

		require.Len(t, store.nodes, 1)
		node := store.nodes[0]
		assert.Equal(t, "Load Image", node.Name)
		assert.Equal(t, "Image", node.Category)
		require.NotNil(t, node.PageID)
		assert.Equal(t, page.ID, *node.PageID)
		assert.Equal(t, "Loads an image from disk.", node.Description)
	})

	t.Run("truncates long node descriptions", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			FetchFn: func(_ context.Context, _ string) ([]gripdoc.SitemapEntry, error) {
				return []gripdoc.SitemapEntry{
					{URL: "https://docs.griptapenodes.com/en/stable/nodes/text/merge_text/"},
				}, nil
			},
		}
		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*gripdoc.Extraction, error) {
				return &gripdoc.Extraction{Title: "Merge Text", Content: strings.Repeat("x", 900)}, nil
			},
		}
		store := newRecordingStore()

		scraper := &scrape.NodesScraper{
			Sitemaps:  sitemaps,
			Fetcher:   echoFetcher(),
			Extractor: extractor,
			Store:     store,
		}
		_, err := scraper.Run(context.Background())
		require.NoError(t, err)

		require.Len(t, store.nodes, 1)
		assert.Len(t, store.nodes[0].Description, 500)
	})

	t.Run("pages outside the node tree produce no node records", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			FetchFn: func(_ context.Context, _ string) ([]gripdoc.SitemapEntry, error) {
				return []gripdoc.SitemapEntry{
					{URL: "https://docs.griptapenodes.com/en/stable/getting_started/"},
				}, nil
			},
		}
		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*gripdoc.Extraction, error) {
				return &gripdoc.Extraction{Title: "Getting Started", Content: "Welcome."}, nil
			},
		}
		store := newRecordingStore()

		scraper := &scrape.NodesScraper{
			Sitemaps:  sitemaps,
			Fetcher:   echoFetcher(),
			Extractor: extractor,
			Store:     store,
		}
		stats, err := scraper.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, stats.Pages)
		assert.Equal(t, 0, stats.Nodes)
		assert.Empty(t, store.nodes)
	})
}
