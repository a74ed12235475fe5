package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gripdoc/gripdoc"
)

// DefaultFrameworkSitemapURL is the Griptape Framework docs sitemap.
const DefaultFrameworkSitemapURL = "https://docs.griptape.ai/stable/sitemap.xml"

// frameworkSkipPatterns excludes auto-generated API reference pages,
// which are too voluminous to index, plus search and error pages.
var frameworkSkipPatterns = []string{"/reference/", "/search.html", "/404.html"}

// FrameworkScraper scrapes the Griptape Framework documentation site.
type FrameworkScraper struct {
	Sitemaps   gripdoc.SitemapService
	Fetcher    gripdoc.Fetcher
	Extractor  gripdoc.Extractor
	Store      gripdoc.CorpusStore
	Logger     *slog.Logger
	SitemapURL string // defaults to DefaultFrameworkSitemapURL
}

// Run scrapes the framework docs into the store. A failed sitemap fetch
// fails the run; individual page failures only increment the error
// counter.
func (s *FrameworkScraper) Run(ctx context.Context) (*Stats, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sitemapURL := s.SitemapURL
	if sitemapURL == "" {
		sitemapURL = DefaultFrameworkSitemapURL
	}

	logger.Info("fetching sitemap", "source", gripdoc.SourceFramework, "url", sitemapURL)
	entries, err := s.Sitemaps.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("framework sitemap: %w", err)
	}

	var urls []string
	lastMod := make(map[string]string)
	for _, e := range entries {
		lastMod[e.URL] = e.LastMod
		if !shouldSkip(e.URL, frameworkSkipPatterns) {
			urls = append(urls, e.URL)
		}
	}
	logger.Info("scraping pages", "source", gripdoc.SourceFramework,
		"count", len(urls), "sitemap_entries", len(entries))

	stats := &Stats{}
	w := &writer{store: s.Store, logger: logger}

	for _, result := range s.Fetcher.FetchAll(ctx, urls) {
		if result.Err != nil {
			logger.Error("fetch failed", "url", result.URL, "error", result.Err)
			stats.Errors++
			continue
		}

		extraction, err := s.Extractor.Extract(result.Body)
		if err != nil {
			logger.Error("extraction failed", "url", result.URL, "error", err)
			stats.Errors++
			continue
		}
		// Pages without a title have nothing to store.
		if strings.TrimSpace(extraction.Title) == "" {
			continue
		}

		page := &gripdoc.Page{
			URL:          result.URL,
			Source:       gripdoc.SourceFramework,
			Title:        extraction.Title,
			Content:      extraction.Content,
			ContentHTML:  extraction.ContentHTML,
			Breadcrumbs:  extraction.Breadcrumbs,
			LastModified: lastMod[result.URL],
		}
		w.writePage(ctx, stats, page, extraction, nil)
	}

	logger.Info("scrape done", "source", gripdoc.SourceFramework,
		"pages", stats.Pages, "sections", stats.Sections,
		"examples", stats.Examples, "errors", stats.Errors)
	return stats, nil
}
