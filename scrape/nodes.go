package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/gripdoc/gripdoc"
)

// Griptape Nodes documentation site layout.
const (
	DefaultNodesSitemapURL = "https://docs.griptapenodes.com/en/stable/sitemap.xml"
	nodesBaseURL           = "https://docs.griptapenodes.com"
	nodesStablePrefix      = "/en/stable/"
)

// nodesSkipPatterns excludes only truly irrelevant pages.
var nodesSkipPatterns = []string{"/search.html", "/404.html"}

// NodesScraper scrapes the Griptape Nodes documentation website.
type NodesScraper struct {
	Sitemaps   gripdoc.SitemapService
	Fetcher    gripdoc.Fetcher
	Extractor  gripdoc.Extractor
	Store      gripdoc.CorpusStore
	Logger     *slog.Logger
	SitemapURL string // defaults to DefaultNodesSitemapURL
	BaseURL    string // defaults to nodesBaseURL
}

// Run scrapes the nodes docs into the store, deriving node records from
// node-documentation URLs.
func (s *NodesScraper) Run(ctx context.Context) (*Stats, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sitemapURL := s.SitemapURL
	if sitemapURL == "" {
		sitemapURL = DefaultNodesSitemapURL
	}
	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = nodesBaseURL
	}

	logger.Info("fetching sitemap", "source", gripdoc.SourceNodes, "url", sitemapURL)
	entries, err := s.Sitemaps.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("nodes sitemap: %w", err)
	}

	// The sitemap sometimes emits URLs without the version prefix.
	// Normalize to the canonical form and deduplicate, preserving
	// first-seen order.
	var urls []string
	seen := make(map[string]bool)
	lastMod := make(map[string]string)
	for _, e := range entries {
		if shouldSkip(e.URL, nodesSkipPatterns) {
			continue
		}
		normalized := normalizeNodesURL(e.URL, baseURL)
		lastMod[normalized] = e.LastMod
		if !seen[normalized] {
			seen[normalized] = true
			urls = append(urls, normalized)
		}
	}
	logger.Info("scraping pages", "source", gripdoc.SourceNodes,
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
		if strings.TrimSpace(extraction.Title) == "" {
			continue
		}

		page := &gripdoc.Page{
			URL:          result.URL,
			Source:       gripdoc.SourceNodes,
			Title:        extraction.Title,
			Content:      extraction.Content,
			ContentHTML:  extraction.ContentHTML,
			Breadcrumbs:  extraction.Breadcrumbs,
			LastModified: lastMod[result.URL],
		}
		node := gripdoc.NodeFromURL(result.URL, extraction.Title)
		w.writePage(ctx, stats, page, extraction, node)
	}

	logger.Info("scrape done", "source", gripdoc.SourceNodes,
		"pages", stats.Pages, "nodes", stats.Nodes,
		"sections", stats.Sections, "examples", stats.Examples,
		"errors", stats.Errors)
	return stats, nil
}

// normalizeNodesURL rewrites a sitemap URL onto the canonical base with
// the version prefix included.
func normalizeNodesURL(rawURL, baseURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	path := parsed.Path
	if !strings.HasPrefix(path, nodesStablePrefix) {
		path = nodesStablePrefix + strings.TrimPrefix(path, "/")
	}
	return baseURL + path
}
