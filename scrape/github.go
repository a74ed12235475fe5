package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gripdoc/gripdoc"
)

// nodesDocsBaseURL is where a GitHub markdown file would be published,
// used to key fallback pages by the same URLs the website scraper uses.
const nodesDocsBaseURL = "https://docs.griptapenodes.com/en/stable"

// GitHubScraper scrapes the Griptape Nodes documentation from its GitHub
// markdown source. It is the fallback when the website cannot be
// scraped.
type GitHubScraper struct {
	Lister    gripdoc.RepoLister
	Fetcher   gripdoc.Fetcher
	Extractor gripdoc.Extractor
	Store     gripdoc.CorpusStore
	Logger    *slog.Logger
	RepoPath  string // defaults to "docs"
}

// Run lists and scrapes the repository's markdown docs into the store.
func (s *GitHubScraper) Run(ctx context.Context) (*Stats, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	repoPath := s.RepoPath
	if repoPath == "" {
		repoPath = "docs"
	}

	logger.Info("listing documentation files", "source", gripdoc.SourceNodes, "path", repoPath)
	files, err := s.Lister.ListMarkdown(ctx, repoPath)
	if err != nil {
		return nil, fmt.Errorf("github listing: %w", err)
	}
	logger.Info("fetching markdown content", "source", gripdoc.SourceNodes, "count", len(files))

	urls := make([]string, 0, len(files))
	byDownloadURL := make(map[string]gripdoc.RepoFile, len(files))
	for _, f := range files {
		urls = append(urls, f.DownloadURL)
		byDownloadURL[f.DownloadURL] = f
	}

	stats := &Stats{}
	w := &writer{store: s.Store, logger: logger}

	for _, result := range s.Fetcher.FetchAll(ctx, urls) {
		file := byDownloadURL[result.URL]
		if result.Err != nil {
			logger.Error("fetch failed", "path", file.Path, "error", result.Err)
			stats.Errors++
			continue
		}

		extraction, err := s.Extractor.Extract(result.Body)
		if err != nil {
			logger.Error("extraction failed", "path", file.Path, "error", err)
			stats.Errors++
			continue
		}
		// Markdown files without an H1 fall back to the humanized
		// file name as title.
		if strings.TrimSpace(extraction.Title) == "" {
			extraction.Title = titleFromFileName(file.Name)
		}

		page := &gripdoc.Page{
			URL:     pathToDocsURL(file.Path),
			Source:  gripdoc.SourceNodes,
			Title:   extraction.Title,
			Content: extraction.Content,
		}
		node := gripdoc.NodeFromPath(file.Path, extraction.Title)
		w.writePage(ctx, stats, page, extraction, node)
	}

	logger.Info("scrape done", "source", gripdoc.SourceNodes,
		"pages", stats.Pages, "nodes", stats.Nodes,
		"sections", stats.Sections, "examples", stats.Examples,
		"errors", stats.Errors)
	return stats, nil
}

// pathToDocsURL converts a repository file path to the equivalent
// published docs URL: docs/nodes/image/load_image.md becomes
// <base>/nodes/image/load_image/.
func pathToDocsURL(filePath string) string {
	rel := strings.TrimSuffix(strings.TrimPrefix(filePath, "docs/"), ".md")
	if rel == "index" {
		return nodesDocsBaseURL + "/"
	}
	return nodesDocsBaseURL + "/" + rel + "/"
}

// titleFromFileName humanizes a markdown file name: load_image.md
// becomes "Load Image".
func titleFromFileName(name string) string {
	stem := strings.TrimSuffix(name, ".md")
	words := strings.Fields(strings.ReplaceAll(stem, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
