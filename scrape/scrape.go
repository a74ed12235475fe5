// Package scrape provides the site scrapers and the build orchestrator
// that turn the Griptape documentation sites into a searchable corpus.
// Each scraper is a pipeline: enumerate URLs, fetch them through a
// rate-limited fetcher, extract structured content, and write through
// the corpus store while accumulating per-run counters.
package scrape

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gripdoc/gripdoc"
)

// descriptionLimit truncates node descriptions to the first N characters
// of the page body.
const descriptionLimit = 500

// Stats holds per-run counters for a scrape.
type Stats struct {
	Pages    int
	Sections int
	Examples int
	Nodes    int
	Errors   int
}

// Add accumulates another run's counters into s.
func (s *Stats) Add(o Stats) {
	s.Pages += o.Pages
	s.Sections += o.Sections
	s.Examples += o.Examples
	s.Nodes += o.Nodes
	s.Errors += o.Errors
}

// Runner is a scraper that can populate the corpus store.
type Runner interface {
	Run(ctx context.Context) (*Stats, error)
}

// writer is the shared store-write half of every scraper pipeline.
type writer struct {
	store  gripdoc.CorpusStore
	logger *slog.Logger
}

// writePage upserts one extracted page with its sections, examples and
// optional derived node, updating stats. Duplicate-row conflicts are
// logged and skipped without aborting the batch; other write failures
// count as errors.
func (w *writer) writePage(ctx context.Context, stats *Stats, page *gripdoc.Page, extraction *gripdoc.Extraction, node *gripdoc.Node) {
	if err := w.store.UpsertPage(ctx, page); err != nil {
		if gripdoc.ErrorCode(err) == gripdoc.ECONFLICT {
			w.logger.Warn("skipping page", "url", page.URL, "error", err)
			return
		}
		w.logger.Error("page write failed", "url", page.URL, "error", err)
		stats.Errors++
		return
	}
	stats.Pages++

	for _, s := range extraction.Sections {
		section := &gripdoc.Section{
			PageID:  page.ID,
			Heading: s.Heading,
			Level:   s.Level,
			Content: s.Content,
			Anchor:  s.Anchor,
		}
		if err := w.store.InsertSection(ctx, section); err != nil {
			w.logger.Warn("skipping section", "url", page.URL, "heading", s.Heading, "error", err)
			continue
		}
		stats.Sections++
	}

	for _, e := range extraction.CodeExamples {
		example := &gripdoc.CodeExample{
			PageID:   page.ID,
			Language: e.Language,
			Code:     e.Code,
			Context:  e.Context,
		}
		if err := w.store.InsertCodeExample(ctx, example); err != nil {
			w.logger.Warn("skipping code example", "url", page.URL, "error", err)
			continue
		}
		stats.Examples++
	}

	if node != nil {
		node.PageID = &page.ID
		node.Description = truncate(extraction.Content, descriptionLimit)
		if err := w.store.InsertNode(ctx, node); err != nil {
			w.logger.Warn("skipping node", "url", page.URL, "name", node.Name, "error", err)
			return
		}
		stats.Nodes++
	}
}

// shouldSkip reports whether the URL matches any denylisted path pattern.
func shouldSkip(url string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(url, p) {
			return true
		}
	}
	return false
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
