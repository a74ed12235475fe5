package gripdoc

import (
	"context"
	"strings"
	"time"
)

// Page sources. Every stored page is tagged with the site it came from.
const (
	SourceFramework = "framework"
	SourceNodes     = "nodes"
)

// Page represents one documentation URL's stored content.
type Page struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	Source       string    `json:"source"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`     // plain text body
	ContentHTML  string    `json:"contentHtml"` // rendered markup (HTML sources only)
	Breadcrumbs  []string  `json:"breadcrumbs"`
	ContentHash  string    `json:"contentHash"`
	LastModified string    `json:"lastModified"` // RFC3339-ish, empty when the sitemap omits it
	CrawledAt    time.Time `json:"crawledAt"`
}

// Validate returns an error if the page contains invalid fields.
// Pages without a title must never reach the store.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if p.Source == "" {
		return Errorf(EINVALID, "page source required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return Errorf(EINVALID, "page title required")
	}
	return nil
}

// Section represents a heading-delimited subdivision of a page's body.
// A section belongs to exactly one page and is removed with it.
type Section struct {
	ID      int64  `json:"id"`
	PageID  int64  `json:"pageId"`
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Content string `json:"content"`
	Anchor  string `json:"anchor"`
}

// Validate returns an error if the section contains invalid fields.
func (s *Section) Validate() error {
	if s.PageID == 0 {
		return Errorf(EINVALID, "section page ID required")
	}
	if s.Heading == "" {
		return Errorf(EINVALID, "section heading required")
	}
	return nil
}

// CodeExample represents one extracted code block. The section link is
// best-effort: it resolves only when the example's context string exactly
// matches a section heading on the same page.
type CodeExample struct {
	ID        int64  `json:"id"`
	PageID    int64  `json:"pageId"`
	SectionID *int64 `json:"sectionId"`
	Language  string `json:"language"`
	Code      string `json:"code"`
	Context   string `json:"context"`
}

// Validate returns an error if the code example contains invalid fields.
// Whitespace-only code blocks are dropped at extraction and must never
// be stored.
func (e *CodeExample) Validate() error {
	if e.PageID == 0 {
		return Errorf(EINVALID, "code example page ID required")
	}
	if strings.TrimSpace(e.Code) == "" {
		return Errorf(EINVALID, "code example code required")
	}
	return nil
}

// CorpusStore owns all mutation of the documentation corpus.
//
// UpsertPage replaces any existing page with the same URL in a single
// transaction: the old row is deleted (cascading to its sections and
// examples) and a fresh row inserted, so the page always receives a new
// surrogate ID and children are re-derived from the same extraction pass.
// Child writes take the page ID assigned by UpsertPage and must be called
// after the page is durably written.
type CorpusStore interface {
	// UpsertPage writes the page, replacing any prior row for the same
	// URL, and sets page.ID, page.ContentHash and page.CrawledAt.
	UpsertPage(ctx context.Context, page *Page) error

	// InsertSection writes a section and sets section.ID.
	InsertSection(ctx context.Context, section *Section) error

	// InsertCodeExample writes a code example and sets example.ID.
	// When example.Context exactly matches a section heading on the same
	// page, example.SectionID is set to that section; otherwise it stays
	// nil. A missing match is not an error.
	InsertCodeExample(ctx context.Context, example *CodeExample) error

	// InsertNode writes a derived node record and sets node.ID.
	InsertNode(ctx context.Context, node *Node) error
}
