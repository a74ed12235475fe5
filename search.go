package gripdoc

import "context"

// PageMatch is one full-text search hit with a relevance-ordered snippet.
type PageMatch struct {
	ID      int64  `json:"id"`
	URL     string `json:"url"`
	Source  string `json:"source"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// NodeMatch is one node search hit, joined with its originating page URL
// when the page still exists.
type NodeMatch struct {
	Node
	URL string `json:"url"`
}

// NodeDetail is a full node lookup result including the originating
// page's body text.
type NodeDetail struct {
	Node
	URL     string `json:"url"`
	Content string `json:"content"`
}

// ExampleMatch is one code-example search hit with its page and section
// context.
type ExampleMatch struct {
	ID       int64  `json:"id"`
	Language string `json:"language"`
	Code     string `json:"code"`
	Context  string `json:"context"`
	Heading  string `json:"heading"` // linked section heading, empty when unlinked
	Title    string `json:"title"`   // page title
	URL      string `json:"url"`
}

// CategoryCount is one taxonomy bucket with its member count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Taxonomy lists the framework documentation areas and node categories.
type Taxonomy struct {
	FrameworkSections []CategoryCount `json:"frameworkSections"`
	NodeCategories    []CategoryCount `json:"nodeCategories"`
}

// SearchService provides read-only search and retrieval over a built
// corpus. Implementations never mutate the store.
type SearchService interface {
	// SearchPages runs a full-text search over page titles and bodies,
	// ordered by relevance rank. Source filters to one source tag;
	// empty or "all" searches everything. An unparseable FTS query
	// yields an empty result, not an error.
	SearchPages(ctx context.Context, query, source string, limit int) ([]PageMatch, error)

	// PageByURL retrieves a page by exact URL.
	// Returns ENOTFOUND if no page matches.
	PageByURL(ctx context.Context, url string) (*Page, error)

	// PageByTitle retrieves the first page whose title contains the
	// given substring. Returns ENOTFOUND if no page matches.
	PageByTitle(ctx context.Context, title string) (*Page, error)

	// SectionsByPage lists a page's sections in document order.
	SectionsByPage(ctx context.Context, pageID int64) ([]Section, error)

	// ExamplesByPage lists a page's code examples in document order.
	ExamplesByPage(ctx context.Context, pageID int64) ([]CodeExample, error)

	// SearchNodes searches nodes by name, display name, description and
	// category, including space-stripped matching so "load image" finds
	// "LoadImage". Category filters to one category when non-empty.
	// Multi-word queries with no direct match fall back to per-word
	// matching, deduplicated in first-seen order.
	SearchNodes(ctx context.Context, query, category string, limit int) ([]NodeMatch, error)

	// NodeByName looks up one node with progressive fuzzy matching:
	// exact name/display-name match, then substring, then
	// space-stripped substring. Returns ENOTFOUND when all tiers miss.
	NodeByName(ctx context.Context, name string) (*NodeDetail, error)

	// Categories lists the framework section taxonomy (derived from
	// URL path buckets) and node categories with counts.
	Categories(ctx context.Context) (*Taxonomy, error)

	// SearchCodeExamples finds code examples by topic via a layered
	// strategy: section full-text matches following the section link,
	// then page full-text matches pulling all examples on the page,
	// then direct substring match on code text and context. Later
	// layers run only while the result count is below limit; results
	// are deduplicated by example ID in first-produced order.
	SearchCodeExamples(ctx context.Context, topic string, limit int) ([]ExampleMatch, error)
}
