// Package tools provides the query tool surface over a built corpus.
// Every method validates its input up front and returns human-readable
// formatted text; invalid input and empty results are descriptive
// strings, never errors. The surface is designed for consumption by an
// LLM tool-call layer and the CLI query subcommands.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/gripdoc/gripdoc"
)

// MaxQueryLength bounds every string argument.
const MaxQueryLength = 1000

// Default result limits.
const (
	defaultPageLimit    = 10
	defaultNodeLimit    = 20
	defaultExampleLimit = 10
)

// Service exposes the documentation query tools.
type Service struct {
	search gripdoc.SearchService
}

// NewService creates a new tool Service over the given search service.
func NewService(search gripdoc.SearchService) *Service {
	return &Service{search: search}
}

// validate checks a query argument. Returns a non-empty error message
// when the argument is unusable.
func validate(query string) string {
	if strings.TrimSpace(query) == "" {
		return "Error: query must be a non-empty string."
	}
	if len(query) > MaxQueryLength {
		return fmt.Sprintf("Error: query too long (max %d characters).", MaxQueryLength)
	}
	return ""
}

// SearchDocs runs a full-text search across all documentation. Source
// filters to "framework" or "nodes"; "all" or empty searches everything.
func (s *Service) SearchDocs(ctx context.Context, query, source string) string {
	if msg := validate(query); msg != "" {
		return msg
	}
	switch source {
	case "", "all", gripdoc.SourceFramework, gripdoc.SourceNodes:
	default:
		return "Error: source must be 'framework', 'nodes', or 'all'."
	}

	results, err := s.search.SearchPages(ctx, query, source, defaultPageLimit)
	if err != nil {
		return fmt.Sprintf("Error: search failed: %v", err)
	}
	if len(results) == 0 {
		return fmt.Sprintf("No results found for '%s'", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d result(s) for '%s':\n\n", len(results), query)
	for _, r := range results {
		fmt.Fprintf(&b, "- **%s** [%s]\n", r.Title, r.Source)
		fmt.Fprintf(&b, "  URL: %s\n", r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(&b, "  %s\n", r.Snippet)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// GetPage returns the full content of one page, located by URL or
// partial title, including its sections and code examples.
func (s *Service) GetPage(ctx context.Context, urlOrTitle string) string {
	if msg := validate(urlOrTitle); msg != "" {
		return msg
	}

	var page *gripdoc.Page
	var err error
	if strings.HasPrefix(urlOrTitle, "http") {
		page, err = s.search.PageByURL(ctx, urlOrTitle)
	} else {
		page, err = s.search.PageByTitle(ctx, urlOrTitle)
	}
	if err != nil {
		if gripdoc.ErrorCode(err) == gripdoc.ENOTFOUND {
			return fmt.Sprintf("No page found matching '%s'", urlOrTitle)
		}
		return fmt.Sprintf("Error: lookup failed: %v", err)
	}

	sections, err := s.search.SectionsByPage(ctx, page.ID)
	if err != nil {
		return fmt.Sprintf("Error: lookup failed: %v", err)
	}
	examples, err := s.search.ExamplesByPage(ctx, page.ID)
	if err != nil {
		return fmt.Sprintf("Error: lookup failed: %v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", page.Title)
	fmt.Fprintf(&b, "Source: %s | URL: %s\n\n", page.Source, page.URL)

	if page.Content != "" {
		b.WriteString(page.Content)
		b.WriteString("\n\n")
	}

	if len(sections) > 0 {
		b.WriteString("## Sections\n")
		for _, sec := range sections {
			prefix := "##"
			if sec.Level > 0 {
				prefix = strings.Repeat("#", sec.Level+1)
			}
			fmt.Fprintf(&b, "\n%s %s\n", prefix, sec.Heading)
			if sec.Content != "" {
				b.WriteString(sec.Content)
				b.WriteString("\n")
			}
		}
	}

	if len(examples) > 0 {
		b.WriteString("\n## Code Examples\n")
		writeExamples(&b, examples)
	}

	return strings.TrimRight(b.String(), "\n")
}

// SearchNodes searches the node catalog by name, description, or
// category.
func (s *Service) SearchNodes(ctx context.Context, query, category string) string {
	if msg := validate(query); msg != "" {
		return msg
	}

	results, err := s.search.SearchNodes(ctx, query, category, defaultNodeLimit)
	if err != nil {
		return fmt.Sprintf("Error: search failed: %v", err)
	}
	if len(results) == 0 {
		msg := fmt.Sprintf("No nodes found for '%s'", query)
		if category != "" {
			msg += fmt.Sprintf(" in category '%s'", category)
		}
		return msg
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d node(s):\n\n", len(results))
	for _, n := range results {
		fmt.Fprintf(&b, "- **%s** [%s]\n", displayName(n.Node), n.Category)
		if n.Description != "" {
			fmt.Fprintf(&b, "  %s\n", n.Description)
		}
		if n.URL != "" {
			fmt.Fprintf(&b, "  Docs: %s\n", n.URL)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// GetNodeDetails returns the full documentation for one node, found by
// fuzzy name lookup.
func (s *Service) GetNodeDetails(ctx context.Context, nodeName string) string {
	if msg := validate(nodeName); msg != "" {
		return msg
	}

	node, err := s.search.NodeByName(ctx, nodeName)
	if err != nil {
		if gripdoc.ErrorCode(err) == gripdoc.ENOTFOUND {
			return fmt.Sprintf("No node found matching '%s'. Try a node search to find available nodes.", nodeName)
		}
		return fmt.Sprintf("Error: lookup failed: %v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", displayName(node.Node))
	fmt.Fprintf(&b, "Category: %s\n", node.Category)
	if node.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", node.Description)
	}
	if node.URL != "" {
		fmt.Fprintf(&b, "\nDocs URL: %s\n", node.URL)
	}
	if node.Content != "" {
		fmt.Fprintf(&b, "\n## Full Documentation\n%s\n", node.Content)
	}

	if node.PageID != nil {
		examples, err := s.search.ExamplesByPage(ctx, *node.PageID)
		if err == nil && len(examples) > 0 {
			b.WriteString("\n## Code Examples\n")
			writeExamples(&b, examples)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// ListCategories lists the framework documentation areas and node
// categories with counts.
func (s *Service) ListCategories(ctx context.Context) string {
	taxonomy, err := s.search.Categories(ctx)
	if err != nil {
		return fmt.Sprintf("Error: lookup failed: %v", err)
	}

	var b strings.Builder
	b.WriteString("# Griptape Framework Sections\n\n")
	for _, c := range taxonomy.FrameworkSections {
		fmt.Fprintf(&b, "- %s: %d page(s)\n", c.Category, c.Count)
	}
	b.WriteString("\n# Griptape Node Categories\n\n")
	for _, c := range taxonomy.NodeCategories {
		fmt.Fprintf(&b, "- %s: %d node(s)\n", c.Category, c.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

// GetCodeExamples searches code examples by topic.
func (s *Service) GetCodeExamples(ctx context.Context, topic string) string {
	if msg := validate(topic); msg != "" {
		return msg
	}

	results, err := s.search.SearchCodeExamples(ctx, topic, defaultExampleLimit)
	if err != nil {
		return fmt.Sprintf("Error: search failed: %v", err)
	}
	if len(results) == 0 {
		return fmt.Sprintf("No code examples found for '%s'. Try a broader search term.", topic)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d code example(s) for '%s':\n\n", len(results), topic)
	for _, r := range results {
		fmt.Fprintf(&b, "### From: %s > %s\n", r.Title, r.Heading)
		if r.URL != "" {
			fmt.Fprintf(&b, "URL: %s\n", r.URL)
		}
		lang := r.Language
		if lang == "" {
			lang = "python"
		}
		fmt.Fprintf(&b, "\n```%s\n%s\n```\n\n", lang, r.Code)
	}
	return strings.TrimRight(b.String(), "\n")
}

func displayName(n gripdoc.Node) string {
	if n.DisplayName != "" {
		return n.DisplayName
	}
	return n.Name
}

func writeExamples(b *strings.Builder, examples []gripdoc.CodeExample) {
	for _, ex := range examples {
		if ex.Context != "" {
			fmt.Fprintf(b, "\n%s\n", ex.Context)
		}
		lang := ex.Language
		if lang == "" {
			lang = "python"
		}
		fmt.Fprintf(b, "\n```%s\n%s\n```\n", lang, ex.Code)
	}
}
