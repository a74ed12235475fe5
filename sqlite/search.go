package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gripdoc/gripdoc"
)

// Compile-time interface verification.
var _ gripdoc.SearchService = (*SearchService)(nil)

// SearchService implements gripdoc.SearchService using SQLite FTS5.
type SearchService struct {
	db *DB
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB) *SearchService {
	return &SearchService{db: db}
}

// SearchPages runs a full-text search over page titles and bodies,
// ordered by relevance rank. An unparseable FTS query yields an empty
// result rather than an error.
func (s *SearchService) SearchPages(ctx context.Context, query, source string, limit int) ([]gripdoc.PageMatch, error) {
	if limit <= 0 {
		limit = 10
	}

	q := `
		SELECT p.id, p.url, p.source, p.title,
		       snippet(pages_fts, 1, '>>>', '<<<', '...', 40) AS snippet
		FROM pages_fts
		JOIN pages p ON p.id = pages_fts.rowid
		WHERE pages_fts MATCH ?`
	args := []any{query}
	if source != "" && source != "all" {
		q += " AND p.source = ?"
		args = append(args, source)
	}
	q += " ORDER BY rank LIMIT ?"
	args = append(args, limit)

	// FTS5 rejects some query syntax (unbalanced quotes, bare
	// operators), at prepare or first step depending on the driver.
	// Treat either as "no results".
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return []gripdoc.PageMatch{}, nil
	}
	defer rows.Close()

	var matches []gripdoc.PageMatch
	for rows.Next() {
		var m gripdoc.PageMatch
		if err := rows.Scan(&m.ID, &m.URL, &m.Source, &m.Title, &m.Snippet); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if rows.Err() != nil {
		return []gripdoc.PageMatch{}, nil
	}
	return matches, nil
}

// PageByURL retrieves a page by exact URL.
func (s *SearchService) PageByURL(ctx context.Context, url string) (*gripdoc.Page, error) {
	return s.pageWhere(ctx, "url = ?", url)
}

// PageByTitle retrieves the first page whose title contains the given
// substring.
func (s *SearchService) PageByTitle(ctx context.Context, title string) (*gripdoc.Page, error) {
	return s.pageWhere(ctx, "title LIKE ?", "%"+title+"%")
}

func (s *SearchService) pageWhere(ctx context.Context, where string, arg any) (*gripdoc.Page, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, source, title, content, content_html, breadcrumbs, content_hash, last_modified, crawled_at
		FROM pages WHERE `+where+` LIMIT 1
	`, arg)

	page, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, gripdoc.Errorf(gripdoc.ENOTFOUND, "page not found")
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanning a page.
type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (*gripdoc.Page, error) {
	var page gripdoc.Page
	var content, contentHTML, breadcrumbs, lastModified sql.NullString
	var crawledAt string

	err := row.Scan(&page.ID, &page.URL, &page.Source, &page.Title, &content,
		&contentHTML, &breadcrumbs, &page.ContentHash, &lastModified, &crawledAt)
	if err != nil {
		return nil, err
	}

	page.Content = content.String
	page.ContentHTML = contentHTML.String
	page.LastModified = lastModified.String
	if breadcrumbs.String != "" {
		if err := json.Unmarshal([]byte(breadcrumbs.String), &page.Breadcrumbs); err != nil {
			return nil, fmt.Errorf("failed to parse breadcrumbs: %w", err)
		}
	}
	page.CrawledAt, err = time.Parse(time.RFC3339, crawledAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse crawled_at: %w", err)
	}
	return &page, nil
}

// SectionsByPage lists a page's sections in document order.
func (s *SearchService) SectionsByPage(ctx context.Context, pageID int64) ([]gripdoc.Section, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, page_id, heading, level, content, anchor
		FROM sections WHERE page_id = ? ORDER BY id
	`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []gripdoc.Section
	for rows.Next() {
		var sec gripdoc.Section
		var level sql.NullInt64
		var content, anchor sql.NullString
		if err := rows.Scan(&sec.ID, &sec.PageID, &sec.Heading, &level, &content, &anchor); err != nil {
			return nil, err
		}
		sec.Level = int(level.Int64)
		sec.Content = content.String
		sec.Anchor = anchor.String
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

// ExamplesByPage lists a page's code examples in document order.
func (s *SearchService) ExamplesByPage(ctx context.Context, pageID int64) ([]gripdoc.CodeExample, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, page_id, section_id, language, code, context
		FROM code_examples WHERE page_id = ? ORDER BY id
	`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var examples []gripdoc.CodeExample
	for rows.Next() {
		var ex gripdoc.CodeExample
		var sectionID sql.NullInt64
		var language, context sql.NullString
		if err := rows.Scan(&ex.ID, &ex.PageID, &sectionID, &language, &ex.Code, &context); err != nil {
			return nil, err
		}
		if sectionID.Valid {
			id := sectionID.Int64
			ex.SectionID = &id
		}
		ex.Language = language.String
		ex.Context = context.String
		examples = append(examples, ex)
	}
	return examples, rows.Err()
}

const nodeMatchColumns = `
	n.id, n.name, n.display_name, n.category, n.description, n.page_id,
	COALESCE(p.url, '')`

// SearchNodes searches nodes by name, display name, description and
// category. Space-stripped comparisons let spaced queries match
// camel-case names. Multi-word queries with no direct match fall back to
// per-word matching, deduplicated in first-seen order.
func (s *SearchService) SearchNodes(ctx context.Context, query, category string, limit int) ([]gripdoc.NodeMatch, error) {
	if limit <= 0 {
		limit = 20
	}

	like := "%" + query + "%"
	strippedLike := "%" + strings.ReplaceAll(query, " ", "") + "%"

	var q string
	var args []any
	if category != "" {
		q = `
			SELECT ` + nodeMatchColumns + ` FROM nodes n
			LEFT JOIN pages p ON p.id = n.page_id
			WHERE n.category = ? AND (
				n.name LIKE ? OR n.display_name LIKE ? OR n.description LIKE ?
				OR REPLACE(n.name, ' ', '') LIKE ?
				OR REPLACE(n.display_name, ' ', '') LIKE ?
			)
			ORDER BY n.name
			LIMIT ?`
		args = []any{category, like, like, like, strippedLike, strippedLike, limit}
	} else {
		q = `
			SELECT ` + nodeMatchColumns + ` FROM nodes n
			LEFT JOIN pages p ON p.id = n.page_id
			WHERE n.name LIKE ? OR n.display_name LIKE ?
				OR n.description LIKE ? OR n.category LIKE ?
				OR REPLACE(n.name, ' ', '') LIKE ?
				OR REPLACE(n.display_name, ' ', '') LIKE ?
			ORDER BY n.name
			LIMIT ?`
		args = []any{like, like, like, like, strippedLike, strippedLike, limit}
	}

	matches, err := s.queryNodeMatches(ctx, q, args...)
	if err != nil {
		return nil, err
	}

	// Fallback: split multi-word queries into individual words.
	if len(matches) == 0 && strings.Contains(query, " ") {
		seen := make(map[int64]bool)
		for _, word := range strings.Fields(query) {
			if len(word) < 2 {
				continue
			}
			wordLike := "%" + word + "%"
			wordMatches, err := s.queryNodeMatches(ctx, `
				SELECT `+nodeMatchColumns+` FROM nodes n
				LEFT JOIN pages p ON p.id = n.page_id
				WHERE n.name LIKE ? OR n.display_name LIKE ? OR n.description LIKE ?
				ORDER BY n.name
				LIMIT ?`, wordLike, wordLike, wordLike, limit)
			if err != nil {
				return nil, err
			}
			for _, m := range wordMatches {
				if !seen[m.ID] {
					seen[m.ID] = true
					matches = append(matches, m)
				}
			}
		}
		if len(matches) > limit {
			matches = matches[:limit]
		}
	}

	return matches, nil
}

func (s *SearchService) queryNodeMatches(ctx context.Context, query string, args ...any) ([]gripdoc.NodeMatch, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []gripdoc.NodeMatch
	for rows.Next() {
		var m gripdoc.NodeMatch
		var displayName, description sql.NullString
		var pageID sql.NullInt64
		if err := rows.Scan(&m.ID, &m.Name, &displayName, &m.Category, &description, &pageID, &m.URL); err != nil {
			return nil, err
		}
		m.DisplayName = displayName.String
		m.Description = description.String
		if pageID.Valid {
			id := pageID.Int64
			m.PageID = &id
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// NodeByName looks up one node with progressive fuzzy matching: exact
// name/display-name, then substring, then space-stripped substring so
// "Load Image" finds "LoadImage" and vice versa.
func (s *SearchService) NodeByName(ctx context.Context, name string) (*gripdoc.NodeDetail, error) {
	tiers := []struct {
		where string
		args  []any
	}{
		{"n.name = ? OR n.display_name = ?", []any{name, name}},
		{"n.name LIKE ? OR n.display_name LIKE ?", []any{"%" + name + "%", "%" + name + "%"}},
		{"REPLACE(n.name, ' ', '') LIKE ? OR REPLACE(n.display_name, ' ', '') LIKE ?",
			[]any{"%" + strings.ReplaceAll(name, " ", "") + "%", "%" + strings.ReplaceAll(name, " ", "") + "%"}},
	}

	for _, tier := range tiers {
		row := s.db.QueryRowContext(ctx, `
			SELECT n.id, n.name, n.display_name, n.category, n.description, n.page_id,
			       COALESCE(p.url, ''), COALESCE(p.content, '')
			FROM nodes n
			LEFT JOIN pages p ON p.id = n.page_id
			WHERE `+tier.where+` LIMIT 1
		`, tier.args...)

		var detail gripdoc.NodeDetail
		var displayName, description sql.NullString
		var pageID sql.NullInt64
		err := row.Scan(&detail.ID, &detail.Name, &displayName, &detail.Category,
			&description, &pageID, &detail.URL, &detail.Content)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		detail.DisplayName = displayName.String
		detail.Description = description.String
		if pageID.Valid {
			id := pageID.Int64
			detail.PageID = &id
		}
		return &detail, nil
	}

	return nil, gripdoc.Errorf(gripdoc.ENOTFOUND, "node %q not found", name)
}

// Categories lists the framework section taxonomy, derived from URL path
// buckets, and node categories with counts.
func (s *SearchService) Categories(ctx context.Context) (*gripdoc.Taxonomy, error) {
	frameworkRows, err := s.db.QueryContext(ctx, `
		SELECT
			CASE
				WHEN url LIKE '%/structures/%' THEN 'Structures'
				WHEN url LIKE '%/tools/%' THEN 'Tools'
				WHEN url LIKE '%/drivers/%' THEN 'Drivers'
				WHEN url LIKE '%/engines/%' THEN 'Engines'
				WHEN url LIKE '%/data/%' THEN 'Data'
				WHEN url LIKE '%/misc/%' THEN 'Misc'
				WHEN url LIKE '%/recipes/%' THEN 'Recipes'
				ELSE 'Other'
			END AS category,
			COUNT(*) AS count
		FROM pages WHERE source = ?
		GROUP BY category ORDER BY count DESC
	`, gripdoc.SourceFramework)
	if err != nil {
		return nil, err
	}
	defer frameworkRows.Close()

	var taxonomy gripdoc.Taxonomy
	for frameworkRows.Next() {
		var c gripdoc.CategoryCount
		if err := frameworkRows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		taxonomy.FrameworkSections = append(taxonomy.FrameworkSections, c)
	}
	if err := frameworkRows.Err(); err != nil {
		return nil, err
	}

	nodeRows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) AS count FROM nodes
		GROUP BY category ORDER BY count DESC
	`)
	if err != nil {
		return nil, err
	}
	defer nodeRows.Close()

	for nodeRows.Next() {
		var c gripdoc.CategoryCount
		if err := nodeRows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		taxonomy.NodeCategories = append(taxonomy.NodeCategories, c)
	}
	return &taxonomy, nodeRows.Err()
}

// SearchCodeExamples finds code examples by topic using a three-layer
// strategy:
//
//	Layer 1: section FTS, following the section link to its examples.
//	Layer 2: page FTS, pulling all examples on matching pages (covers
//	         examples with no resolved section link).
//	Layer 3: direct LIKE on code text and context as a last resort.
//
// Each layer runs only while the result count is below limit; results
// are deduplicated by example ID in first-produced order.
func (s *SearchService) SearchCodeExamples(ctx context.Context, topic string, limit int) ([]gripdoc.ExampleMatch, error) {
	if limit <= 0 {
		limit = 10
	}

	seen := make(map[int64]bool)
	var results []gripdoc.ExampleMatch

	// Bad FTS syntax skips the layer, whether it surfaces at prepare
	// or at first step.
	collect := func(query string, args ...any) error {
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil
		}
		defer rows.Close()

		for rows.Next() {
			var m gripdoc.ExampleMatch
			var language, context, heading sql.NullString
			if err := rows.Scan(&m.ID, &language, &m.Code, &context, &heading, &m.Title, &m.URL); err != nil {
				return err
			}
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			m.Language = language.String
			m.Context = context.String
			m.Heading = heading.String
			results = append(results, m)
		}
		_ = rows.Err()
		return nil
	}

	if err := collect(`
		SELECT ce.id, ce.language, ce.code, ce.context, s.heading, p.title, p.url
		FROM sections_fts
		JOIN sections s ON s.id = sections_fts.rowid
		JOIN code_examples ce ON ce.section_id = s.id
		JOIN pages p ON p.id = ce.page_id
		WHERE sections_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, topic, limit); err != nil {
		return nil, err
	}

	if len(results) < limit {
		if err := collect(`
			SELECT ce.id, ce.language, ce.code, ce.context, s.heading, p.title, p.url
			FROM pages_fts
			JOIN pages p ON p.id = pages_fts.rowid
			JOIN code_examples ce ON ce.page_id = p.id
			LEFT JOIN sections s ON s.id = ce.section_id
			WHERE pages_fts MATCH ?
			ORDER BY rank
			LIMIT ?
		`, topic, limit-len(results)); err != nil {
			return nil, err
		}
	}

	if len(results) < limit {
		like := "%" + topic + "%"
		if err := collect(`
			SELECT ce.id, ce.language, ce.code, ce.context, s.heading, p.title, p.url
			FROM code_examples ce
			JOIN pages p ON p.id = ce.page_id
			LEFT JOIN sections s ON s.id = ce.section_id
			WHERE ce.code LIKE ? OR ce.context LIKE ?
			LIMIT ?
		`, like, like, limit-len(results)); err != nil {
			return nil, err
		}
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
