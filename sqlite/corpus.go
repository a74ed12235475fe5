package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gripdoc/gripdoc"
)

// Compile-time interface verification.
var _ gripdoc.CorpusStore = (*CorpusService)(nil)

// CorpusService implements gripdoc.CorpusStore using SQLite.
type CorpusService struct {
	db *DB
}

// NewCorpusService creates a new CorpusService.
func NewCorpusService(db *DB) *CorpusService {
	return &CorpusService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// UpsertPage writes the page, replacing any prior row for the same URL.
// Replace is strictly transactional: the old row is deleted (cascading to
// its sections and examples, mirrored through the FTS delete triggers)
// and a fresh row inserted. The page always receives a new surrogate ID;
// callers re-derive children from the same extraction pass.
func (s *CorpusService) UpsertPage(ctx context.Context, page *gripdoc.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	page.ContentHash = hashContent(page.Content)
	page.CrawledAt = time.Now().UTC()

	breadcrumbs, err := json.Marshal(page.Breadcrumbs)
	if err != nil {
		return fmt.Errorf("failed to marshal breadcrumbs: %w", err)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pages WHERE url = ?", page.URL); err != nil {
		return err
	}

	var lastModified any
	if page.LastModified != "" {
		lastModified = page.LastModified
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO pages (url, source, title, content, content_html, breadcrumbs, content_hash, last_modified, crawled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.URL, page.Source, page.Title, page.Content, page.ContentHTML, string(breadcrumbs),
		page.ContentHash, lastModified, page.CrawledAt.Format(time.RFC3339))
	if err != nil {
		return wrapConstraint(err)
	}

	page.ID, err = result.LastInsertId()
	if err != nil {
		return err
	}

	return tx.Commit()
}

// InsertSection writes a section and sets section.ID.
func (s *CorpusService) InsertSection(ctx context.Context, section *gripdoc.Section) error {
	if err := section.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO sections (page_id, heading, level, content, anchor)
		VALUES (?, ?, ?, ?, ?)
	`, section.PageID, section.Heading, section.Level, section.Content, section.Anchor)
	if err != nil {
		return wrapConstraint(err)
	}

	section.ID, err = result.LastInsertId()
	return err
}

// InsertCodeExample writes a code example and sets example.ID. The
// section link is best-effort: an exact heading match against the
// example's context string on the same page. No match leaves SectionID
// nil, which is not an error.
func (s *CorpusService) InsertCodeExample(ctx context.Context, example *gripdoc.CodeExample) error {
	if err := example.Validate(); err != nil {
		return err
	}

	if example.Context != "" {
		var sectionID int64
		err := s.db.QueryRowContext(ctx, `
			SELECT id FROM sections WHERE page_id = ? AND heading = ? LIMIT 1
		`, example.PageID, example.Context).Scan(&sectionID)
		if err == nil {
			example.SectionID = &sectionID
		}
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO code_examples (page_id, section_id, language, code, context)
		VALUES (?, ?, ?, ?, ?)
	`, example.PageID, example.SectionID, example.Language, example.Code, example.Context)
	if err != nil {
		return wrapConstraint(err)
	}

	example.ID, err = result.LastInsertId()
	return err
}

// InsertNode writes a derived node record and sets node.ID.
func (s *CorpusService) InsertNode(ctx context.Context, node *gripdoc.Node) error {
	if err := node.Validate(); err != nil {
		return err
	}

	var description any
	if node.Description != "" {
		description = node.Description
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO nodes (name, display_name, category, description, page_id)
		VALUES (?, ?, ?, ?, ?)
	`, node.Name, node.DisplayName, node.Category, description, node.PageID)
	if err != nil {
		return wrapConstraint(err)
	}

	node.ID, err = result.LastInsertId()
	return err
}

// wrapConstraint converts SQLite constraint violations into ECONFLICT so
// scrapers can log and skip the row without aborting the batch.
func wrapConstraint(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "constraint") {
		return gripdoc.Errorf(gripdoc.ECONFLICT, "constraint violation: %v", err)
	}
	return err
}
