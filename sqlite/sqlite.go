// Package sqlite provides SQLite-based storage for the documentation
// corpus: schema management, write-side corpus services and read-side
// search services. Full-text search uses FTS5 content tables kept in
// sync with their base tables via write-time triggers.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait up to 5 seconds on lock contention instead of failing with
	// "database is locked".
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode lets readers observe the database while the build is
	// writing it. Not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Child rows must always resolve to an existing page.
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// Reset drops all corpus tables and recreates the schema. Used at the
// start of a build so every run starts from an empty corpus.
func (db *DB) Reset() error {
	drop := `
		DROP TABLE IF EXISTS pages_fts;
		DROP TABLE IF EXISTS sections_fts;
		DROP TABLE IF EXISTS code_examples;
		DROP TABLE IF EXISTS nodes;
		DROP TABLE IF EXISTS sections;
		DROP TABLE IF EXISTS pages;
	`
	if _, err := db.db.Exec(drop); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return db.createSchema()
}

// createSchema creates the tables, full-text indexes, sync triggers and
// supporting indexes if they don't exist. Safe to run against an
// existing database.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS pages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT,
			content_html TEXT,
			breadcrumbs TEXT,
			content_hash TEXT NOT NULL DEFAULT '',
			last_modified TEXT,
			crawled_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			page_id INTEGER NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
			heading TEXT NOT NULL,
			level INTEGER,
			content TEXT,
			anchor TEXT
		);

		CREATE TABLE IF NOT EXISTS code_examples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			page_id INTEGER NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
			section_id INTEGER REFERENCES sections(id) ON DELETE SET NULL,
			language TEXT,
			code TEXT NOT NULL,
			context TEXT
		);

		CREATE TABLE IF NOT EXISTS nodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			display_name TEXT,
			category TEXT NOT NULL,
			description TEXT,
			page_id INTEGER REFERENCES pages(id) ON DELETE SET NULL
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS pages_fts USING fts5(
			title, content, content=pages, content_rowid=id
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS sections_fts USING fts5(
			heading, content, content=sections, content_rowid=id
		);

		CREATE TRIGGER IF NOT EXISTS pages_ai AFTER INSERT ON pages BEGIN
			INSERT INTO pages_fts(rowid, title, content) VALUES (new.id, new.title, new.content);
		END;
		CREATE TRIGGER IF NOT EXISTS pages_ad AFTER DELETE ON pages BEGIN
			INSERT INTO pages_fts(pages_fts, rowid, title, content) VALUES('delete', old.id, old.title, old.content);
		END;
		CREATE TRIGGER IF NOT EXISTS pages_au AFTER UPDATE ON pages BEGIN
			INSERT INTO pages_fts(pages_fts, rowid, title, content) VALUES('delete', old.id, old.title, old.content);
			INSERT INTO pages_fts(rowid, title, content) VALUES (new.id, new.title, new.content);
		END;

		CREATE TRIGGER IF NOT EXISTS sections_ai AFTER INSERT ON sections BEGIN
			INSERT INTO sections_fts(rowid, heading, content) VALUES (new.id, new.heading, new.content);
		END;
		CREATE TRIGGER IF NOT EXISTS sections_ad AFTER DELETE ON sections BEGIN
			INSERT INTO sections_fts(sections_fts, rowid, heading, content) VALUES('delete', old.id, old.heading, old.content);
		END;
		CREATE TRIGGER IF NOT EXISTS sections_au AFTER UPDATE ON sections BEGIN
			INSERT INTO sections_fts(sections_fts, rowid, heading, content) VALUES('delete', old.id, old.heading, old.content);
			INSERT INTO sections_fts(rowid, heading, content) VALUES (new.id, new.heading, new.content);
		END;

		CREATE INDEX IF NOT EXISTS idx_pages_source ON pages(source);
		CREATE INDEX IF NOT EXISTS idx_pages_url ON pages(url);
		CREATE INDEX IF NOT EXISTS idx_sections_page_id ON sections(page_id);
		CREATE INDEX IF NOT EXISTS idx_code_examples_page_id ON code_examples(page_id);
		CREATE INDEX IF NOT EXISTS idx_nodes_category ON nodes(category);
		CREATE INDEX IF NOT EXISTS idx_nodes_name ON nodes(name);
	`

	_, err := db.db.Exec(schema)
	return err
}
