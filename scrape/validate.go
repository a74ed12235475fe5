package scrape

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier is the read surface the validator needs from the store.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Check is one validation result.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Validate runs post-build sanity checks against a built corpus and
// returns the individual results plus an overall pass flag.
func Validate(ctx context.Context, db Querier) ([]Check, bool) {
	var checks []Check
	passed := true

	add := func(name string, ok bool, detail string) {
		checks = append(checks, Check{Name: name, Passed: ok, Detail: detail})
		if !ok {
			passed = false
		}
	}

	count := func(query string, args ...any) (int, error) {
		var n int
		err := db.QueryRowContext(ctx, query, args...).Scan(&n)
		return n, err
	}

	for _, table := range []string{"pages", "sections", "code_examples", "nodes"} {
		n, err := count("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		add(fmt.Sprintf("table %q exists", table), err == nil && n == 1, "")
	}

	if n, err := count("SELECT COUNT(*) FROM pages WHERE source = 'framework'"); err == nil {
		add("framework pages > 10", n > 10, fmt.Sprintf("got %d", n))
	} else {
		add("framework pages > 10", false, err.Error())
	}

	if n, err := count("SELECT COUNT(*) FROM pages WHERE source = 'nodes'"); err == nil {
		add("nodes pages > 10", n > 10, fmt.Sprintf("got %d", n))
	} else {
		add("nodes pages > 10", false, err.Error())
	}

	if n, err := count("SELECT COUNT(*) FROM nodes"); err == nil {
		add("nodes extracted > 20", n > 20, fmt.Sprintf("got %d", n))
	} else {
		add("nodes extracted > 20", false, err.Error())
	}

	if n, err := count("SELECT COUNT(*) FROM sections"); err == nil {
		add("sections > 50", n > 50, fmt.Sprintf("got %d", n))
	} else {
		add("sections > 50", false, err.Error())
	}

	if n, err := count("SELECT COUNT(*) FROM code_examples"); err == nil {
		add("code examples > 10", n > 10, fmt.Sprintf("got %d", n))
	} else {
		add("code examples > 10", false, err.Error())
	}

	if n, err := count("SELECT COUNT(*) FROM pages WHERE title = '' OR title IS NULL"); err == nil {
		add("no empty page titles", n == 0, fmt.Sprintf("got %d empty", n))
	} else {
		add("no empty page titles", false, err.Error())
	}

	if n, err := count("SELECT COUNT(*) FROM pages_fts WHERE pages_fts MATCH 'agent'"); err == nil {
		add("FTS search works", true, fmt.Sprintf("'agent' matched %d pages", n))
	} else {
		add("FTS search works", false, err.Error())
	}

	if n, err := count("SELECT COUNT(DISTINCT category) FROM nodes"); err == nil {
		add("multiple node categories", n > 3, fmt.Sprintf("got %d", n))
	} else {
		add("multiple node categories", false, err.Error())
	}

	return checks, passed
}
