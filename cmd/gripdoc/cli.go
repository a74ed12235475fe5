package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/gripdoc/gripdoc"
	"github.com/gripdoc/gripdoc/sqlite"
	"github.com/gripdoc/gripdoc/tools"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	DB     *sqlite.DB
	DBPath string
	Search gripdoc.SearchService
	Tools  *tools.Service
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Build      BuildCmd      `cmd:"" help:"Scrape the documentation and build the search database"`
	Validate   ValidateCmd   `cmd:"" help:"Run sanity checks against a built database"`
	Search     SearchCmd     `cmd:"" help:"Full-text search across the documentation"`
	Page       PageCmd       `cmd:"" help:"Show a page by URL or title"`
	Nodes      NodesCmd      `cmd:"" help:"Search the node catalog"`
	Node       NodeCmd       `cmd:"" help:"Show full details for one node"`
	Categories CategoriesCmd `cmd:"" help:"List documentation sections and node categories"`
	Examples   ExamplesCmd   `cmd:"" help:"Search code examples by topic"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Path        string `arg:"" optional:"" help:"Database file path (defaults to the standard location)"`
	Concurrency int    `short:"c" default:"3" help:"Concurrent fetch limit"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	Source string `short:"s" default:"all" help:"Limit to 'framework' or 'nodes'"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	Page string `arg:"" help:"Page URL or (partial) title"`
}

// NodesCmd is the "nodes" subcommand.
type NodesCmd struct {
	Query    string `arg:"" help:"Search query"`
	Category string `short:"C" help:"Limit to a node category"`
}

// NodeCmd is the "node" subcommand.
type NodeCmd struct {
	Name string `arg:"" help:"Node name, e.g. 'LoadImage' or 'load image'"`
}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct{}

// ExamplesCmd is the "examples" subcommand.
type ExamplesCmd struct {
	Topic string `arg:"" help:"Topic to find code examples for"`
}
