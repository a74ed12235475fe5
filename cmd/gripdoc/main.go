package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/gripdoc/gripdoc"
	"github.com/gripdoc/gripdoc/sqlite"
	"github.com/gripdoc/gripdoc/tools"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SearchService gripdoc.SearchService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gripdoc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'gripdoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// The build command may override the target path as an argument.
	if cmd == "build" && cli.Build.Path != "" {
		m.DBPath = cli.Build.Path
	}

	if err := validateDBPath(m.DBPath, cmd == "build"); err != nil {
		fmt.Fprintln(stderr, "Hint: Set GRIPDOC_DB to use a different database path")
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set GRIPDOC_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.SearchService = sqlite.NewSearchService(m.DB)
	deps.DB = m.DB
	deps.DBPath = m.DBPath
	deps.Search = m.SearchService
	deps.Tools = tools.NewService(m.SearchService)

	return kongCtx.Run(deps)
}

// validateDBPath enforces the database path rules: an explicit override
// must use a .db extension, and query commands require the database to
// exist already (only a build may create it).
func validateDBPath(path string, building bool) error {
	if !strings.HasSuffix(path, ".db") {
		return fmt.Errorf("database path %q must have a .db extension", path)
	}
	if building {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("database %q does not exist; run 'gripdoc build' first", path)
	}
	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("GRIPDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "gripdoc.db"
	}
	dir := filepath.Join(home, ".gripdoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "gripdoc.db")
}
