package main

import (
	"fmt"
	"os"

	"github.com/gripdoc/gripdoc/github"
	"github.com/gripdoc/gripdoc/goquery"
	griphttp "github.com/gripdoc/gripdoc/http"
	"github.com/gripdoc/gripdoc/markdown"
	"github.com/gripdoc/gripdoc/scrape"
	gripslog "github.com/gripdoc/gripdoc/slog"
	"github.com/gripdoc/gripdoc/sqlite"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	store := sqlite.NewCorpusService(deps.DB)

	fetcher := gripslog.NewLoggingFetcher(
		griphttp.NewFetcher(griphttp.WithConcurrency(c.Concurrency)),
		deps.Logger,
	)
	sitemaps := gripslog.NewLoggingSitemapService(
		griphttp.NewSitemapService(nil),
		deps.Logger,
	)
	lister := gripslog.NewLoggingRepoLister(
		github.NewLister(nil, deps.Logger),
		deps.Logger,
	)

	builder := &scrape.Builder{
		Store: deps.DB,
		Framework: &scrape.FrameworkScraper{
			Sitemaps:  sitemaps,
			Fetcher:   fetcher,
			Extractor: goquery.NewExtractor(),
			Store:     store,
			Logger:    deps.Logger,
		},
		Nodes: &scrape.NodesScraper{
			Sitemaps:  sitemaps,
			Fetcher:   fetcher,
			Extractor: goquery.NewExtractor(),
			Store:     store,
			Logger:    deps.Logger,
		},
		GitHub: &scrape.GitHubScraper{
			Lister:    lister,
			Fetcher:   fetcher,
			Extractor: markdown.NewExtractor(),
			Store:     store,
			Logger:    deps.Logger,
		},
		Logger: deps.Logger,
	}

	result, err := builder.Run(deps.Ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Build %s\n", result.RunID)
	fmt.Fprintf(deps.Stdout, "  framework: %d pages, %d sections, %d examples, %d errors\n",
		result.Framework.Pages, result.Framework.Sections, result.Framework.Examples, result.Framework.Errors)
	fmt.Fprintf(deps.Stdout, "  nodes:     %d pages, %d nodes, %d errors (fallback: %t)\n",
		result.Nodes.Pages, result.Nodes.Nodes, result.Nodes.Errors, result.UsedFallback)
	if info, err := os.Stat(deps.DBPath); err == nil {
		fmt.Fprintf(deps.Stdout, "  database:  %s (%.1f MB)\n", deps.DBPath, float64(info.Size())/(1024*1024))
	}

	if !result.Success() {
		return fmt.Errorf("build completed with %d error(s)", result.Total.Errors)
	}
	fmt.Fprintln(deps.Stdout, "Build succeeded.")
	return nil
}
