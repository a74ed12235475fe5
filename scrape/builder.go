package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// StoreResetter resets the corpus store to an empty schema at the start
// of a build.
type StoreResetter interface {
	Reset() error
}

// Builder sequences a full corpus build: reset the store, scrape the
// framework docs, scrape the nodes docs, and fall back to the GitHub
// markdown source when the nodes website scrape fails or produces more
// errors than pages.
type Builder struct {
	Store     StoreResetter
	Framework Runner
	Nodes     Runner
	GitHub    Runner
	Logger    *slog.Logger
}

// BuildResult aggregates the counters from whichever sources were
// actually used.
type BuildResult struct {
	RunID        string
	Framework    Stats
	Nodes        Stats
	UsedFallback bool
	Total        Stats
}

// Success reports whether the build produced zero errors across both
// sources. This is the exit signal for callers.
func (r *BuildResult) Success() bool {
	return r.Total.Errors == 0
}

// Run executes the build. Node-source failures trigger the GitHub
// fallback; a framework failure fails the build.
func (b *Builder) Run(ctx context.Context) (*BuildResult, error) {
	logger := b.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result := &BuildResult{RunID: uuid.New().String()}
	logger.Info("build starting", "run_id", result.RunID)

	if err := b.Store.Reset(); err != nil {
		return nil, fmt.Errorf("store reset: %w", err)
	}

	framework, err := b.Framework.Run(ctx)
	if err != nil {
		return nil, err
	}
	result.Framework = *framework

	nodes, err := b.Nodes.Run(ctx)
	switch {
	case err != nil:
		logger.Warn("nodes website scrape failed, falling back to GitHub source", "error", err)
		result.UsedFallback = true
	case nodes.Errors > nodes.Pages:
		logger.Warn("too many errors from nodes website, falling back to GitHub source",
			"errors", nodes.Errors, "pages", nodes.Pages)
		result.UsedFallback = true
	default:
		result.Nodes = *nodes
	}

	if result.UsedFallback {
		fallback, err := b.GitHub.Run(ctx)
		if err != nil {
			return nil, err
		}
		result.Nodes = *fallback
	}

	result.Total = result.Framework
	result.Total.Add(result.Nodes)

	logger.Info("build complete", "run_id", result.RunID,
		"pages", result.Total.Pages, "sections", result.Total.Sections,
		"examples", result.Total.Examples, "nodes", result.Total.Nodes,
		"errors", result.Total.Errors, "fallback", result.UsedFallback)
	return result, nil
}
