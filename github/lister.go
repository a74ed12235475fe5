// Package github provides a gripdoc.RepoLister over the GitHub contents
// API. It is the discovery half of the markdown fallback scraper used
// when the nodes documentation website cannot be scraped.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gripdoc/gripdoc"
)

// DefaultBaseURL is the contents endpoint for the nodes repository.
const DefaultBaseURL = "https://api.github.com/repos/griptape-ai/griptape-nodes/contents"

// defaultListDelay spaces sibling subdirectory listings to stay within
// the GitHub API rate limit.
const defaultListDelay = 500 * time.Millisecond

// Ensure Lister implements gripdoc.RepoLister.
var _ gripdoc.RepoLister = (*Lister)(nil)

// Lister recursively lists markdown files via the GitHub contents API.
// Children are fetched after their parent listing returns; a small fixed
// delay separates sibling subdirectory listings.
type Lister struct {
	client    *http.Client
	baseURL   string
	listDelay time.Duration
	userAgent string
	logger    *slog.Logger
}

// ListerOption configures a Lister.
type ListerOption func(*Lister)

// WithBaseURL points the lister at a different contents endpoint.
// Useful for testing against a local server.
func WithBaseURL(url string) ListerOption {
	return func(l *Lister) {
		l.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithListDelay sets the delay between sibling subdirectory listings.
func WithListDelay(d time.Duration) ListerOption {
	return func(l *Lister) {
		l.listDelay = d
	}
}

// NewLister creates a new Lister. If client is nil, a client with the
// default fetch timeout is used. If logger is nil, logging is discarded.
func NewLister(client *http.Client, logger *slog.Logger, opts ...ListerOption) *Lister {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l := &Lister{
		client:    client,
		baseURL:   DefaultBaseURL,
		listDelay: defaultListDelay,
		userAgent: "gripdoc-scraper/0.1",
		logger:    logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// entry is one item in a contents API response.
type entry struct {
	Type        string `json:"type"` // "file" or "dir"
	Name        string `json:"name"`
	Path        string `json:"path"`
	DownloadURL string `json:"download_url"`
}

// ListMarkdown recursively lists all .md files under the given
// repository path. A non-200 response for a subdirectory is logged and
// skipped; it does not fail the listing.
func (l *Lister) ListMarkdown(ctx context.Context, path string) ([]gripdoc.RepoFile, error) {
	entries, err := l.list(ctx, path)
	if err != nil {
		return nil, err
	}

	var files []gripdoc.RepoFile
	for _, e := range entries {
		switch {
		case e.Type == "file" && strings.HasSuffix(e.Name, ".md"):
			files = append(files, gripdoc.RepoFile{
				Path:        e.Path,
				Name:        e.Name,
				DownloadURL: e.DownloadURL,
			})
		case e.Type == "dir":
			sub, err := l.ListMarkdown(ctx, e.Path)
			if err != nil {
				l.logger.Warn("directory listing failed", "path", e.Path, "error", err)
				continue
			}
			files = append(files, sub...)

			select {
			case <-ctx.Done():
				return files, ctx.Err()
			case <-time.After(l.listDelay):
			}
		}
	}
	return files, nil
}

func (l *Lister) list(ctx context.Context, path string) ([]entry, error) {
	url := l.baseURL + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API HTTP %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var entries []entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parsing contents listing: %w", err)
	}
	return entries, nil
}
