package gripdoc

import "context"

// RepoFile is one markdown file discovered in a repository directory
// listing. DownloadURL points at the raw file content.
type RepoFile struct {
	Path        string
	Name        string
	DownloadURL string
}

// RepoLister recursively lists markdown files under a repository
// directory. Used by the GitHub fallback scraper when the nodes website
// cannot be scraped.
type RepoLister interface {
	ListMarkdown(ctx context.Context, path string) ([]RepoFile, error)
}
