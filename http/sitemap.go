package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/gripdoc/gripdoc"
)

// Ensure SitemapService implements gripdoc.SitemapService.
var _ gripdoc.SitemapService = (*SitemapService)(nil)

// SitemapService fetches and parses sitemap XML documents. The fetch is
// a single request (no pool) but uses the same 429 retry policy as the
// page fetcher.
type SitemapService struct {
	client      *http.Client
	retryDelays []time.Duration
	userAgent   string
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithSitemapRetryDelays sets the 429 backoff schedule.
func WithSitemapRetryDelays(delays []time.Duration) SitemapOption {
	return func(s *SitemapService) {
		s.retryDelays = delays
	}
}

// NewSitemapService creates a new SitemapService with the given HTTP
// client. If client is nil, a client with the default fetch timeout is
// used.
func NewSitemapService(client *http.Client, opts ...SitemapOption) *SitemapService {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	s := &SitemapService{
		client:      client,
		retryDelays: DefaultRetryDelays(),
		userAgent:   defaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch retrieves the sitemap and returns its ordered entries. Entries
// without a lastmod are returned with an empty LastMod.
func (s *SitemapService) Fetch(ctx context.Context, sitemapURL string) ([]gripdoc.SitemapEntry, error) {
	body, err := s.fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	var entries []gripdoc.SitemapEntry
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u == "" {
			continue
		}
		entry := gripdoc.SitemapEntry{URL: u}
		if lastmod := urlEl.SelectElement("lastmod"); lastmod != nil {
			entry.LastMod = strings.TrimSpace(lastmod.Text())
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *SitemapService) fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(s.retryDelays)
	if maxAttempts == 0 {
		maxAttempts = 1
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, status, err := s.get(ctx, url)
		if err != nil {
			return "", err
		}
		if status == http.StatusOK {
			return body, nil
		}
		if status != http.StatusTooManyRequests {
			return "", fmt.Errorf("HTTP %d for %s", status, url)
		}
		if attempt == maxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.retryDelays[attempt]):
		}
	}

	return "", gripdoc.Errorf(gripdoc.ERATELIMITED, "max retries exceeded (429) for %s", url)
}

func (s *SitemapService) get(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}
	return string(body), resp.StatusCode, nil
}
