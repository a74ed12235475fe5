// Package http provides HTTP-based implementations of the gripdoc
// fetching interfaces: a rate-limited concurrent page fetcher and a
// sitemap service. Both retry on 429 responses with linearly increasing
// backoff and convert every other failure into a per-URL error outcome.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gripdoc/gripdoc"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// DefaultConcurrency bounds simultaneous in-flight page requests.
	DefaultConcurrency = 3

	// DefaultFetchTimeout is the per-request timeout. There is no
	// overall deadline on a batch.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultRequestInterval paces aggregate request rate independent
	// of concurrency.
	DefaultRequestInterval = 1 * time.Second

	// DefaultMaxResponseSize caps response bodies. No legitimate docs
	// page should exceed this.
	DefaultMaxResponseSize = 10_000_000

	defaultUserAgent = "gripdoc-scraper/0.1 (+https://github.com/gripdoc/gripdoc)"
)

// DefaultRetryDelays returns the backoff delays applied between 429
// retries: 10s, 20s, 30s, 40s, 50s. One attempt is made per delay slot,
// so the retry bound is len(delays).
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{
		10 * time.Second,
		20 * time.Second,
		30 * time.Second,
		40 * time.Second,
		50 * time.Second,
	}
}

// Ensure Fetcher implements gripdoc.Fetcher at compile time.
var _ gripdoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages over HTTP with bounded concurrency, aggregate
// rate limiting, 429 retry and a response-size ceiling. Failures are
// isolated per URL: FetchAll never fails the batch.
type Fetcher struct {
	client      *http.Client
	limiter     *rate.Limiter
	concurrency int
	timeout     time.Duration
	interval    time.Duration
	retryDelays []time.Duration
	maxBytes    int64
	userAgent   string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithConcurrency sets the maximum number of in-flight requests.
func WithConcurrency(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRequestInterval sets the minimum spacing between requests across
// all workers. Zero disables pacing (useful in tests).
func WithRequestInterval(d time.Duration) Option {
	return func(f *Fetcher) {
		f.interval = d
	}
}

// WithRetryDelays sets the 429 backoff schedule. The number of delays is
// the retry bound. Useful for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelays = delays
	}
}

// WithMaxResponseSize sets the response-size ceiling in bytes.
func WithMaxResponseSize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new rate-limited Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		concurrency: DefaultConcurrency,
		timeout:     DefaultFetchTimeout,
		interval:    DefaultRequestInterval,
		retryDelays: DefaultRetryDelays(),
		maxBytes:    DefaultMaxResponseSize,
		userAgent:   defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{Timeout: f.timeout}
	if f.interval > 0 {
		f.limiter = rate.NewLimiter(rate.Every(f.interval), 1)
	}

	return f
}

// FetchAll fetches all URLs and returns one result per URL. Results
// arrive in completion order, not submission order: treat them as an
// unordered bag keyed by URL.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []gripdoc.FetchResult {
	resultCh := make(chan gripdoc.FetchResult, len(urls))

	g := &errgroup.Group{}
	g.SetLimit(f.concurrency)

	for _, url := range urls {
		g.Go(func() error {
			body, err := f.fetchOne(ctx, url)
			resultCh <- gripdoc.FetchResult{URL: url, Body: body, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	close(resultCh)

	results := make([]gripdoc.FetchResult, 0, len(urls))
	for result := range resultCh {
		results = append(results, result)
	}
	return results
}

// fetchOne fetches a single URL, retrying on 429 with the configured
// backoff schedule.
func (f *Fetcher) fetchOne(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.retryDelays)
	if maxAttempts == 0 {
		maxAttempts = 1
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return "", err
			}
		}

		body, retryable, err := f.do(ctx, url)
		if err == nil {
			return body, nil
		}
		if !retryable || attempt == maxAttempts-1 {
			if retryable {
				return "", gripdoc.Errorf(gripdoc.ERATELIMITED, "max retries exceeded (429) for %s", url)
			}
			return "", err
		}

		wait := 10 * time.Second * time.Duration(attempt+1)
		if attempt < len(f.retryDelays) {
			wait = f.retryDelays[attempt]
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}

	return "", gripdoc.Errorf(gripdoc.ERATELIMITED, "max retries exceeded (429) for %s", url)
}

// do performs one request. The second return value reports whether the
// failure was a 429 and is worth retrying.
func (f *Fetcher) do(ctx context.Context, url string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", true, gripdoc.Errorf(gripdoc.ERATELIMITED, "HTTP 429 for %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	// Check the declared length first to avoid buffering oversized
	// responses, then the actual decoded size.
	if resp.ContentLength > f.maxBytes {
		return "", false, gripdoc.Errorf(gripdoc.ETOOLARGE, "response too large (%d bytes) for %s", resp.ContentLength, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", false, err
	}
	if int64(len(body)) > f.maxBytes {
		return "", false, gripdoc.Errorf(gripdoc.ETOOLARGE, "response too large (%d+ bytes) for %s", len(body), url)
	}

	return string(body), false, nil
}
