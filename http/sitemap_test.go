package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gripdoc/gripdoc"
	griphttp "github.com/gripdoc/gripdoc/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSitemap = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>https://docs.griptape.ai/stable/griptape-framework/</loc>
    <lastmod>2025-06-01</lastmod>
  </url>
  <url>
    <loc>https://docs.griptape.ai/stable/griptape-framework/agents/</loc>
  </url>
  <url>
    <loc>  </loc>
  </url>
</urlset>`

func TestSitemapService_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("parses urlset entries in order", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(sampleSitemap))
		}))
		defer server.Close()

		entries, err := griphttp.NewSitemapService(nil).Fetch(context.Background(), server.URL+"/sitemap.xml")
		require.NoError(t, err)

		require.Len(t, entries, 2)
		assert.Equal(t, "https://docs.griptape.ai/stable/griptape-framework/", entries[0].URL)
		assert.Equal(t, "2025-06-01", entries[0].LastMod)
		assert.Equal(t, "https://docs.griptape.ai/stable/griptape-framework/agents/", entries[1].URL)
		assert.Equal(t, "", entries[1].LastMod)
	})

	t.Run("retries 429 responses", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte(sampleSitemap))
		}))
		defer server.Close()

		svc := griphttp.NewSitemapService(nil, griphttp.WithSitemapRetryDelays([]time.Duration{time.Millisecond, time.Millisecond}))
		entries, err := svc.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("fails after exhausting retries", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		svc := griphttp.NewSitemapService(nil, griphttp.WithSitemapRetryDelays([]time.Duration{time.Millisecond}))
		_, err := svc.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, gripdoc.ERATELIMITED, gripdoc.ErrorCode(err))
	})

	t.Run("fails on other HTTP errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := griphttp.NewSitemapService(nil).Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("fails on malformed XML", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<urlset><url></urlset>"))
		}))
		defer server.Close()

		_, err := griphttp.NewSitemapService(nil).Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})
}
