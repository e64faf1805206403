package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/politeness"
)

var testPage = "<html><head><title>Test University</title></head><body>" +
	strings.Repeat("<p>program listing content</p>", 10) + "</body></html>"

func newTestFetcher(t *testing.T, cache *Cache) *Fetcher {
	t.Helper()
	f, err := New(politeness.New(politeness.Config{RequestsPerSec: 1000}), Options{
		Timeout: 5 * time.Second,
		Cache:   cache,
	})
	require.NoError(t, err)
	return f
}

func TestFetcher_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(testPage))
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	html, err := f.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "Test University")
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestFetcher_Status404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		_, _ = w.Write([]byte(strings.Repeat("not found ", 30)))
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	_, err := f.Get(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetcher_TinyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	_, err := f.Get(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "too small")
}

func TestFetcher_Blocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>Please complete the reCAPTCHA to continue</body></html>"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, nil)
	_, err := f.Get(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}

func TestFetcher_CacheHitSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(testPage))
	}))
	defer srv.Close()

	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	f := newTestFetcher(t, cache)

	first, err := f.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	second, err := f.Get(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, hits.Load())
}

func TestFetcher_FailuresNotCached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		_, _ = w.Write([]byte(strings.Repeat("server error ", 20)))
	}))
	defer srv.Close()

	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	f := newTestFetcher(t, cache)
	_, err = f.Get(context.Background(), srv.URL)
	require.Error(t, err)

	_, ok, err := cache.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeCharset_Latin1(t *testing.T) {
	// "café" in ISO-8859-1: é is 0xE9.
	body := []byte("caf\xe9 " + strings.Repeat("x", 100))
	out, err := decodeCharset(body, "text/html; charset=iso-8859-1")
	require.NoError(t, err)
	assert.Contains(t, out, "café")
}

func TestDecodeCharset_UTF8Passthrough(t *testing.T) {
	out, err := decodeCharset([]byte("café"), "text/html; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "café", out)
}

func TestDecodeCharset_NoContentType(t *testing.T) {
	out, err := decodeCharset([]byte("plain"), "")
	require.NoError(t, err)
	assert.Equal(t, "plain", out)
}
