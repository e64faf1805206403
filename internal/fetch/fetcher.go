// Package fetch retrieves page HTML politely and refuses to pass off
// blocked, truncated, or error responses as content.
package fetch

import (
	"context"
	"mime"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/politeness"
)

// Options configures the Fetcher.
type Options struct {
	Timeout      time.Duration
	MinBodyBytes int
	Cache        *Cache // optional
}

// Fetcher performs single-attempt GETs. Retry policy belongs to the
// caller; every transport-level problem comes back as an error, never
// a panic and never partial content.
type Fetcher struct {
	client *resty.Client
	polite *politeness.Politeness
	opts   Options
}

// New creates a Fetcher using the given politeness layer.
func New(polite *politeness.Politeness, opts Options) (*Fetcher, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MinBodyBytes == 0 {
		opts.MinBodyBytes = 100
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetch: cookie jar")
	}
	client.SetCookieJar(jar)
	client.SetTimeout(opts.Timeout)

	return &Fetcher{client: client, polite: polite, opts: opts}, nil
}

// Get fetches one URL and returns its decoded HTML. The politeness
// delay runs before the request; the cache, when configured, is
// consulted first and updated on success.
func (f *Fetcher) Get(ctx context.Context, url string) (string, error) {
	if f.opts.Cache != nil {
		body, ok, err := f.opts.Cache.Get(ctx, url)
		if err != nil {
			zap.L().Warn("fetch: cache read failed", zap.String("url", url), zap.Error(err))
		} else if ok {
			zap.L().Debug("fetch: cache hit", zap.String("url", url))
			return body, nil
		}
	}

	if err := f.polite.Delay(ctx); err != nil {
		return "", eris.Wrap(err, "fetch: politeness delay")
	}

	res, err := f.client.R().
		SetContext(ctx).
		SetHeaders(f.polite.Headers()).
		Get(url)
	if err != nil {
		return "", eris.Wrapf(err, "fetch: get %s", url)
	}

	body := res.Body()

	if blocked, blockType := DetectBlock(res.StatusCode(), res.Header(), body); blocked {
		return "", eris.Errorf("fetch: blocked (%s) at %s", blockType, url)
	}
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return "", eris.Errorf("fetch: status %d from %s", res.StatusCode(), url)
	}
	if len(body) < f.opts.MinBodyBytes {
		return "", eris.Errorf("fetch: body too small (%d bytes) from %s", len(body), url)
	}

	html, err := decodeCharset(body, res.Header().Get("Content-Type"))
	if err != nil {
		return "", eris.Wrapf(err, "fetch: decode %s", url)
	}

	if f.opts.Cache != nil {
		if err := f.opts.Cache.Put(ctx, url, html); err != nil {
			zap.L().Warn("fetch: cache write failed", zap.String("url", url), zap.Error(err))
		}
	}

	return html, nil
}

// decodeCharset converts the body to UTF-8 based on the Content-Type
// charset parameter. Absent or UTF-8 charsets pass through untouched.
func decodeCharset(body []byte, contentType string) (string, error) {
	if contentType == "" {
		return string(body), nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return string(body), nil
	}
	charset := strings.ToLower(params["charset"])
	if charset == "" || charset == "utf-8" || charset == "utf8" {
		return string(body), nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", eris.Wrapf(err, "unsupported charset %q", charset)
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", eris.Wrapf(err, "decode charset %q", charset)
	}
	return string(decoded), nil
}
