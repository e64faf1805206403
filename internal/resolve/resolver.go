// Package resolve turns a target university into a populated record by
// merging the primary profile page with a secondary encyclopedia page.
package resolve

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/normalize"
)

// ErrSkipped marks a university excluded from the dataset: its primary
// profile page could not be fetched, its name could not be resolved
// from either source, or it resolved outside the target country.
// Callers log and continue; nothing from the university is kept.
var ErrSkipped = eris.New("resolve: university skipped")

// Getter fetches a URL's HTML. Satisfied by fetch.Fetcher and by the
// pipeline's retrying wrapper.
type Getter interface {
	Get(ctx context.Context, url string) (string, error)
}

// Options configures the Resolver.
type Options struct {
	BaseURL       string // primary source root, e.g. https://www.topuniversities.com
	TargetCountry string // only universities in this country are retained
}

// Resolver resolves targets against the two sources. The primary
// source's fields always take precedence; the secondary page is
// fallback-only, except for the website which only it provides.
type Resolver struct {
	getter Getter
	opts   Options
}

// New creates a Resolver.
func New(getter Getter, opts Options) *Resolver {
	if opts.TargetCountry == "" {
		opts.TargetCountry = "India"
	}
	return &Resolver{getter: getter, opts: opts}
}

// ProfileURL builds the primary-source profile URL for a slug.
func (r *Resolver) ProfileURL(slug string) string {
	return r.opts.BaseURL + "/universities/" + slug
}

// Resolve fetches and merges both sources for one target. It returns
// the resolved record along with the primary page's HTML so course
// link discovery can reuse it without refetching. A failed primary
// fetch or a non-target country returns an error matching ErrSkipped.
func (r *Resolver) Resolve(ctx context.Context, target model.Target) (model.University, string, error) {
	profileURL := r.ProfileURL(target.Slug)
	profileHTML, err := r.getter.Get(ctx, profileURL)
	if err != nil {
		zap.L().Warn("resolve: primary page fetch failed",
			zap.String("slug", target.Slug),
			zap.Error(err),
		)
		return model.University{}, "", eris.Wrapf(ErrSkipped, "primary page unavailable for %s", target.Slug)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(profileHTML))
	if err != nil {
		return model.University{}, "", eris.Wrapf(ErrSkipped, "primary page unparsable for %s", target.Slug)
	}
	primary := extractPrimaryMeta(doc)

	secondary := r.resolveSecondary(ctx, target)

	uni := model.University{
		Name:    prefer(primary.Name, secondary.Name),
		City:    normalize.TitleCase(prefer(primary.City, secondary.City)),
		Country: normalize.TitleCase(prefer(primary.Country, secondary.Country)),
		Website: secondary.Website,
	}

	// The name is the join key for courses; without one the record
	// cannot participate in the dataset.
	if uni.Name == model.Sentinel {
		zap.L().Warn("resolve: university name unresolved",
			zap.String("slug", target.Slug),
		)
		return model.University{}, "", eris.Wrapf(ErrSkipped, "name unresolved for %s", target.Slug)
	}

	if !strings.EqualFold(uni.Country, r.opts.TargetCountry) {
		zap.L().Info("resolve: skipping university outside target country",
			zap.String("slug", target.Slug),
			zap.String("country", uni.Country),
		)
		return model.University{}, "", eris.Wrapf(ErrSkipped, "country resolved as %s for %s", uni.Country, target.Slug)
	}

	return uni, profileHTML, nil
}

// resolveSecondary fetches the encyclopedia page. Failure here is
// non-fatal; the caller proceeds with whatever the primary page gave.
func (r *Resolver) resolveSecondary(ctx context.Context, target model.Target) secondaryMeta {
	empty := secondaryMeta{
		Name:    model.Sentinel,
		City:    model.Sentinel,
		Country: model.Sentinel,
		Website: model.Sentinel,
	}
	if target.WikiURL == "" {
		return empty
	}

	html, err := r.getter.Get(ctx, target.WikiURL)
	if err != nil {
		zap.L().Warn("resolve: secondary page fetch failed, degrading",
			zap.String("slug", target.Slug),
			zap.String("url", target.WikiURL),
			zap.Error(err),
		)
		return empty
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return empty
	}
	return extractSecondaryMeta(doc, hostOf(target.WikiURL))
}

// prefer returns the primary value unless it is the sentinel.
func prefer(primary, fallback string) string {
	if primary != model.Sentinel && primary != "" {
		return primary
	}
	if fallback == "" {
		return model.Sentinel
	}
	return fallback
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "en.wikipedia.org"
	}
	return u.Host
}
