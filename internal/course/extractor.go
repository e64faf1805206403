// Package course discovers program links on a university profile page
// and extracts the per-course field set from each program page.
package course

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/normalize"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/resolve"
)

// Options configures the Extractor.
type Options struct {
	MinCourses int // soft target; extraction stops once reached
	MaxLinks   int // hard cap on program links visited per university
}

// Extractor visits program pages sequentially and yields raw course
// records. A failed link is skipped, never aborting the university.
type Extractor struct {
	getter resolve.Getter
	opts   Options
}

// New creates an Extractor.
func New(getter resolve.Getter, opts Options) *Extractor {
	if opts.MinCourses <= 0 {
		opts.MinCourses = 5
	}
	if opts.MaxLinks <= 0 {
		opts.MaxLinks = 12
	}
	return &Extractor{getter: getter, opts: opts}
}

// Discover finds program links on an already-fetched profile page.
func (e *Extractor) Discover(profileHTML, baseURL, slug string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(profileHTML))
	if err != nil {
		return nil
	}
	return DiscoverLinks(doc, baseURL, slug, e.opts.MaxLinks)
}

// Extract walks the discovered links in order until the course target
// is met or the links run out. Each link is visited at most once. A
// below-target yield is logged and the university keeps whatever was
// found.
func (e *Extractor) Extract(ctx context.Context, universityName string, links []string) []model.Course {
	var courses []model.Course
	for _, link := range links {
		if len(courses) >= e.opts.MinCourses {
			break
		}
		if ctx.Err() != nil {
			break
		}

		c, err := e.extractOne(ctx, universityName, link)
		if err != nil {
			zap.L().Warn("course: page skipped",
				zap.String("url", link),
				zap.Error(err),
			)
			continue
		}
		courses = append(courses, c)
		zap.L().Info("course: added",
			zap.String("university", universityName),
			zap.String("course", c.Name),
			zap.Int("collected", len(courses)),
		)
	}

	if len(courses) < e.opts.MinCourses {
		zap.L().Warn("course: yield below target",
			zap.String("university", universityName),
			zap.Int("collected", len(courses)),
			zap.Int("target", e.opts.MinCourses),
		)
	}
	return courses
}

// extractOne fetches and parses a single program page. Missing fields
// resolve to the sentinel; only fetch/parse failures return an error.
func (e *Extractor) extractOne(ctx context.Context, universityName, courseURL string) (model.Course, error) {
	html, err := e.getter.Get(ctx, courseURL)
	if err != nil {
		return model.Course{}, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return model.Course{}, err
	}

	name := model.Sentinel
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		name = normalize.Clean(h1.Text())
	}

	badges := extractBadges(doc)
	highlights := extractHighlights(doc)

	discipline := highlights["main subject"]
	if discipline == "" {
		discipline = badges["main subject area"]
	}
	if discipline == "" {
		discipline = guessDiscipline(name, courseURL)
	}

	return model.Course{
		UniversityName: universityName,
		Name:           name,
		Level:          normalizeLevel(highlights["study level"], courseURL),
		Discipline:     normalize.TitleCase(discipline),
		Duration:       firstValue(badges, "programme duration", "duration"),
		Fees:           firstValue(badges, "tuition fee/year", "tuition fee"),
		Eligibility:    extractEligibility(doc),
	}, nil
}

// firstValue returns the first present key's cleaned value.
func firstValue(m map[string]string, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != "" {
			return normalize.Clean(v)
		}
	}
	return model.Sentinel
}
