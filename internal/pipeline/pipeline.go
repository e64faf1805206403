// Package pipeline runs the harvest end to end: resolve each target,
// extract its courses, then finalize and export once over the full set.
package pipeline

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/course"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/export"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/model"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/resolve"
)

// Options configures the pipeline.
type Options struct {
	BaseURL    string
	OutputPath string
}

// Pipeline processes targets strictly one at a time, with at most one
// outstanding request. A failed university never aborts the run; only
// an integrity violation at finalize does.
type Pipeline struct {
	resolver  *resolve.Resolver
	extractor *course.Extractor
	opts      Options
}

// New creates a Pipeline.
func New(resolver *resolve.Resolver, extractor *course.Extractor, opts Options) *Pipeline {
	return &Pipeline{resolver: resolver, extractor: extractor, opts: opts}
}

// Summary reports what a completed run produced.
type Summary struct {
	TargetsProcessed     int
	UniversitiesExported int
	CoursesExported      int
	OutputPath           string
}

// Run processes every target in order, then finalizes and writes the
// workbook. It returns an error only for fatal conditions such as
// context cancellation or an integrity violation, and in those cases
// no workbook is produced.
func (p *Pipeline) Run(ctx context.Context, targets []model.Target) (Summary, error) {
	var (
		universities []model.University
		courses      []model.Course
	)

	for i, target := range targets {
		if err := ctx.Err(); err != nil {
			return Summary{}, eris.Wrap(err, "pipeline: cancelled")
		}

		zap.L().Info("pipeline: scraping university",
			zap.Int("index", i+1),
			zap.Int("total", len(targets)),
			zap.String("slug", target.Slug),
		)

		uni, profileHTML, err := p.resolver.Resolve(ctx, target)
		if err != nil {
			if errors.Is(err, resolve.ErrSkipped) {
				zap.L().Info("pipeline: university skipped",
					zap.String("slug", target.Slug),
					zap.Error(err),
				)
				continue
			}
			return Summary{}, eris.Wrapf(err, "pipeline: resolve %s", target.Slug)
		}
		universities = append(universities, uni)
		zap.L().Info("pipeline: university captured",
			zap.String("name", uni.Name),
			zap.String("country", uni.Country),
		)

		links := p.extractor.Discover(profileHTML, p.opts.BaseURL, target.Slug)
		zap.L().Info("pipeline: program links discovered",
			zap.String("slug", target.Slug),
			zap.Int("count", len(links)),
		)

		courses = append(courses, p.extractor.Extract(ctx, uni.Name, links)...)
	}

	ds, err := export.Finalize(universities, courses)
	if err != nil {
		return Summary{}, eris.Wrap(err, "pipeline: finalize")
	}

	// An empty table on either side means the run produced nothing
	// worth exporting; no file is created.
	if len(ds.Universities) == 0 || len(ds.Courses) == 0 {
		zap.L().Warn("pipeline: incomplete dataset, workbook not written",
			zap.Int("universities", len(ds.Universities)),
			zap.Int("courses", len(ds.Courses)),
		)
		return Summary{TargetsProcessed: len(targets)}, nil
	}

	if err := export.WriteWorkbook(ds, p.opts.OutputPath); err != nil {
		return Summary{}, eris.Wrap(err, "pipeline: write workbook")
	}

	summary := Summary{
		TargetsProcessed:     len(targets),
		UniversitiesExported: len(ds.Universities),
		CoursesExported:      len(ds.Courses),
		OutputPath:           p.opts.OutputPath,
	}
	zap.L().Info("pipeline: run complete",
		zap.Int("universities", summary.UniversitiesExported),
		zap.Int("courses", summary.CoursesExported),
		zap.String("output", summary.OutputPath),
	)
	return summary, nil
}

// RetryingGetter wraps a Getter with a bounded retry loop. The fetcher
// itself is single-attempt; retry policy lives at this level. Each
// attempt still pays the politeness delay, so retries cannot hammer a
// source.
type RetryingGetter struct {
	Getter  resolve.Getter
	Retries int
}

// Get tries the underlying getter up to Retries times.
func (r RetryingGetter) Get(ctx context.Context, url string) (string, error) {
	attempts := r.Retries
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", eris.Wrap(err, "retry: cancelled")
		}
		html, err := r.Getter.Get(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err
		zap.L().Warn("retry: fetch failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)
	}
	return "", eris.Wrap(lastErr, "retry: attempts exhausted")
}
