package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mrunal31-Stark/Web-Scraper/internal/config"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/course"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/fetch"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/pipeline"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/politeness"
	"github.com/Mrunal31-Stark/Web-Scraper/internal/resolve"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run the university and course harvest",
	Long: `Run the full harvest: resolve each target university against the
primary profile source and the encyclopedia source, extract its program
pages, then write the Universities and Courses sheets to one workbook.

Universities outside the target country are excluded together with all
their courses. A failed target is skipped; the run continues.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if output, _ := cmd.Flags().GetString("output"); output != "" {
			cfg.Export.Output = output
		}
		if targetsPath, _ := cmd.Flags().GetString("targets"); targetsPath != "" {
			cfg.Scrape.TargetsFile = targetsPath
		}

		targets, err := config.LoadTargets(cfg.Scrape.TargetsFile)
		if err != nil {
			return err
		}
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && limit < len(targets) {
			targets = targets[:limit]
		}

		polite := politeness.New(politeness.Config{
			DelayMin:       time.Duration(cfg.Politeness.DelayMinMs) * time.Millisecond,
			DelayMax:       time.Duration(cfg.Politeness.DelayMaxMs) * time.Millisecond,
			RequestsPerSec: cfg.Politeness.RequestsPerSec,
			UserAgents:     cfg.Politeness.UserAgents,
		})

		var cache *fetch.Cache
		if cfg.Cache.Enabled {
			cache, err = fetch.OpenCache(cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour)
			if err != nil {
				return eris.Wrap(err, "scrape: open page cache")
			}
			defer cache.Close() //nolint:errcheck
		}

		fetcher, err := fetch.New(polite, fetch.Options{
			Timeout:      time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MinBodyBytes: cfg.Fetch.MinBodyBytes,
			Cache:        cache,
		})
		if err != nil {
			return eris.Wrap(err, "scrape: build fetcher")
		}

		getter := pipeline.RetryingGetter{Getter: fetcher, Retries: cfg.Scrape.FetchRetries}
		resolver := resolve.New(getter, resolve.Options{
			BaseURL:       cfg.Scrape.BaseURL,
			TargetCountry: cfg.Scrape.TargetCountry,
		})
		extractor := course.New(getter, course.Options{
			MinCourses: cfg.Scrape.MinCourses,
			MaxLinks:   cfg.Scrape.MaxCourseLinks,
		})

		p := pipeline.New(resolver, extractor, pipeline.Options{
			BaseURL:    cfg.Scrape.BaseURL,
			OutputPath: cfg.Export.Output,
		})

		zap.L().Info("starting harvest",
			zap.Int("targets", len(targets)),
			zap.String("target_country", cfg.Scrape.TargetCountry),
			zap.String("output", cfg.Export.Output),
		)

		summary, err := p.Run(ctx, targets)
		if err != nil {
			return eris.Wrap(err, "scrape")
		}

		zap.L().Info("harvest complete",
			zap.Int("universities", summary.UniversitiesExported),
			zap.Int("courses", summary.CoursesExported),
			zap.String("output", summary.OutputPath),
		)
		return nil
	},
}

func init() {
	scrapeCmd.Flags().String("output", "", "workbook output path (overrides config)")
	scrapeCmd.Flags().String("targets", "", "YAML target list path (overrides config)")
	scrapeCmd.Flags().Int("limit", 0, "process at most N targets")
	rootCmd.AddCommand(scrapeCmd)
}
