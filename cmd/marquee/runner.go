package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"marquee/internal/config"
	"marquee/internal/enrich"
	"marquee/internal/fallback"
	"marquee/internal/logging"
	"marquee/internal/notifications"
	"marquee/internal/runlock"
	"marquee/internal/services/jellyfin"
	"marquee/internal/tvmaze"
)

type runFlags struct {
	fresh     bool
	noLookup  bool
	noRefresh bool
	input     string
	output    string
}

// executeRun performs one full enrichment cycle: lock, enrich, notify, and
// refresh the Jellyfin guide.
func executeRun(runCtx context.Context, ctx *commandContext, flags runFlags, out io.Writer) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if flags.input != "" {
		expanded, err := config.ExpandPath(flags.input)
		if err != nil {
			return fmt.Errorf("resolve input path: %w", err)
		}
		cfg.Paths.Input = expanded
	}
	if flags.output != "" {
		expanded, err := config.ExpandPath(flags.output)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		cfg.Paths.Output = expanded
	}

	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	lock := runlock.New(cfg.LockPath())
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	store, err := ctx.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var lookup tvmaze.Lookup
	if cfg.TVMaze.Enabled && !flags.noLookup {
		client, err := tvmaze.New(cfg.TVMaze.BaseURL,
			tvmaze.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.TVMaze.TimeoutSeconds) * time.Second}),
			tvmaze.WithInterval(time.Duration(cfg.TVMaze.IntervalMillis)*time.Millisecond),
			tvmaze.WithMaxRetries(cfg.TVMaze.MaxRetries))
		if err != nil {
			return err
		}
		lookup = client
	}

	resolver := fallback.NewResolver(cfg.Paths.AssetsDir, cfg.Fallbacks.UnknownPoster, cfg.Fallbacks.Categories)
	notifier := notifications.NewService(cfg)

	enricher, err := enrich.New(cfg, store, lookup, resolver, logger,
		enrich.WithOnStart(func(total int) {
			_ = notifier.NotifyRunStarted(runCtx, total)
		}))
	if err != nil {
		return err
	}

	result, err := enricher.Run(runCtx, enrich.Options{Fresh: flags.fresh, DisableLookup: flags.noLookup})
	if err != nil {
		_ = notifier.NotifyRunFailed(context.WithoutCancel(runCtx), err)
		return err
	}

	_ = notifier.NotifyRunCompleted(runCtx, result.FromLookup, result.FromCache, result.Generic, result.Duration)
	printRunSummary(out, result)

	// A failed refresh never fails the run; the enriched guide is already
	// on disk.
	if !flags.noRefresh {
		service := jellyfin.NewConfiguredService(cfg)
		if service.Enabled() {
			if err := service.RefreshGuide(runCtx); err != nil {
				logger.Warn("jellyfin guide refresh failed", logging.Error(err))
				_ = notifier.NotifyRefreshFailed(context.WithoutCancel(runCtx), err)
				fmt.Fprintf(out, "Jellyfin guide refresh failed: %v\n", err)
			} else {
				fmt.Fprintln(out, "Jellyfin guide refresh triggered")
			}
		}
	}

	return nil
}

func printRunSummary(out io.Writer, result *enrich.Result) {
	fmt.Fprintf(out, "Enriched %s\n", result.Output)
	fmt.Fprintln(out, renderMetrics(
		[][]string{
			{"Programmes", fmt.Sprintf("%d", result.Total)},
			{"Processed", fmt.Sprintf("%d", result.Processed)},
			{"Skipped (had art)", fmt.Sprintf("%d", result.Skipped)},
			{"Posters from TVMaze", fmt.Sprintf("%d", result.FromLookup)},
			{"Posters from cache", fmt.Sprintf("%d", result.FromCache)},
			{"Generic category art", fmt.Sprintf("%d", result.Generic)},
			{"Unknown placeholder", fmt.Sprintf("%d", result.Unknown)},
			{"Duration", result.Duration.Round(time.Millisecond).String()},
		},
	))
}
