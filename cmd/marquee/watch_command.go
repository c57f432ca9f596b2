package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"marquee/internal/logging"
	"marquee/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run enrichment whenever the input guide changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w, err := watcher.New(cfg.Paths.Input,
				time.Duration(cfg.Watch.DebounceSeconds)*time.Second,
				time.Duration(cfg.Watch.SettleSeconds)*time.Second,
				logger)
			if err != nil {
				return err
			}
			defer func() { _ = w.Stop() }()

			if err := w.Start(runCtx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", cfg.Paths.Input)

			for {
				select {
				case <-runCtx.Done():
					return runCtx.Err()
				case _, ok := <-w.Triggers():
					if !ok {
						return nil
					}
					if err := executeRun(runCtx, ctx, flags, out); err != nil {
						if runCtx.Err() != nil {
							return runCtx.Err()
						}
						logger.Error("enrichment run failed", logging.Error(err))
						fmt.Fprintf(cmd.ErrOrStderr(), "run failed: %v\n", err)
					}
				}
			}
		},
	}

	cmd.Flags().BoolVar(&flags.noLookup, "no-lookup", false, "Skip TVMaze lookups; use cache and generic art only")
	cmd.Flags().BoolVar(&flags.noRefresh, "no-refresh", false, "Do not trigger Jellyfin guide refreshes")

	return cmd
}
