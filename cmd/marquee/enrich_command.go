package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich the guide once and trigger a Jellyfin refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return executeRun(runCtx, ctx, flags, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&flags.fresh, "fresh", false, "Read the raw input guide even when enriched output exists")
	cmd.Flags().BoolVar(&flags.noLookup, "no-lookup", false, "Skip TVMaze lookups; use cache and generic art only")
	cmd.Flags().BoolVar(&flags.noRefresh, "no-refresh", false, "Do not trigger a Jellyfin guide refresh")
	cmd.Flags().StringVar(&flags.input, "input", "", "Override the input guide path")
	cmd.Flags().StringVar(&flags.output, "output", "", "Override the output guide path")

	return cmd
}
