package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"marquee/internal/services/jellyfin"
)

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Trigger a Jellyfin Live TV guide refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			service := jellyfin.NewConfiguredService(cfg)
			if !service.Enabled() {
				return errors.New("jellyfin integration is disabled; set jellyfin.url and jellyfin.api_key")
			}
			if err := service.RefreshGuide(cmd.Context()); err != nil {
				return fmt.Errorf("jellyfin guide refresh: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Jellyfin guide refresh triggered")
			return nil
		},
	}
}
