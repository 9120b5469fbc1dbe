package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/config"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with demo events and the demo user",
	Long: `Populate an empty store with the demo events and the demo account
(demo@example.com / password). A no-op when events already exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}

		logger := config.NewLogger(cfg.Logging)

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := storage.EnsureSeed(ctx, store, logger); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		logger.Info().Msg("seed complete")
		return nil
	},
}
