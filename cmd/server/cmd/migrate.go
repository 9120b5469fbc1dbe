package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage/postgres"
)

var (
	migrationsPath string
	migrateSteps   int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down]",
	Short: "Run database migrations (postgres driver only)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		if cfg.Store.Driver != "postgres" {
			return fmt.Errorf("migrations only apply to the postgres driver (STORE_DRIVER=%s)", cfg.Store.Driver)
		}

		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		switch direction {
		case "up":
			return postgres.MigrateUp(cfg.Store.DatabaseURL, migrationsPath)
		case "down":
			return postgres.MigrateDown(cfg.Store.DatabaseURL, migrationsPath, migrateSteps)
		default:
			return fmt.Errorf("unknown direction %q (want up or down)", direction)
		}
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsPath, "migrations", "", "path to migration files (default: "+postgres.DefaultMigrationsPath+")")
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 1, "number of down migrations to apply")
}
