package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/config"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage/jsonfile"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage/memory"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage/postgres"
)

// openStore builds the dataset store for the configured driver. The caller
// owns the returned store and must Close it.
func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.Store.Driver {
	case "file":
		return jsonfile.New(cfg.Store.Path), nil
	case "memory":
		return memory.New(), nil
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pool, err := pgxpool.New(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		return postgres.NewStore(pool)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
