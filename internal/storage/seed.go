package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Demo account credentials seeded on first run. The password is public; the
// account exists so the frontend has something to log in with.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password"
)

func seedEvents() []Event {
	return []Event{
		{
			ID:       "01HZCAMPSEED000000000001TT",
			Name:     "Tech Talk: AI & ML",
			Date:     "2025-11-05",
			Time:     "18:00",
			Category: "Academic",
			Manager:  "Computer Science Society",
			Description: "Join us for an exciting evening exploring the latest developments in " +
				"artificial intelligence and machine learning. Industry professionals will share " +
				"insights on current trends and future opportunities in the field.",
		},
		{
			ID:       "01HZCAMPSEED000000000002BB",
			Name:     "Basketball Tournament",
			Date:     "2025-11-08",
			Time:     "15:00",
			Category: "Sports",
			Manager:  "Athletics Club",
			Description: "Annual inter-department basketball tournament. Form your teams and " +
				"compete for the championship trophy. All skill levels welcome!",
		},
	}
}

// EnsureSeed populates an empty store with the demo events and the demo
// user. It is a no-op when events already exist, so restarting the server
// never duplicates seed data. Seed events carry no creator, which makes them
// unmodifiable through the API.
func EnsureSeed(ctx context.Context, store Store, logger zerolog.Logger) error {
	return store.Update(ctx, func(ds *Dataset) error {
		if len(ds.Events) > 0 {
			return nil
		}
		ds.Events = append(ds.Events, seedEvents()...)

		if _, ok := ds.UserByEmail(DemoEmail); !ok {
			hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash demo password: %w", err)
			}
			ds.Users = append(ds.Users, User{
				ID:           "user-demo",
				Email:        DemoEmail,
				FirstName:    "Demo",
				LastName:     "User",
				PasswordHash: string(hash),
			})
		}

		logger.Info().Int("events", len(ds.Events)).Msg("seeded demo data")
		return nil
	})
}
