// Package registrations maintains the user-to-event attendance relation.
// Attendance counts are never stored; they are recomputed from the relation
// on every read, so a stored counter can never drift from the facts.
package registrations

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage"
)

// CountFor returns the number of registration facts for the event.
func CountFor(ds *storage.Dataset, eventID string) int {
	count := 0
	for _, r := range ds.Registrations {
		if r.EventID == eventID {
			count++
		}
	}
	return count
}

// Has reports whether the (event, user) pair is registered.
func Has(ds *storage.Dataset, eventID, userID string) bool {
	for _, r := range ds.Registrations {
		if r.EventID == eventID && r.UserID == userID {
			return true
		}
	}
	return false
}

// Insert records the pair if absent. Registering twice is a no-op, never a
// duplicate fact. Reports whether a fact was added.
func Insert(ds *storage.Dataset, eventID, userID string) bool {
	if Has(ds, eventID, userID) {
		return false
	}
	ds.Registrations = append(ds.Registrations, storage.Registration{EventID: eventID, UserID: userID})
	return true
}

// Remove drops the pair if present. Reports whether a fact was removed.
func Remove(ds *storage.Dataset, eventID, userID string) bool {
	for i, r := range ds.Registrations {
		if r.EventID == eventID && r.UserID == userID {
			ds.Registrations = append(ds.Registrations[:i], ds.Registrations[i+1:]...)
			return true
		}
	}
	return false
}

// Purge removes every fact referencing the event. Used when an event is
// deleted so no orphaned registrations persist. Returns the number removed.
func Purge(ds *storage.Dataset, eventID string) int {
	kept := ds.Registrations[:0]
	removed := 0
	for _, r := range ds.Registrations {
		if r.EventID == eventID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	ds.Registrations = kept
	return removed
}

// EventIDsFor returns the ids of every event the user has registered for.
func EventIDsFor(ds *storage.Dataset, userID string) []string {
	ids := make([]string, 0)
	for _, r := range ds.Registrations {
		if r.UserID == userID {
			ids = append(ids, r.EventID)
		}
	}
	return ids
}

// Ledger is the store-backed registration service. Each mutation runs as a
// single load-mutate-save cycle and returns the count derived inside that
// same cycle, so callers always see a number consistent with the write.
type Ledger struct {
	store  storage.Store
	logger zerolog.Logger
}

func NewLedger(store storage.Store, logger zerolog.Logger) *Ledger {
	return &Ledger{
		store:  store,
		logger: logger.With().Str("component", "registrations").Logger(),
	}
}

// Register records the RSVP if it does not already exist and returns the
// up-to-date attendance count for the event.
func (l *Ledger) Register(ctx context.Context, eventID, userID string) (int, error) {
	count := 0
	err := l.store.Update(ctx, func(ds *storage.Dataset) error {
		if Insert(ds, eventID, userID) {
			l.logger.Debug().Str("event_id", eventID).Str("user_id", userID).Msg("registered")
		}
		count = CountFor(ds, eventID)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Unregister removes the RSVP if present and returns the up-to-date count.
// Unregistering a user who never registered is a no-op.
func (l *Ledger) Unregister(ctx context.Context, eventID, userID string) (int, error) {
	count := 0
	err := l.store.Update(ctx, func(ds *storage.Dataset) error {
		if Remove(ds, eventID, userID) {
			l.logger.Debug().Str("event_id", eventID).Str("user_id", userID).Msg("unregistered")
		}
		count = CountFor(ds, eventID)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Count returns the live attendance count for the event.
func (l *Ledger) Count(ctx context.Context, eventID string) (int, error) {
	count := 0
	err := l.store.View(ctx, func(ds *storage.Dataset) error {
		count = CountFor(ds, eventID)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// RegisteredEventIDs answers "which events has this user registered for".
func (l *Ledger) RegisteredEventIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := l.store.View(ctx, func(ds *storage.Dataset) error {
		ids = EventIDsFor(ds, userID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
