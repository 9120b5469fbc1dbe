// Package events is the event catalog: CRUD over event records with
// ownership enforcement and live attendee-count enrichment.
package events

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/domain/registrations"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage"
)

// DefaultCategory is assigned when a creator supplies none.
const DefaultCategory = "Academic"

// Event is the public view of an event. Attendees is derived from the
// registration relation at read time and is never trusted from storage.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Category    string `json:"category"`
	Attendees   int    `json:"attendees"`
	Manager     string `json:"manager"`
	CreatedBy   string `json:"createdBy"`
	Description string `json:"description"`
}

// Creator identifies the authenticated user creating an event. The email
// doubles as the default manager display name.
type Creator struct {
	ID    string
	Email string
}

// CreateInput carries new-event fields. Every field is optional; Create
// fills in defaults for whatever is missing.
type CreateInput struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Category    string `json:"category"`
	Manager     string `json:"manager"`
	Description string `json:"description"`
}

// UpdateInput carries a partial update. Nil fields are preserved; the id and
// creator are immutable regardless of what the caller sends.
type UpdateInput struct {
	Name        *string `json:"name"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Category    *string `json:"category"`
	Manager     *string `json:"manager"`
	Description *string `json:"description"`
}

type Service struct {
	store  storage.Store
	logger zerolog.Logger
}

func NewService(store storage.Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

// ListAll returns every event enriched with its live attendance count. No
// filtering, no pagination; the catalog is a full scan at this scale.
func (s *Service) ListAll(ctx context.Context) ([]Event, error) {
	out := make([]Event, 0)
	err := s.store.View(ctx, func(ds *storage.Dataset) error {
		for _, rec := range ds.Events {
			out = append(out, view(ds, rec))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single event with its live count.
func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	var ev Event
	err := s.store.View(ctx, func(ds *storage.Dataset) error {
		idx := ds.EventIndex(id)
		if idx < 0 {
			return ErrNotFound
		}
		ev = view(ds, ds.Events[idx])
		return nil
	})
	if err != nil {
		return Event{}, err
	}
	return ev, nil
}

// Create persists a new event owned by the creator. Missing optional fields
// fall back to defaults: name "Untitled", category "Academic", manager the
// creator's email.
func (s *Service) Create(ctx context.Context, creator Creator, input CreateInput) (Event, error) {
	rec := storage.Event{
		ID:          newEventID(),
		Name:        input.Name,
		Date:        input.Date,
		Time:        input.Time,
		Category:    input.Category,
		Manager:     input.Manager,
		CreatedBy:   creator.ID,
		Description: input.Description,
	}
	if rec.Name == "" {
		rec.Name = "Untitled"
	}
	if rec.Category == "" {
		rec.Category = DefaultCategory
	}
	if rec.Manager == "" {
		rec.Manager = creator.Email
	}

	var ev Event
	err := s.store.Update(ctx, func(ds *storage.Dataset) error {
		ds.Events = append(ds.Events, rec)
		ev = view(ds, rec)
		return nil
	})
	if err != nil {
		return Event{}, err
	}

	s.logger.Info().Str("event_id", rec.ID).Str("user_id", creator.ID).Msg("event created")
	return ev, nil
}

// Update merges the given fields over the existing record. Only the creator
// may update; everyone else gets ErrForbidden.
func (s *Service) Update(ctx context.Context, userID, eventID string, input UpdateInput) (Event, error) {
	var ev Event
	err := s.store.Update(ctx, func(ds *storage.Dataset) error {
		idx := ds.EventIndex(eventID)
		if idx < 0 {
			return ErrNotFound
		}
		rec := ds.Events[idx]
		if rec.CreatedBy != userID {
			return ErrForbidden
		}

		applyIf(&rec.Name, input.Name)
		applyIf(&rec.Date, input.Date)
		applyIf(&rec.Time, input.Time)
		applyIf(&rec.Category, input.Category)
		applyIf(&rec.Manager, input.Manager)
		applyIf(&rec.Description, input.Description)

		ds.Events[idx] = rec
		ev = view(ds, rec)
		return nil
	})
	if err != nil {
		return Event{}, err
	}

	s.logger.Info().Str("event_id", eventID).Str("user_id", userID).Msg("event updated")
	return ev, nil
}

// Delete removes the event and purges its registrations in the same store
// cycle, so no orphaned facts can persist. Creator-only, like Update.
func (s *Service) Delete(ctx context.Context, userID, eventID string) error {
	purged := 0
	err := s.store.Update(ctx, func(ds *storage.Dataset) error {
		idx := ds.EventIndex(eventID)
		if idx < 0 {
			return ErrNotFound
		}
		if ds.Events[idx].CreatedBy != userID {
			return ErrForbidden
		}

		ds.Events = append(ds.Events[:idx], ds.Events[idx+1:]...)
		purged = registrations.Purge(ds, eventID)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("event_id", eventID).
		Str("user_id", userID).
		Int("registrations_purged", purged).
		Msg("event deleted")
	return nil
}

func view(ds *storage.Dataset, rec storage.Event) Event {
	return Event{
		ID:          rec.ID,
		Name:        rec.Name,
		Date:        rec.Date,
		Time:        rec.Time,
		Category:    rec.Category,
		Attendees:   registrations.CountFor(ds, rec.ID),
		Manager:     rec.Manager,
		CreatedBy:   rec.CreatedBy,
		Description: rec.Description,
	}
}

func applyIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func newEventID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		// ulid.New only fails on entropy exhaustion, which crypto/rand
		// does not exhibit; fall back to a timestamp-only id.
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return id.String()
}
