package events

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/domain/registrations"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage/memory"
)

var creator = Creator{ID: "user-a", Email: "a@x.com"}

func newService() (*Service, *memory.Store) {
	store := memory.New()
	return NewService(store, zerolog.Nop()), store
}

func TestCreateAssignsDefaults(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	ev, err := svc.Create(ctx, creator, CreateInput{})

	require.NoError(t, err)
	require.NotEmpty(t, ev.ID)
	require.Equal(t, "Untitled", ev.Name)
	require.Equal(t, "Academic", ev.Category)
	require.Equal(t, "a@x.com", ev.Manager)
	require.Equal(t, "user-a", ev.CreatedBy)
	require.Equal(t, 0, ev.Attendees)
}

func TestCreateKeepsSuppliedFields(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	ev, err := svc.Create(ctx, creator, CreateInput{
		Name:        "Gala",
		Date:        "2025-12-01",
		Time:        "18:00",
		Category:    "Social",
		Manager:     "Events Board",
		Description: "Winter gala",
	})

	require.NoError(t, err)
	require.Equal(t, "Gala", ev.Name)
	require.Equal(t, "2025-12-01", ev.Date)
	require.Equal(t, "18:00", ev.Time)
	require.Equal(t, "Social", ev.Category)
	require.Equal(t, "Events Board", ev.Manager)
}

func TestListAllEnrichesWithLiveCounts(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	ev, err := svc.Create(ctx, creator, CreateInput{Name: "Gala"})
	require.NoError(t, err)

	err = store.Update(ctx, func(ds *storage.Dataset) error {
		registrations.Insert(ds, ev.ID, "user-a")
		registrations.Insert(ds, ev.ID, "user-b")
		return nil
	})
	require.NoError(t, err)

	items, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Attendees)
}

func TestUpdateMergesPartialFields(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	ev, err := svc.Create(ctx, creator, CreateInput{Name: "Gala", Date: "2025-12-01", Time: "18:00"})
	require.NoError(t, err)

	name := "Winter Gala"
	updated, err := svc.Update(ctx, creator.ID, ev.ID, UpdateInput{Name: &name})

	require.NoError(t, err)
	require.Equal(t, "Winter Gala", updated.Name)
	require.Equal(t, "2025-12-01", updated.Date)
	require.Equal(t, "18:00", updated.Time)
	require.Equal(t, ev.ID, updated.ID)
	require.Equal(t, creator.ID, updated.CreatedBy)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Update(context.Background(), creator.ID, "missing", UpdateInput{})

	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateForbiddenForNonCreator(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	ev, err := svc.Create(ctx, creator, CreateInput{Name: "Gala"})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = svc.Update(ctx, "user-b", ev.ID, UpdateInput{Name: &name})
	require.ErrorIs(t, err, ErrForbidden)

	// Event unchanged
	got, err := svc.Get(ctx, ev.ID)
	require.NoError(t, err)
	require.Equal(t, "Gala", got.Name)
}

func TestDeleteForbiddenForNonCreator(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	ev, err := svc.Create(ctx, creator, CreateInput{Name: "Gala"})
	require.NoError(t, err)

	err = svc.Delete(ctx, "user-b", ev.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteCascadesRegistrations(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	ev, err := svc.Create(ctx, creator, CreateInput{Name: "Gala"})
	require.NoError(t, err)

	err = store.Update(ctx, func(ds *storage.Dataset) error {
		registrations.Insert(ds, ev.ID, "user-a")
		registrations.Insert(ds, ev.ID, "user-b")
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, creator.ID, ev.ID))

	items, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, items)

	err = store.View(ctx, func(ds *storage.Dataset) error {
		require.Equal(t, 0, registrations.CountFor(ds, ev.ID))
		require.Empty(t, ds.Registrations)
		return nil
	})
	require.NoError(t, err)
}

func TestDeleteNotFound(t *testing.T) {
	svc, _ := newService()

	err := svc.Delete(context.Background(), creator.ID, "missing")

	require.ErrorIs(t, err, ErrNotFound)
}

func TestSeedEventsWithoutCreatorAreUnmodifiable(t *testing.T) {
	store := memory.New()
	svc := NewService(store, zerolog.Nop())
	ctx := context.Background()

	err := store.Update(ctx, func(ds *storage.Dataset) error {
		ds.Events = append(ds.Events, storage.Event{ID: "seed-1", Name: "Tech Talk"})
		return nil
	})
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.Update(ctx, "user-a", "seed-1", UpdateInput{Name: &name})
	require.ErrorIs(t, err, ErrForbidden)
}
