package registrations

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage"
	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage/memory"
)

func newLedger() *Ledger {
	return NewLedger(memory.New(), zerolog.Nop())
}

func TestRegisterReturnsLiveCount(t *testing.T) {
	ledger := newLedger()
	ctx := context.Background()

	count, err := ledger.Register(ctx, "ev-1", "user-a")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	count, err = ledger.Register(ctx, "ev-1", "user-b")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestRegisterTwiceIsIdempotent(t *testing.T) {
	ledger := newLedger()
	ctx := context.Background()

	first, err := ledger.Register(ctx, "ev-1", "user-a")
	require.NoError(t, err)

	second, err := ledger.Register(ctx, "ev-1", "user-a")
	require.NoError(t, err)
	require.Equal(t, first, second)

	count, err := ledger.Count(ctx, "ev-1")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestUnregisterNeverRegisteredIsNoOp(t *testing.T) {
	ledger := newLedger()
	ctx := context.Background()

	_, err := ledger.Register(ctx, "ev-1", "user-a")
	require.NoError(t, err)

	count, err := ledger.Unregister(ctx, "ev-1", "user-never")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestUnregisterRemovesFact(t *testing.T) {
	ledger := newLedger()
	ctx := context.Background()

	_, err := ledger.Register(ctx, "ev-1", "user-a")
	require.NoError(t, err)

	count, err := ledger.Unregister(ctx, "ev-1", "user-a")
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestRegisteredEventIDs(t *testing.T) {
	ledger := newLedger()
	ctx := context.Background()

	_, err := ledger.Register(ctx, "ev-1", "user-a")
	require.NoError(t, err)
	_, err = ledger.Register(ctx, "ev-2", "user-a")
	require.NoError(t, err)
	_, err = ledger.Register(ctx, "ev-3", "user-b")
	require.NoError(t, err)

	ids, err := ledger.RegisteredEventIDs(ctx, "user-a")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"ev-1", "ev-2"}, ids)

	ids, err = ledger.RegisteredEventIDs(ctx, "user-c")
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestPurgeRemovesEveryFactForEvent(t *testing.T) {
	ds := storage.NewDataset()
	require.True(t, Insert(ds, "ev-1", "user-a"))
	require.True(t, Insert(ds, "ev-1", "user-b"))
	require.True(t, Insert(ds, "ev-2", "user-a"))

	removed := Purge(ds, "ev-1")

	require.Equal(t, 2, removed)
	require.Equal(t, 0, CountFor(ds, "ev-1"))
	require.Equal(t, 1, CountFor(ds, "ev-2"))
}

func TestInsertRejectsDuplicatePair(t *testing.T) {
	ds := storage.NewDataset()

	require.True(t, Insert(ds, "ev-1", "user-a"))
	require.False(t, Insert(ds, "ev-1", "user-a"))
	require.Len(t, ds.Registrations, 1)
}

func TestCountForDerivesFromFacts(t *testing.T) {
	ds := storage.NewDataset()
	// A stored attendee number is dead data; only facts count.
	ds.Events = append(ds.Events, storage.Event{ID: "ev-1", Attendees: 99})

	require.Equal(t, 0, CountFor(ds, "ev-1"))

	Insert(ds, "ev-1", "user-a")
	require.Equal(t, 1, CountFor(ds, "ev-1"))
}
