// Package memory implements the dataset store in process memory. It backs
// tests and ephemeral runs; nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage"
)

type Store struct {
	mu sync.Mutex
	ds *storage.Dataset
}

func New() *Store {
	return &Store{ds: storage.NewDataset()}
}

// NewWith seeds the store with an initial dataset, handy in tests.
func NewWith(ds *storage.Dataset) *Store {
	ds.Normalize()
	return &Store{ds: ds.Clone()}
}

func (s *Store) Load(ctx context.Context) (*storage.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds.Clone(), nil
}

func (s *Store) Save(ctx context.Context, ds *storage.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = ds.Clone()
	return nil
}

func (s *Store) Update(ctx context.Context, fn func(*storage.Dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.ds.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.ds = next
	return nil
}

func (s *Store) View(ctx context.Context, fn func(*storage.Dataset) error) error {
	ds, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return fn(ds)
}

func (s *Store) Close() error { return nil }
