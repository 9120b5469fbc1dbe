// Package jsonfile implements the dataset store on top of a single JSON
// file, the default driver. Writes are atomic (temp file + rename) so a
// reader never observes a torn document; Update cycles are serialized with
// an in-process mutex. Two server processes sharing one file still race,
// which is the documented single-writer limitation of this driver.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage"
)

type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the current dataset. A missing or unparseable file yields an
// empty dataset, never an error: first run must bootstrap silently.
func (s *Store) Load(ctx context.Context) (*storage.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.NewDataset(), nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	ds := &storage.Dataset{}
	if err := json.Unmarshal(raw, ds); err != nil {
		return storage.NewDataset(), nil
	}
	ds.Normalize()
	return ds, nil
}

// Save replaces the whole document atomically: marshal, write to a temp
// file in the same directory, fsync, rename over the target.
func (s *Store) Save(ctx context.Context, ds *storage.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// Update runs a load-mutate-save cycle under the store mutex.
func (s *Store) Update(ctx context.Context, fn func(*storage.Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(ds); err != nil {
		return err
	}
	return s.Save(ctx, ds)
}

// View hands fn a read-only snapshot. Rename-based writes keep the file
// consistent, so reads do not need the mutex.
func (s *Store) View(ctx context.Context, fn func(*storage.Dataset) error) error {
	ds, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return fn(ds)
}

func (s *Store) Close() error { return nil }
