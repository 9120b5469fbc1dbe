// Package postgres implements the dataset store on a single JSONB row. The
// document contract stays the same as the file driver, but Update runs
// inside a transaction holding a row lock. Concurrent writers, even in
// separate processes, are serialized instead of silently overwriting each
// other.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neeltheduck/Stevens-Skyline-Socials/internal/storage"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres store: pool is nil")
	}
	return &Store{pool: pool}, nil
}

const (
	selectQuery          = `SELECT document FROM dataset WHERE id = 1`
	selectForUpdateQuery = `SELECT document FROM dataset WHERE id = 1 FOR UPDATE`
	upsertQuery          = `
INSERT INTO dataset (id, document, updated_at)
VALUES (1, $1, now())
ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()`
)

func (s *Store) Load(ctx context.Context) (*storage.Dataset, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, selectQuery).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.NewDataset(), nil
		}
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return decode(raw), nil
}

func (s *Store) Save(ctx context.Context, ds *storage.Dataset) error {
	payload, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if _, err := s.pool.Exec(ctx, upsertQuery, payload); err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	return nil
}

// Update loads the document under a row lock, applies fn, and writes it back
// in the same transaction.
func (s *Store) Update(ctx context.Context, fn func(*storage.Dataset) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var raw []byte
	ds := storage.NewDataset()
	err = tx.QueryRow(ctx, selectForUpdateQuery).Scan(&raw)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("load dataset: %w", err)
	}
	if err == nil {
		ds = decode(raw)
	}

	if err := fn(ds); err != nil {
		return err
	}

	payload, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if _, err := tx.Exec(ctx, upsertQuery, payload); err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) View(ctx context.Context, fn func(*storage.Dataset) error) error {
	ds, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return fn(ds)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// decode tolerates corrupt documents the same way the file driver does:
// unparseable data becomes an empty dataset.
func decode(raw []byte) *storage.Dataset {
	ds := &storage.Dataset{}
	if err := json.Unmarshal(raw, ds); err != nil {
		return storage.NewDataset()
	}
	ds.Normalize()
	return ds
}
