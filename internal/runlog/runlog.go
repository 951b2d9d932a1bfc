// AI Talks Campaign Analysis - YouTube Campaign Analytics Pipeline
// Copyright 2026 Keshav G. (keshavgb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/keshavgb/ai-talks-campaign-analysis

// Package runlog persists pipeline run history in an embedded BadgerDB
// store. Each run is stored under a time-ordered key so listing newest
// runs is a reverse prefix scan.
package runlog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/keshavgb/ai-talks-campaign-analysis/internal/models"
)

const runKeyPrefix = "run:"

// ErrNotFound is returned when no run matches the requested ID.
var ErrNotFound = errors.New("run not found")

// Store is a BadgerDB-backed run history with bounded retention.
type Store struct {
	db   *badger.DB
	keep int
}

// Open opens (or creates) the run log at path. keep bounds how many runs
// are retained; zero or negative means unlimited.
func Open(path string, keep int) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening run log at %s: %w", path, err)
	}
	return &Store{db: db, keep: keep}, nil
}

// OpenInMemory opens an ephemeral store, used in tests.
func OpenInMemory(keep int) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening in-memory run log: %w", err)
	}
	return &Store{db: db, keep: keep}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// runKey orders runs chronologically: zero-padded start time, then ID for
// uniqueness.
func runKey(rec models.RunRecord) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", runKeyPrefix, rec.StartedAt.UnixNano(), rec.ID))
}

// Save persists one run record and prunes history beyond the retention
// bound.
func (s *Store) Save(ctx context.Context, rec models.RunRecord) error {
	if rec.ID == "" {
		return errors.New("run record has no ID")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(runKey(rec), data)
	})
	if err != nil {
		return fmt.Errorf("save run record: %w", err)
	}
	return s.prune()
}

// List returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]models.RunRecord, error) {
	var runs []models.RunRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(runKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts just past the prefix range.
		seek := append([]byte(runKeyPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix([]byte(runKeyPrefix)); it.Next() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			var rec models.RunRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			runs = append(runs, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given ID.
func (s *Store) Get(ctx context.Context, id string) (models.RunRecord, error) {
	var found models.RunRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(runKeyPrefix)); it.ValidForPrefix([]byte(runKeyPrefix)); it.Next() {
			key := string(it.Item().Key())
			if !strings.HasSuffix(key, ":"+id) {
				continue
			}
			return it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &found)
			})
		}
		return ErrNotFound
	})
	if err != nil {
		return models.RunRecord{}, err
	}
	return found, nil
}

// Latest returns the most recent run, or ErrNotFound when history is
// empty.
func (s *Store) Latest(ctx context.Context) (models.RunRecord, error) {
	runs, err := s.List(ctx, 1)
	if err != nil {
		return models.RunRecord{}, err
	}
	if len(runs) == 0 {
		return models.RunRecord{}, ErrNotFound
	}
	return runs[0], nil
}

// prune deletes the oldest runs beyond the retention bound.
func (s *Store) prune() error {
	if s.keep <= 0 {
		return nil
	}
	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runKeyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		for it.Seek([]byte(runKeyPrefix)); it.ValidForPrefix([]byte(runKeyPrefix)); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for len(keys) > s.keep {
			if err := txn.Delete(keys[0]); err != nil {
				return err
			}
			keys = keys[1:]
		}
		return nil
	})
}
