// Package store implements the durable recognition store over BadgerDB.
//
// Every record is a JSON blob under a collection-prefixed key. Mutations
// that span records (a comment plus its parent's counter, a shout-out
// plus its cascade) run inside a single Badger transaction so the
// denormalized invariants can never be observed half-applied.
package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// delete removes a key from the database.
func (s *Store) delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// exists checks if a key exists.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// txnSet marshals and writes a record inside an existing transaction.
func txnSet(txn *badger.Txn, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return txn.Set(key, data)
}

// txnGet reads and unmarshals a record inside an existing transaction.
func txnGet(txn *badger.Txn, key []byte, dest any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, dest)
	})
}

// listAll collects every record under a prefix.
//
// Corrupt records fail closed: they are skipped with a warning rather
// than aborting the whole read, so one bad blob cannot take a
// collection offline.
func listAll[T any](s *Store, ctx context.Context, prefix string) ([]*T, error) {
	var results []*T

	err := s.db.View(func(txn *badger.Txn) error {
		return scanPrefix(txn, ctx, s.logger, prefix, func(entity *T) {
			results = append(results, entity)
		})
	})

	if err != nil {
		return nil, err
	}
	return results, nil
}

// scanPrefix iterates every record under a prefix inside an existing
// transaction, invoking fn for each successfully decoded entity.
func scanPrefix[T any](txn *badger.Txn, ctx context.Context, logger *slog.Logger, prefix string, fn func(*T)) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	opts.PrefetchValues = true

	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var entity T
		err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &entity)
		})
		if err != nil {
			if logger != nil {
				logger.Warn("skipping corrupt record", "key", string(it.Item().Key()), "error", err)
			}
			continue
		}

		fn(&entity)
	}

	return nil
}
