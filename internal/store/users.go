package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/bragboard/bragboard-server/internal/domain"
)

// CreateUser persists a new directory entry. Emails are unique
// case-insensitively; a duplicate returns ErrEmailExists.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	user.Email = normalizeEmail(user.Email)
	user.InitTimestamps()

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(userByEmailKey(user.Email))
		if err == nil {
			return ErrEmailExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check email index: %w", err)
		}

		if err := txnSet(txn, userKey(user.ID), user); err != nil {
			return fmt.Errorf("failed to store user: %w", err)
		}
		return txn.Set(userByEmailKey(user.Email), []byte(user.ID))
	})
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := s.get(userKey(id), &user)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail looks a user up through the case-insensitive email index.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var userID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userByEmailKey(normalizeEmail(email)))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve email index: %w", err)
	}
	return s.GetUser(ctx, userID)
}

// UpdateUser rewrites a directory entry, maintaining the email index and
// refreshing the session snapshot when the current user edits their own
// profile. All of it happens in one transaction.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	user.Email = normalizeEmail(user.Email)
	user.Touch()

	return s.db.Update(func(txn *badger.Txn) error {
		var existing domain.User
		err := txnGet(txn, userKey(user.ID), &existing)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}

		if existing.Email != user.Email {
			_, err := txn.Get(userByEmailKey(user.Email))
			if err == nil {
				return ErrEmailExists
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("failed to check email index: %w", err)
			}
			if err := txn.Delete(userByEmailKey(existing.Email)); err != nil {
				return fmt.Errorf("failed to drop old email index: %w", err)
			}
			if err := txn.Set(userByEmailKey(user.Email), []byte(user.ID)); err != nil {
				return fmt.Errorf("failed to update email index: %w", err)
			}
		}

		if err := txnSet(txn, userKey(user.ID), user); err != nil {
			return fmt.Errorf("failed to store user: %w", err)
		}

		// Keep the session snapshot in step with the directory.
		var session domain.User
		err = txnGet(txn, []byte(sessionCurrentKey), &session)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if session.ID == user.ID {
			return txnSet(txn, []byte(sessionCurrentKey), user)
		}
		return nil
	})
}

// ListUsers returns the whole directory in canonical order: creation
// time ascending, ID ascending on ties.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := listAll[domain.User](s, ctx, userPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

// CountUsers reports how many directory entries exist.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(userPrefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(userPrefix)); it.ValidForPrefix([]byte(userPrefix)); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
