package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/bragboard/bragboard-server/internal/domain"
)

// SetCurrentUser stores a snapshot of the signed-in user. The slot holds
// at most one user at a time; signing in replaces any previous session.
func (s *Store) SetCurrentUser(ctx context.Context, user *domain.User) error {
	if err := s.set([]byte(sessionCurrentKey), user); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// GetCurrentUser returns the signed-in user snapshot, or
// ErrSessionNotFound when nobody is signed in.
func (s *Store) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	err := s.get([]byte(sessionCurrentKey), &user)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &user, nil
}

// ClearCurrentUser signs the current user out. Clearing an empty slot is
// a no-op.
func (s *Store) ClearCurrentUser(ctx context.Context) error {
	if err := s.delete([]byte(sessionCurrentKey)); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
