package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/bragboard/bragboard-server/internal/domain"
)

// CreateShoutout persists a new recognition post.
func (s *Store) CreateShoutout(ctx context.Context, shoutout *domain.ShoutOut) error {
	if err := s.set(shoutoutKey(shoutout.ID), shoutout); err != nil {
		return fmt.Errorf("failed to store shoutout: %w", err)
	}
	return nil
}

// GetShoutout retrieves a shout-out by ID.
func (s *Store) GetShoutout(ctx context.Context, id string) (*domain.ShoutOut, error) {
	var shoutout domain.ShoutOut
	err := s.get(shoutoutKey(id), &shoutout)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrShoutoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shoutout: %w", err)
	}
	return &shoutout, nil
}

// ListShoutouts returns every shout-out in feed order: newest first, ID
// descending on ties so the order is stable across reads.
func (s *Store) ListShoutouts(ctx context.Context) ([]*domain.ShoutOut, error) {
	shoutouts, err := listAll[domain.ShoutOut](s, ctx, shoutoutPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list shoutouts: %w", err)
	}

	sort.Slice(shoutouts, func(i, j int) bool {
		if !shoutouts[i].CreatedAt.Equal(shoutouts[j].CreatedAt) {
			return shoutouts[i].CreatedAt.After(shoutouts[j].CreatedAt)
		}
		return shoutouts[i].ID > shoutouts[j].ID
	})
	return shoutouts, nil
}

// CountShoutouts reports how many shout-outs exist.
func (s *Store) CountShoutouts(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(shoutoutPrefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(shoutoutPrefix)); it.ValidForPrefix([]byte(shoutoutPrefix)); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count shoutouts: %w", err)
	}
	return count, nil
}

// ToggleReaction flips a (user, type) reaction on a shout-out. If the
// user already reacted with that type the reaction is removed, otherwise
// one is appended with the supplied ID. The read-modify-write runs in a
// single transaction and returns the updated shout-out.
func (s *Store) ToggleReaction(ctx context.Context, shoutoutID, userID string, rtype domain.ReactionType, reactionID string) (*domain.ShoutOut, error) {
	var updated *domain.ShoutOut

	err := s.db.Update(func(txn *badger.Txn) error {
		var shoutout domain.ShoutOut
		err := txnGet(txn, shoutoutKey(shoutoutID), &shoutout)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrShoutoutNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load shoutout: %w", err)
		}

		if idx := shoutout.ReactionIndex(userID, rtype); idx >= 0 {
			shoutout.Reactions = append(shoutout.Reactions[:idx], shoutout.Reactions[idx+1:]...)
		} else {
			shoutout.Reactions = append(shoutout.Reactions, domain.Reaction{
				ID:         reactionID,
				ShoutoutID: shoutoutID,
				UserID:     userID,
				Type:       rtype,
			})
		}

		if err := txnSet(txn, shoutoutKey(shoutoutID), &shoutout); err != nil {
			return fmt.Errorf("failed to store shoutout: %w", err)
		}
		updated = &shoutout
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteShoutout removes a shout-out together with all of its comments
// and reports in one transaction. When audit is non-nil the entry is
// appended in the same transaction, so the deletion and its log record
// land together or not at all.
func (s *Store) DeleteShoutout(ctx context.Context, id string, audit *domain.AuditEntry) error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(shoutoutKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrShoutoutNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load shoutout: %w", err)
		}

		if err := txn.Delete(shoutoutKey(id)); err != nil {
			return fmt.Errorf("failed to delete shoutout: %w", err)
		}

		var commentIDs []string
		err = scanPrefix(txn, ctx, s.logger, commentPrefix, func(c *domain.Comment) {
			if c.ShoutoutID == id {
				commentIDs = append(commentIDs, c.ID)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to scan comments: %w", err)
		}
		for _, cid := range commentIDs {
			if err := txn.Delete(commentKey(cid)); err != nil {
				return fmt.Errorf("failed to delete comment: %w", err)
			}
		}

		var reportIDs []string
		err = scanPrefix(txn, ctx, s.logger, reportPrefix, func(r *domain.Report) {
			if r.ShoutoutID == id {
				reportIDs = append(reportIDs, r.ID)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to scan reports: %w", err)
		}
		for _, rid := range reportIDs {
			if err := txn.Delete(reportKey(rid)); err != nil {
				return fmt.Errorf("failed to delete report: %w", err)
			}
		}

		if audit != nil {
			if err := txnSet(txn, auditKey(audit.ID), audit); err != nil {
				return fmt.Errorf("failed to append audit entry: %w", err)
			}
		}
		return nil
	})
}
