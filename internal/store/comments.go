package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/bragboard/bragboard-server/internal/domain"
)

// AddComment persists a comment and bumps the parent shout-out's
// denormalized counter in the same transaction.
func (s *Store) AddComment(ctx context.Context, comment *domain.Comment) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var shoutout domain.ShoutOut
		err := txnGet(txn, shoutoutKey(comment.ShoutoutID), &shoutout)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrShoutoutNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load shoutout: %w", err)
		}

		if err := txnSet(txn, commentKey(comment.ID), comment); err != nil {
			return fmt.Errorf("failed to store comment: %w", err)
		}

		shoutout.CommentsCount++
		return txnSet(txn, shoutoutKey(comment.ShoutoutID), &shoutout)
	})
}

// GetComment retrieves a comment by ID.
func (s *Store) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	var comment domain.Comment
	err := s.get(commentKey(id), &comment)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// ListComments returns a shout-out's comments oldest first.
func (s *Store) ListComments(ctx context.Context, shoutoutID string) ([]*domain.Comment, error) {
	all, err := listAll[domain.Comment](s, ctx, commentPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*domain.Comment, 0)
	for _, c := range all {
		if c.ShoutoutID == shoutoutID {
			comments = append(comments, c)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

// DeleteComment removes a comment and decrements the parent's counter,
// flooring it at zero, in one transaction. If the parent shout-out is
// already gone only the comment is removed.
func (s *Store) DeleteComment(ctx context.Context, id string, audit *domain.AuditEntry) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var comment domain.Comment
		err := txnGet(txn, commentKey(id), &comment)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrCommentNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load comment: %w", err)
		}

		if err := txn.Delete(commentKey(id)); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}

		var shoutout domain.ShoutOut
		err = txnGet(txn, shoutoutKey(comment.ShoutoutID), &shoutout)
		if err == nil {
			if shoutout.CommentsCount > 0 {
				shoutout.CommentsCount--
			}
			if err := txnSet(txn, shoutoutKey(comment.ShoutoutID), &shoutout); err != nil {
				return fmt.Errorf("failed to store shoutout: %w", err)
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to load shoutout: %w", err)
		}

		if audit != nil {
			if err := txnSet(txn, auditKey(audit.ID), audit); err != nil {
				return fmt.Errorf("failed to append audit entry: %w", err)
			}
		}
		return nil
	})
}
