package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bragboard/bragboard-server/internal/domain"
)

func TestAddComment_IncrementsCounter(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "hello", time.Now())))

	require.NoError(t, s.AddComment(ctx, &domain.Comment{ID: "cmt-1", ShoutoutID: "so-1", UserID: "usr-2", Content: "first", CreatedAt: time.Now()}))
	require.NoError(t, s.AddComment(ctx, &domain.Comment{ID: "cmt-2", ShoutoutID: "so-1", UserID: "usr-3", Content: "second", CreatedAt: time.Now()}))

	shoutout, err := s.GetShoutout(ctx, "so-1")
	require.NoError(t, err)
	assert.Equal(t, 2, shoutout.CommentsCount)

	comments, err := s.ListComments(ctx, "so-1")
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestAddComment_UnknownShoutout(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := s.AddComment(ctx, &domain.Comment{ID: "cmt-1", ShoutoutID: "so-missing", UserID: "usr-1", Content: "orphan", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrShoutoutNotFound)

	// The orphan comment must not exist.
	_, err = s.GetComment(ctx, "cmt-1")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestListComments_OldestFirst(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "hello", time.Now())))

	base := time.Now()
	require.NoError(t, s.AddComment(ctx, &domain.Comment{ID: "cmt-b", ShoutoutID: "so-1", UserID: "usr-2", Content: "later", CreatedAt: base}))
	require.NoError(t, s.AddComment(ctx, &domain.Comment{ID: "cmt-a", ShoutoutID: "so-1", UserID: "usr-2", Content: "earlier", CreatedAt: base.Add(-time.Minute)}))

	comments, err := s.ListComments(ctx, "so-1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "earlier", comments[0].Content)
	assert.Equal(t, "later", comments[1].Content)
}

func TestDeleteComment_DecrementsCounter(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "hello", time.Now())))
	require.NoError(t, s.AddComment(ctx, &domain.Comment{ID: "cmt-1", ShoutoutID: "so-1", UserID: "usr-2", Content: "bye", CreatedAt: time.Now()}))

	require.NoError(t, s.DeleteComment(ctx, "cmt-1", nil))

	shoutout, err := s.GetShoutout(ctx, "so-1")
	require.NoError(t, err)
	assert.Equal(t, 0, shoutout.CommentsCount)

	_, err = s.GetComment(ctx, "cmt-1")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteComment_CounterFloorsAtZero(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	// A counter already at zero, with a stray comment record, must not go negative.
	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "hello", time.Now())))
	require.NoError(t, s.set(commentKey("cmt-stray"), &domain.Comment{ID: "cmt-stray", ShoutoutID: "so-1", UserID: "usr-2", Content: "stray", CreatedAt: time.Now()}))

	require.NoError(t, s.DeleteComment(ctx, "cmt-stray", nil))

	shoutout, err := s.GetShoutout(ctx, "so-1")
	require.NoError(t, err)
	assert.Equal(t, 0, shoutout.CommentsCount)
}

func TestDeleteComment_ParentAlreadyGone(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.set(commentKey("cmt-1"), &domain.Comment{ID: "cmt-1", ShoutoutID: "so-gone", UserID: "usr-2", Content: "orphan", CreatedAt: time.Now()}))

	require.NoError(t, s.DeleteComment(ctx, "cmt-1", nil))
	_, err := s.GetComment(ctx, "cmt-1")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteComment_WritesAuditEntry(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "hello", time.Now())))
	require.NoError(t, s.AddComment(ctx, &domain.Comment{ID: "cmt-1", ShoutoutID: "so-1", UserID: "usr-2", Content: "gone soon", CreatedAt: time.Now()}))

	entry := &domain.AuditEntry{
		ID:         "log-1",
		Admin:      domain.UserRef{ID: "usr-admin", Name: "Alice"},
		Action:     domain.AuditDeletedComment,
		TargetID:   "cmt-1",
		TargetType: domain.AuditTargetComment,
		Timestamp:  time.Now(),
	}
	require.NoError(t, s.DeleteComment(ctx, "cmt-1", entry))

	entries, err := s.ListAuditEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditDeletedComment, entries[0].Action)
}
