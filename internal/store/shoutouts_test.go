package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bragboard/bragboard-server/internal/domain"
)

func newTestShoutout(id, senderID, message string, createdAt time.Time) *domain.ShoutOut {
	return &domain.ShoutOut{
		ID:       id,
		SenderID: senderID,
		Sender:   domain.UserRef{ID: senderID, Name: "Sender " + senderID},
		Message:  message,
		Reactions: []domain.Reaction{},
		CreatedAt: createdAt,
	}
}

func TestListShoutouts_FeedOrder(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-old", "usr-1", "first", base.Add(-2*time.Hour))))
	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-new", "usr-1", "latest", base)))
	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-mid", "usr-1", "middle", base.Add(-time.Hour))))

	shoutouts, err := s.ListShoutouts(ctx)
	require.NoError(t, err)
	require.Len(t, shoutouts, 3)
	assert.Equal(t, "so-new", shoutouts[0].ID)
	assert.Equal(t, "so-mid", shoutouts[1].ID)
	assert.Equal(t, "so-old", shoutouts[2].ID)
}

func TestListShoutouts_TieBreaksByID(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	at := time.Now().Truncate(time.Second)
	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-a", "usr-1", "a", at)))
	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-b", "usr-1", "b", at)))

	shoutouts, err := s.ListShoutouts(ctx)
	require.NoError(t, err)
	require.Len(t, shoutouts, 2)
	assert.Equal(t, "so-b", shoutouts[0].ID)
	assert.Equal(t, "so-a", shoutouts[1].ID)
}

func TestToggleReaction(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "hello", time.Now())))

	// First toggle adds.
	updated, err := s.ToggleReaction(ctx, "so-1", "usr-2", domain.ReactionClap, "rct-1")
	require.NoError(t, err)
	require.Len(t, updated.Reactions, 1)
	assert.Equal(t, domain.ReactionClap, updated.Reactions[0].Type)

	// Same user, different type: both coexist.
	updated, err = s.ToggleReaction(ctx, "so-1", "usr-2", domain.ReactionLike, "rct-2")
	require.NoError(t, err)
	assert.Len(t, updated.Reactions, 2)

	// Second toggle of the same (user, type) removes only that one.
	updated, err = s.ToggleReaction(ctx, "so-1", "usr-2", domain.ReactionClap, "rct-3")
	require.NoError(t, err)
	require.Len(t, updated.Reactions, 1)
	assert.Equal(t, domain.ReactionLike, updated.Reactions[0].Type)
}

func TestToggleReaction_UnknownShoutout(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.ToggleReaction(context.Background(), "so-missing", "usr-1", domain.ReactionLike, "rct-1")
	assert.ErrorIs(t, err, ErrShoutoutNotFound)
}

func TestDeleteShoutout_Cascades(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "doomed", time.Now())))
	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-2", "usr-1", "survivor", time.Now())))

	require.NoError(t, s.AddComment(ctx, &domain.Comment{ID: "cmt-1", ShoutoutID: "so-1", UserID: "usr-2", Content: "nice", CreatedAt: time.Now()}))
	require.NoError(t, s.AddComment(ctx, &domain.Comment{ID: "cmt-2", ShoutoutID: "so-2", UserID: "usr-2", Content: "also nice", CreatedAt: time.Now()}))

	require.NoError(t, s.CreateReport(ctx, &domain.Report{ID: "rpt-1", ShoutoutID: "so-1", ReportedBy: "usr-3", Reason: "spam", Status: domain.ReportStatusPending, CreatedAt: time.Now()}))

	require.NoError(t, s.DeleteShoutout(ctx, "so-1", nil))

	_, err := s.GetShoutout(ctx, "so-1")
	assert.ErrorIs(t, err, ErrShoutoutNotFound)
	_, err = s.GetComment(ctx, "cmt-1")
	assert.ErrorIs(t, err, ErrCommentNotFound)
	_, err = s.GetReport(ctx, "rpt-1")
	assert.ErrorIs(t, err, ErrReportNotFound)

	// The sibling shout-out and its comment are untouched.
	survivor, err := s.GetShoutout(ctx, "so-2")
	require.NoError(t, err)
	assert.Equal(t, 1, survivor.CommentsCount)
	_, err = s.GetComment(ctx, "cmt-2")
	assert.NoError(t, err)
}

func TestDeleteShoutout_WritesAuditEntry(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "doomed", time.Now())))

	entry := &domain.AuditEntry{
		ID:         "log-1",
		Admin:      domain.UserRef{ID: "usr-admin", Name: "Alice"},
		Action:     domain.AuditDeletedShoutout,
		TargetID:   "so-1",
		TargetType: domain.AuditTargetShoutout,
		Timestamp:  time.Now(),
	}
	require.NoError(t, s.DeleteShoutout(ctx, "so-1", entry))

	entries, err := s.ListAuditEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditDeletedShoutout, entries[0].Action)
	assert.Equal(t, "so-1", entries[0].TargetID)
}

func TestDeleteShoutout_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	err := s.DeleteShoutout(context.Background(), "so-missing", nil)
	assert.ErrorIs(t, err, ErrShoutoutNotFound)

	// A failed delete must not leave an audit entry behind.
	entries, listErr := s.ListAuditEntries(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, entries)
}
