package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bragboard/bragboard-server/internal/domain"
	"github.com/bragboard/bragboard-server/internal/store"
)

type testEnv struct {
	store      *store.Store
	directory  *DirectoryService
	feed       *FeedService
	moderation *ModerationService
	stats      *StatsService
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "bragboard-service-test-*")
	require.NoError(t, err)

	s, err := store.New(tempDir, nil)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	moderation := NewModerationService(s, logger)

	env := &testEnv{
		store:      s,
		directory:  NewDirectoryService(s, logger),
		feed:       NewFeedService(s, logger),
		moderation: moderation,
		stats:      NewStatsService(s, moderation, logger),
	}

	cleanup := func() {
		s.Close()
		os.RemoveAll(tempDir)
	}
	return env, cleanup
}

// registerUser is a test shortcut for adding a directory entry.
func (e *testEnv) registerUser(t *testing.T, name, email, department string, role domain.Role) *domain.User {
	t.Helper()
	user, err := e.directory.Register(context.Background(), RegisterParams{
		Name:       name,
		Email:      email,
		Department: department,
		Role:       role,
	})
	require.NoError(t, err)
	return user
}

// postShoutout is a test shortcut for creating a shout-out.
func (e *testEnv) postShoutout(t *testing.T, senderID, message string, recipientIDs ...string) *domain.ShoutOut {
	t.Helper()
	so, err := e.feed.CreateShoutout(context.Background(), CreateShoutoutParams{
		SenderID:     senderID,
		Message:      message,
		RecipientIDs: recipientIDs,
	})
	require.NoError(t, err)
	return so
}
