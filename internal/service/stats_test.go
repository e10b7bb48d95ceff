package service

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bragboard/bragboard-server/internal/domain"
	domainerrors "github.com/bragboard/bragboard-server/internal/errors"
)

func TestLeaderboard_Points(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	alice := env.registerUser(t, "Alice", "alice@company.com", "Engineering", domain.RoleEmployee)
	bob := env.registerUser(t, "Bob", "bob@company.com", "Sales", domain.RoleEmployee)
	carol := env.registerUser(t, "Carol", "carol@company.com", "Product", domain.RoleEmployee)

	// Alice sends two (20 points), Bob receives both (30 points),
	// Carol sends one and receives one (25 points).
	env.postShoutout(t, alice.ID, "first", bob.ID)
	env.postShoutout(t, alice.ID, "second", bob.ID)
	env.postShoutout(t, carol.ID, "third", carol.ID)

	entries, err := env.stats.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, bob.ID, entries[0].User.ID)
	assert.Equal(t, 30, entries[0].Points)
	assert.Equal(t, carol.ID, entries[1].User.ID)
	assert.Equal(t, 25, entries[1].Points)
	assert.Equal(t, alice.ID, entries[2].User.ID)
	assert.Equal(t, 20, entries[2].Points)
	assert.Equal(t, 2, entries[2].SentCount)
	assert.Equal(t, 2, entries[0].ReceivedCount)
}

func TestLeaderboard_MultiRecipientScoresEach(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	alice := env.registerUser(t, "Alice", "alice@company.com", "Engineering", domain.RoleEmployee)
	bob := env.registerUser(t, "Bob", "bob@company.com", "Sales", domain.RoleEmployee)
	carol := env.registerUser(t, "Carol", "carol@company.com", "Product", domain.RoleEmployee)

	env.postShoutout(t, alice.ID, "team effort", bob.ID, carol.ID)

	entries, err := env.stats.Leaderboard(context.Background())
	require.NoError(t, err)

	points := make(map[string]int)
	for _, e := range entries {
		points[e.User.ID] = e.Points
	}
	assert.Equal(t, 10, points[alice.ID])
	assert.Equal(t, 15, points[bob.ID])
	assert.Equal(t, 15, points[carol.ID])
}

func TestAdminStats(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	admin := env.registerUser(t, "Admin", "admin@company.com", "HR", domain.RoleAdmin)
	alice := env.registerUser(t, "Alice", "alice@company.com", "Engineering", domain.RoleEmployee)
	bob := env.registerUser(t, "Bob", "bob@company.com", "Sales", domain.RoleEmployee)

	env.postShoutout(t, alice.ID, "first", bob.ID)
	env.postShoutout(t, alice.ID, "second", bob.ID)
	env.postShoutout(t, bob.ID, "back at you", alice.ID)

	_, err := env.stats.AdminStats(ctx, alice.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	stats, err := env.stats.AdminStats(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalShoutouts)
	assert.Equal(t, 3, stats.TotalUsers)

	require.NotEmpty(t, stats.TopContributors)
	assert.Equal(t, "Alice", stats.TopContributors[0].Name)
	assert.Equal(t, 2, stats.TopContributors[0].Count)

	require.NotEmpty(t, stats.MostTaggedUsers)
	assert.Equal(t, "Bob", stats.MostTaggedUsers[0].Name)
	assert.Equal(t, 2, stats.MostTaggedUsers[0].Count)

	// Every directory department shows up, zero counts included.
	depts := make(map[string]int)
	for _, d := range stats.DepartmentEngagement {
		depts[d.Department] = d.Count
	}
	assert.Equal(t, 2, depts["Engineering"])
	assert.Equal(t, 1, depts["Sales"])
	assert.Equal(t, 0, depts["HR"])
}

func TestAdminStats_CountsUseSenderSnapshot(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	admin := env.registerUser(t, "Admin", "admin@company.com", "HR", domain.RoleAdmin)
	alice := env.registerUser(t, "Alice", "alice@company.com", "Engineering", domain.RoleEmployee)
	bob := env.registerUser(t, "Bob", "bob@company.com", "Sales", domain.RoleEmployee)

	env.postShoutout(t, alice.ID, "posted from engineering", bob.ID)

	// Alice moves departments after posting.
	newDept := "Sales"
	_, err := env.directory.UpdateUser(ctx, alice.ID, UpdateUserParams{Department: &newDept})
	require.NoError(t, err)

	stats, err := env.stats.AdminStats(ctx, admin.ID)
	require.NoError(t, err)

	depts := make(map[string]int)
	for _, d := range stats.DepartmentEngagement {
		depts[d.Department] = d.Count
	}
	assert.Equal(t, 1, depts["Engineering"])
	assert.Equal(t, 0, depts["Sales"])
}

func TestExportStatsCSV(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	admin := env.registerUser(t, "Admin", "admin@company.com", "HR", domain.RoleAdmin)
	alice := env.registerUser(t, "Alice", "alice@company.com", "Engineering", domain.RoleEmployee)
	bob := env.registerUser(t, "Bob", "bob@company.com", "Sales", domain.RoleEmployee)

	env.postShoutout(t, alice.ID, "kudos", bob.ID)

	_, err := env.stats.ExportStatsCSV(ctx, alice.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	data, err := env.stats.ExportStatsCSV(ctx, admin.ID)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + one row per user

	assert.Equal(t, []string{"name", "email", "department", "role", "joined_at", "sent", "received", "points"}, records[0])

	// Rows follow leaderboard order: Bob (15) before Alice (10).
	assert.Equal(t, "Bob", records[1][0])
	assert.Equal(t, "15", records[1][7])
	assert.Equal(t, "Alice", records[2][0])
	assert.Equal(t, "10", records[2][7])
	assert.Equal(t, "Admin", records[3][0])
	assert.Equal(t, "0", records[3][7])
}

// TestRecognitionLifecycle walks the whole flow end to end: register,
// post, react, comment, report, resolve, delete, and check the books.
func TestRecognitionLifecycle(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	admin := env.registerUser(t, "Admin", "admin@company.com", "HR", domain.RoleAdmin)
	alice := env.registerUser(t, "Alice", "alice@company.com", "Engineering", domain.RoleEmployee)
	bob := env.registerUser(t, "Bob", "bob@company.com", "Sales", domain.RoleEmployee)

	_, err := env.directory.Login(ctx, "alice@company.com")
	require.NoError(t, err)

	so := env.postShoutout(t, alice.ID, "Bob saved the quarter", bob.ID)

	reactions, err := env.feed.ToggleReaction(ctx, so.ID, bob.ID, domain.ReactionClap)
	require.NoError(t, err)
	assert.Len(t, reactions, 1)

	comment, err := env.feed.AddComment(ctx, so.ID, bob.ID, "thanks Alice!")
	require.NoError(t, err)

	report, err := env.moderation.ReportShoutout(ctx, so.ID, bob.ID, "too much praise")
	require.NoError(t, err)

	pending, err := env.moderation.PendingReports(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = env.moderation.ResolveReport(ctx, report.ID, admin.ID)
	require.NoError(t, err)

	require.NoError(t, env.feed.DeleteComment(ctx, comment.ID, admin.ID))
	require.NoError(t, env.feed.DeleteShoutout(ctx, so.ID, admin.ID))

	// Three moderation actions, newest first.
	entries, err := env.stats.AuditLog(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.AuditDeletedShoutout, entries[0].Action)
	assert.Equal(t, domain.AuditDeletedComment, entries[1].Action)
	assert.Equal(t, domain.AuditResolvedReport, entries[2].Action)

	// The feed is empty again and the leaderboard is back to zero.
	feed, err := env.feed.ListShoutouts(ctx, ShoutoutFilters{})
	require.NoError(t, err)
	assert.Empty(t, feed)

	board, err := env.stats.Leaderboard(ctx)
	require.NoError(t, err)
	for _, e := range board {
		assert.Zero(t, e.Points)
	}

	// Alice is still signed in through all of it.
	current, err := env.directory.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, alice.ID, current.ID)
}
