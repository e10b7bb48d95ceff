package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bragboard/bragboard-server/internal/domain"
	domainerrors "github.com/bragboard/bragboard-server/internal/errors"
)

func TestReportShoutout(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	alice := env.registerUser(t, "Alice", "alice@company.com", "Engineering", domain.RoleEmployee)
	bob := env.registerUser(t, "Bob", "bob@company.com", "Sales", domain.RoleEmployee)
	so := env.postShoutout(t, alice.ID, "kudos", bob.ID)

	report, err := env.moderation.ReportShoutout(ctx, so.ID, bob.ID, "inappropriate")
	require.NoError(t, err)
	assert.True(t, report.IsPending())
	assert.Equal(t, "Bob", report.Reporter.Name)

	// The same user may report the same post again.
	second, err := env.moderation.ReportShoutout(ctx, so.ID, bob.ID, "still inappropriate")
	require.NoError(t, err)
	assert.NotEqual(t, report.ID, second.ID)

	_, err = env.moderation.ReportShoutout(ctx, so.ID, bob.ID, "  ")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.moderation.ReportShoutout(ctx, "so-ghost", bob.ID, "spam")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = env.moderation.ReportShoutout(ctx, so.ID, "usr-ghost", "spam")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPendingReports_AdminOnly(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	admin := env.registerUser(t, "Admin", "admin@company.com", "HR", domain.RoleAdmin)
	alice := env.registerUser(t, "Alice", "alice@company.com", "Engineering", domain.RoleEmployee)
	bob := env.registerUser(t, "Bob", "bob@company.com", "Sales", domain.RoleEmployee)
	so := env.postShoutout(t, alice.ID, "kudos", bob.ID)

	_, err := env.moderation.ReportShoutout(ctx, so.ID, bob.ID, "spam")
	require.NoError(t, err)

	_, err = env.moderation.PendingReports(ctx, alice.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	pending, err := env.moderation.PendingReports(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NotNil(t, pending[0].Shoutout)
	assert.Equal(t, so.ID, pending[0].Shoutout.ID)
}

func TestResolveReport(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	admin := env.registerUser(t, "Admin", "admin@company.com", "HR", domain.RoleAdmin)
	alice := env.registerUser(t, "Alice", "alice@company.com", "Engineering", domain.RoleEmployee)
	bob := env.registerUser(t, "Bob", "bob@company.com", "Sales", domain.RoleEmployee)
	so := env.postShoutout(t, alice.ID, "kudos", bob.ID)

	report, err := env.moderation.ReportShoutout(ctx, so.ID, bob.ID, "spam")
	require.NoError(t, err)

	_, err = env.moderation.ResolveReport(ctx, report.ID, alice.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	resolved, err := env.moderation.ResolveReport(ctx, report.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusResolved, resolved.Status)
	assert.Equal(t, admin.ID, resolved.ResolvedBy)

	// The queue is empty and the log points at the reported post.
	pending, err := env.moderation.PendingReports(ctx, admin.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	entries, err := env.stats.AuditLog(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditResolvedReport, entries[0].Action)
	assert.Equal(t, so.ID, entries[0].TargetID)
}

func TestResolveReport_IdempotentLogsOnce(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()
	ctx := context.Background()

	admin := env.registerUser(t, "Admin", "admin@company.com", "HR", domain.RoleAdmin)
	alice := env.registerUser(t, "Alice", "alice@company.com", "Engineering", domain.RoleEmployee)
	bob := env.registerUser(t, "Bob", "bob@company.com", "Sales", domain.RoleEmployee)
	so := env.postShoutout(t, alice.ID, "kudos", bob.ID)

	report, err := env.moderation.ReportShoutout(ctx, so.ID, bob.ID, "spam")
	require.NoError(t, err)

	_, err = env.moderation.ResolveReport(ctx, report.ID, admin.ID)
	require.NoError(t, err)
	resolved, err := env.moderation.ResolveReport(ctx, report.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusResolved, resolved.Status)

	entries, err := env.stats.AuditLog(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestResolveReport_NotFound(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	admin := env.registerUser(t, "Admin", "admin@company.com", "HR", domain.RoleAdmin)
	_, err := env.moderation.ResolveReport(context.Background(), "rpt-ghost", admin.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
