package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bragboard/bragboard-server/internal/domain"
)

func newTestReport(id, shoutoutID, reporterID string, createdAt time.Time) *domain.Report {
	return &domain.Report{
		ID:         id,
		ShoutoutID: shoutoutID,
		ReportedBy: reporterID,
		Reporter:   domain.UserRef{ID: reporterID, Name: "Reporter " + reporterID},
		Reason:     "inappropriate",
		Status:     domain.ReportStatusPending,
		CreatedAt:  createdAt,
	}
}

func TestListPendingReports(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "flagged", time.Now())))

	base := time.Now()
	require.NoError(t, s.CreateReport(ctx, newTestReport("rpt-2", "so-1", "usr-3", base)))
	require.NoError(t, s.CreateReport(ctx, newTestReport("rpt-1", "so-1", "usr-2", base.Add(-time.Hour))))

	pending, err := s.ListPendingReports(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "rpt-1", pending[0].Report.ID)
	assert.Equal(t, "rpt-2", pending[1].Report.ID)
	require.NotNil(t, pending[0].Shoutout)
	assert.Equal(t, "flagged", pending[0].Shoutout.Message)
}

func TestListPendingReports_DropsDanglingTargets(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "kept", time.Now())))
	require.NoError(t, s.CreateReport(ctx, newTestReport("rpt-1", "so-1", "usr-2", time.Now())))
	// A report whose target never existed.
	require.NoError(t, s.CreateReport(ctx, newTestReport("rpt-2", "so-gone", "usr-2", time.Now())))

	pending, err := s.ListPendingReports(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "rpt-1", pending[0].Report.ID)
}

func TestListPendingReports_ExcludesResolved(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "flagged", time.Now())))
	require.NoError(t, s.CreateReport(ctx, newTestReport("rpt-1", "so-1", "usr-2", time.Now())))

	entry := &domain.AuditEntry{
		ID:         "log-1",
		Admin:      domain.UserRef{ID: "usr-admin", Name: "Alice"},
		Action:     domain.AuditResolvedReport,
		TargetID:   "so-1",
		TargetType: domain.AuditTargetShoutout,
		Timestamp:  time.Now(),
	}
	_, resolved, err := s.ResolveReport(ctx, "rpt-1", entry)
	require.NoError(t, err)
	assert.True(t, resolved)

	pending, err := s.ListPendingReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestResolveReport(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "flagged", time.Now())))
	require.NoError(t, s.CreateReport(ctx, newTestReport("rpt-1", "so-1", "usr-2", time.Now())))

	entry := &domain.AuditEntry{
		ID:         "log-1",
		Admin:      domain.UserRef{ID: "usr-admin", Name: "Alice"},
		Action:     domain.AuditResolvedReport,
		TargetID:   "so-1",
		TargetType: domain.AuditTargetShoutout,
		Timestamp:  time.Now(),
	}
	report, resolved, err := s.ResolveReport(ctx, "rpt-1", entry)
	require.NoError(t, err)
	assert.True(t, resolved)
	assert.Equal(t, domain.ReportStatusResolved, report.Status)
	assert.Equal(t, "usr-admin", report.ResolvedBy)
	require.NotNil(t, report.ResolvedAt)

	entries, err := s.ListAuditEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestResolveReport_Idempotent(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, s.CreateShoutout(ctx, newTestShoutout("so-1", "usr-1", "flagged", time.Now())))
	require.NoError(t, s.CreateReport(ctx, newTestReport("rpt-1", "so-1", "usr-2", time.Now())))

	first := &domain.AuditEntry{ID: "log-1", Admin: domain.UserRef{ID: "usr-admin"}, Action: domain.AuditResolvedReport, TargetID: "so-1", TargetType: domain.AuditTargetShoutout, Timestamp: time.Now()}
	_, resolved, err := s.ResolveReport(ctx, "rpt-1", first)
	require.NoError(t, err)
	assert.True(t, resolved)

	// Resolving again changes nothing and logs nothing.
	second := &domain.AuditEntry{ID: "log-2", Admin: domain.UserRef{ID: "usr-other"}, Action: domain.AuditResolvedReport, TargetID: "so-1", TargetType: domain.AuditTargetShoutout, Timestamp: time.Now()}
	report, resolved, err := s.ResolveReport(ctx, "rpt-1", second)
	require.NoError(t, err)
	assert.False(t, resolved)
	assert.Equal(t, "usr-admin", report.ResolvedBy)

	entries, err := s.ListAuditEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestResolveReport_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entry := &domain.AuditEntry{ID: "log-1", Admin: domain.UserRef{ID: "usr-admin"}, Action: domain.AuditResolvedReport, Timestamp: time.Now()}
	_, _, err := s.ResolveReport(context.Background(), "rpt-missing", entry)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestListAuditEntries_NewestFirst(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, s.AppendAuditEntry(ctx, &domain.AuditEntry{ID: "log-old", Admin: domain.UserRef{ID: "usr-1"}, Action: domain.AuditDeletedComment, TargetType: domain.AuditTargetComment, Timestamp: base.Add(-time.Hour)}))
	require.NoError(t, s.AppendAuditEntry(ctx, &domain.AuditEntry{ID: "log-new", Admin: domain.UserRef{ID: "usr-1"}, Action: domain.AuditDeletedShoutout, TargetType: domain.AuditTargetShoutout, Timestamp: base}))

	entries, err := s.ListAuditEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "log-new", entries[0].ID)
	assert.Equal(t, "log-old", entries[1].ID)
}
