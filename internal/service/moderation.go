package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bragboard/bragboard-server/internal/domain"
	domainerrors "github.com/bragboard/bragboard-server/internal/errors"
	"github.com/bragboard/bragboard-server/internal/id"
	"github.com/bragboard/bragboard-server/internal/store"
)

// ModerationService manages reports and their disposition.
type ModerationService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewModerationService creates a new moderation service.
func NewModerationService(store *store.Store, logger *slog.Logger) *ModerationService {
	return &ModerationService{
		store:  store,
		logger: logger,
	}
}

// requireAdmin loads the actor and rejects non-admins.
func (s *ModerationService) requireAdmin(ctx context.Context, actorID string) (*domain.User, error) {
	actor, err := s.store.GetUser(ctx, actorID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, domainerrors.NotFoundf("user %s not found", actorID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading actor: %w", err)
	}
	if !actor.IsAdmin() {
		return nil, domainerrors.Forbidden("admin access required")
	}
	return actor, nil
}

// ReportShoutout files a flag against a post. Any user may report, and
// the same user may report the same post more than once.
func (s *ModerationService) ReportShoutout(ctx context.Context, shoutoutID, reporterID, reason string) (*domain.Report, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domainerrors.Validation("reason cannot be empty")
	}

	reporter, err := s.store.GetUser(ctx, reporterID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, domainerrors.NotFoundf("user %s not found", reporterID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading reporter: %w", err)
	}

	if _, err := s.store.GetShoutout(ctx, shoutoutID); err != nil {
		if errors.Is(err, store.ErrShoutoutNotFound) {
			return nil, domainerrors.NotFoundf("shoutout %s not found", shoutoutID)
		}
		return nil, fmt.Errorf("loading shoutout: %w", err)
	}

	reportID, err := id.Generate("rpt")
	if err != nil {
		return nil, fmt.Errorf("generating report id: %w", err)
	}

	report := &domain.Report{
		ID:         reportID,
		ShoutoutID: shoutoutID,
		ReportedBy: reporter.ID,
		Reporter:   reporter.Ref(),
		Reason:     reason,
		Status:     domain.ReportStatusPending,
		CreatedAt:  time.Now(),
	}
	if err := s.store.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}

	s.logger.Info("shoutout reported",
		"report_id", report.ID,
		"shoutout_id", shoutoutID,
		"reporter_id", reporter.ID)
	return report, nil
}

// PendingReports returns the moderation queue: pending reports joined
// with live snapshots of their targets. Admin only.
func (s *ModerationService) PendingReports(ctx context.Context, actorID string) ([]*domain.PendingReport, error) {
	if _, err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	pending, err := s.store.ListPendingReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pending reports: %w", err)
	}
	return pending, nil
}

// ResolveReport marks a report handled and records the action in the
// moderation log. Resolving an already-resolved report is a no-op; the
// log gains exactly one entry per effective transition. Admin only.
func (s *ModerationService) ResolveReport(ctx context.Context, reportID, actorID string) (*domain.Report, error) {
	actor, err := s.requireAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}

	report, err := s.store.GetReport(ctx, reportID)
	if errors.Is(err, store.ErrReportNotFound) {
		return nil, domainerrors.NotFoundf("report %s not found", reportID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading report: %w", err)
	}

	entry := &domain.AuditEntry{
		ID:         id.MustGenerate("log"),
		Admin:      actor.Ref(),
		Action:     domain.AuditResolvedReport,
		TargetID:   report.ShoutoutID,
		TargetType: domain.AuditTargetShoutout,
		Timestamp:  time.Now(),
	}

	resolved, transitioned, err := s.store.ResolveReport(ctx, reportID, entry)
	if errors.Is(err, store.ErrReportNotFound) {
		return nil, domainerrors.NotFoundf("report %s not found", reportID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving report: %w", err)
	}

	if transitioned {
		s.logger.Info("report resolved",
			"report_id", reportID,
			"admin_id", actor.ID)
	}
	return resolved, nil
}
