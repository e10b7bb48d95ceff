package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/bragboard/bragboard-server/internal/domain"
)

// CreateReport persists a new flag against a shout-out.
func (s *Store) CreateReport(ctx context.Context, report *domain.Report) error {
	if err := s.set(reportKey(report.ID), report); err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}
	return nil
}

// GetReport retrieves a report by ID.
func (s *Store) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	var report domain.Report
	err := s.get(reportKey(id), &report)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

// ListPendingReports joins every pending report with a snapshot of its
// target shout-out, oldest report first. Reports whose target has since
// been deleted are dropped from the result.
func (s *Store) ListPendingReports(ctx context.Context) ([]*domain.PendingReport, error) {
	var pending []*domain.PendingReport

	err := s.db.View(func(txn *badger.Txn) error {
		var reports []*domain.Report
		err := scanPrefix(txn, ctx, s.logger, reportPrefix, func(r *domain.Report) {
			if r.IsPending() {
				reports = append(reports, r)
			}
		})
		if err != nil {
			return err
		}

		for _, r := range reports {
			var shoutout domain.ShoutOut
			err := txnGet(txn, shoutoutKey(r.ShoutoutID), &shoutout)
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to load shoutout: %w", err)
			}
			pending = append(pending, &domain.PendingReport{
				Report:   *r,
				Shoutout: &shoutout,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reports: %w", err)
	}

	sort.Slice(pending, func(i, j int) bool {
		if !pending[i].Report.CreatedAt.Equal(pending[j].Report.CreatedAt) {
			return pending[i].Report.CreatedAt.Before(pending[j].Report.CreatedAt)
		}
		return pending[i].Report.ID < pending[j].Report.ID
	})
	return pending, nil
}

// ResolveReport transitions a report to resolved and appends the audit
// entry in the same transaction. Resolving an already-resolved report is
// a no-op and writes nothing; the bool reports whether the transition
// actually happened.
func (s *Store) ResolveReport(ctx context.Context, id string, audit *domain.AuditEntry) (*domain.Report, bool, error) {
	var report domain.Report
	resolved := false

	err := s.db.Update(func(txn *badger.Txn) error {
		err := txnGet(txn, reportKey(id), &report)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrReportNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load report: %w", err)
		}

		if !report.Resolve(audit.Admin.ID) {
			return nil
		}
		resolved = true

		if err := txnSet(txn, reportKey(id), &report); err != nil {
			return fmt.Errorf("failed to store report: %w", err)
		}
		return txnSet(txn, auditKey(audit.ID), audit)
	})
	if err != nil {
		return nil, false, err
	}
	return &report, resolved, nil
}
