package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/bragboard/bragboard-server/internal/domain"
)

// AppendAuditEntry records a standalone moderation action. Actions tied
// to another mutation are written inside that mutation's transaction
// instead.
func (s *Store) AppendAuditEntry(ctx context.Context, entry *domain.AuditEntry) error {
	if err := s.set(auditKey(entry.ID), entry); err != nil {
		return fmt.Errorf("failed to store audit entry: %w", err)
	}
	return nil
}

// ListAuditEntries returns the moderation log newest first.
func (s *Store) ListAuditEntries(ctx context.Context) ([]*domain.AuditEntry, error) {
	entries, err := listAll[domain.AuditEntry](s, ctx, auditPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}
