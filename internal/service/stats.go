package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/bragboard/bragboard-server/internal/domain"
	"github.com/bragboard/bragboard-server/internal/store"
)

// topListSize caps the contributor and most-tagged leaderboards on the
// admin dashboard.
const topListSize = 5

// StatsService computes dashboard aggregates, the points leaderboard,
// and the CSV export. Everything is derived fresh from collection state
// on each call; nothing here is cached.
type StatsService struct {
	store      *store.Store
	moderation *ModerationService
	logger     *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(store *store.Store, moderation *ModerationService, logger *slog.Logger) *StatsService {
	return &StatsService{
		store:      store,
		moderation: moderation,
		logger:     logger,
	}
}

// activityCounts tallies sent and received shout-outs per user ID.
func activityCounts(shoutouts []*domain.ShoutOut) (sent, received map[string]int) {
	sent = make(map[string]int)
	received = make(map[string]int)
	for _, so := range shoutouts {
		sent[so.SenderID]++
		for _, r := range so.Recipients {
			received[r.ID]++
		}
	}
	return sent, received
}

// AdminStats returns the dashboard snapshot. Admin only.
func (s *StatsService) AdminStats(ctx context.Context, actorID string) (*domain.AdminStats, error) {
	if _, err := s.moderation.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	shoutouts, err := s.store.ListShoutouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing shoutouts: %w", err)
	}

	sent, received := activityCounts(shoutouts)

	contributors := make([]domain.UserCount, 0, len(users))
	tagged := make([]domain.UserCount, 0, len(users))
	for _, u := range users {
		contributors = append(contributors, domain.UserCount{Name: u.Name, Count: sent[u.ID]})
		tagged = append(tagged, domain.UserCount{Name: u.Name, Count: received[u.ID]})
	}
	sortTop(contributors)
	sortTop(tagged)

	// Department engagement covers every department in the directory,
	// including those with zero posts. Counting uses the sender snapshot
	// taken at post time.
	deptCounts := make(map[string]int)
	for _, u := range users {
		if u.Department != "" {
			deptCounts[u.Department] = 0
		}
	}
	for _, so := range shoutouts {
		if so.Sender.Department != "" {
			deptCounts[so.Sender.Department]++
		}
	}
	departments := make([]domain.DepartmentCount, 0, len(deptCounts))
	for dept, count := range deptCounts {
		departments = append(departments, domain.DepartmentCount{Department: dept, Count: count})
	}
	sort.Slice(departments, func(i, j int) bool {
		if departments[i].Count != departments[j].Count {
			return departments[i].Count > departments[j].Count
		}
		return departments[i].Department < departments[j].Department
	})

	return &domain.AdminStats{
		TotalShoutouts:       len(shoutouts),
		TotalUsers:           len(users),
		TopContributors:      truncate(contributors, topListSize),
		MostTaggedUsers:      truncate(tagged, topListSize),
		DepartmentEngagement: departments,
	}, nil
}

// sortTop orders by count descending; ties keep directory order.
func sortTop(counts []domain.UserCount) {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
}

func truncate(counts []domain.UserCount, n int) []domain.UserCount {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}

// Leaderboard ranks every directory user by weighted points: sending a
// shout-out scores 10, being named on one scores 15. Ties keep
// directory order. Visible to all users.
func (s *StatsService) Leaderboard(ctx context.Context) ([]*domain.LeaderboardEntry, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	shoutouts, err := s.store.ListShoutouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing shoutouts: %w", err)
	}

	sent, received := activityCounts(shoutouts)

	entries := make([]*domain.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		sentCount := sent[u.ID]
		receivedCount := received[u.ID]
		entries = append(entries, &domain.LeaderboardEntry{
			User:          *u,
			SentCount:     sentCount,
			ReceivedCount: receivedCount,
			Points:        sentCount*domain.PointsPerSent + receivedCount*domain.PointsPerReceived,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries, nil
}

// AuditLog returns the moderation log, newest first. Admin only.
func (s *StatsService) AuditLog(ctx context.Context, actorID string) ([]*domain.AuditEntry, error) {
	if _, err := s.moderation.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	entries, err := s.store.ListAuditEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	return entries, nil
}

// ExportStatsCSV renders per-user engagement as CSV, one row per
// directory user in leaderboard order. Admin only.
func (s *StatsService) ExportStatsCSV(ctx context.Context, actorID string) ([]byte, error) {
	if _, err := s.moderation.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	entries, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"name", "email", "department", "role", "joined_at", "sent", "received", "points"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.User.Name,
			e.User.Email,
			e.User.Department,
			string(e.User.Role),
			e.User.JoinedAt.Format("2006-01-02"),
			strconv.Itoa(e.SentCount),
			strconv.Itoa(e.ReceivedCount),
			strconv.Itoa(e.Points),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	s.logger.Info("stats exported", "admin_id", actorID, "rows", len(entries))
	return buf.Bytes(), nil
}
