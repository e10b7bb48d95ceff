package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bragboard/bragboard-server/internal/domain"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getLeaderboard",
		Method:      http.MethodGet,
		Path:        "/api/v1/leaderboard",
		Summary:     "Leaderboard",
		Description: "Ranks every user by recognition points",
		Tags:        []string{"Stats"},
	}, s.handleGetLeaderboard)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAdminStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/stats",
		Summary:     "Admin dashboard stats",
		Description: "Returns aggregate engagement numbers; admin only",
		Tags:        []string{"Admin"},
	}, s.handleGetAdminStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAdminLogs",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/logs",
		Summary:     "Moderation log",
		Description: "Returns moderation actions, newest first; admin only",
		Tags:        []string{"Admin"},
	}, s.handleGetAdminLogs)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportAdminStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/stats/export",
		Summary:     "Export stats CSV",
		Description: "Downloads per-user engagement as CSV; admin only",
		Tags:        []string{"Admin"},
	}, s.handleExportAdminStats)
}

// === DTOs ===

// LeaderboardEntryResponse annotates a user with activity counts and points.
type LeaderboardEntryResponse struct {
	User          UserResponse `json:"user" doc:"Directory entry"`
	SentCount     int          `json:"sent_count" doc:"Shout-outs sent"`
	ReceivedCount int          `json:"received_count" doc:"Shout-outs received"`
	Points        int          `json:"points" doc:"Weighted recognition points"`
}

// LeaderboardResponse contains the ranked user list.
type LeaderboardResponse struct {
	Entries []LeaderboardEntryResponse `json:"entries" doc:"Users ranked by points, highest first"`
}

// LeaderboardOutput wraps the leaderboard for Huma.
type LeaderboardOutput struct {
	Body LeaderboardResponse
}

// AdminInput carries the acting admin for admin-only reads.
type AdminInput struct {
	ActorID string `header:"X-Actor-ID" required:"true" doc:"Acting user ID"`
}

// UserCountResponse pairs a user name with an activity count.
type UserCountResponse struct {
	Name  string `json:"name" doc:"Display name"`
	Count int    `json:"count" doc:"Activity count"`
}

// DepartmentCountResponse pairs a department with its shout-out count.
type DepartmentCountResponse struct {
	Department string `json:"department" doc:"Department name"`
	Count      int    `json:"count" doc:"Shout-outs posted from this department"`
}

// AdminStatsResponse contains the dashboard snapshot.
type AdminStatsResponse struct {
	TotalShoutouts       int                       `json:"total_shoutouts" doc:"Total live shout-outs"`
	TotalUsers           int                       `json:"total_users" doc:"Directory size"`
	TopContributors      []UserCountResponse       `json:"top_contributors" doc:"Top five senders"`
	MostTaggedUsers      []UserCountResponse       `json:"most_tagged_users" doc:"Top five recipients"`
	DepartmentEngagement []DepartmentCountResponse `json:"department_engagement" doc:"Posts per department, zero counts included"`
}

// AdminStatsOutput wraps the dashboard snapshot for Huma.
type AdminStatsOutput struct {
	Body AdminStatsResponse
}

// AdminLogsResponse contains the moderation log.
type AdminLogsResponse struct {
	Logs []AuditEntryResponse `json:"logs" doc:"Moderation actions, newest first"`
}

// AdminLogsOutput wraps the moderation log for Huma.
type AdminLogsOutput struct {
	Body AdminLogsResponse
}

// ExportStatsOutput carries the raw CSV download.
type ExportStatsOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// === Handlers ===

func (s *Server) handleGetLeaderboard(ctx context.Context, _ *struct{}) (*LeaderboardOutput, error) {
	entries, err := s.services.Stats.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaderboardEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = LeaderboardEntryResponse{
			User:          toUserResponse(&e.User),
			SentCount:     e.SentCount,
			ReceivedCount: e.ReceivedCount,
			Points:        e.Points,
		}
	}
	return &LeaderboardOutput{Body: LeaderboardResponse{Entries: resp}}, nil
}

func (s *Server) handleGetAdminStats(ctx context.Context, input *AdminInput) (*AdminStatsOutput, error) {
	stats, err := s.services.Stats.AdminStats(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	return &AdminStatsOutput{Body: AdminStatsResponse{
		TotalShoutouts:       stats.TotalShoutouts,
		TotalUsers:           stats.TotalUsers,
		TopContributors:      toUserCountResponses(stats.TopContributors),
		MostTaggedUsers:      toUserCountResponses(stats.MostTaggedUsers),
		DepartmentEngagement: toDepartmentCountResponses(stats.DepartmentEngagement),
	}}, nil
}

func (s *Server) handleGetAdminLogs(ctx context.Context, input *AdminInput) (*AdminLogsOutput, error) {
	entries, err := s.services.Stats.AuditLog(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}
	return &AdminLogsOutput{Body: AdminLogsResponse{Logs: toAuditEntryResponses(entries)}}, nil
}

func (s *Server) handleExportAdminStats(ctx context.Context, input *AdminInput) (*ExportStatsOutput, error) {
	data, err := s.services.Stats.ExportStatsCSV(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}
	return &ExportStatsOutput{
		ContentType:        "text/csv; charset=utf-8",
		ContentDisposition: `attachment; filename="bragboard-stats.csv"`,
		Body:               data,
	}, nil
}

func toUserCountResponses(counts []domain.UserCount) []UserCountResponse {
	resp := make([]UserCountResponse, len(counts))
	for i, c := range counts {
		resp[i] = UserCountResponse{Name: c.Name, Count: c.Count}
	}
	return resp
}

func toDepartmentCountResponses(counts []domain.DepartmentCount) []DepartmentCountResponse {
	resp := make([]DepartmentCountResponse, len(counts))
	for i, c := range counts {
		resp[i] = DepartmentCountResponse{Department: c.Department, Count: c.Count}
	}
	return resp
}
