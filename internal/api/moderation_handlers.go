package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerModerationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "reportShoutout",
		Method:      http.MethodPost,
		Path:        "/api/v1/shoutouts/{id}/reports",
		Summary:     "Report shout-out",
		Description: "Flags a shout-out for admin review",
		Tags:        []string{"Moderation"},
	}, s.handleReportShoutout)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPendingReports",
		Method:      http.MethodGet,
		Path:        "/api/v1/reports/pending",
		Summary:     "Pending reports",
		Description: "Returns the moderation queue with target snapshots; admin only",
		Tags:        []string{"Moderation"},
	}, s.handleListPendingReports)

	huma.Register(s.api, huma.Operation{
		OperationID: "resolveReport",
		Method:      http.MethodPost,
		Path:        "/api/v1/reports/{id}/resolve",
		Summary:     "Resolve report",
		Description: "Marks a report handled; resolving twice is a no-op; admin only",
		Tags:        []string{"Moderation"},
	}, s.handleResolveReport)
}

// === DTOs ===

// ReportShoutoutRequest is the request body for filing a report.
type ReportShoutoutRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500" doc:"Reason for the report"`
}

// ReportShoutoutInput wraps the report request for Huma.
type ReportShoutoutInput struct {
	ActorID string `header:"X-Actor-ID" required:"true" doc:"Acting user ID"`
	ID      string `path:"id" doc:"Shout-out ID"`
	Body    ReportShoutoutRequest
}

// ReportOutput wraps a single report response for Huma.
type ReportOutput struct {
	Body ReportResponse
}

// ListPendingReportsInput carries the acting admin.
type ListPendingReportsInput struct {
	ActorID string `header:"X-Actor-ID" required:"true" doc:"Acting user ID"`
}

// PendingReportResponse joins a report with a snapshot of its target.
type PendingReportResponse struct {
	Report   ReportResponse    `json:"report" doc:"The pending report"`
	Shoutout *ShoutoutResponse `json:"shoutout" doc:"The reported shout-out"`
}

// ListPendingReportsResponse contains the moderation queue.
type ListPendingReportsResponse struct {
	Reports []PendingReportResponse `json:"reports" doc:"Pending reports, oldest first"`
}

// ListPendingReportsOutput wraps the queue for Huma.
type ListPendingReportsOutput struct {
	Body ListPendingReportsResponse
}

// ResolveReportInput contains parameters for resolving a report.
type ResolveReportInput struct {
	ActorID string `header:"X-Actor-ID" required:"true" doc:"Acting user ID"`
	ID      string `path:"id" doc:"Report ID"`
}

// === Handlers ===

func (s *Server) handleReportShoutout(ctx context.Context, input *ReportShoutoutInput) (*ReportOutput, error) {
	report, err := s.services.Moderation.ReportShoutout(ctx, input.ID, input.ActorID, input.Body.Reason)
	if err != nil {
		return nil, err
	}
	return &ReportOutput{Body: toReportResponse(report)}, nil
}

func (s *Server) handleListPendingReports(ctx context.Context, input *ListPendingReportsInput) (*ListPendingReportsOutput, error) {
	pending, err := s.services.Moderation.PendingReports(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	resp := make([]PendingReportResponse, len(pending))
	for i, p := range pending {
		entry := PendingReportResponse{Report: toReportResponse(&p.Report)}
		if p.Shoutout != nil {
			so := toShoutoutResponse(p.Shoutout)
			entry.Shoutout = &so
		}
		resp[i] = entry
	}
	return &ListPendingReportsOutput{Body: ListPendingReportsResponse{Reports: resp}}, nil
}

func (s *Server) handleResolveReport(ctx context.Context, input *ResolveReportInput) (*ReportOutput, error) {
	report, err := s.services.Moderation.ResolveReport(ctx, input.ID, input.ActorID)
	if err != nil {
		return nil, err
	}
	return &ReportOutput{Body: toReportResponse(report)}, nil
}
