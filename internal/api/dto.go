package api

import (
	"time"

	"github.com/bragboard/bragboard-server/internal/domain"
)

// Shared response DTOs. Handler-specific request and wrapper types live
// next to their handlers.

// UserResponse contains directory entry data in API responses.
type UserResponse struct {
	ID         string    `json:"id" doc:"User ID"`
	Name       string    `json:"name" doc:"Display name"`
	Email      string    `json:"email" doc:"Email address"`
	Department string    `json:"department,omitempty" doc:"Department name"`
	Role       string    `json:"role" doc:"admin or employee"`
	JoinedAt   time.Time `json:"joined_at" doc:"Company join date"`
	CreatedAt  time.Time `json:"created_at" doc:"Directory entry creation time"`
	UpdatedAt  time.Time `json:"updated_at" doc:"Last profile update time"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Department: u.Department,
		Role:       string(u.Role),
		JoinedAt:   u.JoinedAt,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	return resp
}

// UserRefResponse is a point-in-time user snapshot embedded in posts,
// comments, reports, and audit entries.
type UserRefResponse struct {
	ID         string `json:"id" doc:"User ID"`
	Name       string `json:"name" doc:"Name at snapshot time"`
	Email      string `json:"email" doc:"Email at snapshot time"`
	Department string `json:"department,omitempty" doc:"Department at snapshot time"`
	Role       string `json:"role" doc:"Role at snapshot time"`
}

func toUserRefResponse(r domain.UserRef) UserRefResponse {
	return UserRefResponse{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Department: r.Department,
		Role:       string(r.Role),
	}
}

// ReactionResponse contains one reaction on a shout-out.
type ReactionResponse struct {
	ID         string `json:"id" doc:"Reaction ID"`
	ShoutoutID string `json:"shoutout_id" doc:"Parent shout-out ID"`
	UserID     string `json:"user_id" doc:"Reacting user ID"`
	Type       string `json:"type" doc:"like, clap, or star"`
}

func toReactionResponses(reactions []domain.Reaction) []ReactionResponse {
	resp := make([]ReactionResponse, len(reactions))
	for i, r := range reactions {
		resp[i] = ReactionResponse{
			ID:         r.ID,
			ShoutoutID: r.ShoutoutID,
			UserID:     r.UserID,
			Type:       string(r.Type),
		}
	}
	return resp
}

// ShoutoutResponse contains shout-out data in API responses.
type ShoutoutResponse struct {
	ID            string             `json:"id" doc:"Shout-out ID"`
	SenderID      string             `json:"sender_id" doc:"Sender user ID"`
	Sender        UserRefResponse    `json:"sender" doc:"Sender snapshot at post time"`
	Message       string             `json:"message" doc:"Recognition message"`
	ImageURL      string             `json:"image_url,omitempty" doc:"Optional image URL"`
	Recipients    []UserRefResponse  `json:"recipients" doc:"Recipient snapshots"`
	Reactions     []ReactionResponse `json:"reactions" doc:"Current reactions"`
	CommentsCount int                `json:"comments_count" doc:"Number of comments"`
	CreatedAt     time.Time          `json:"created_at" doc:"Post time"`
}

func toShoutoutResponse(so *domain.ShoutOut) ShoutoutResponse {
	recipients := make([]UserRefResponse, len(so.Recipients))
	for i, r := range so.Recipients {
		recipients[i] = toUserRefResponse(r)
	}
	return ShoutoutResponse{
		ID:            so.ID,
		SenderID:      so.SenderID,
		Sender:        toUserRefResponse(so.Sender),
		Message:       so.Message,
		ImageURL:      so.ImageURL,
		Recipients:    recipients,
		Reactions:     toReactionResponses(so.Reactions),
		CommentsCount: so.CommentsCount,
		CreatedAt:     so.CreatedAt,
	}
}

// CommentResponse contains comment data in API responses.
type CommentResponse struct {
	ID         string          `json:"id" doc:"Comment ID"`
	ShoutoutID string          `json:"shoutout_id" doc:"Parent shout-out ID"`
	UserID     string          `json:"user_id" doc:"Author user ID"`
	Author     UserRefResponse `json:"author" doc:"Author snapshot at comment time"`
	Content    string          `json:"content" doc:"Comment text"`
	CreatedAt  time.Time       `json:"created_at" doc:"Comment time"`
}

func toCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		ShoutoutID: c.ShoutoutID,
		UserID:     c.UserID,
		Author:     toUserRefResponse(c.Author),
		Content:    c.Content,
		CreatedAt:  c.CreatedAt,
	}
}

// ReportResponse contains report data in API responses.
type ReportResponse struct {
	ID         string          `json:"id" doc:"Report ID"`
	ShoutoutID string          `json:"shoutout_id" doc:"Reported shout-out ID"`
	ReportedBy string          `json:"reported_by" doc:"Reporter user ID"`
	Reporter   UserRefResponse `json:"reporter" doc:"Reporter snapshot at report time"`
	Reason     string          `json:"reason" doc:"Reason for the report"`
	Status     string          `json:"status" doc:"pending or resolved"`
	CreatedAt  time.Time       `json:"created_at" doc:"Report time"`
	ResolvedBy string          `json:"resolved_by,omitempty" doc:"Resolving admin user ID"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty" doc:"Resolution time"`
}

func toReportResponse(r *domain.Report) ReportResponse {
	return ReportResponse{
		ID:         r.ID,
		ShoutoutID: r.ShoutoutID,
		ReportedBy: r.ReportedBy,
		Reporter:   toUserRefResponse(r.Reporter),
		Reason:     r.Reason,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		ResolvedBy: r.ResolvedBy,
		ResolvedAt: r.ResolvedAt,
	}
}

// AuditEntryResponse contains one moderation log record.
type AuditEntryResponse struct {
	ID         string          `json:"id" doc:"Log entry ID"`
	Admin      UserRefResponse `json:"admin" doc:"Acting admin snapshot"`
	Action     string          `json:"action" doc:"DELETED_SHOUTOUT, DELETED_COMMENT, or RESOLVED_REPORT"`
	TargetID   string          `json:"target_id" doc:"Affected entity ID"`
	TargetType string          `json:"target_type" doc:"shoutout or comment"`
	Timestamp  time.Time       `json:"timestamp" doc:"Action time"`
}

func toAuditEntryResponses(entries []*domain.AuditEntry) []AuditEntryResponse {
	resp := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = AuditEntryResponse{
			ID:         e.ID,
			Admin:      toUserRefResponse(e.Admin),
			Action:     string(e.Action),
			TargetID:   e.TargetID,
			TargetType: string(e.TargetType),
			Timestamp:  e.Timestamp,
		}
	}
	return resp
}
