package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bragboard/bragboard-server/internal/domain"
	"github.com/bragboard/bragboard-server/internal/service"
)

func (s *Server) registerShoutoutRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listShoutouts",
		Method:      http.MethodGet,
		Path:        "/api/v1/shoutouts",
		Summary:     "List shout-outs",
		Description: "Returns the recognition feed, newest first, optionally filtered",
		Tags:        []string{"Shoutouts"},
	}, s.handleListShoutouts)

	huma.Register(s.api, huma.Operation{
		OperationID: "createShoutout",
		Method:      http.MethodPost,
		Path:        "/api/v1/shoutouts",
		Summary:     "Post shout-out",
		Description: "Posts a new recognition message naming one or more recipients",
		Tags:        []string{"Shoutouts"},
	}, s.handleCreateShoutout)

	huma.Register(s.api, huma.Operation{
		OperationID: "getShoutout",
		Method:      http.MethodGet,
		Path:        "/api/v1/shoutouts/{id}",
		Summary:     "Get shout-out",
		Description: "Returns a shout-out by ID",
		Tags:        []string{"Shoutouts"},
	}, s.handleGetShoutout)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteShoutout",
		Method:      http.MethodDelete,
		Path:        "/api/v1/shoutouts/{id}",
		Summary:     "Delete shout-out",
		Description: "Removes a shout-out with its comments and reports; sender or admin only",
		Tags:        []string{"Shoutouts"},
	}, s.handleDeleteShoutout)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleReaction",
		Method:      http.MethodPost,
		Path:        "/api/v1/shoutouts/{id}/reactions",
		Summary:     "Toggle reaction",
		Description: "Adds the actor's reaction of the given type, or removes it if already present",
		Tags:        []string{"Shoutouts"},
	}, s.handleToggleReaction)

	huma.Register(s.api, huma.Operation{
		OperationID: "listComments",
		Method:      http.MethodGet,
		Path:        "/api/v1/shoutouts/{id}/comments",
		Summary:     "List comments",
		Description: "Returns a shout-out's comments, oldest first",
		Tags:        []string{"Comments"},
	}, s.handleListComments)

	huma.Register(s.api, huma.Operation{
		OperationID: "addComment",
		Method:      http.MethodPost,
		Path:        "/api/v1/shoutouts/{id}/comments",
		Summary:     "Add comment",
		Description: "Attaches a comment to a shout-out",
		Tags:        []string{"Comments"},
	}, s.handleAddComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteComment",
		Method:      http.MethodDelete,
		Path:        "/api/v1/comments/{id}",
		Summary:     "Delete comment",
		Description: "Removes a comment; author or admin only",
		Tags:        []string{"Comments"},
	}, s.handleDeleteComment)
}

// === DTOs ===

// ListShoutoutsInput contains the feed filters. All are optional and
// conjunctive.
type ListShoutoutsInput struct {
	Department  string `query:"department" doc:"Sender department at post time"`
	SenderID    string `query:"sender_id" doc:"Sender user ID"`
	RecipientID string `query:"recipient_id" doc:"Recipient user ID"`
	Query       string `query:"q" doc:"Substring match on message or sender name"`
}

// ListShoutoutsResponse contains the feed listing.
type ListShoutoutsResponse struct {
	Shoutouts []ShoutoutResponse `json:"shoutouts" doc:"Feed entries, newest first"`
}

// ListShoutoutsOutput wraps the feed listing for Huma.
type ListShoutoutsOutput struct {
	Body ListShoutoutsResponse
}

// CreateShoutoutRequest is the request body for posting a shout-out.
type CreateShoutoutRequest struct {
	Message      string   `json:"message" validate:"required,min=1,max=2000" doc:"Recognition message"`
	RecipientIDs []string `json:"recipient_ids" validate:"required,min=1" doc:"Recipient user IDs; unknown IDs are dropped"`
	ImageURL     string   `json:"image_url,omitempty" validate:"omitempty,url" doc:"Optional image URL"`
}

// CreateShoutoutInput wraps the create request for Huma.
type CreateShoutoutInput struct {
	ActorID string `header:"X-Actor-ID" required:"true" doc:"Acting user ID"`
	Body    CreateShoutoutRequest
}

// ShoutoutOutput wraps a single shout-out response for Huma.
type ShoutoutOutput struct {
	Body ShoutoutResponse
}

// GetShoutoutInput contains parameters for fetching a shout-out.
type GetShoutoutInput struct {
	ID string `path:"id" doc:"Shout-out ID"`
}

// DeleteShoutoutInput contains parameters for deleting a shout-out.
type DeleteShoutoutInput struct {
	ActorID string `header:"X-Actor-ID" required:"true" doc:"Acting user ID"`
	ID      string `path:"id" doc:"Shout-out ID"`
}

// DeleteOutput is the empty delete response.
type DeleteOutput struct {
	Status int
}

// ToggleReactionRequest is the request body for toggling a reaction.
type ToggleReactionRequest struct {
	Type string `json:"type" validate:"required,oneof=like clap star" doc:"Reaction type"`
}

// ToggleReactionInput wraps the toggle request for Huma.
type ToggleReactionInput struct {
	ActorID string `header:"X-Actor-ID" required:"true" doc:"Acting user ID"`
	ID      string `path:"id" doc:"Shout-out ID"`
	Body    ToggleReactionRequest
}

// ReactionsResponse contains the post-toggle reaction list.
type ReactionsResponse struct {
	Reactions []ReactionResponse `json:"reactions" doc:"Reactions after the toggle"`
}

// ReactionsOutput wraps the reaction list for Huma.
type ReactionsOutput struct {
	Body ReactionsResponse
}

// ListCommentsInput contains parameters for listing comments.
type ListCommentsInput struct {
	ID string `path:"id" doc:"Shout-out ID"`
}

// ListCommentsResponse contains a shout-out's comments.
type ListCommentsResponse struct {
	Comments []CommentResponse `json:"comments" doc:"Comments, oldest first"`
}

// ListCommentsOutput wraps the comment listing for Huma.
type ListCommentsOutput struct {
	Body ListCommentsResponse
}

// AddCommentRequest is the request body for commenting.
type AddCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000" doc:"Comment text"`
}

// AddCommentInput wraps the comment request for Huma.
type AddCommentInput struct {
	ActorID string `header:"X-Actor-ID" required:"true" doc:"Acting user ID"`
	ID      string `path:"id" doc:"Shout-out ID"`
	Body    AddCommentRequest
}

// CommentOutput wraps a single comment response for Huma.
type CommentOutput struct {
	Body CommentResponse
}

// DeleteCommentInput contains parameters for deleting a comment.
type DeleteCommentInput struct {
	ActorID string `header:"X-Actor-ID" required:"true" doc:"Acting user ID"`
	ID      string `path:"id" doc:"Comment ID"`
}

// === Handlers ===

func (s *Server) handleListShoutouts(ctx context.Context, input *ListShoutoutsInput) (*ListShoutoutsOutput, error) {
	shoutouts, err := s.services.Feed.ListShoutouts(ctx, service.ShoutoutFilters{
		Department:  input.Department,
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		Query:       input.Query,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]ShoutoutResponse, len(shoutouts))
	for i, so := range shoutouts {
		resp[i] = toShoutoutResponse(so)
	}
	return &ListShoutoutsOutput{Body: ListShoutoutsResponse{Shoutouts: resp}}, nil
}

func (s *Server) handleCreateShoutout(ctx context.Context, input *CreateShoutoutInput) (*ShoutoutOutput, error) {
	so, err := s.services.Feed.CreateShoutout(ctx, service.CreateShoutoutParams{
		SenderID:     input.ActorID,
		Message:      input.Body.Message,
		RecipientIDs: input.Body.RecipientIDs,
		ImageURL:     input.Body.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return &ShoutoutOutput{Body: toShoutoutResponse(so)}, nil
}

func (s *Server) handleGetShoutout(ctx context.Context, input *GetShoutoutInput) (*ShoutoutOutput, error) {
	so, err := s.services.Feed.GetShoutout(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ShoutoutOutput{Body: toShoutoutResponse(so)}, nil
}

func (s *Server) handleDeleteShoutout(ctx context.Context, input *DeleteShoutoutInput) (*DeleteOutput, error) {
	if err := s.services.Feed.DeleteShoutout(ctx, input.ID, input.ActorID); err != nil {
		return nil, err
	}
	return &DeleteOutput{Status: http.StatusNoContent}, nil
}

func (s *Server) handleToggleReaction(ctx context.Context, input *ToggleReactionInput) (*ReactionsOutput, error) {
	reactions, err := s.services.Feed.ToggleReaction(ctx, input.ID, input.ActorID, domain.ReactionType(input.Body.Type))
	if err != nil {
		return nil, err
	}
	return &ReactionsOutput{Body: ReactionsResponse{Reactions: toReactionResponses(reactions)}}, nil
}

func (s *Server) handleListComments(ctx context.Context, input *ListCommentsInput) (*ListCommentsOutput, error) {
	comments, err := s.services.Feed.ListComments(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]CommentResponse, len(comments))
	for i, c := range comments {
		resp[i] = toCommentResponse(c)
	}
	return &ListCommentsOutput{Body: ListCommentsResponse{Comments: resp}}, nil
}

func (s *Server) handleAddComment(ctx context.Context, input *AddCommentInput) (*CommentOutput, error) {
	comment, err := s.services.Feed.AddComment(ctx, input.ID, input.ActorID, input.Body.Content)
	if err != nil {
		return nil, err
	}
	return &CommentOutput{Body: toCommentResponse(comment)}, nil
}

func (s *Server) handleDeleteComment(ctx context.Context, input *DeleteCommentInput) (*DeleteOutput, error) {
	if err := s.services.Feed.DeleteComment(ctx, input.ID, input.ActorID); err != nil {
		return nil, err
	}
	return &DeleteOutput{Status: http.StatusNoContent}, nil
}
