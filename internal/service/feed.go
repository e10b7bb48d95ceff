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

// FeedService manages shout-outs, reactions, and comments.
type FeedService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewFeedService creates a new feed service.
func NewFeedService(store *store.Store, logger *slog.Logger) *FeedService {
	return &FeedService{
		store:  store,
		logger: logger,
	}
}

// CreateShoutoutParams describes a new recognition post.
type CreateShoutoutParams struct {
	SenderID     string
	Message      string
	RecipientIDs []string
	ImageURL     string
}

// CreateShoutout posts a new shout-out. The sender must exist; unknown
// recipient IDs are dropped, but at least one must resolve.
func (s *FeedService) CreateShoutout(ctx context.Context, params CreateShoutoutParams) (*domain.ShoutOut, error) {
	if strings.TrimSpace(params.Message) == "" {
		return nil, domainerrors.Validation("message cannot be empty")
	}

	sender, err := s.store.GetUser(ctx, params.SenderID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, domainerrors.NotFoundf("sender %s not found", params.SenderID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading sender: %w", err)
	}

	seen := make(map[string]bool)
	recipients := make([]domain.UserRef, 0, len(params.RecipientIDs))
	for _, rid := range params.RecipientIDs {
		if seen[rid] {
			continue
		}
		seen[rid] = true

		recipient, err := s.store.GetUser(ctx, rid)
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("dropping unknown recipient", "recipient_id", rid)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading recipient: %w", err)
		}
		recipients = append(recipients, recipient.Ref())
	}
	if len(recipients) == 0 {
		return nil, domainerrors.Validation("at least one valid recipient is required")
	}

	shoutoutID, err := id.Generate("so")
	if err != nil {
		return nil, fmt.Errorf("generating shoutout id: %w", err)
	}

	shoutout := &domain.ShoutOut{
		ID:         shoutoutID,
		SenderID:   sender.ID,
		Sender:     sender.Ref(),
		Message:    params.Message,
		ImageURL:   strings.TrimSpace(params.ImageURL),
		Recipients: recipients,
		Reactions:  []domain.Reaction{},
		CreatedAt:  time.Now(),
	}
	if err := s.store.CreateShoutout(ctx, shoutout); err != nil {
		return nil, fmt.Errorf("creating shoutout: %w", err)
	}

	s.logger.Info("shoutout posted",
		"shoutout_id", shoutout.ID,
		"sender_id", sender.ID,
		"recipients", len(recipients))
	return shoutout, nil
}

// ShoutoutFilters narrows the feed. All filters are conjunctive; zero
// values mean no filtering on that dimension.
type ShoutoutFilters struct {
	Department  string
	SenderID    string
	RecipientID string
	Query       string
}

// ListShoutouts returns the feed, newest first, narrowed by filters.
// Department and query matching use the sender snapshot taken at post
// time, not the live directory.
func (s *FeedService) ListShoutouts(ctx context.Context, filters ShoutoutFilters) ([]*domain.ShoutOut, error) {
	shoutouts, err := s.store.ListShoutouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing shoutouts: %w", err)
	}

	filtered := make([]*domain.ShoutOut, 0, len(shoutouts))
	for _, so := range shoutouts {
		if filters.Department != "" && so.Sender.Department != filters.Department {
			continue
		}
		if filters.SenderID != "" && so.SenderID != filters.SenderID {
			continue
		}
		if filters.RecipientID != "" && !so.HasRecipient(filters.RecipientID) {
			continue
		}
		if filters.Query != "" && !so.MatchesQuery(filters.Query) {
			continue
		}
		filtered = append(filtered, so)
	}
	return filtered, nil
}

// GetShoutout returns a single shout-out.
func (s *FeedService) GetShoutout(ctx context.Context, shoutoutID string) (*domain.ShoutOut, error) {
	shoutout, err := s.store.GetShoutout(ctx, shoutoutID)
	if errors.Is(err, store.ErrShoutoutNotFound) {
		return nil, domainerrors.NotFoundf("shoutout %s not found", shoutoutID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting shoutout: %w", err)
	}
	return shoutout, nil
}

// ToggleReaction flips the (user, type) reaction on a shout-out and
// returns the updated reaction list.
func (s *FeedService) ToggleReaction(ctx context.Context, shoutoutID, userID string, rtype domain.ReactionType) ([]domain.Reaction, error) {
	if !rtype.Valid() {
		return nil, domainerrors.Validationf("unknown reaction type %q", rtype)
	}

	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotFoundf("user %s not found", userID)
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	reactionID, err := id.Generate("rct")
	if err != nil {
		return nil, fmt.Errorf("generating reaction id: %w", err)
	}

	updated, err := s.store.ToggleReaction(ctx, shoutoutID, userID, rtype, reactionID)
	if errors.Is(err, store.ErrShoutoutNotFound) {
		return nil, domainerrors.NotFoundf("shoutout %s not found", shoutoutID)
	}
	if err != nil {
		return nil, fmt.Errorf("toggling reaction: %w", err)
	}
	return updated.Reactions, nil
}

// DeleteShoutout removes a post and everything hanging off it. Only the
// original sender or an admin may delete; admin deletions land in the
// moderation log.
func (s *FeedService) DeleteShoutout(ctx context.Context, shoutoutID, actorID string) error {
	actor, err := s.store.GetUser(ctx, actorID)
	if errors.Is(err, store.ErrUserNotFound) {
		return domainerrors.NotFoundf("user %s not found", actorID)
	}
	if err != nil {
		return fmt.Errorf("loading actor: %w", err)
	}

	shoutout, err := s.GetShoutout(ctx, shoutoutID)
	if err != nil {
		return err
	}

	if shoutout.SenderID != actorID && !actor.IsAdmin() {
		return domainerrors.Forbidden("only the sender or an admin can delete a shoutout")
	}

	var entry *domain.AuditEntry
	if actor.IsAdmin() {
		entry = &domain.AuditEntry{
			ID:         id.MustGenerate("log"),
			Admin:      actor.Ref(),
			Action:     domain.AuditDeletedShoutout,
			TargetID:   shoutoutID,
			TargetType: domain.AuditTargetShoutout,
			Timestamp:  time.Now(),
		}
	}

	err = s.store.DeleteShoutout(ctx, shoutoutID, entry)
	if errors.Is(err, store.ErrShoutoutNotFound) {
		return domainerrors.NotFoundf("shoutout %s not found", shoutoutID)
	}
	if err != nil {
		return fmt.Errorf("deleting shoutout: %w", err)
	}

	s.logger.Info("shoutout deleted",
		"shoutout_id", shoutoutID,
		"actor_id", actorID,
		"by_admin", actor.IsAdmin())
	return nil
}

// ListComments returns a shout-out's comments oldest first.
func (s *FeedService) ListComments(ctx context.Context, shoutoutID string) ([]*domain.Comment, error) {
	if _, err := s.GetShoutout(ctx, shoutoutID); err != nil {
		return nil, err
	}

	comments, err := s.store.ListComments(ctx, shoutoutID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// AddComment attaches a comment to a shout-out and bumps its counter.
func (s *FeedService) AddComment(ctx context.Context, shoutoutID, authorID, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domainerrors.Validation("comment cannot be empty")
	}

	author, err := s.store.GetUser(ctx, authorID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, domainerrors.NotFoundf("user %s not found", authorID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading author: %w", err)
	}

	commentID, err := id.Generate("cmt")
	if err != nil {
		return nil, fmt.Errorf("generating comment id: %w", err)
	}

	comment := &domain.Comment{
		ID:         commentID,
		ShoutoutID: shoutoutID,
		UserID:     author.ID,
		Author:     author.Ref(),
		Content:    content,
		CreatedAt:  time.Now(),
	}

	err = s.store.AddComment(ctx, comment)
	if errors.Is(err, store.ErrShoutoutNotFound) {
		return nil, domainerrors.NotFoundf("shoutout %s not found", shoutoutID)
	}
	if err != nil {
		return nil, fmt.Errorf("adding comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the comment's author or an
// admin may delete; admin deletions land in the moderation log.
func (s *FeedService) DeleteComment(ctx context.Context, commentID, actorID string) error {
	actor, err := s.store.GetUser(ctx, actorID)
	if errors.Is(err, store.ErrUserNotFound) {
		return domainerrors.NotFoundf("user %s not found", actorID)
	}
	if err != nil {
		return fmt.Errorf("loading actor: %w", err)
	}

	comment, err := s.store.GetComment(ctx, commentID)
	if errors.Is(err, store.ErrCommentNotFound) {
		return domainerrors.NotFoundf("comment %s not found", commentID)
	}
	if err != nil {
		return fmt.Errorf("loading comment: %w", err)
	}

	if comment.UserID != actorID && !actor.IsAdmin() {
		return domainerrors.Forbidden("only the author or an admin can delete a comment")
	}

	var entry *domain.AuditEntry
	if actor.IsAdmin() {
		entry = &domain.AuditEntry{
			ID:         id.MustGenerate("log"),
			Admin:      actor.Ref(),
			Action:     domain.AuditDeletedComment,
			TargetID:   commentID,
			TargetType: domain.AuditTargetComment,
			Timestamp:  time.Now(),
		}
	}

	err = s.store.DeleteComment(ctx, commentID, entry)
	if errors.Is(err, store.ErrCommentNotFound) {
		return domainerrors.NotFoundf("comment %s not found", commentID)
	}
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	s.logger.Info("comment deleted",
		"comment_id", commentID,
		"actor_id", actorID,
		"by_admin", actor.IsAdmin())
	return nil
}
