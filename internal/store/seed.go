package store

import (
	"context"
	"fmt"
	"time"

	"github.com/bragboard/bragboard-server/internal/domain"
	"github.com/bragboard/bragboard-server/internal/id"
)

// SeedBaseline populates the demo directory and one starter shout-out on
// first run. It is a no-op when the directory already has users, so
// restarts never duplicate the baseline.
func (s *Store) SeedBaseline(ctx context.Context) error {
	count, err := s.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if s.logger != nil {
		s.logger.Info("Empty directory detected, seeding baseline data")
	}

	now := time.Now()
	seed := []struct {
		name       string
		email      string
		department string
		role       domain.Role
		joined     string
	}{
		{"Alice Smith", "alice@company.com", "Engineering", domain.RoleAdmin, "2023-01-15"},
		{"Bob Johnson", "bob@company.com", "Sales", domain.RoleEmployee, "2023-02-20"},
		{"Charlie Davis", "charlie@company.com", "Product", domain.RoleEmployee, "2023-03-05"},
		{"Diana Prince", "diana@company.com", "Engineering", domain.RoleEmployee, "2023-04-12"},
		{"Vinod Kumar", "vinod@company.com", "IT Operations", domain.RoleAdmin, "2024-01-01"},
	}

	users := make([]*domain.User, 0, len(seed))
	for i, u := range seed {
		joined, err := time.Parse("2006-01-02", u.joined)
		if err != nil {
			return fmt.Errorf("invalid seed join date: %w", err)
		}

		userID, err := id.Generate("usr")
		if err != nil {
			return fmt.Errorf("failed to generate user id: %w", err)
		}

		user := &domain.User{
			ID:         userID,
			Name:       u.name,
			Email:      u.email,
			Department: u.department,
			Role:       u.role,
			JoinedAt:   joined,
			// Staggered creation times keep the directory order stable.
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
			UpdatedAt: now.Add(time.Duration(i) * time.Millisecond),
		}
		if err := s.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.name, err)
		}
		users = append(users, user)
	}

	alice, bob, charlie, diana := users[0], users[1], users[2], users[3]

	shoutoutID, err := id.Generate("so")
	if err != nil {
		return fmt.Errorf("failed to generate shoutout id: %w", err)
	}

	shoutout := &domain.ShoutOut{
		ID:       shoutoutID,
		SenderID: alice.ID,
		Sender:   alice.Ref(),
		Message: "Huge thanks to @Bob Johnson for helping with the server migration! " +
			"We couldn't have done it without your late-night debugging session. 🚀",
		Recipients: []domain.UserRef{bob.Ref()},
		Reactions: []domain.Reaction{
			{ID: id.MustGenerate("rct"), ShoutoutID: shoutoutID, UserID: charlie.ID, Type: domain.ReactionClap},
			{ID: id.MustGenerate("rct"), ShoutoutID: shoutoutID, UserID: diana.ID, Type: domain.ReactionLike},
		},
		CommentsCount: 1,
		CreatedAt:     now.Add(-24 * time.Hour),
	}
	if err := s.CreateShoutout(ctx, shoutout); err != nil {
		return fmt.Errorf("failed to seed shoutout: %w", err)
	}

	comment := &domain.Comment{
		ID:         id.MustGenerate("cmt"),
		ShoutoutID: shoutoutID,
		UserID:     diana.ID,
		Author:     diana.Ref(),
		Content:    "Well deserved Bob! You rock!",
		CreatedAt:  now,
	}
	// The counter was seeded above, so write the comment record directly.
	if err := s.set(commentKey(comment.ID), comment); err != nil {
		return fmt.Errorf("failed to seed comment: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Baseline data seeded", "users", len(users))
	}
	return nil
}
