// Package main provides a tool to seed the database with demo recognition data.
//
// This ensures the baseline directory exists and then generates realistic
// shout-outs, reactions, and comments between the directory users to test
// feed, stats, and leaderboard features.
//
// Usage:
//
//	DB_PATH=~/BragBoard/data/db go run ./cmd/seed
//	DB_PATH=~/BragBoard/data/db go run ./cmd/seed --shoutouts 25
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/bragboard/bragboard-server/internal/domain"
	"github.com/bragboard/bragboard-server/internal/id"
	"github.com/bragboard/bragboard-server/internal/store"
)

var shoutoutCount = flag.Int("shoutouts", 12, "Number of demo shout-outs to create")

var demoMessages = []string{
	"Massive thanks to %s for the late-night deploy rescue!",
	"Shout-out to %s for onboarding the new hires this week.",
	"%s crushed the quarterly demo. Customers loved it!",
	"Couldn't have shipped the release without %s. Legend.",
	"%s caught a nasty data bug before it hit production. 🙏",
	"Big props to %s for cleaning up the incident runbook.",
	"%s jumped on the support queue during the outage. Hero move.",
	"Thanks %s for the thoughtful design review feedback!",
}

var demoComments = []string{
	"Well deserved!",
	"Couldn't agree more.",
	"Absolutely! Great work.",
	"This made my day.",
	"Team player through and through.",
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/BragBoard/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	// Make sure the baseline directory exists before generating activity.
	if err := s.SeedBaseline(ctx); err != nil {
		log.Fatalf("Failed to seed baseline data: %v", err)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}
	if len(users) < 2 {
		log.Fatal("Need at least two users to generate shout-outs.")
	}

	fmt.Printf("Found %d users\n", len(users))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	reactionTypes := []domain.ReactionType{domain.ReactionLike, domain.ReactionClap, domain.ReactionStar}

	for i := 0; i < *shoutoutCount; i++ {
		sender := users[rng.Intn(len(users))]
		recipient := pickRecipient(rng, users, sender.ID)

		shoutout := &domain.ShoutOut{
			ID:         id.MustGenerate("so"),
			SenderID:   sender.ID,
			Sender:     sender.Ref(),
			Message:    fmt.Sprintf(demoMessages[rng.Intn(len(demoMessages))], "@"+recipient.Name),
			Recipients: []domain.UserRef{recipient.Ref()},
			Reactions:  []domain.Reaction{},
			CreatedAt:  time.Now().Add(-time.Duration(rng.Intn(14*24)) * time.Hour),
		}
		if err := s.CreateShoutout(ctx, shoutout); err != nil {
			log.Fatalf("Failed to create shout-out: %v", err)
		}

		// A few reactions from random colleagues.
		for _, reactor := range pickSome(rng, users, rng.Intn(4)) {
			rtype := reactionTypes[rng.Intn(len(reactionTypes))]
			if _, err := s.ToggleReaction(ctx, shoutout.ID, reactor.ID, rtype, id.MustGenerate("rct")); err != nil {
				log.Fatalf("Failed to add reaction: %v", err)
			}
		}

		// Sometimes a comment or two.
		for _, commenter := range pickSome(rng, users, rng.Intn(3)) {
			comment := &domain.Comment{
				ID:         id.MustGenerate("cmt"),
				ShoutoutID: shoutout.ID,
				UserID:     commenter.ID,
				Author:     commenter.Ref(),
				Content:    demoComments[rng.Intn(len(demoComments))],
				CreatedAt:  shoutout.CreatedAt.Add(time.Duration(1+rng.Intn(120)) * time.Minute),
			}
			if err := s.AddComment(ctx, comment); err != nil {
				log.Fatalf("Failed to add comment: %v", err)
			}
		}

		fmt.Printf("  %s -> %s: %s\n", sender.Name, recipient.Name, shoutout.Message)
	}

	total, err := s.CountShoutouts(ctx)
	if err != nil {
		log.Fatalf("Failed to count shout-outs: %v", err)
	}
	fmt.Printf("\nDone. Database now holds %d shout-outs.\n", total)
}

// pickRecipient returns a random user other than the sender.
func pickRecipient(rng *rand.Rand, users []*domain.User, senderID string) *domain.User {
	for {
		candidate := users[rng.Intn(len(users))]
		if candidate.ID != senderID {
			return candidate
		}
	}
}

// pickSome returns up to n distinct random users.
func pickSome(rng *rand.Rand, users []*domain.User, n int) []*domain.User {
	shuffled := make([]*domain.User, len(users))
	copy(shuffled, users)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
