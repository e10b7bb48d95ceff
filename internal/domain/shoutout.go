package domain

import (
	"slices"
	"strings"
	"time"
)

// ReactionType is a typed endorsement a user attaches to a shout-out.
type ReactionType string

const (
	ReactionLike ReactionType = "like"
	ReactionClap ReactionType = "clap"
	ReactionStar ReactionType = "star"
)

// Valid checks if the reaction type is a known value.
func (t ReactionType) Valid() bool {
	switch t {
	case ReactionLike, ReactionClap, ReactionStar:
		return true
	default:
		return false
	}
}

// Reaction is a (user, type) endorsement owned by a single shout-out.
// At most one reaction per (user, type) pair may exist on a shout-out.
type Reaction struct {
	ID         string       `json:"id"`
	ShoutoutID string       `json:"shoutout_id"`
	UserID     string       `json:"user_id"`
	Type       ReactionType `json:"type"`
}

// ShoutOut is a recognition post naming one or more recipients.
//
// Sender and Recipients are creation-time snapshots. CommentsCount is a
// denormalized cache that must always equal the number of live comments
// referencing this shout-out; the store maintains it transactionally.
type ShoutOut struct {
	ID            string     `json:"id"`
	SenderID      string     `json:"sender_id"`
	Sender        UserRef    `json:"sender"`
	Message       string     `json:"message"`
	ImageURL      string     `json:"image_url,omitempty"`
	Recipients    []UserRef  `json:"recipients"`
	Reactions     []Reaction `json:"reactions"`
	CommentsCount int        `json:"comments_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

// HasRecipient reports whether the given user appears in the recipient set.
func (s *ShoutOut) HasRecipient(userID string) bool {
	return slices.ContainsFunc(s.Recipients, func(r UserRef) bool {
		return r.ID == userID
	})
}

// ReactionIndex returns the position of the (user, type) reaction, or -1.
func (s *ShoutOut) ReactionIndex(userID string, t ReactionType) int {
	return slices.IndexFunc(s.Reactions, func(r Reaction) bool {
		return r.UserID == userID && r.Type == t
	})
}

// MatchesQuery reports whether the message or the sender's snapshot name
// contains q, case-insensitively.
func (s *ShoutOut) MatchesQuery(q string) bool {
	if strings.Contains(strings.ToLower(s.Message), strings.ToLower(q)) {
		return true
	}
	return s.Sender.NameContains(q)
}

// Clone returns a deep copy so callers never hold live store state.
func (s *ShoutOut) Clone() *ShoutOut {
	clone := *s
	clone.Recipients = slices.Clone(s.Recipients)
	clone.Reactions = slices.Clone(s.Reactions)
	return &clone
}
