package domain

import "time"

// Comment belongs to one shout-out by reference. The author snapshot is
// taken at creation time, like the sender snapshot on shout-outs.
type Comment struct {
	ID         string    `json:"id"`
	ShoutoutID string    `json:"shoutout_id"`
	UserID     string    `json:"user_id"`
	Author     UserRef   `json:"author"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
