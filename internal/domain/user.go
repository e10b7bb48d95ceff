package domain

import (
	"strings"
	"time"
)

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants access to moderation and aggregate stats.
	RoleAdmin Role = "admin"
	// RoleEmployee grants standard user access.
	RoleEmployee Role = "employee"
)

// Valid checks if the role is a known value.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User represents a member of the recognition wall directory.
// Users are never hard-deleted; the directory only grows.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Role       Role      `json:"role"`
	JoinedAt   time.Time `json:"joined_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has administrative privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Touch updates the UpdatedAt timestamp to the current time.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// InitTimestamps defaults any unset timestamps to now. Timestamps the
// caller already filled in are left alone.
func (u *User) InitTimestamps() {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	if u.JoinedAt.IsZero() {
		u.JoinedAt = now
	}
}

// Ref returns a point-in-time snapshot of the user for embedding in
// shout-outs, comments, reports, and audit entries. Snapshots are
// deliberately not resynced on later profile edits: they record who
// the user was when the content was created.
func (u *User) Ref() UserRef {
	return UserRef{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Department: u.Department,
		Role:       u.Role,
	}
}

// UserRef is a denormalized user snapshot embedded in owned records.
type UserRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       Role   `json:"role"`
}

// NameContains reports whether the snapshot name contains the given
// substring, case-insensitively.
func (r UserRef) NameContains(q string) bool {
	return strings.Contains(strings.ToLower(r.Name), strings.ToLower(q))
}
