package domain

import "time"

// AuditAction identifies the kind of moderation action recorded.
type AuditAction string

const (
	AuditDeletedShoutout AuditAction = "DELETED_SHOUTOUT"
	AuditDeletedComment  AuditAction = "DELETED_COMMENT"
	AuditResolvedReport  AuditAction = "RESOLVED_REPORT"
)

// AuditTargetType identifies what kind of entity an audit entry targets.
type AuditTargetType string

const (
	AuditTargetShoutout AuditTargetType = "shoutout"
	AuditTargetComment  AuditTargetType = "comment"
)

// AuditEntry is an append-only record of a moderation action.
// Entries are never mutated or deleted. The canonical read order is
// timestamp descending.
type AuditEntry struct {
	ID         string          `json:"id"`
	Admin      UserRef         `json:"admin"`
	Action     AuditAction     `json:"action"`
	TargetID   string          `json:"target_id"`
	TargetType AuditTargetType `json:"target_type"`
	Timestamp  time.Time       `json:"timestamp"`
}
