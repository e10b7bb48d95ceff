package domain

import "time"

// ReportStatus is the moderation disposition of a report.
// Reports only ever move pending -> resolved, never back.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusResolved ReportStatus = "resolved"
)

// Report is a user-filed flag against a shout-out requiring admin
// disposition. The same user may file multiple reports against the
// same post; each is independently trackable.
type Report struct {
	ID         string       `json:"id"`
	ShoutoutID string       `json:"shoutout_id"`
	ReportedBy string       `json:"reported_by"`
	Reporter   UserRef      `json:"reporter"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	ResolvedBy string       `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time   `json:"resolved_at,omitempty"`
}

// IsPending reports whether the report still awaits admin disposition.
func (r *Report) IsPending() bool {
	return r.Status == ReportStatusPending
}

// Resolve transitions the report to resolved. Calling it on an
// already-resolved report is a no-op.
func (r *Report) Resolve(adminID string) bool {
	if r.Status == ReportStatusResolved {
		return false
	}
	now := time.Now()
	r.Status = ReportStatusResolved
	r.ResolvedBy = adminID
	r.ResolvedAt = &now
	return true
}

// PendingReport joins a pending report with a live snapshot of its
// target shout-out for the moderation queue.
type PendingReport struct {
	Report   Report    `json:"report"`
	Shoutout *ShoutOut `json:"shoutout"`
}
