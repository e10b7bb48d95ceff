package store

import "errors"

// Sentinel errors returned by store operations. Callers translate these
// into API-facing errors at the service layer.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrShoutoutNotFound = errors.New("shoutout not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrSessionNotFound  = errors.New("no active session")
)
