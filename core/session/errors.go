package session

import "errors"

var (
	// ErrNotFound is returned when no session matches the presented token.
	// Storage failures collapse into this error so callers fail closed.
	ErrNotFound = errors.New("session not found")
	// ErrRevoked is returned when the session has been explicitly revoked.
	ErrRevoked = errors.New("session revoked")
	// ErrExpired is returned when the session's sliding window has lapsed.
	ErrExpired = errors.New("session expired")
	// ErrSubjectDeleted is returned when the owning principal is soft-deleted.
	ErrSubjectDeleted = errors.New("session subject deleted")
	// ErrRoleMismatch is returned when the subject no longer holds the required role.
	ErrRoleMismatch = errors.New("session subject role mismatch")
	// ErrMissingSubject is returned when creating a session without a subject.
	ErrMissingSubject = errors.New("subject ID is required")
	// ErrCreateSession is returned when persisting a new session fails.
	ErrCreateSession = errors.New("failed to create session")
)
