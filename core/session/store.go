package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the persistence interface for sessions.
// Implementations must handle concurrent access safely; correctness under
// concurrent renewals relies on single-row update atomicity, not on
// application-level locks. Sessions are soft-revoked, never deleted.
type Store interface {
	Create(ctx context.Context, sess *Session) error

	// GetByDigest looks a session up by its token digest.
	// Returns ErrNotFound when no row matches.
	GetByDigest(ctx context.Context, digest string) (*Session, error)

	// UpdateExpiresAt persists a sliding-window renewal.
	UpdateExpiresAt(ctx context.Context, id uuid.UUID, expiresAt time.Time) error

	// Revoke sets RevokedAt on a single session. Must be idempotent:
	// revoking an already-revoked session keeps the original timestamp.
	Revoke(ctx context.Context, id uuid.UUID, revokedAt time.Time) error

	// RevokeMany revokes the given sessions, used for cap eviction.
	RevokeMany(ctx context.Context, ids []uuid.UUID, revokedAt time.Time) error

	// RevokeAllForSubject revokes every active session owned by the subject.
	RevokeAllForSubject(ctx context.Context, subjectID uuid.UUID, revokedAt time.Time) error

	// ListActiveBySubject returns the subject's active sessions ordered
	// oldest-first by CreatedAt, the eviction order for concurrency caps.
	ListActiveBySubject(ctx context.Context, subjectID uuid.UUID) ([]Session, error)
}

// PrincipalStore resolves the owning subject of a session.
// Implementations should surface lookup failures as errors; the manager
// treats any error as "subject not found" and fails closed.
type PrincipalStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Principal, error)
}
