package session

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the trust level of a principal.
type Role string

const (
	// RoleUser is an ordinary storefront customer.
	RoleUser Role = "user"
	// RoleAdmin is the privileged operator role.
	RoleAdmin Role = "admin"
)

// Principal is the snapshot of a session's owning subject that this layer
// cares about. The full user record is owned by an external collaborator;
// only identity, role, and the soft-delete marker matter here.
type Principal struct {
	ID        uuid.UUID
	Role      Role
	DeletedAt time.Time
}

// IsDeleted reports whether the principal has been soft-deleted.
// A deleted principal invalidates all of its sessions on next check.
func (p Principal) IsDeleted() bool {
	return !p.DeletedAt.IsZero()
}

// Session represents one authenticated client-credential binding.
type Session struct {
	// ID is the stable opaque identifier, system-assigned at creation.
	ID uuid.UUID

	// SubjectID identifies the owning principal.
	SubjectID uuid.UUID

	// TokenDigest is the SHA-256 digest of the raw bearer token; unique.
	// This is the only form of the secret ever persisted.
	TokenDigest string

	// IP and UserAgent are provenance metadata, informational only.
	IP        string
	UserAgent string

	CreatedAt time.Time

	// ExpiresAt slides forward on every successful validation.
	ExpiresAt time.Time

	// RevokedAt, once set, marks the session permanently dead.
	// Zero means not revoked.
	RevokedAt time.Time
}

// IsRevoked reports whether the session has been explicitly revoked.
func (s Session) IsRevoked() bool {
	return !s.RevokedAt.IsZero()
}

// IsExpired reports whether the session's sliding window has lapsed.
func (s Session) IsExpired() bool {
	return !s.ExpiresAt.After(time.Now())
}

// IsActive reports whether the session is neither revoked nor expired.
// Subject-level checks (soft-delete, role) happen during validation.
func (s Session) IsActive() bool {
	return !s.IsRevoked() && !s.IsExpired()
}
