package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heithemdev/rime-couture-sub002/core/logger"
	"github.com/heithemdev/rime-couture-sub002/pkg/token"
)

// Manager handles the session lifecycle: creation with cap eviction,
// validation with sliding renewal, and revocation.
type Manager struct {
	sessions Store
	subjects PrincipalStore
	cfg      *Config
	log      *slog.Logger
}

// NewManager creates a session manager over the given stores.
func NewManager(sessions Store, subjects PrincipalStore, opts ...Option) (*Manager, error) {
	if sessions == nil {
		return nil, errors.New("session manager: session store is required")
	}
	if subjects == nil {
		return nil, errors.New("session manager: principal store is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Manager{
		sessions: sessions,
		subjects: subjects,
		cfg:      cfg,
		log:      cfg.Logger.With(logger.Component("session")),
	}, nil
}

// TTL returns the manager's default sliding window duration.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL
}

// CreateParams contains parameters for creating a new session.
type CreateParams struct {
	SubjectID uuid.UUID
	IP        string // optional provenance metadata
	UserAgent string // optional provenance metadata

	// TTL overrides the manager default window when positive.
	TTL time.Duration

	// MaxActive caps the subject's concurrently active sessions when
	// positive. Before insertion the oldest active sessions are revoked
	// until at most MaxActive-1 remain, so the cap holds after creation.
	MaxActive int
}

// Create issues a new session and returns the raw bearer token alongside
// the persisted record. The raw token is handed to the transport and never
// persisted or logged.
//
// The cap check-evict-create sequence is not transactionally atomic: two
// simultaneous creations for the same capped subject can both pass the
// check and overshoot the cap by one until the next creation corrects it.
func (m *Manager) Create(ctx context.Context, params CreateParams) (string, Session, error) {
	if params.SubjectID == uuid.Nil {
		return "", Session{}, ErrMissingSubject
	}

	if params.MaxActive > 0 {
		if err := m.evictOverCap(ctx, params.SubjectID, params.MaxActive); err != nil {
			return "", Session{}, errors.Join(ErrCreateSession, err)
		}
	}

	raw, err := token.Generate()
	if err != nil {
		return "", Session{}, errors.Join(ErrCreateSession, err)
	}

	ttl := params.TTL
	if ttl <= 0 {
		ttl = m.cfg.TTL
	}

	now := time.Now()
	sess := Session{
		ID:          uuid.New(),
		SubjectID:   params.SubjectID,
		TokenDigest: token.Digest(raw),
		IP:          params.IP,
		UserAgent:   params.UserAgent,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}

	if err := m.sessions.Create(ctx, &sess); err != nil {
		return "", Session{}, errors.Join(ErrCreateSession, err)
	}

	m.log.DebugContext(ctx, "session created",
		logger.SessionID(sess.ID),
		logger.SubjectID(sess.SubjectID))

	return raw, sess, nil
}

// evictOverCap revokes the subject's oldest active sessions until at most
// maxActive-1 remain. Eviction order is strictly FIFO by CreatedAt.
func (m *Manager) evictOverCap(ctx context.Context, subjectID uuid.UUID, maxActive int) error {
	active, err := m.sessions.ListActiveBySubject(ctx, subjectID)
	if err != nil {
		return err
	}

	if len(active) < maxActive {
		return nil
	}

	evict := len(active) - maxActive + 1
	ids := make([]uuid.UUID, 0, evict)
	for _, sess := range active[:evict] {
		ids = append(ids, sess.ID)
	}

	if err := m.sessions.RevokeMany(ctx, ids, time.Now()); err != nil {
		return err
	}

	m.log.InfoContext(ctx, "evicted sessions over concurrency cap",
		logger.SubjectID(subjectID),
		logger.Count("evicted", len(ids)))

	return nil
}

// validateOptions holds per-call validation configuration.
type validateOptions struct {
	requiredRole Role
	window       time.Duration
}

// ValidateOption configures a single Validate call.
type ValidateOption func(*validateOptions)

// WithRequiredRole rejects sessions whose subject no longer holds role.
func WithRequiredRole(role Role) ValidateOption {
	return func(o *validateOptions) {
		o.requiredRole = role
	}
}

// WithSlidingWindow overrides the manager's default renewal window.
func WithSlidingWindow(d time.Duration) ValidateOption {
	return func(o *validateOptions) {
		if d > 0 {
			o.window = d
		}
	}
}

// Validate checks a raw token against the store and, on success,
// unconditionally slides the session's expiration forward. It is safe to
// call concurrently for the same token: the store is the single source of
// truth and the worst case of racing renewals is a harmless double
// extension.
//
// Every failure path returns an error; callers must treat them all as "no
// session". The distinct sentinels exist for internal logging only and are
// never surfaced to clients.
func (m *Manager) Validate(ctx context.Context, raw string, opts ...ValidateOption) (Session, Principal, error) {
	options := validateOptions{window: m.cfg.TTL}
	for _, opt := range opts {
		opt(&options)
	}

	sess, err := m.sessions.GetByDigest(ctx, token.Digest(raw))
	if err != nil {
		// Transient store failures read as "not found": fail closed.
		if !errors.Is(err, ErrNotFound) {
			m.log.WarnContext(ctx, "session lookup failed", logger.Error(err))
			err = errors.Join(ErrNotFound, err)
		}
		return Session{}, Principal{}, err
	}

	if sess.IsRevoked() {
		m.log.DebugContext(ctx, "rejected revoked session", logger.SessionID(sess.ID))
		return Session{}, Principal{}, ErrRevoked
	}
	if sess.IsExpired() {
		m.log.DebugContext(ctx, "rejected expired session", logger.SessionID(sess.ID))
		return Session{}, Principal{}, ErrExpired
	}

	subject, err := m.subjects.GetByID(ctx, sess.SubjectID)
	if err != nil {
		m.log.WarnContext(ctx, "subject lookup failed",
			logger.SessionID(sess.ID), logger.Error(err))
		return Session{}, Principal{}, errors.Join(ErrNotFound, err)
	}

	if subject.IsDeleted() {
		m.log.DebugContext(ctx, "rejected session of deleted subject",
			logger.SessionID(sess.ID), logger.SubjectID(subject.ID))
		return Session{}, Principal{}, ErrSubjectDeleted
	}

	if options.requiredRole != "" && subject.Role != options.requiredRole {
		m.log.DebugContext(ctx, "rejected session on role mismatch",
			logger.SessionID(sess.ID), logger.SubjectID(subject.ID))
		return Session{}, Principal{}, ErrRoleMismatch
	}

	// Unconditional renewal on every successful check keeps the window
	// sliding rather than absolute.
	sess.ExpiresAt = time.Now().Add(options.window)
	if err := m.sessions.UpdateExpiresAt(ctx, sess.ID, sess.ExpiresAt); err != nil {
		m.log.WarnContext(ctx, "session renewal failed",
			logger.SessionID(sess.ID), logger.Error(err))
		return Session{}, Principal{}, errors.Join(ErrNotFound, err)
	}

	return *sess, subject, nil
}

// Revoke permanently ends the session matching the raw token. Idempotent:
// an unknown or already-revoked token is a no-op.
func (m *Manager) Revoke(ctx context.Context, raw string) error {
	sess, err := m.sessions.GetByDigest(ctx, token.Digest(raw))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("revoke session: %w", err)
	}

	if sess.IsRevoked() {
		return nil
	}

	if err := m.sessions.Revoke(ctx, sess.ID, time.Now()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	m.log.DebugContext(ctx, "session revoked", logger.SessionID(sess.ID))
	return nil
}

// RevokeAll ends every active session owned by the subject. Used after a
// password change or other security-sensitive event. Best-effort with
// respect to sessions created in the same instant as the call.
func (m *Manager) RevokeAll(ctx context.Context, subjectID uuid.UUID) error {
	if err := m.sessions.RevokeAllForSubject(ctx, subjectID, time.Now()); err != nil {
		return fmt.Errorf("revoke all sessions: %w", err)
	}

	m.log.InfoContext(ctx, "revoked all sessions for subject",
		logger.SubjectID(subjectID))
	return nil
}
