package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heithemdev/rime-couture-sub002/core/logger"
	"github.com/heithemdev/rime-couture-sub002/core/session"
	"github.com/heithemdev/rime-couture-sub002/core/sessiontransport"
)

// ClientMeta is provenance recorded with a new session. Informational
// only; it never participates in validation.
type ClientMeta struct {
	IP        string
	UserAgent string
}

// Service is the auth facade. It owns no storage of its own; it wires the
// session manager to the cookie transport and flattens every failure into
// ErrUnauthenticated.
type Service struct {
	sessions  *session.Manager
	transport *sessiontransport.Cookie
	cfg       Config
	log       *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger for validation failure diagnostics.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates the auth facade.
func New(sessions *session.Manager, transport *sessiontransport.Cookie, cfg Config, opts ...ServiceOption) (*Service, error) {
	if sessions == nil {
		return nil, errors.New("auth: session manager is required")
	}
	if transport == nil {
		return nil, errors.New("auth: session transport is required")
	}
	if cfg.UserSessionTTL <= 0 || cfg.AdminSessionTTL <= 0 {
		return nil, errors.New("auth: session TTLs must be positive")
	}

	s := &Service{
		sessions:  sessions,
		transport: transport,
		cfg:       cfg,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.log = s.log.With(logger.Component("auth"))
	return s, nil
}

// IssueSession creates a session for an already-verified subject and hands
// its token to the client as a signed cookie. Role selects the TTL and
// concurrency profile: admins get a short window and a hard session cap,
// customers a long window.
func (s *Service) IssueSession(ctx context.Context, w http.ResponseWriter, subjectID uuid.UUID, role session.Role, meta ClientMeta) (session.Session, error) {
	ttl, maxActive := s.cfg.profile(role == session.RoleAdmin)

	raw, sess, err := s.sessions.Create(ctx, session.CreateParams{
		SubjectID: subjectID,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		TTL:       ttl,
		MaxActive: maxActive,
	})
	if err != nil {
		return session.Session{}, errors.Join(ErrIssueSession, err)
	}

	if err := s.transport.Embed(w, raw, ttl); err != nil {
		// The session exists but the client never received its token;
		// revoke so it does not linger as an orphan.
		if revokeErr := s.sessions.Revoke(ctx, raw); revokeErr != nil {
			s.log.WarnContext(ctx, "failed to revoke orphaned session",
				logger.SessionID(sess.ID), logger.Error(revokeErr))
		}
		return session.Session{}, errors.Join(ErrIssueSession, err)
	}

	return sess, nil
}

// Authenticate resolves the request's session cookie to a live session and
// principal, sliding the expiration window forward and refreshing the
// cookie to match. Any failure, whatever its cause, is ErrUnauthenticated.
func (s *Service) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request) (session.Session, session.Principal, error) {
	return s.authenticate(ctx, w, r, s.cfg.UserSessionTTL)
}

// AuthenticateAdmin is Authenticate with an additional role requirement: a
// valid customer session is rejected exactly like an invalid token, so
// probing the back office reveals nothing.
func (s *Service) AuthenticateAdmin(ctx context.Context, w http.ResponseWriter, r *http.Request) (session.Session, session.Principal, error) {
	return s.authenticate(ctx, w, r, s.cfg.AdminSessionTTL, session.WithRequiredRole(session.RoleAdmin))
}

func (s *Service) authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, window time.Duration, opts ...session.ValidateOption) (session.Session, session.Principal, error) {
	raw, err := s.transport.Extract(r)
	if err != nil {
		if !errors.Is(err, sessiontransport.ErrNoToken) {
			s.log.DebugContext(ctx, "rejected request with invalid session cookie",
				logger.Error(err))
		}
		return session.Session{}, session.Principal{}, ErrUnauthenticated
	}

	opts = append(opts, session.WithSlidingWindow(window))
	sess, principal, err := s.sessions.Validate(ctx, raw, opts...)
	if err != nil {
		// The manager already logged the real reason. A dead cookie is
		// cleared so the browser stops resending it.
		s.transport.Clear(w)
		return session.Session{}, session.Principal{}, ErrUnauthenticated
	}

	// Keep the cookie lifetime in step with the renewed server-side window.
	if err := s.transport.Embed(w, raw, window); err != nil {
		s.log.WarnContext(ctx, "failed to refresh session cookie",
			logger.SessionID(sess.ID), logger.Error(err))
	}

	return sess, principal, nil
}

// SignOut revokes the request's session and clears its cookie. Idempotent:
// signing out without a valid session still clears the cookie and
// succeeds.
func (s *Service) SignOut(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer s.transport.Clear(w)

	raw, err := s.transport.Extract(r)
	if err != nil {
		return nil
	}

	return s.sessions.Revoke(ctx, raw)
}

// SignOutAll revokes every session the subject owns, everywhere. Used
// after password changes and account compromise.
func (s *Service) SignOutAll(ctx context.Context, subjectID uuid.UUID) error {
	return s.sessions.RevokeAll(ctx, subjectID)
}
