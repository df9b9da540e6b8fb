package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heithemdev/rime-couture-sub002/core/auth"
	"github.com/heithemdev/rime-couture-sub002/core/cookie"
	"github.com/heithemdev/rime-couture-sub002/core/session"
	"github.com/heithemdev/rime-couture-sub002/core/sessiontransport"
	"github.com/heithemdev/rime-couture-sub002/middleware"
)

// memSessions is a map-backed session.Store for middleware tests.
type memSessions struct {
	mu       sync.Mutex
	byDigest map[string]*session.Session
}

func newMemSessions() *memSessions {
	return &memSessions{byDigest: make(map[string]*session.Session)}
}

func (s *memSessions) Create(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.byDigest[sess.TokenDigest] = &cp
	return nil
}

func (s *memSessions) GetByDigest(_ context.Context, digest string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byDigest[digest]
	if !ok {
		return nil, session.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *memSessions) UpdateExpiresAt(_ context.Context, id uuid.UUID, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.byDigest {
		if sess.ID == id {
			sess.ExpiresAt = expiresAt
			return nil
		}
	}
	return session.ErrNotFound
}

func (s *memSessions) Revoke(_ context.Context, id uuid.UUID, revokedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.byDigest {
		if sess.ID == id && sess.RevokedAt.IsZero() {
			sess.RevokedAt = revokedAt
		}
	}
	return nil
}

func (s *memSessions) RevokeMany(ctx context.Context, ids []uuid.UUID, revokedAt time.Time) error {
	for _, id := range ids {
		if err := s.Revoke(ctx, id, revokedAt); err != nil {
			return err
		}
	}
	return nil
}

func (s *memSessions) RevokeAllForSubject(_ context.Context, subjectID uuid.UUID, revokedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.byDigest {
		if sess.SubjectID == subjectID && sess.RevokedAt.IsZero() {
			sess.RevokedAt = revokedAt
		}
	}
	return nil
}

func (s *memSessions) ListActiveBySubject(_ context.Context, subjectID uuid.UUID) ([]session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active []session.Session
	for _, sess := range s.byDigest {
		if sess.SubjectID == subjectID && sess.IsActive() {
			active = append(active, *sess)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.Before(active[j].CreatedAt) })
	return active, nil
}

// memPrincipals is a map-backed session.PrincipalStore.
type memPrincipals struct {
	mu   sync.Mutex
	byID map[uuid.UUID]session.Principal
}

func newMemPrincipals() *memPrincipals {
	return &memPrincipals{byID: make(map[uuid.UUID]session.Principal)}
}

func (p *memPrincipals) put(principal session.Principal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byID[principal.ID] = principal
}

func (p *memPrincipals) GetByID(_ context.Context, id uuid.UUID) (session.Principal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	principal, ok := p.byID[id]
	if !ok {
		return session.Principal{}, session.ErrNotFound
	}
	return principal, nil
}

type authEnv struct {
	svc        *auth.Service
	principals *memPrincipals
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	principals := newMemPrincipals()
	mgr, err := session.NewManager(newMemSessions(), principals)
	require.NoError(t, err)

	cookieMgr, err := cookie.New([]string{"middleware-test-secret-long-enough!"})
	require.NoError(t, err)
	transport := sessiontransport.NewCookie(cookieMgr, sessiontransport.CookieConfig{
		Name:   "__session",
		Secure: false,
	})

	svc, err := auth.New(mgr, transport, auth.DefaultConfig())
	require.NoError(t, err)

	return &authEnv{svc: svc, principals: principals}
}

func (e *authEnv) signedInRequest(t *testing.T, role session.Role) *http.Request {
	t.Helper()

	subjectID := uuid.New()
	e.principals.put(session.Principal{ID: subjectID, Role: role})

	w := httptest.NewRecorder()
	_, err := e.svc.IssueSession(context.Background(), w, subjectID, role, auth.ClientMeta{})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/account", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

// identityEcho records what the wrapped handler saw in its context.
type identityEcho struct {
	called    bool
	session   session.Session
	principal session.Principal
	sessionOK bool
	princOK   bool
}

func (e *identityEcho) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.called = true
		e.session, e.sessionOK = middleware.SessionFromContext(r.Context())
		e.principal, e.princOK = middleware.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	t.Parallel()

	t.Run("valid session reaches handler with identity", func(t *testing.T) {
		t.Parallel()

		env := newAuthEnv(t)
		r := env.signedInRequest(t, session.RoleUser)

		echo := &identityEcho{}
		w := httptest.NewRecorder()
		middleware.Auth(env.svc)(echo.handler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		require.True(t, echo.called)
		assert.True(t, echo.sessionOK)
		assert.True(t, echo.princOK)
		assert.Equal(t, echo.session.SubjectID, echo.principal.ID)
	})

	t.Run("missing cookie gets 401", func(t *testing.T) {
		t.Parallel()

		env := newAuthEnv(t)
		echo := &identityEcho{}
		w := httptest.NewRecorder()
		middleware.Auth(env.svc)(echo.handler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/account", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, echo.called)
	})

	t.Run("forged cookie gets 401 and is cleared", func(t *testing.T) {
		t.Parallel()

		env := newAuthEnv(t)
		r := httptest.NewRequest(http.MethodGet, "/account", nil)
		r.AddCookie(&http.Cookie{Name: "__session", Value: "Zm9yZ2Vk|bogus"})

		w := httptest.NewRecorder()
		middleware.Auth(env.svc)(okHandler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestAdminAuth(t *testing.T) {
	t.Parallel()

	t.Run("admin session passes", func(t *testing.T) {
		t.Parallel()

		env := newAuthEnv(t)
		r := env.signedInRequest(t, session.RoleAdmin)

		echo := &identityEcho{}
		w := httptest.NewRecorder()
		middleware.AdminAuth(env.svc)(echo.handler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, session.RoleAdmin, echo.principal.Role)
	})

	t.Run("customer session gets the same 401 as no session", func(t *testing.T) {
		t.Parallel()

		env := newAuthEnv(t)
		r := env.signedInRequest(t, session.RoleUser)

		withSession := httptest.NewRecorder()
		middleware.AdminAuth(env.svc)(okHandler()).ServeHTTP(withSession, r)

		withoutSession := httptest.NewRecorder()
		middleware.AdminAuth(env.svc)(okHandler()).ServeHTTP(withoutSession, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusUnauthorized, withSession.Code)
		assert.Equal(t, withoutSession.Code, withSession.Code)
		assert.Equal(t, withoutSession.Body.String(), withSession.Body.String())
	})
}
