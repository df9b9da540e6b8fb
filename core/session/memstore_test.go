package session_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heithemdev/rime-couture-sub002/core/session"
)

// memStore is an in-memory Store used to exercise lifecycle behavior
// without a database. Single-row mutations hold the lock for the whole
// read-modify-write, mirroring the atomicity the real store provides.
type memStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[uuid.UUID]*session.Session)}
}

func (s *memStore) Create(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *memStore) GetByDigest(ctx context.Context, digest string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if sess.TokenDigest == digest {
			cp := *sess
			return &cp, nil
		}
	}
	return nil, session.ErrNotFound
}

func (s *memStore) UpdateExpiresAt(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.ExpiresAt = expiresAt
	}
	return nil
}

func (s *memStore) Revoke(ctx context.Context, id uuid.UUID, revokedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok && sess.RevokedAt.IsZero() {
		sess.RevokedAt = revokedAt
	}
	return nil
}

func (s *memStore) RevokeMany(ctx context.Context, ids []uuid.UUID, revokedAt time.Time) error {
	for _, id := range ids {
		if err := s.Revoke(ctx, id, revokedAt); err != nil {
			return err
		}
	}
	return nil
}

func (s *memStore) RevokeAllForSubject(ctx context.Context, subjectID uuid.UUID, revokedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if sess.SubjectID == subjectID && sess.RevokedAt.IsZero() {
			sess.RevokedAt = revokedAt
		}
	}
	return nil
}

func (s *memStore) ListActiveBySubject(ctx context.Context, subjectID uuid.UUID) ([]session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []session.Session
	for _, sess := range s.sessions {
		if sess.SubjectID == subjectID && sess.IsActive() {
			active = append(active, *sess)
		}
	}
	slices.SortFunc(active, func(a, b session.Session) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return active, nil
}

// get returns the stored copy of a session by ID.
func (s *memStore) get(id uuid.UUID) (session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return session.Session{}, false
	}
	return *sess, true
}

// memPrincipals is an in-memory PrincipalStore.
type memPrincipals struct {
	mu         sync.Mutex
	principals map[uuid.UUID]session.Principal
}

func newMemPrincipals() *memPrincipals {
	return &memPrincipals{principals: make(map[uuid.UUID]session.Principal)}
}

func (s *memPrincipals) put(p session.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principals[p.ID] = p
}

func (s *memPrincipals) GetByID(ctx context.Context, id uuid.UUID) (session.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.principals[id]
	if !ok {
		return session.Principal{}, session.ErrNotFound
	}
	return p, nil
}
