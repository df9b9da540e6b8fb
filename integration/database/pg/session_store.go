package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heithemdev/rime-couture-sub002/core/session"
)

// querier is the subset of pgx shared by pools and transactions, letting
// repositories run inside an ambient transaction from WithTx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SessionStore implements session.Store on PostgreSQL. Sessions are
// soft-revoked, never deleted, so the table doubles as an audit trail.
type SessionStore struct {
	pool *pgxpool.Pool
}

// NewSessionStore creates a session store backed by the pool.
func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

func (s *SessionStore) db(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

func (s *SessionStore) Create(ctx context.Context, sess *session.Session) error {
	const q = `INSERT INTO sessions (id, subject_id, token_digest, ip, user_agent, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db(ctx).Exec(ctx, q,
		sess.ID, sess.SubjectID, sess.TokenDigest,
		sess.IP, sess.UserAgent, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SessionStore) GetByDigest(ctx context.Context, digest string) (*session.Session, error) {
	const q = `SELECT id, subject_id, token_digest, ip, user_agent, created_at, expires_at, revoked_at
		FROM sessions WHERE token_digest = $1`

	sess, err := scanSession(s.db(ctx).QueryRow(ctx, q, digest))
	if err != nil {
		if IsNotFoundError(err) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("get session by digest: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) UpdateExpiresAt(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	const q = `UPDATE sessions SET expires_at = $2 WHERE id = $1`

	tag, err := s.db(ctx).Exec(ctx, q, id, expiresAt)
	if err != nil {
		return fmt.Errorf("update session expiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (s *SessionStore) Revoke(ctx context.Context, id uuid.UUID, revokedAt time.Time) error {
	// The revoked_at IS NULL predicate makes revocation idempotent: a
	// second revoke keeps the original timestamp.
	const q = `UPDATE sessions SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL`

	if _, err := s.db(ctx).Exec(ctx, q, id, revokedAt); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *SessionStore) RevokeMany(ctx context.Context, ids []uuid.UUID, revokedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	const q = `UPDATE sessions SET revoked_at = $2 WHERE id = ANY($1) AND revoked_at IS NULL`

	if _, err := s.db(ctx).Exec(ctx, q, ids, revokedAt); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

func (s *SessionStore) RevokeAllForSubject(ctx context.Context, subjectID uuid.UUID, revokedAt time.Time) error {
	const q = `UPDATE sessions SET revoked_at = $2 WHERE subject_id = $1 AND revoked_at IS NULL`

	if _, err := s.db(ctx).Exec(ctx, q, subjectID, revokedAt); err != nil {
		return fmt.Errorf("revoke all sessions for subject: %w", err)
	}
	return nil
}

func (s *SessionStore) ListActiveBySubject(ctx context.Context, subjectID uuid.UUID) ([]session.Session, error) {
	const q = `SELECT id, subject_id, token_digest, ip, user_agent, created_at, expires_at, revoked_at
		FROM sessions
		WHERE subject_id = $1 AND revoked_at IS NULL AND expires_at > now()
		ORDER BY created_at ASC`

	rows, err := s.db(ctx).Query(ctx, q, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}

	return sessions, nil
}

// scanSession maps a row onto a Session, converting the nullable
// revoked_at column to the zero time.
func scanSession(row pgx.Row) (*session.Session, error) {
	var sess session.Session
	var revokedAt *time.Time

	err := row.Scan(
		&sess.ID, &sess.SubjectID, &sess.TokenDigest,
		&sess.IP, &sess.UserAgent,
		&sess.CreatedAt, &sess.ExpiresAt, &revokedAt)
	if err != nil {
		return nil, err
	}

	if revokedAt != nil {
		sess.RevokedAt = *revokedAt
	}
	return &sess, nil
}
