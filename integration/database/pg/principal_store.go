package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heithemdev/rime-couture-sub002/core/session"
)

// PrincipalStore implements session.PrincipalStore against the users
// table. It reads only what session validation needs: identity, role, and
// the soft-delete marker.
type PrincipalStore struct {
	pool *pgxpool.Pool
}

// NewPrincipalStore creates a principal store backed by the pool.
func NewPrincipalStore(pool *pgxpool.Pool) *PrincipalStore {
	return &PrincipalStore{pool: pool}
}

func (s *PrincipalStore) db(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

func (s *PrincipalStore) GetByID(ctx context.Context, id uuid.UUID) (session.Principal, error) {
	const q = `SELECT id, role, deleted_at FROM users WHERE id = $1`

	var principal session.Principal
	var role string
	var deletedAt *time.Time

	err := s.db(ctx).QueryRow(ctx, q, id).Scan(&principal.ID, &role, &deletedAt)
	if err != nil {
		if IsNotFoundError(err) {
			return session.Principal{}, session.ErrNotFound
		}
		return session.Principal{}, fmt.Errorf("get principal: %w", err)
	}

	principal.Role = session.Role(role)
	if deletedAt != nil {
		principal.DeletedAt = *deletedAt
	}
	return principal, nil
}
