package middleware

import (
	"context"

	"github.com/heithemdev/rime-couture-sub002/core/session"
)

type contextKey int

const (
	sessionKey contextKey = iota
	principalKey
)

// SessionFromContext returns the session injected by Auth or AdminAuth.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(session.Session)
	return sess, ok
}

// PrincipalFromContext returns the principal injected by Auth or AdminAuth.
func PrincipalFromContext(ctx context.Context) (session.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(session.Principal)
	return principal, ok
}

// withIdentity stores the authenticated pair in the context.
func withIdentity(ctx context.Context, sess session.Session, principal session.Principal) context.Context {
	ctx = context.WithValue(ctx, sessionKey, sess)
	return context.WithValue(ctx, principalKey, principal)
}
