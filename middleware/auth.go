package middleware

import (
	"context"
	"net/http"

	"github.com/heithemdev/rime-couture-sub002/core/auth"
	"github.com/heithemdev/rime-couture-sub002/core/session"
)

// authenticator is the slice of auth.Service the middleware needs.
type authenticator func(ctx context.Context, w http.ResponseWriter, r *http.Request) (session.Session, session.Principal, error)

// Auth requires a valid customer or admin session. On success the session
// and principal are injected into the request context; on any failure the
// response is a bare 401 and the dead cookie has already been cleared.
func Auth(svc *auth.Service) func(http.Handler) http.Handler {
	return requireIdentity(svc.Authenticate)
}

// AdminAuth requires a valid session whose principal holds the admin role.
// A customer session fails exactly like no session at all.
func AdminAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return requireIdentity(svc.AuthenticateAdmin)
}

func requireIdentity(authenticate authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, principal, err := authenticate(r.Context(), w, r)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), sess, principal)))
		})
	}
}
