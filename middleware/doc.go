// Package middleware provides the HTTP glue for the request-trust layer:
// a pre-authentication gate (origin check, bot filter, rate limit) and
// authentication middleware that resolves the session cookie to a
// principal in the request context.
//
// Middleware compose outside-in:
//
//	mux.Handle("POST /cart/items", middleware.Gate(g, cartPolicy)(
//		middleware.Auth(svc)(cartHandler),
//	))
//
// Handlers read the authenticated identity back out:
//
//	principal, ok := middleware.PrincipalFromContext(r.Context())
package middleware
