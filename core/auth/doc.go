// Package auth composes token issuance, session validation, and cookie
// transport behind a single facade for storefront and back-office handlers.
//
// The facade enforces one rule everywhere: a caller learns only whether a
// request is authenticated, never why it is not. Missing cookie, tampered
// signature, unknown token, expired or revoked session, deleted account,
// and insufficient role all collapse into ErrUnauthenticated. The specific
// reason is logged server-side and goes no further.
//
// Usage:
//
//	svc, err := auth.New(sessionMgr, transport, cfg)
//
//	// Sign-in handler, after verifying credentials:
//	sess, err := svc.IssueSession(ctx, w, userID, session.RoleUser, auth.ClientMeta{
//		IP:        clientip.GetIP(r),
//		UserAgent: r.UserAgent(),
//	})
//
//	// Protected handler:
//	sess, principal, err := svc.Authenticate(ctx, w, r)
//	if err != nil {
//		// respond 401, no detail
//	}
package auth
