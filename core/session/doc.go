// Package session manages the lifecycle of persisted authentication
// sessions: creation, validation with sliding renewal, revocation, and
// per-subject concurrency caps.
//
// A session binds the SHA-256 digest of an opaque bearer token to a
// principal. The raw token lives only client-side; the store never sees it.
// A session is valid iff it is not revoked, not expired, its subject is not
// soft-deleted, and (when a role is required) the subject still holds that
// role. Validity is re-evaluated on every use, never cached.
//
// Expiration is sliding: every successful validation unconditionally pushes
// ExpiresAt forward by the configured window. Expired and revoked are
// terminal states; records are soft-revoked, never physically deleted here.
//
//	mgr, err := session.NewManager(sessionStore, principalStore,
//		session.WithTTL(30*24*time.Hour))
//
//	raw, _, err := mgr.Create(ctx, session.CreateParams{
//		SubjectID: userID,
//		IP:        clientip.GetIP(r),
//		UserAgent: r.UserAgent(),
//	})
//	// hand raw to the transport; it is never persisted or logged
//
//	sess, principal, err := mgr.Validate(ctx, raw)
//	if err != nil {
//		// treat every failure as "no session"
//	}
//
// Storage failures degrade to "no session": a transient store error must
// read as unauthenticated, never as authenticated with defaults.
package session
