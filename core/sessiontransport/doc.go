// Package sessiontransport moves session tokens between the server and the
// browser. The only transport is an HMAC-signed HTTP cookie: the raw token
// travels inside the signed value, and only its digest ever reaches storage.
//
// The transport is deliberately dumb. It does not validate sessions and it
// does not talk to the session store; it only embeds, extracts, and clears
// the credential. Composition with session validation happens in core/auth.
//
// Usage:
//
//	cookieMgr, _ := cookie.New([]string{secret})
//	transport := sessiontransport.NewCookie(cookieMgr, sessiontransport.CookieConfig{
//		Name:   "__session",
//		Secure: true,
//	})
//
//	// After issuing a session:
//	transport.Embed(w, rawToken, time.Until(sess.ExpiresAt))
//
//	// On each request:
//	raw, err := transport.Extract(r)
//
//	// On sign-out or validation failure:
//	transport.Clear(w)
package sessiontransport
