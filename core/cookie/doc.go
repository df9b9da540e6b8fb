// Package cookie manages HTTP cookies with HMAC signing and secret rotation.
//
// The manager applies secure defaults (Path=/, HttpOnly, SameSite=Lax) and
// signs values with HMAC-SHA256 so a tampered or forged cookie is rejected
// before any store lookup happens. Multiple secrets are supported for
// rotation: the first secret signs, all secrets verify.
//
//	mgr, err := cookie.New([]string{secret})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = mgr.SetSigned(w, "session", rawToken,
//		cookie.WithSecure(true),
//		cookie.WithMaxAge(3600))
//
//	raw, err := mgr.GetSigned(r, "session")
//	if errors.Is(err, cookie.ErrInvalidSignature) {
//		// forged or corrupted cookie
//	}
package cookie
