// Package token generates opaque bearer tokens and computes the one-way
// digests under which they are persisted.
//
// A raw token carries 256 bits of entropy from crypto/rand and is encoded
// with base64 URL-safe encoding, making it usable as a cookie value without
// further escaping. Only the SHA-256 digest of a token is ever stored; the
// raw value exists client-side for the lifetime of the session and nowhere
// else.
//
// Typical flow:
//
//	raw, err := token.Generate()
//	if err != nil {
//		// entropy source failure, abort the operation
//	}
//	digest := token.Digest(raw)
//	// persist digest, hand raw to the client
//
// On subsequent requests the raw value is re-digested and looked up:
//
//	sess, err := store.GetByDigest(ctx, token.Digest(raw))
//
// ConstantTimeEquals is provided for verifying caller-supplied fixed
// credentials (e.g. an operator name/password pair) without leaking the
// position of the first mismatching byte.
package token
