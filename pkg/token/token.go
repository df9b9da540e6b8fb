package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
)

// tokenBytes is the raw entropy per token: 32 bytes (256 bits).
const tokenBytes = 32

// ErrTokenGeneration is returned when the system entropy source fails.
// Callers should treat it as fatal rather than retrying per-request.
var ErrTokenGeneration = errors.New("failed to generate token")

// Generate creates a cryptographically secure random token using 32 bytes
// (256 bits) encoded as a base64 URL-safe string without padding.
func Generate() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Digest computes the SHA-256 digest of a raw token, encoded as a base64
// URL-safe string without padding. The digest is the only form of the
// token that is safe to persist or log.
func Digest(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// ConstantTimeEquals compares two credential strings in time independent of
// where the first mismatching byte occurs. A length mismatch short-circuits
// to false; length alone is not secret-dependent here.
func ConstantTimeEquals(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
