package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/heithemdev/rime-couture-sub002/pkg/token"
)

// bcryptCost balances login latency against brute-force resistance.
const bcryptCost = 12

// HashPassword derives a storable hash from a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against its stored hash.
// Returns ErrInvalidCredentials on mismatch.
func VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("verify password: %w", err)
	}
	return nil
}

// VerifyOperatorCredentials compares submitted operator credentials against
// the configured pair in constant time. Both comparisons always run so the
// timing reveals nothing about which field was wrong.
func VerifyOperatorCredentials(gotUser, gotPass, wantUser, wantPass string) error {
	userOK := token.ConstantTimeEquals(gotUser, wantUser)
	passOK := token.ConstantTimeEquals(gotPass, wantPass)
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}
