package sessiontransport

import "errors"

var (
	// ErrNoToken is returned when the request carries no session cookie.
	ErrNoToken = errors.New("sessiontransport: no token")

	// ErrInvalidToken is returned when the cookie is present but its
	// signature or format is invalid.
	ErrInvalidToken = errors.New("sessiontransport: invalid token")
)
