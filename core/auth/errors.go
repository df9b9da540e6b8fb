package auth

import "errors"

var (
	// ErrUnauthenticated is the single failure every validation path
	// returns. Clients must not be able to distinguish a bad token from an
	// expired one, a revoked one, or a missing account.
	ErrUnauthenticated = errors.New("auth: unauthenticated")

	// ErrIssueSession is returned when a session could not be created or
	// its token could not reach the client.
	ErrIssueSession = errors.New("auth: failed to issue session")

	// ErrInvalidCredentials is returned when a password or operator
	// credential check fails.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)
