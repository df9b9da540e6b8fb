package auth

import "time"

// Config provides environment-based configuration for the auth facade.
type Config struct {
	// UserSessionTTL is the sliding window for customer sessions.
	UserSessionTTL time.Duration `env:"AUTH_USER_SESSION_TTL" envDefault:"720h"` // 30 days

	// AdminSessionTTL is the sliding window for back-office sessions.
	// Deliberately much shorter than the customer window.
	AdminSessionTTL time.Duration `env:"AUTH_ADMIN_SESSION_TTL" envDefault:"12h"`

	// UserMaxSessions caps concurrently active customer sessions per
	// account. Zero means uncapped.
	UserMaxSessions int `env:"AUTH_USER_MAX_SESSIONS" envDefault:"0"`

	// AdminMaxSessions caps concurrently active back-office sessions per
	// account. Creating one over the cap evicts the oldest.
	AdminMaxSessions int `env:"AUTH_ADMIN_MAX_SESSIONS" envDefault:"5"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() Config {
	return Config{
		UserSessionTTL:   720 * time.Hour,
		AdminSessionTTL:  12 * time.Hour,
		AdminMaxSessions: 5,
	}
}

// profile returns the TTL and session cap for a role.
func (c Config) profile(admin bool) (ttl time.Duration, maxActive int) {
	if admin {
		return c.AdminSessionTTL, c.AdminMaxSessions
	}
	return c.UserSessionTTL, c.UserMaxSessions
}
