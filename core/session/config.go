package session

import (
	"io"
	"log/slog"
	"time"
)

// Config holds session manager configuration.
type Config struct {
	// TTL is the default sliding window applied at creation and on every
	// successful validation.
	TTL time.Duration

	// Logger receives internal diagnostics. Validation failure reasons are
	// logged here and nowhere else; callers only ever see a uniform failure.
	Logger *slog.Logger
}

// defaultConfig returns default configuration.
func defaultConfig() *Config {
	return &Config{
		TTL:    30 * 24 * time.Hour, // storefront customer sessions are long-lived
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option is a functional option for configuring the session manager.
type Option func(*Config)

// WithTTL sets the default sliding window duration.
func WithTTL(ttl time.Duration) Option {
	return func(c *Config) {
		if ttl > 0 {
			c.TTL = ttl
		}
	}
}

// WithLogger sets the logger for internal diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
