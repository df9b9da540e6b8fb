package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config defines a fixed-window rate limit: at most Limit requests per key
// within each Window.
type Config struct {
	Limit  int           // maximum requests per window, must be > 0
	Window time.Duration // window length, must be > 0
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be > 0, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be > 0, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}

// Result reports the outcome of a single rate limit check.
type Result struct {
	Limit     int       // configured maximum for the window
	Remaining int       // requests left in the current window (may be negative when denied)
	ResetAt   time.Time // when the current window expires and the counter resets
}

// Allowed reports whether the request fits within the window budget.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long the client should wait before retrying.
// Zero when the request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	if d := time.Until(r.ResetAt); d > 0 {
		return d
	}
	return 0
}

// Store persists per-key window counters. Implementations must be safe for
// concurrent use and must treat a counter whose window has passed as absent
// (lazy expiry), regardless of whether it has been swept yet.
type Store interface {
	// Incr increments the counter for key within the current fixed window,
	// starting a fresh window when none is active. Returns the count after
	// increment and the time the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)

	// Reset removes the counter for key, immediately granting a fresh window.
	Reset(ctx context.Context, key string) error
}

// Limiter applies a fixed-window Config against a Store.
type Limiter struct {
	store Store
	cfg   Config
}

// New creates a limiter with the given store and configuration.
func New(store Store, cfg Config) (*Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Limiter{store: store, cfg: cfg}, nil
}

// Allow records one request for key and reports whether it fits within the
// window budget. Storage errors are returned as-is; callers decide whether
// to fail open or closed.
func (l *Limiter) Allow(ctx context.Context, key string) (*Result, error) {
	count, resetAt, err := l.store.Incr(ctx, key, l.cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return &Result{
		Limit:     l.cfg.Limit,
		Remaining: l.cfg.Limit - int(count),
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the counter for key, typically for administrative overrides.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}

// Config returns the limiter's configuration.
func (l *Limiter) Config() Config {
	return l.cfg
}
