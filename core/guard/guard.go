package guard

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heithemdev/rime-couture-sub002/core/logger"
	"github.com/heithemdev/rime-couture-sub002/pkg/clientip"
	"github.com/heithemdev/rime-couture-sub002/pkg/ratelimiter"
)

// Reason identifies why a request was denied.
type Reason string

const (
	ReasonCrossOrigin   Reason = "cross_origin"
	ReasonSuspiciousBot Reason = "suspicious_bot"
	ReasonRateLimited   Reason = "rate_limited"
)

// Decision is the per-request trust verdict. It is computed fresh for
// every request and never persisted.
type Decision struct {
	Allowed    bool
	Reason     Reason              // set when denied
	RetryAfter time.Duration       // set when rate limited
	RateResult *ratelimiter.Result // set when a rate limit was evaluated
	Client     Classification      // set when bots were evaluated
}

// Policy selects which checks a route applies and with what budget.
// The zero value applies nothing and allows everything.
type Policy struct {
	// RateLimit enables fixed-window limiting with the given budget.
	RateLimit *ratelimiter.Config

	// RateKeyPrefix namespaces the rate counter so distinct operations
	// sharing a client do not share a budget.
	RateKeyPrefix string

	// RequireSameOrigin denies requests failing the CSRF origin check.
	RequireSameOrigin bool

	// BlockSuspiciousBots denies clients classified as suspicious
	// automation. Allowlisted crawlers always pass.
	BlockSuspiciousBots bool
}

// Guard composes the pre-authentication checks every route applies.
type Guard struct {
	counters  ratelimiter.Store
	allowlist *OriginAllowlist
	log       *slog.Logger
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithLogger sets the logger for denial diagnostics.
func WithLogger(log *slog.Logger) GuardOption {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a request guard. The counter store backs all rate limit
// policies; the allowlist backs the CSRF check.
func New(counters ratelimiter.Store, allowlist *OriginAllowlist, opts ...GuardOption) (*Guard, error) {
	if counters == nil {
		return nil, errors.New("guard: counter store is required")
	}
	if allowlist == nil {
		return nil, errors.New("guard: origin allowlist is required")
	}

	g := &Guard{
		counters:  counters,
		allowlist: allowlist,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.log = g.log.With(logger.Component("guard"))
	return g, nil
}

// Check evaluates the policy against the request: CSRF first, then bot
// classification, then the rate limit. The first failing check denies and
// later checks do not run, so a denied request never consumes rate budget.
func (g *Guard) Check(r *http.Request, policy Policy) Decision {
	if policy.RequireSameOrigin && !SameOrigin(r, g.allowlist) {
		g.log.InfoContext(r.Context(), "denied cross-origin request",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.ClientIP(clientip.GetIP(r)),
			logger.Reason(string(ReasonCrossOrigin)))
		return Decision{Reason: ReasonCrossOrigin}
	}

	var client Classification
	if policy.BlockSuspiciousBots {
		client = ClassifyClient(r.UserAgent(), r.Header)
		if client.IsSuspicious {
			g.log.InfoContext(r.Context(), "denied suspicious automated client",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.ClientIP(clientip.GetIP(r)),
				logger.UserAgent(r.UserAgent()),
				logger.Reason(string(ReasonSuspiciousBot)))
			return Decision{Reason: ReasonSuspiciousBot, Client: client}
		}
	}

	if policy.RateLimit != nil {
		limiter, err := ratelimiter.New(g.counters, *policy.RateLimit)
		if err != nil {
			// Misconfigured budget is a programming error; surface loudly
			// but do not block traffic on it.
			g.log.ErrorContext(r.Context(), "invalid rate limit policy", logger.Error(err))
			return Decision{Allowed: true, Client: client}
		}

		key := rateKey(policy.RateKeyPrefix, r)
		result, err := limiter.Allow(r.Context(), key)
		if err != nil {
			// A broken counter store fails open: rate limiting is
			// best-effort protection, not an authentication boundary.
			g.log.WarnContext(r.Context(), "rate limit check failed",
				logger.RateKey(key), logger.Error(err))
			return Decision{Allowed: true, Client: client}
		}

		if !result.Allowed() {
			g.log.InfoContext(r.Context(), "denied rate-limited request",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.RateKey(key),
				logger.Reason(string(ReasonRateLimited)))
			return Decision{
				Reason:     ReasonRateLimited,
				RetryAfter: result.RetryAfter(),
				RateResult: result,
				Client:     client,
			}
		}

		return Decision{Allowed: true, RateResult: result, Client: client}
	}

	return Decision{Allowed: true, Client: client}
}

// rateKey composes client identity with the logical route so distinct
// operations are budgeted independently.
func rateKey(prefix string, r *http.Request) string {
	parts := []string{prefix, r.Method, r.URL.Path, clientip.GetIP(r)}
	if prefix == "" {
		parts = parts[1:]
	}
	return strings.Join(parts, ":")
}
