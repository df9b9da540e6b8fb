package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/heithemdev/rime-couture-sub002/core/guard"
	"github.com/heithemdev/rime-couture-sub002/pkg/ratelimiter"
)

// Gate applies a guard policy before the wrapped handler runs. Cross-origin
// and suspicious-bot denials get 403; rate limit denials get 429 with a
// Retry-After hint. Allowed requests pass through with rate limit headers
// set when a budget was evaluated.
func Gate(g *guard.Guard, policy guard.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := g.Check(r, policy)

			if decision.RateResult != nil {
				setRateHeaders(w, decision.RateResult)
			}

			if decision.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			switch decision.Reason {
			case guard.ReasonRateLimited:
				if secs := retryAfterSeconds(decision); secs > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(secs))
				}
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			default:
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			}
		})
	}
}

func setRateHeaders(w http.ResponseWriter, result *ratelimiter.Result) {
	remaining := result.Remaining
	if remaining < 0 {
		remaining = 0
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

// retryAfterSeconds rounds the retry hint up to whole seconds so a
// sub-second remainder never reads as "retry now".
func retryAfterSeconds(decision guard.Decision) int {
	return int(math.Ceil(decision.RetryAfter.Seconds()))
}
