// Package guard classifies inbound requests before authentication runs:
// same-origin or forgeable, human or automated, within or over the rate
// budget.
//
// Both heuristic checks are advisory defense-in-depth, not cryptographic
// guarantees. The composed Check applies them in a fixed order (CSRF,
// bot classification, rate limit) and short-circuits on the first denial.
//
//	allowlist := guard.NewOriginAllowlist("https://shop.example")
//	g, err := guard.New(store, allowlist)
//
//	decision := g.Check(r, guard.Policy{
//		RequireSameOrigin:   true,
//		BlockSuspiciousBots: true,
//		RateLimit:           &ratelimiter.Config{Limit: 10, Window: time.Minute},
//		RateKeyPrefix:       "login",
//	})
//	if !decision.Allowed {
//		// decision.Reason says why; decision.RetryAfter hints rate-limited clients
//	}
package guard
