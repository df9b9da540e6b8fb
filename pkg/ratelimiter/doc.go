// Package ratelimiter provides fixed-window request rate limiting with
// pluggable storage backends.
//
// # Fixed-Window Algorithm
//
// Each key owns a counter scoped to a fixed time window. The first request
// for a key (or the first after the window has passed) starts a fresh
// window; subsequent requests increment the counter until the limit is
// reached. A burst straddling a window edge can momentarily admit up to
// roughly twice the nominal rate; this is a deliberate simplicity/precision
// tradeoff.
//
// # Usage
//
//	store := ratelimiter.NewMemoryStore()
//	go store.Start(ctx) // background sweep of expired counters
//
//	limiter, err := ratelimiter.New(store, ratelimiter.Config{
//		Limit:  100,
//		Window: time.Minute,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := limiter.Allow(ctx, "login:"+clientip.GetIP(r))
//	if err != nil {
//		// storage failure: fail open or closed per call site policy
//	}
//	if !result.Allowed() {
//		w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter().Seconds())))
//		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
//		return
//	}
//
// # Storage Backends
//
// MemoryStore is process-local: in a horizontally scaled deployment each
// instance enforces its own budget, so the effective global rate is
// perInstanceLimit * instanceCount. A shared counter (see the redis
// integration's CounterStore) can be substituted behind the same Store
// contract without changing callers.
//
// # Key Selection
//
// Keys compose client identity with the logical operation, e.g.
// "checkout:POST:/api/checkout:203.0.113.7" or "account:" + subjectID.
// Distinct keys are limited independently.
package ratelimiter
