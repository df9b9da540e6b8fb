// Package redis provides Redis client initialization and the shared
// rate-limit counter store.
//
// Connect validates the connection URL, dials with retry, and verifies
// connectivity with a ping before returning the client. Healthcheck
// returns a ping function for readiness probes.
//
// CounterStore implements the rate limiter's storage interface with
// atomic INCR-and-expire, so every instance behind a load balancer
// enforces one shared budget.
//
// Usage:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	counters := redis.NewCounterStore(client)
//	g, err := guard.New(counters, allowlist)
package redis
