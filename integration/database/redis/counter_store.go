package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrScript atomically increments a window counter, arming its expiry on
// first touch, and returns the count with the remaining window in
// milliseconds. Atomicity matters: a non-atomic INCR+EXPIRE pair can leave
// an immortal counter if the client dies in between.
var incrScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return {count, ttl}
`)

// CounterStore implements the rate limiter's fixed-window counter storage
// on Redis. Counters are shared across every process pointing at the same
// instance, giving one budget per key cluster-wide.
type CounterStore struct {
	client *redis.Client
	prefix string
}

// CounterStoreOption configures a CounterStore.
type CounterStoreOption func(*CounterStore)

// WithKeyPrefix namespaces counter keys, isolating applications sharing a
// Redis instance.
func WithKeyPrefix(prefix string) CounterStoreOption {
	return func(cs *CounterStore) {
		if prefix != "" {
			cs.prefix = prefix
		}
	}
}

// NewCounterStore creates a counter store on the given client.
func NewCounterStore(client *redis.Client, opts ...CounterStoreOption) *CounterStore {
	cs := &CounterStore{
		client: client,
		prefix: "ratelimit",
	}

	for _, opt := range opts {
		opt(cs)
	}

	return cs
}

// Incr increments the counter for key within the current fixed window,
// starting a fresh window when none is active.
func (cs *CounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	res, err := incrScript.Run(ctx, cs.client, []string{cs.key(key)}, window.Milliseconds()).Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("incr window counter: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("incr window counter: unexpected reply %v", res)
	}

	count, ok := res[0].(int64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("incr window counter: unexpected count %T", res[0])
	}
	ttlMs, ok := res[1].(int64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("incr window counter: unexpected ttl %T", res[1])
	}
	if ttlMs < 0 {
		// PTTL reports -1 for a key without expiry; fall back to the
		// window so the counter cannot become an eternal denial.
		ttlMs = window.Milliseconds()
	}

	return count, time.Now().Add(time.Duration(ttlMs) * time.Millisecond), nil
}

// Reset removes the counter for key, immediately granting a fresh window.
func (cs *CounterStore) Reset(ctx context.Context, key string) error {
	if err := cs.client.Del(ctx, cs.key(key)).Err(); err != nil {
		return fmt.Errorf("reset window counter: %w", err)
	}
	return nil
}

func (cs *CounterStore) key(key string) string {
	return cs.prefix + ":" + key
}
