package guard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heithemdev/rime-couture-sub002/core/guard"
	"github.com/heithemdev/rime-couture-sub002/pkg/ratelimiter"
)

// brokenStore fails every operation, simulating a counter backend outage.
type brokenStore struct{}

func (brokenStore) Incr(context.Context, string, time.Duration) (int64, time.Time, error) {
	return 0, time.Time{}, errors.New("store down")
}

func (brokenStore) Reset(context.Context, string) error {
	return errors.New("store down")
}

func newGuardRequest(headers map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
	r.Host = "shop.example"
	r.RemoteAddr = "203.0.113.7:52100"
	r.Header.Set("User-Agent", browserUA)
	r.Header.Set("Accept", "text/html")
	r.Header.Set("Accept-Language", "en-US")
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}

func TestGuardCheck(t *testing.T) {
	t.Parallel()

	newGuard := func(t *testing.T, counters ratelimiter.Store) *guard.Guard {
		t.Helper()
		if counters == nil {
			counters = ratelimiter.NewMemoryStore()
		}
		g, err := guard.New(counters, guard.NewOriginAllowlist("https://shop.example"))
		require.NoError(t, err)
		return g
	}

	t.Run("zero policy allows everything", func(t *testing.T) {
		t.Parallel()

		g := newGuard(t, nil)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Host = "shop.example"

		decision := g.Check(r, guard.Policy{})
		assert.True(t, decision.Allowed)
	})

	t.Run("cross-origin denied before bot and rate checks", func(t *testing.T) {
		t.Parallel()

		g := newGuard(t, brokenStore{})
		r := newGuardRequest(map[string]string{"Origin": "https://evil.example"})
		r.Header.Set("User-Agent", "curl/8.4.0")

		decision := g.Check(r, guard.Policy{
			RequireSameOrigin:   true,
			BlockSuspiciousBots: true,
			RateLimit:           &ratelimiter.Config{Limit: 1, Window: time.Minute},
		})
		require.False(t, decision.Allowed)
		assert.Equal(t, guard.ReasonCrossOrigin, decision.Reason)
		// Bot classification never ran.
		assert.Equal(t, guard.Classification{}, decision.Client)
	})

	t.Run("suspicious bot denied before rate check", func(t *testing.T) {
		t.Parallel()

		store := ratelimiter.NewMemoryStore()
		g := newGuard(t, store)
		r := newGuardRequest(map[string]string{
			"Sec-Fetch-Site": "same-origin",
			"User-Agent":     "python-requests/2.31.0",
		})

		decision := g.Check(r, guard.Policy{
			RequireSameOrigin:   true,
			BlockSuspiciousBots: true,
			RateLimit:           &ratelimiter.Config{Limit: 5, Window: time.Minute},
		})
		require.False(t, decision.Allowed)
		assert.Equal(t, guard.ReasonSuspiciousBot, decision.Reason)
		assert.True(t, decision.Client.IsSuspicious)
		// The denied request consumed no rate budget.
		assert.Nil(t, decision.RateResult)
	})

	t.Run("allowlisted crawler passes the bot check", func(t *testing.T) {
		t.Parallel()

		g := newGuard(t, nil)
		r := newGuardRequest(map[string]string{
			"Sec-Fetch-Site": "same-origin",
			"User-Agent":     "Mozilla/5.0 (compatible; Googlebot/2.1)",
		})

		decision := g.Check(r, guard.Policy{
			RequireSameOrigin:   true,
			BlockSuspiciousBots: true,
		})
		assert.True(t, decision.Allowed)
		assert.True(t, decision.Client.IsAllowedBot)
	})

	t.Run("rate limit denies over budget with retry hint", func(t *testing.T) {
		t.Parallel()

		g := newGuard(t, nil)
		policy := guard.Policy{
			RateKeyPrefix: "cart",
			RateLimit:     &ratelimiter.Config{Limit: 2, Window: time.Minute},
		}

		r := newGuardRequest(nil)
		for i := 0; i < 2; i++ {
			decision := g.Check(r, policy)
			require.True(t, decision.Allowed, "request %d should be within budget", i+1)
			require.NotNil(t, decision.RateResult)
		}

		decision := g.Check(r, policy)
		require.False(t, decision.Allowed)
		assert.Equal(t, guard.ReasonRateLimited, decision.Reason)
		assert.Greater(t, decision.RetryAfter, time.Duration(0))
		require.NotNil(t, decision.RateResult)
		assert.Negative(t, decision.RateResult.Remaining)
	})

	t.Run("distinct prefixes budget independently", func(t *testing.T) {
		t.Parallel()

		g := newGuard(t, nil)
		r := newGuardRequest(nil)
		cfg := &ratelimiter.Config{Limit: 1, Window: time.Minute}

		first := g.Check(r, guard.Policy{RateKeyPrefix: "checkout", RateLimit: cfg})
		require.True(t, first.Allowed)

		// Same client, same route, different logical operation.
		second := g.Check(r, guard.Policy{RateKeyPrefix: "login", RateLimit: cfg})
		assert.True(t, second.Allowed)
	})

	t.Run("broken counter store fails open", func(t *testing.T) {
		t.Parallel()

		g := newGuard(t, brokenStore{})
		r := newGuardRequest(nil)

		decision := g.Check(r, guard.Policy{
			RateLimit: &ratelimiter.Config{Limit: 1, Window: time.Minute},
		})
		assert.True(t, decision.Allowed)
		assert.Nil(t, decision.RateResult)
	})

	t.Run("invalid rate config allows traffic", func(t *testing.T) {
		t.Parallel()

		g := newGuard(t, nil)
		r := newGuardRequest(nil)

		decision := g.Check(r, guard.Policy{
			RateLimit: &ratelimiter.Config{Limit: 0, Window: time.Minute},
		})
		assert.True(t, decision.Allowed)
	})
}

func TestGuardNew(t *testing.T) {
	t.Parallel()

	t.Run("requires counter store", func(t *testing.T) {
		t.Parallel()

		_, err := guard.New(nil, guard.NewOriginAllowlist())
		assert.Error(t, err)
	})

	t.Run("requires allowlist", func(t *testing.T) {
		t.Parallel()

		_, err := guard.New(ratelimiter.NewMemoryStore(), nil)
		assert.Error(t, err)
	})
}
