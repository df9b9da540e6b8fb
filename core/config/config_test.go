package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heithemdev/rime-couture-sub002/core/config"
)

// Distinct struct types per test: Load caches by type, so sharing one
// would leak state between subtests.

func TestLoad(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		type withDefaults struct {
			Name    string        `env:"CFGTEST_NAME" envDefault:"storefront"`
			Timeout time.Duration `env:"CFGTEST_TIMEOUT" envDefault:"15s"`
		}

		var cfg withDefaults
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "storefront", cfg.Name)
		assert.Equal(t, 15*time.Second, cfg.Timeout)
	})

	t.Run("environment wins over default", func(t *testing.T) {
		type fromEnv struct {
			Port int `env:"CFGTEST_PORT" envDefault:"8080"`
		}

		t.Setenv("CFGTEST_PORT", "9090")

		var cfg fromEnv
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 9090, cfg.Port)
	})

	t.Run("required variable missing", func(t *testing.T) {
		type withRequired struct {
			Secret string `env:"CFGTEST_ABSENT_SECRET,required"`
		}

		var cfg withRequired
		assert.Error(t, config.Load(&cfg))
	})

	t.Run("second load returns cached value", func(t *testing.T) {
		type cached struct {
			Value string `env:"CFGTEST_CACHED" envDefault:"first"`
		}

		t.Setenv("CFGTEST_CACHED", "from-env")

		var first cached
		require.NoError(t, config.Load(&first))
		require.Equal(t, "from-env", first.Value)

		// Changing the environment after the first load has no effect.
		t.Setenv("CFGTEST_CACHED", "changed")

		var second cached
		require.NoError(t, config.Load(&second))
		assert.Equal(t, "from-env", second.Value)
	})

	t.Run("nil target rejected", func(t *testing.T) {
		type anyCfg struct{}
		assert.Error(t, config.Load[anyCfg](nil))
	})

	t.Run("slice separator", func(t *testing.T) {
		type withSlice struct {
			Secrets []string `env:"CFGTEST_SECRETS" envSeparator:","`
		}

		t.Setenv("CFGTEST_SECRETS", "alpha,beta")

		var cfg withSlice
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, []string{"alpha", "beta"}, cfg.Secrets)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on missing required", func(t *testing.T) {
		type mustRequired struct {
			Key string `env:"CFGTEST_MUST_ABSENT,required"`
		}

		assert.Panics(t, func() {
			var cfg mustRequired
			config.MustLoad(&cfg)
		})
	})

	t.Run("returns on success", func(t *testing.T) {
		type mustOK struct {
			Key string `env:"CFGTEST_MUST_OK" envDefault:"ok"`
		}

		var cfg mustOK
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "ok", cfg.Key)
	})
}
