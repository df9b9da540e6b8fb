// Package config provides type-safe environment variable loading with
// caching using Go generics. Each configuration type is loaded once and
// cached for subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	type AuthConfig struct {
//		SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"720h"`
//		CookieSecrets []string      `env:"COOKIE_SECRETS,required" envSeparator:","`
//	}
//
//	var cfg AuthConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (useful for startup)
//	config.MustLoad(&cfg)
//
// Each configuration type is loaded only once per application lifetime;
// later calls for the same type return the cached value.
package config
