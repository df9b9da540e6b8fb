package sessiontransport

import (
	"errors"
	"net/http"
	"time"

	"github.com/heithemdev/rime-couture-sub002/core/cookie"
)

// CookieConfig provides environment-based configuration for the cookie
// transport.
type CookieConfig struct {
	// Name is the session cookie name.
	Name string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`

	// Secure restricts the cookie to HTTPS. Disable only for local
	// development over plain HTTP.
	Secure bool `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
}

// DefaultCookieConfig returns a CookieConfig with production defaults.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{
		Name:   "__session",
		Secure: true,
	}
}

// Cookie carries the raw session token in an HMAC-signed cookie. The raw
// token exists only in the cookie value and in memory during a request;
// storage sees digests exclusively.
type Cookie struct {
	cookieMgr *cookie.Manager
	name      string
	secure    bool
}

// NewCookie creates a cookie-based session transport.
func NewCookie(cookieMgr *cookie.Manager, cfg CookieConfig) *Cookie {
	name := cfg.Name
	if name == "" {
		name = DefaultCookieConfig().Name
	}

	return &Cookie{
		cookieMgr: cookieMgr,
		name:      name,
		secure:    cfg.Secure,
	}
}

// Embed writes the raw token as a signed cookie that lives as long as the
// session. The cookie MaxAge mirrors the session TTL so the browser drops
// the credential around the time the server stops honoring it.
func (c *Cookie) Embed(w http.ResponseWriter, rawToken string, ttl time.Duration) error {
	maxAge := int(ttl.Seconds())
	if maxAge <= 0 {
		return errors.New("sessiontransport: non-positive cookie lifetime")
	}

	return c.cookieMgr.SetSigned(w, c.name, rawToken,
		cookie.WithHTTPOnly(true),
		cookie.WithSecure(c.secure),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithMaxAge(maxAge),
	)
}

// Extract returns the raw token from the request cookie. A missing cookie
// yields ErrNoToken; a present but unverifiable one yields ErrInvalidToken.
// Callers treat both the same way, the split exists for logging.
func (c *Cookie) Extract(r *http.Request) (string, error) {
	raw, err := c.cookieMgr.GetSigned(r, c.name)
	switch {
	case err == nil:
		return raw, nil
	case errors.Is(err, cookie.ErrCookieNotFound):
		return "", ErrNoToken
	default:
		return "", errors.Join(ErrInvalidToken, err)
	}
}

// Clear instructs the browser to drop the session cookie. It is safe to
// call whether or not a cookie is present.
func (c *Cookie) Clear(w http.ResponseWriter) {
	c.cookieMgr.Delete(w, c.name)
}
