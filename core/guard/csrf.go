package guard

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// OriginAllowlist is a concurrency-safe set of bare origins
// (scheme://host[:port]) trusted for state-changing requests. It is built
// once at process start from the server's own origin plus any extra
// first-party origins, and may grow at runtime via Add.
type OriginAllowlist struct {
	mu      sync.RWMutex
	origins map[string]struct{}
}

// NewOriginAllowlist creates an allowlist from the given origins.
// Values that do not parse as absolute URLs are ignored.
func NewOriginAllowlist(origins ...string) *OriginAllowlist {
	a := &OriginAllowlist{origins: make(map[string]struct{}, len(origins))}
	for _, origin := range origins {
		a.Add(origin)
	}
	return a
}

// Add normalizes and inserts an origin.
func (a *OriginAllowlist) Add(origin string) {
	normalized, ok := normalizeOrigin(origin)
	if !ok {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.origins[normalized] = struct{}{}
}

// Contains reports whether the origin is allowlisted.
func (a *OriginAllowlist) Contains(origin string) bool {
	normalized, ok := normalizeOrigin(origin)
	if !ok {
		return false
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	_, found := a.origins[normalized]
	return found
}

// normalizeOrigin reduces a URL to its lowercased bare origin.
func normalizeOrigin(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return strings.ToLower(u.Scheme + "://" + u.Host), true
}

// SameOrigin reports whether the request plausibly originated from the
// application's own front end. Rules are checked in order and the first
// match short-circuits:
//
//  1. A loopback/local request host is allowed unconditionally
//     (development convenience).
//  2. A Sec-Fetch-Site value of same-origin or same-site is allowed.
//  3. The Origin header, resolved to a bare origin, is checked against
//     the allowlist; then the Referer the same way.
//  4. Otherwise deny.
func SameOrigin(r *http.Request, allowlist *OriginAllowlist) bool {
	if isLoopbackHost(r.Host) {
		return true
	}

	switch r.Header.Get("Sec-Fetch-Site") {
	case "same-origin", "same-site":
		return true
	}

	if origin := r.Header.Get("Origin"); origin != "" && allowlist.Contains(origin) {
		return true
	}

	if referer := r.Header.Get("Referer"); referer != "" && allowlist.Contains(referer) {
		return true
	}

	return false
}

// isLoopbackHost reports whether a request Host header names the local
// machine.
func isLoopbackHost(host string) bool {
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}
	hostname = strings.ToLower(strings.Trim(hostname, "[]"))

	if hostname == "localhost" || strings.HasSuffix(hostname, ".localhost") {
		return true
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback()
	}

	return false
}
