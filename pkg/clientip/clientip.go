package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Proxy headers in priority order.
var headers = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client IP address for the request, preferring trusted
// proxy headers over the transport-level remote address. Falls back to the
// raw RemoteAddr when nothing else validates.
func GetIP(r *http.Request) string {
	for _, h := range headers {
		value := r.Header.Get(h)
		if value == "" {
			continue
		}

		// X-Forwarded-For may carry "client, proxy1, proxy2";
		// the leftmost entry is the original client.
		if h == "X-Forwarded-For" {
			if idx := strings.IndexByte(value, ','); idx >= 0 {
				value = value[:idx]
			}
		}

		if ip, ok := normalize(value); ok {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip, ok := normalize(host); ok {
		return ip
	}

	return r.RemoteAddr
}

// normalize validates a candidate IP string and returns its canonical form.
// The unspecified address is rejected since it never identifies a client.
func normalize(s string) (string, bool) {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return "", false
	}
	return ip.String(), true
}
