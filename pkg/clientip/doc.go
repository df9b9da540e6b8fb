// Package clientip extracts the real client IP address from HTTP requests.
//
// Proxy headers are checked in priority order so the most reliable source
// wins:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry is the original client)
//  4. X-Real-IP (nginx and similar proxies)
//  5. RemoteAddr (direct connection)
//
// Every candidate is validated with net.ParseIP and normalized; the
// unspecified address 0.0.0.0 is rejected. GetIP never panics and always
// returns a string, falling back to the raw RemoteAddr when no valid IP
// can be determined.
//
//	ip := clientip.GetIP(r)
//	result, err := limiter.Allow(r.Context(), "checkout:"+ip)
package clientip
