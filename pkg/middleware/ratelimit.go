package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/leonelcastillo/Tx/pkg/metrics"
	"github.com/leonelcastillo/Tx/pkg/ratelimit"
)

// RateLimit gates requests through the sliding-window limiter, keyed by client
// address. Denials answer 429 with the limit and window so callers know how to
// back off. The metrics parameter may be nil.
func RateLimit(limiter *ratelimit.Limiter, m *metrics.Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Admit(clientKey(r)) {
				if m != nil {
					m.RecordRateLimitDenial()
				}
				msg := fmt.Sprintf("Rate limit exceeded: up to %d submissions per %ds allowed",
					limiter.Max(), int(limiter.Window().Seconds()))
				http.Error(w, msg, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey derives the admission key from the request: the first hop of
// X-Forwarded-For when present, else the remote address host. An empty result
// is fine; the limiter falls back to its shared sentinel bucket.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
