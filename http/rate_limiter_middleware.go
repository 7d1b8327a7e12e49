package http

import (
	"net"
	"net/http"
	"strconv"
)

// RateLimitMiddleware rejects requests with 429 once the client, identified
// by its remote IP, has used up its tokens.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(int(limiter.Window().Seconds())))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey strips the port when present. middleware.RealIP may already have
// replaced RemoteAddr with a bare IP.
func clientKey(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
