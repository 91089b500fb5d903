package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/insighthr/insighthr-backend-go/internal/handler/http/response"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/ratelimit"
)

// RateLimitByIP throttles each client address with its own token bucket.
func RateLimitByIP(limiter *ratelimit.KeyedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiter.Allow(ip) {
				slog.WarnContext(r.Context(), "Kiosk rate limit exceeded", "ip", ip, "path", r.URL.Path)
				response.TooManyRequests(w, "Too many requests from this IP")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
