package middleware

import (
	"net/http"

	"github.com/de-tools/health-atlas/pkg/handlers"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimiter shares one token bucket across every request it wraps.
func RateLimiter(requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				zerolog.Ctx(r.Context()).Warn().Msg("rate limit exceeded")
				w.Header().Set("Retry-After", "1")
				handlers.WriteError(w, r, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
