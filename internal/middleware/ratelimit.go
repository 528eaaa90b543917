package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"
)

// NewRateLimitHandler returns a middleware that admits at most perMinute
// requests per minute, with bursts up to burst. Excess requests get 429 and a
// Retry-After header. The limit is global: the view service serves a single
// user session, so there is nobody to key it by.
func NewRateLimitHandler(perMinute, burst int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 1
	}
	every := rate.Limit(float64(perMinute) / 60.0)
	limiter := rate.NewLimiter(every, burst)
	retryAfter := strconv.Itoa(int(math.Ceil(1.0 / float64(every))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				slog.WarnContext(r.Context(), "rate limit exceeded",
					"method", r.Method,
					"path", r.URL.Path,
				)
				w.Header().Set("Retry-After", retryAfter)
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
