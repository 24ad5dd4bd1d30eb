package limiter

import (
	"net/http"
	"strconv"
	"time"
)

// Middleware wraps an http.Handler with per-key admission control. keyFunc
// extracts the client key from the request (IP, user ID, API key); requests
// whose key is rejected receive 429 with a Retry-After hint.
//
// It is built on plain net/http so it composes with any router.
func (l *Limiter) Middleware(keyFunc func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, err := l.AllowDecision(keyFunc(r))
			if err != nil {
				http.Error(w, "rate limiter error", http.StatusInternalServerError)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
			if !decision.Allow {
				if decision.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.FormatInt(durationCeilSeconds(decision.RetryAfter), 10))
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func durationCeilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}
