package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	pkghttp "github.com/harmonymatch/admin-gateway/pkg/http"
)

// RateLimitConfig bounds how many requests a single client IP may make
// within the window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// DefaultLoginRateLimit limits credential attempts to 5 per minute per IP.
func DefaultLoginRateLimit() RateLimitConfig {
	return RateLimitConfig{Requests: 5, Window: time.Minute}
}

// RateLimitByIP throttles requests per client IP and answers over-limit
// requests with a 429 in the gateway's error envelope.
func RateLimitByIP(cfg RateLimitConfig) func(next http.Handler) http.Handler {
	return httprate.Limit(
		cfg.Requests,
		cfg.Window,
		httprate.WithKeyByRealIP(),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			pkghttp.WriteTooManyRequests(w, "too many attempts, slow down")
		}),
	)
}
