package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/gaspigz/taskManagerClg/internal/api/shared"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
	"github.com/gaspigz/taskManagerClg/internal/platform/metrics"
)

// Limiter decides whether another request from identifier is allowed.
type Limiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
}

// RateLimit rejects requests with 429 once the limiter refuses the client
// address. Limiter errors let the request through.
func RateLimit(limiter Limiter, endpoint string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				logger.FromContext(r.Context()).Warn("rate limiter unavailable",
					slog.String("endpoint", endpoint),
					slog.String("error", err.Error()))
				allowed = true
			}

			if !allowed {
				metrics.RLBlocked.WithLabelValues(endpoint).Inc()
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, "Too many requests", nil)
				return
			}

			metrics.RLRequests.WithLabelValues(endpoint).Inc()
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr, which chi's RealIP
// middleware has already rewritten from proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
