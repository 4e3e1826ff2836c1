package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/infrastructure/http/response"
	"github.com/mercato/mercato/infrastructure/service/logger"
)

// RateLimitMiddleware throttles credential endpoints per client IP.
type RateLimitMiddleware struct {
	limiter outbound.RateLimiter
	logger  logger.Logger
}

func NewRateLimitMiddleware(limiter outbound.RateLimiter, log logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, logger: log}
}

// Limit wraps a handler with a per-IP attempt budget. name distinguishes
// counters between endpoints so login attempts don't consume the refresh
// budget.
func (m *RateLimitMiddleware) Limit(name string, limit int, window time.Duration, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := fmt.Sprintf("%s:ip:%s", name, clientIP(r))

		allowed, err := m.limiter.Allow(ctx, key, limit, window)
		if err != nil {
			// Limiter trouble must not take the endpoint down.
			m.logger.Error(ctx, "rate limiter check failed", err, map[string]interface{}{
				"key": key,
			})
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			response.TooManyRequests(w, "Too many requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.Index(forwarded, ","); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
