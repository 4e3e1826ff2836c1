package outbound

import (
	"context"
	"time"
)

// RateLimiter bounds attempt rates per key (typically "login:ip:<addr>").
// Allow both checks and consumes one attempt within the window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
