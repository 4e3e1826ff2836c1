package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/mercato/mercato/application/port/outbound"
	"github.com/mercato/mercato/infrastructure/service/logger"
)

// RedisRateLimiter is a counter per key with a rolling expiry. Once the
// counter passes the limit, further attempts are denied until the key
// expires.
type RedisRateLimiter struct {
	client *redis.Client
	logger logger.Logger
}

func NewRedisRateLimiter(redisURL string, log logger.Logger) (*RedisRateLimiter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRateLimiter{client: client, logger: log}, nil
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	count := incr.Val()
	allowed := count <= int64(limit)
	if !allowed {
		l.logger.Warn(ctx, "rate limit exceeded", map[string]interface{}{
			"key":      key,
			"attempts": count,
			"limit":    limit,
		})
	}
	return allowed, nil
}

func (l *RedisRateLimiter) Close() error {
	return l.client.Close()
}

// NoopRateLimiter allows everything; used when rate limiting is disabled.
type NoopRateLimiter struct{}

func NewNoopRateLimiter() *NoopRateLimiter {
	return &NoopRateLimiter{}
}

func (l *NoopRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

var (
	_ outbound.RateLimiter = (*RedisRateLimiter)(nil)
	_ outbound.RateLimiter = (*NoopRateLimiter)(nil)
)
