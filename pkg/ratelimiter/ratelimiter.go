package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit"

// Limiter counts hits per key in fixed windows stored in redis.
type Limiter struct {
	redisClient *redis.Client
}

// New accepts a nil client; every hit is then allowed.
func New(redisClient *redis.Client) *Limiter {
	return &Limiter{redisClient: redisClient}
}

func Key(scope, subject string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, scope, subject)
}

// Allow records one hit for subject under scope. When the hit exceeds limit it
// returns false and the time left in the current window.
func (l *Limiter) Allow(ctx context.Context, scope, subject string, limit int, window time.Duration) (bool, time.Duration, error) {
	if l == nil || l.redisClient == nil {
		return true, 0, nil
	}

	key := Key(scope, subject)

	count, err := l.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := l.redisClient.Expire(ctx, key, window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count <= int64(limit) {
		return true, 0, nil
	}

	ttl, err := l.redisClient.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	return false, ttl, nil
}
