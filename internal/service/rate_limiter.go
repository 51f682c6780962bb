package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avetkin/scooter-rental/pkg/database"
)

// RateLimiter applies a sliding-window limit per key, backed by a Redis
// sorted set of request timestamps.
type RateLimiter struct {
	redis *database.Redis
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redis *database.Redis) *RateLimiter {
	return &RateLimiter{redis: redis}
}

// Allow reports whether a request under key fits within limit requests per
// window, recording it if so.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	windowStart := fmt.Sprintf("%d", now.Add(-window).UnixNano())
	if err := r.redis.Client.ZRemRangeByScore(ctx, redisKey, "0", windowStart).Err(); err != nil {
		return false, fmt.Errorf("failed to trim rate limit window: %w", err)
	}

	count, err := r.redis.Client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count rate limit entries: %w", err)
	}

	if count >= int64(limit) {
		return false, nil
	}

	err = r.redis.Client.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	}).Err()
	if err != nil {
		return false, fmt.Errorf("failed to record rate limit entry: %w", err)
	}

	// Keep the key from lingering after traffic stops.
	_ = r.redis.Client.Expire(ctx, redisKey, window+time.Minute).Err()

	return true, nil
}

// Remaining returns the number of requests still allowed in the current window
func (r *RateLimiter) Remaining(ctx context.Context, key string, limit int) (int, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := r.redis.Client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count rate limit entries: %w", err)
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
