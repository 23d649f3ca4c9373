package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter keyed by caller identity.
type RateLimiter struct {
	client *goredis.Client
	limit  int64
	window time.Duration
	prefix string
}

// NewRateLimiter creates a limiter allowing limit hits per window.
// Keys have the form rl:<scope>:<window_seconds>:<identifier>.
func NewRateLimiter(client *goredis.Client, scope string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		prefix: "rl:" + scope + ":" + strconv.FormatInt(int64(window.Seconds()), 10) + ":",
	}
}

// Allow records a hit for identifier and reports whether it is within the
// limit. A nil limiter or a non-positive limit allows everything.
func (l *RateLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	if l == nil || l.client == nil || l.limit <= 0 {
		return true, nil
	}

	key := l.prefix + identifier
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true, fmt.Errorf("rate limiter incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return true, fmt.Errorf("rate limiter expire: %w", err)
		}
	}

	return count <= l.limit, nil
}
