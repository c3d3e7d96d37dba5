package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
-- KEYS[1] = counter key
-- ARGV[1] = window_ms (int)
--
-- Returns the post-increment count for the current window.
-- The window starts when the key is first written and ends when it expires,
-- so the counter is shared and atomic across processes.
local current = redis.call('INCR', KEYS[1])
if current == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
else
  -- Ensure TTL exists even if the key survived without one
  if redis.call('PTTL', KEYS[1]) < 0 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
  end
end
return current
`)

// RedisLimiter is a fixed-window limiter backed by a shared Redis counter.
// Counters expire with the window, so stale keys clean themselves up.
type RedisLimiter struct {
	rdb *redis.Client

	// KeyPrefix namespaces limiter counters in the shared keyspace.
	KeyPrefix string
}

func NewRedisLimiter(rdb *redis.Client) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, KeyPrefix: "ratelimit:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if l.rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	if key == "" {
		return false, fmt.Errorf("key is required")
	}
	if limit <= 0 || window <= 0 {
		return false, fmt.Errorf("limit and window must be > 0")
	}

	current, err := fixedWindowScript.Run(ctx, l.rdb, []string{l.KeyPrefix + key}, window.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	// The count advanced regardless of the outcome (increment-on-trip).
	return current <= limit, nil
}
