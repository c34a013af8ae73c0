package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrWindowScript is a package-level Lua script; go-redis switches to
// EVALSHA after the first call.
//
// Logic:
// 1. INCR the counter for the current window
// 2. On the first hit, set the window expiry
// 3. Return the hit count
var incrWindowScript = redis.NewScript(`
	local hits = redis.call('INCR', KEYS[1])
	if hits == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return hits
`)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimiter is a fixed-window request counter keyed by client.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records one hit for key and reports whether it is within the limit.
func (l *RateLimiter) Allow(ctx context.Context, scope, key string) (bool, error) {
	windowStart := l.now().Truncate(l.window).Unix()
	redisKey := rateLimitKeyPrefix + scope + ":" + key + ":" + time.Unix(windowStart, 0).UTC().Format("20060102T150405")

	hits, err := incrWindowScript.Run(ctx, l.client, []string{redisKey}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return hits <= int64(l.limit), nil
}
