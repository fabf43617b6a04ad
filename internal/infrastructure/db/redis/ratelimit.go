package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// tokenBucket refills in whole intervals and consumes one token per call.
// Returns {allowed, remaining, retry_after_ms}.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])
if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

if interval_ms > 0 then
	local intervals = math.floor(math.max(0, now_ms - last_refill) / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + intervals)
		last_refill = last_refill + intervals * interval_ms
	end
end

local allowed = 0
local retry_ms = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
else
	retry_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)
return {allowed, tokens, retry_ms}
`)

// LimitResult is the outcome of one rate-limit check.
type LimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter is a token-bucket rate limiter shared across instances through Redis.
type Limiter struct {
	client   *redis.Client
	capacity int
	interval time.Duration
	now      func() time.Time
}

// NewLimiter allows capacity requests per key, refilling one token per interval.
func NewLimiter(client *redis.Client, capacity int, interval time.Duration) *Limiter {
	if capacity <= 0 {
		capacity = 10
	}
	if interval <= 0 {
		interval = 6 * time.Second
	}
	return &Limiter{client: client, capacity: capacity, interval: interval, now: time.Now}
}

func (l *Limiter) Capacity() int { return l.capacity }

// Allow consumes a token for key.
func (l *Limiter) Allow(ctx context.Context, key string) (LimitResult, error) {
	ttl := time.Duration(l.capacity)*l.interval + time.Minute
	vals, err := tokenBucket.Run(ctx, l.client, []string{rateLimitPrefix + key},
		l.now().UnixMilli(),
		l.capacity,
		l.interval.Milliseconds(),
		int64(ttl/time.Second),
	).Int64Slice()
	if err != nil {
		return LimitResult{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(vals) != 3 {
		return LimitResult{}, fmt.Errorf("rate limit script: unexpected reply of length %d", len(vals))
	}
	return LimitResult{
		Allowed:    vals[0] == 1,
		Remaining:  vals[1],
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}
