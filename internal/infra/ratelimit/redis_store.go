package ratelimit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// allowScript keeps the admitted request times of a client in a sorted set
// and admits a request unless the set already holds limit entries younger
// than one window. The key expires one window after the latest admission.
// KEYS[1] log, ARGV[1] limit, ARGV[2] window in milliseconds, ARGV[3] now in
// milliseconds, ARGV[4] unique member for this request.
// Returns {admitted, count, ms until the oldest entry leaves the window}.
var allowScript = redis.NewScript(`
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', now - window)
local count = redis.call('ZCARD', KEYS[1])
if count >= tonumber(ARGV[1]) then
  local first = redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')
  return {0, count, tonumber(first[2]) + window - now}
end
redis.call('ZADD', KEYS[1], now, ARGV[4])
redis.call('PEXPIRE', KEYS[1], window)
local first = redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')
return {1, count + 1, tonumber(first[2]) + window - now}
`)

// RedisStore keeps counters in Redis so all instances share one budget per client.
type RedisStore struct {
	client redis.Scripter
	limit  int
	window time.Duration
}

// NewRedisStore creates a Redis-backed store admitting limit requests per window.
func NewRedisStore(client redis.Scripter, limit int, window time.Duration) *RedisStore {
	return &RedisStore{client: client, limit: limit, window: window}
}

// Allow implements Store.
func (s *RedisStore) Allow(ctx context.Context, key string, now time.Time) (Result, error) {
	values, err := allowScript.Run(ctx, s.client,
		[]string{redisKeyPrefix + key},
		s.limit, s.window.Milliseconds(), now.UnixMilli(), uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return Result{}, errors.Wrap(err, "failed to run rate limit script")
	}
	if len(values) != 3 {
		return Result{}, errors.Errorf("unexpected rate limit script reply: %v", values)
	}

	resetAt := now.Add(time.Duration(values[2]) * time.Millisecond)
	if values[0] == 0 {
		return rejected(s.limit, resetAt), nil
	}

	return allowed(s.limit, int(values[1]), resetAt), nil
}
