package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucketScript mirrors MemoryStore's refill arithmetic, executed
// atomically server-side so concurrent requests across pods never race on
// a read-modify-write of the same key. All time arguments are in
// milliseconds so sub-second refill intervals behave the same as they do
// against MemoryStore.
const tokenBucketScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local refill_rate = tonumber(ARGV[2])
local refill_interval_ms = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])
local now_ms = tonumber(ARGV[5])

local data = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(data[1])
local last_refill = tonumber(data[2])

if tokens == nil then
  tokens = capacity
  last_refill = now_ms
end

local elapsed = now_ms - last_refill
local intervals = math.floor(elapsed / refill_interval_ms)
if intervals > 0 then
  local refilled = tokens + intervals * refill_rate
  if refilled > capacity then
    refilled = capacity
  end
  tokens = refilled
  last_refill = now_ms
end

tokens = tokens - requested

redis.call('HMSET', key, 'tokens', tokens, 'last_refill', last_refill)
redis.call('PEXPIRE', key, refill_interval_ms * 2 + 1000)

return {tokens, last_refill + refill_interval_ms}
`

// RedisStore implements Store against a shared Redis instance, trading the
// per-pod MemoryStore's "≈N×limit across N pods" behavior for a single
// shared limit at the cost of a network round trip per check.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisKeyPrefix namespaces every key RedisStore touches.
func WithRedisKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore wraps client for use as a rate limiter Store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: "ratelimit:"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

// ConsumeTokens runs tokenBucketScript against the bucket for key.
func (s *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	res, err := s.client.Eval(ctx, tokenBucketScript, []string{s.key(key)},
		config.Capacity,
		config.RefillRate,
		config.RefillInterval.Milliseconds(),
		tokens,
		time.Now().UnixMilli(),
	).Result()
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}

	values, ok := res.([]any)
	if !ok || len(values) != 2 {
		return 0, time.Time{}, fmt.Errorf("%w: unexpected script result shape", ErrStoreUnavailable)
	}

	remaining, err := toInt64(values[0])
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}
	resetMs, err := toInt64(values[1])
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}

	return int(remaining), time.UnixMilli(resetMs), nil
}

// Reset clears the bucket for key.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

// ClearAll scans and deletes every key under this store's prefix,
// implementing Clearer.
func (s *RedisStore) ClearAll(ctx context.Context) error {
	var cursor uint64
	pattern := s.prefix + "*"

	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			return errors.Join(ErrStoreUnavailable, err)
		}

		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return errors.Join(ErrStoreUnavailable, err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}
