package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// hitScript bumps the counter and returns {count, remaining ms} in one round
// trip. A counter found without expiry gets a fresh window so it cannot block
// the key forever.
var hitScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if count == 1 or ttl < 0 then
	ttl = tonumber(ARGV[1])
	redis.call('PEXPIRE', KEYS[1], ttl)
end
return {count, ttl}
`)

// RedisStore keeps windows in Redis so they survive restarts. Each key is a
// counter whose TTL is the remaining window length.
type RedisStore struct {
	rdb    redis.Scripter
	prefix string
}

// NewRedisStore creates a store on top of an existing client
func NewRedisStore(rdb redis.Scripter, prefix string) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		prefix: strings.Trim(prefix, ":"),
	}
}

// NewRedisClient parses a redis:// URL and pings the server
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func (s *RedisStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

// Hit implements Store
func (s *RedisStore) Hit(ctx context.Context, key string, length time.Duration, now time.Time) (int, time.Time, error) {
	rk := s.key(key)

	windowMs := length.Milliseconds()
	if windowMs < 1 {
		windowMs = 1
	}

	res, err := hitScript.Run(ctx, s.rdb, []string{rk}, windowMs).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("hit %s: %w", rk, err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("hit %s: unexpected reply %v", rk, res)
	}

	return int(res[0]), now.Add(time.Duration(res[1]) * time.Millisecond), nil
}
