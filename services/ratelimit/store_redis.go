package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrementScript bumps the counter, arms the expiry on the first hit of a window
// and reports the remaining TTL, all in one round trip.
var incrementScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// RedisStore shares counters between instances. The script runs atomically on the
// server, so increments for one key are linearizable.
type RedisStore struct {
	client redis.Scripter
	now    func() time.Time
}

func NewRedisStore(client redis.Scripter) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (Window, error) {
	ms := window.Milliseconds()
	if ms < 1 {
		ms = 1
	}

	res, err := incrementScript.Run(ctx, s.client, []string{key}, ms).Int64Slice()
	if err != nil {
		return Window{}, fmt.Errorf("redis increment %s: %w", key, err)
	}
	if len(res) != 2 {
		return Window{}, fmt.Errorf("redis increment %s: unexpected reply %v", key, res)
	}

	return Window{
		Count:   res[0],
		ResetAt: s.now().Add(time.Duration(res[1]) * time.Millisecond),
	}, nil
}
