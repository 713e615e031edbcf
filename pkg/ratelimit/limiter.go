package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// allowScript trims the window, counts and records in one step so concurrent callers
// cannot all observe the same count.
//
// KEYS[1] key, ARGV[1] now millis, ARGV[2] window start millis, ARGV[3] limit,
// ARGV[4] member, ARGV[5] ttl millis.
var allowScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[2])
local count = redis.call('ZCARD', KEYS[1])
if count >= tonumber(ARGV[3]) then
	return 0
end
redis.call('ZADD', KEYS[1], ARGV[1], ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

// SlidingWindow counts requests per key in a Redis sorted set scored by unix millis.
type SlidingWindow struct {
	rdb *redis.Client
	now func() time.Time
}

func NewSlidingWindow(rdb *redis.Client) *SlidingWindow {
	return &SlidingWindow{rdb: rdb, now: time.Now}
}

// Allow reports whether one more request fits under limit within window, and records it if so.
func (l *SlidingWindow) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := l.now().UnixMilli()
	windowStart := now - window.Milliseconds()

	res, err := allowScript.Run(ctx, l.rdb, []string{key},
		now,
		windowStart,
		limit,
		fmt.Sprintf("%d-%s", now, uuid.NewString()),
		(window * 2).Milliseconds(),
	).Int64()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

func UserKey(userID, endpoint string) string {
	return fmt.Sprintf("ratelimit:%s:%s", userID, endpoint)
}
