package throttle

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps window counters in Redis so multiple processes share one
// quota. Counters are INCR'd per request; the window TTL is attached to the
// first increment only, giving the same fixed-window semantics as the
// in-memory store.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore creates a RedisStore. All keys are placed under the given
// prefix to keep the throttle namespace separate from other users of the
// database.
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "throttle"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

// Allow increments the counter for key and reports whether it is within
// limit. Errors reaching Redis fail open: a broken limiter backend must not
// take the API down with it.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := s.prefix + ":" + key
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return incr.Val() <= int64(limit), nil
}
