package ratelimit

import (
	"context"
	"strconv"
	"time"

	"travel-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCounter shares a sliding window between instances using one sorted set per key.
type RedisCounter struct {
	rdb redis.Cmdable
}

func NewRedisCounter(rdb redis.Cmdable) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (r *RedisCounter) Record(ctx context.Context, key string, now time.Time, window time.Duration) (int, error) {
	nowMs := now.UnixMilli()
	cutoff := nowMs - window.Milliseconds()
	// members must be unique even when two hits share a millisecond
	member := strconv.FormatInt(nowMs, 10) + "-" + uuid.NewString()

	var card *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff, 10))
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(nowMs), Member: member})
		card = pipe.ZCard(ctx, key)
		pipe.PExpire(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, errs.Wrap(err, "redis rate counter")
	}
	return int(card.Val()), nil
}
