package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounterStore shares counters between service instances.
type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(addr string) *RedisCounterStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCounterStore{client: rdb}
}

func (r *RedisCounterStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Increment bumps the counter and sets its expiry in one MULTI/EXEC. NX
// leaves the TTL of an existing key alone, so the window runs from the
// first hit and a key never outlives a failed expire.
func (r *RedisCounterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("increment %s: %w", key, err)
	}
	return incr.Val(), nil
}

func (r *RedisCounterStore) Close() error {
	return r.client.Close()
}
