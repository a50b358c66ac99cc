package http

import (
	"context"
	"fmt"
	"time"

	"mortgage-afford/obs"
	"mortgage-afford/repository"
)

// RateLimiter admits up to capacity requests per client in each fixed
// window. Counters live in a CounterStore so several instances can share
// them through redis.
type RateLimiter struct {
	store    repository.CounterStore
	capacity int
	window   time.Duration
	now      func() time.Time
}

func NewRateLimiter(store repository.CounterStore, capacity int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:    store,
		capacity: capacity,
		window:   window,
		now:      time.Now,
	}
}

// Allow fails open when the store is unreachable.
func (r *RateLimiter) Allow(ctx context.Context, ip string) bool {
	slot := r.now().UnixNano() / int64(r.window)
	key := fmt.Sprintf("ratelimit:%s:%d", ip, slot)

	count, err := r.store.Increment(ctx, key, r.window)
	if err != nil {
		obs.Logger.Warn().Err(err).Str("ip", ip).Msg("rate_limit_store_error")
		return true
	}
	return count <= int64(r.capacity)
}
