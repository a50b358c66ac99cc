package repository

import (
	"context"
	"time"
)

// CounterStore counts hits per key. A key's count starts at 1 on its first
// increment and expires window after that.
type CounterStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
