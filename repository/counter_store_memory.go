package repository

import (
	"context"
	"sync"
	"time"
)

const counterCleanupInterval = 30 * time.Minute

type windowCounter struct {
	count     int64
	expiresAt time.Time
}

// MemoryCounterStore is a process-local CounterStore.
type MemoryCounterStore struct {
	mu          sync.Mutex
	counters    map[string]*windowCounter
	now         func() time.Time
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewMemoryCounterStore starts a store that sweeps expired keys periodically.
func NewMemoryCounterStore() *MemoryCounterStore {
	s := &MemoryCounterStore{
		counters:    make(map[string]*windowCounter),
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

func (s *MemoryCounterStore) cleanupLoop() {
	ticker := time.NewTicker(counterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryCounterStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, c := range s.counters {
		if !now.Before(c.expiresAt) {
			delete(s.counters, key)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (s *MemoryCounterStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCleanup) })
}

func (s *MemoryCounterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c, exists := s.counters[key]
	if !exists || !now.Before(c.expiresAt) {
		s.counters[key] = &windowCounter{count: 1, expiresAt: now.Add(window)}
		return 1, nil
	}

	c.count++
	return c.count, nil
}
