package limiter

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps counters in process. Fine for a single instance.
type MemoryStore struct {
	c *cache.Cache
}

func NewMemoryStore(cleanup time.Duration) *MemoryStore {
	return &MemoryStore{c: cache.New(cache.NoExpiration, cleanup)}
}

func (m *MemoryStore) CountAttempts(_ context.Context, key string) (int, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return 0, nil
	}

	return v.(int), nil
}

func (m *MemoryStore) RecordAttempt(_ context.Context, key string, window time.Duration) error {
	for {
		if err := m.c.Add(key, 1, window); err == nil {
			return nil
		}
		// Increment keeps the expiry set by Add. It fails only if the item
		// expired in between, then Add is retried.
		if _, err := m.c.IncrementInt(key, 1); err == nil {
			return nil
		}
	}
}

func (m *MemoryStore) ResetAttempts(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
