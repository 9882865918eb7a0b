package throttle

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

type counter struct {
	n int
}

// MemoryStore keeps window counters in a process-local TTL cache. Each
// counter expires with its window, which is what resets the quota.
type MemoryStore struct {
	mu    sync.Mutex
	cache *ttlcache.Cache[string, *counter]
}

// NewMemoryStore creates a MemoryStore and starts its expiry loop.
func NewMemoryStore() *MemoryStore {
	cache := ttlcache.New(ttlcache.WithDisableTouchOnHit[string, *counter]())
	go cache.Start()
	return &MemoryStore{cache: cache}
}

// Allow increments the counter for key and reports whether it is within
// limit. The first request in a window creates the counter with the window
// as its TTL; later requests must not extend it.
func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.cache.Get(key)
	if item == nil {
		s.cache.Set(key, &counter{n: 1}, window)
		return limit >= 1, nil
	}
	c := item.Value()
	c.n++
	return c.n <= limit, nil
}

// Stop terminates the cache expiry loop.
func (s *MemoryStore) Stop() {
	s.cache.Stop()
}
