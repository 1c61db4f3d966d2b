package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process Store for local runs and tests. Each namespace
// gets its own go-cache instance so namespace invalidation stays a flush.
type MemoryStore struct {
	mu         sync.RWMutex
	namespaces map[string]*gocache.Cache
	lookups    *lookupLedger
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		namespaces: make(map[string]*gocache.Cache),
		lookups:    newLookupLedger(),
	}
}

func (s *MemoryStore) namespace(name string, create bool) *gocache.Cache {
	s.mu.RLock()
	c, ok := s.namespaces[name]
	s.mu.RUnlock()
	if ok || !create {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok = s.namespaces[name]; ok {
		return c
	}
	c = gocache.New(gocache.NoExpiration, 10*time.Minute)
	s.namespaces[name] = c
	return c
}

func (s *MemoryStore) Get(_ context.Context, namespace, key string) ([]byte, bool) {
	c := s.namespace(namespace, false)
	if c == nil {
		s.lookups.miss(namespace)
		return nil, false
	}
	if x, found := c.Get(key); found {
		s.lookups.hit(namespace)
		return x.([]byte), true
	}
	s.lookups.miss(namespace)
	return nil, false
}

func (s *MemoryStore) Set(_ context.Context, namespace, key string, payload []byte, ttl time.Duration) {
	s.namespace(namespace, true).Set(key, payload, ttl)
}

func (s *MemoryStore) Invalidate(_ context.Context, namespace string) int64 {
	c := s.namespace(namespace, false)
	if c == nil {
		return 0
	}
	removed := int64(c.ItemCount())
	c.Flush()
	return removed
}

func (s *MemoryStore) Stats(_ context.Context) Stats {
	var count int64
	s.mu.RLock()
	for _, c := range s.namespaces {
		count += int64(c.ItemCount())
	}
	s.mu.RUnlock()

	hits, misses := s.lookups.totals()
	return Stats{
		Count:   count,
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate(hits, misses),
	}
}

func (s *MemoryStore) NamespaceStats(_ context.Context, namespace string) Stats {
	var count int64
	if c := s.namespace(namespace, false); c != nil {
		count = int64(c.ItemCount())
	}

	hits, misses := s.lookups.namespaceCounts(namespace)
	return Stats{
		Count:   count,
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate(hits, misses),
	}
}
