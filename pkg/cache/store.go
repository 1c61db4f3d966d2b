package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const keyPrefix = "receipt"

// Stats is a point-in-time snapshot of a store's contents and hit ratio.
// Hits and misses are counted in-process since the store was constructed.
type Stats struct {
	Count   int64   `json:"count"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// Store is a namespaced key-value cache with per-entry TTL. Implementations
// are fail-open: a broken backend degrades to a permanent miss, it never
// propagates an error to the caller.
type Store interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool)
	Set(ctx context.Context, namespace, key string, payload []byte, ttl time.Duration)
	Invalidate(ctx context.Context, namespace string) int64
	Stats(ctx context.Context) Stats
	NamespaceStats(ctx context.Context, namespace string) Stats
}

// physicalKey builds the backend key for a namespace+key pair.
func physicalKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, namespace, key)
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// lookupLedger counts cache lookups per namespace so each one stays
// independently inspectable.
type lookupLedger struct {
	mu     sync.Mutex
	hits   map[string]int64
	misses map[string]int64
}

func newLookupLedger() *lookupLedger {
	return &lookupLedger{
		hits:   make(map[string]int64),
		misses: make(map[string]int64),
	}
}

func (l *lookupLedger) hit(namespace string) {
	l.mu.Lock()
	l.hits[namespace]++
	l.mu.Unlock()
}

func (l *lookupLedger) miss(namespace string) {
	l.mu.Lock()
	l.misses[namespace]++
	l.mu.Unlock()
}

func (l *lookupLedger) namespaceCounts(namespace string) (hits, misses int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hits[namespace], l.misses[namespace]
}

func (l *lookupLedger) totals() (hits, misses int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, n := range l.hits {
		hits += n
	}
	for _, n := range l.misses {
		misses += n
	}
	return hits, misses
}
