package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the cache with a shared redis instance so entries survive
// process restarts and are visible across replicas.
type RedisStore struct {
	rdb     *redis.Client
	lookups *lookupLedger
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{
		rdb:     rdb,
		lookups: newLookupLedger(),
	}
}

func (s *RedisStore) Get(ctx context.Context, namespace, key string) ([]byte, bool) {
	payload, err := s.rdb.Get(ctx, physicalKey(namespace, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[WARN] cache get failed for %s:%s: %v", namespace, key, err)
		}
		s.lookups.miss(namespace)
		return nil, false
	}
	s.lookups.hit(namespace)
	return payload, true
}

func (s *RedisStore) Set(ctx context.Context, namespace, key string, payload []byte, ttl time.Duration) {
	if err := s.rdb.Set(ctx, physicalKey(namespace, key), payload, ttl).Err(); err != nil {
		log.Printf("[WARN] cache set failed for %s:%s: %v", namespace, key, err)
	}
}

// Invalidate removes every entry in a namespace and returns how many were
// deleted. SCAN instead of KEYS so a large namespace does not block redis.
func (s *RedisStore) Invalidate(ctx context.Context, namespace string) int64 {
	var removed int64
	iter := s.rdb.Scan(ctx, 0, physicalKey(namespace, "*"), 100).Iterator()
	for iter.Next(ctx) {
		n, err := s.rdb.Del(ctx, iter.Val()).Result()
		if err != nil {
			log.Printf("[WARN] cache invalidate failed for %s: %v", iter.Val(), err)
			continue
		}
		removed += n
	}
	if err := iter.Err(); err != nil {
		log.Printf("[WARN] cache scan failed for namespace %s: %v", namespace, err)
	}
	return removed
}

func (s *RedisStore) Stats(ctx context.Context) Stats {
	hits, misses := s.lookups.totals()
	return Stats{
		Count:   s.countKeys(ctx, "*"),
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate(hits, misses),
	}
}

func (s *RedisStore) NamespaceStats(ctx context.Context, namespace string) Stats {
	hits, misses := s.lookups.namespaceCounts(namespace)
	return Stats{
		Count:   s.countKeys(ctx, namespace),
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate(hits, misses),
	}
}

func (s *RedisStore) countKeys(ctx context.Context, namespace string) int64 {
	var count int64
	iter := s.rdb.Scan(ctx, 0, physicalKey(namespace, "*"), 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		log.Printf("[WARN] cache stats scan failed for namespace %s: %v", namespace, err)
	}
	return count
}
