package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "ocr", "fp-1", []byte("hello"), time.Minute)

	payload, ok := store.Get(ctx, "ocr", "fp-1")
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), payload)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "ocr", "fp-1", []byte("hello"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := store.Get(ctx, "ocr", "fp-1")
	assert.False(t, ok)
}

func TestMemoryStoreNamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "ocr", "fp-1", []byte("a"), time.Minute)
	store.Set(ctx, "ocr", "fp-2", []byte("b"), time.Minute)
	store.Set(ctx, "pattern", "스타벅스", []byte("c"), time.Minute)

	removed := store.Invalidate(ctx, "ocr")
	assert.Equal(t, int64(2), removed)

	_, ok := store.Get(ctx, "ocr", "fp-1")
	assert.False(t, ok)

	payload, ok := store.Get(ctx, "pattern", "스타벅스")
	require.True(t, ok)
	assert.Equal(t, []byte("c"), payload)
}

func TestMemoryStoreInvalidateUnknownNamespace(t *testing.T) {
	store := NewMemoryStore()
	assert.Equal(t, int64(0), store.Invalidate(context.Background(), "nope"))
}

func TestMemoryStoreStats(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "ocr", "fp-1", []byte("a"), time.Minute)
	store.Get(ctx, "ocr", "fp-1")
	store.Get(ctx, "ocr", "missing")
	store.Get(ctx, "ocr", "fp-1")

	stats := store.Stats(ctx)
	assert.Equal(t, int64(1), stats.Count)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 2.0/3.0, stats.HitRate, 1e-9)
}

func TestMemoryStoreNamespaceStats(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Set(ctx, "ocr", "fp-1", []byte("a"), time.Minute)
	store.Set(ctx, "pattern", "스타벅스", []byte("b"), time.Minute)
	store.Set(ctx, "pattern", "이마트", []byte("c"), time.Minute)

	store.Get(ctx, "ocr", "fp-1")
	store.Get(ctx, "pattern", "스타벅스")
	store.Get(ctx, "pattern", "missing")

	ocr := store.NamespaceStats(ctx, "ocr")
	assert.Equal(t, int64(1), ocr.Count)
	assert.Equal(t, int64(1), ocr.Hits)
	assert.Equal(t, int64(0), ocr.Misses)
	assert.InDelta(t, 1.0, ocr.HitRate, 1e-9)

	pattern := store.NamespaceStats(ctx, "pattern")
	assert.Equal(t, int64(2), pattern.Count)
	assert.Equal(t, int64(1), pattern.Hits)
	assert.Equal(t, int64(1), pattern.Misses)
	assert.InDelta(t, 0.5, pattern.HitRate, 1e-9)

	// An untouched namespace reports zero of everything
	empty := store.NamespaceStats(ctx, "complete")
	assert.Equal(t, int64(0), empty.Count)
	assert.Equal(t, int64(0), empty.Hits)
	assert.Equal(t, int64(0), empty.Misses)

	// The aggregate view still sums across namespaces
	total := store.Stats(ctx)
	assert.Equal(t, int64(3), total.Count)
	assert.Equal(t, int64(2), total.Hits)
	assert.Equal(t, int64(1), total.Misses)
}

func TestRedisStoreIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opt, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	ctx := context.Background()
	store := NewRedisStore(rdb)

	store.Invalidate(ctx, "test-ocr")
	store.Invalidate(ctx, "test-pattern")

	store.Set(ctx, "test-ocr", "fp-1", []byte("a"), time.Minute)
	store.Set(ctx, "test-ocr", "fp-2", []byte("b"), time.Minute)
	store.Set(ctx, "test-pattern", "스타벅스", []byte("c"), time.Minute)

	payload, ok := store.Get(ctx, "test-ocr", "fp-1")
	require.True(t, ok)
	assert.Equal(t, []byte("a"), payload)

	nsStats := store.NamespaceStats(ctx, "test-ocr")
	assert.Equal(t, int64(2), nsStats.Count)
	assert.Equal(t, int64(1), nsStats.Hits)

	removed := store.Invalidate(ctx, "test-ocr")
	assert.Equal(t, int64(2), removed)

	_, ok = store.Get(ctx, "test-ocr", "fp-1")
	assert.False(t, ok)

	payload, ok = store.Get(ctx, "test-pattern", "스타벅스")
	require.True(t, ok)
	assert.Equal(t, []byte("c"), payload)

	store.Invalidate(ctx, "test-pattern")
}
