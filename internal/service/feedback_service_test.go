package service

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-receipt-be/internal/constant"
	"smart-receipt-be/internal/dto"
	"smart-receipt-be/pkg/cache"
)

func TestFeedbackIsLearnedByConsumer(t *testing.T) {
	ctx := context.Background()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	repo := &fakeExpenseRepository{}
	store := cache.NewMemoryStore()
	store.Set(ctx, constant.CacheNamespacePattern, "stale-key", []byte("stale"), time.Hour)

	learning := NewLearningService(pubSub, "expense_feedback", repo, store)
	require.NoError(t, learning.Consume(ctx))

	feedback := NewFeedbackService(NewPublisherService(pubSub, "expense_feedback"))
	resp, err := feedback.Submit(ctx, &dto.SubmitFeedbackRequest{
		Location:    "스타벅스 강남점",
		Category:    "복리후생비",
		Description: "커피",
		Amount:      4500,
		UsageDate:   "2025-01-06 19:11",
	})
	require.NoError(t, err)
	assert.True(t, resp.Accepted)

	// Consumer runs async; poll for the persisted record
	require.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return len(repo.created) == 1
	}, 2*time.Second, 10*time.Millisecond)

	repo.mu.Lock()
	record := repo.created[0]
	repo.mu.Unlock()

	assert.Equal(t, "스타벅스", record.Location)
	assert.Equal(t, "복리후생비", record.Category)
	assert.Equal(t, int64(4500), record.Amount)
	assert.Equal(t, 2025, record.UsageDate.Year())

	// Memoized pattern lookups are dropped once history changes
	_, ok := store.Get(ctx, constant.CacheNamespacePattern, "stale-key")
	assert.False(t, ok)
}

func TestFeedbackRejectsUnusableLocation(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	feedback := NewFeedbackService(NewPublisherService(pubSub, "expense_feedback"))
	_, err := feedback.Submit(context.Background(), &dto.SubmitFeedbackRequest{
		Location:    "   ",
		Category:    "복리후생비",
		Description: "커피",
		Amount:      4500,
		UsageDate:   "2025-01-06",
	})
	require.Error(t, err)

	se, ok := AsStageError(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, se.Kind)
}

func TestCacheServiceRejectsUnknownNamespace(t *testing.T) {
	svc := NewCacheService(cache.NewMemoryStore())

	_, err := svc.Invalidate(context.Background(), "sessions")
	assert.Error(t, err)

	_, err = svc.NamespaceStats(context.Background(), "sessions")
	assert.Error(t, err)
}

func TestCacheServiceStatsAndInvalidate(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	svc := NewCacheService(store)

	store.Set(ctx, constant.CacheNamespaceOCR, "fp-1", []byte("a"), time.Hour)
	store.Set(ctx, constant.CacheNamespacePattern, "loc-1", []byte("b"), time.Hour)
	store.Get(ctx, constant.CacheNamespaceOCR, "fp-1")

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Count)
	assert.Equal(t, int64(1), stats.Hits)

	// Each namespace reports its own counters, not the store-wide ones
	ocrStats, err := svc.NamespaceStats(ctx, constant.CacheNamespaceOCR)
	require.NoError(t, err)
	assert.Equal(t, constant.CacheNamespaceOCR, ocrStats.Namespace)
	assert.Equal(t, int64(1), ocrStats.Count)
	assert.Equal(t, int64(1), ocrStats.Hits)

	patternStats, err := svc.NamespaceStats(ctx, constant.CacheNamespacePattern)
	require.NoError(t, err)
	assert.Equal(t, int64(1), patternStats.Count)
	assert.Equal(t, int64(0), patternStats.Hits)

	resp, err := svc.Invalidate(ctx, constant.CacheNamespaceOCR)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Removed)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Count)
}
