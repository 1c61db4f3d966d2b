// FILE: internal/service/cache_service.go
package service

import (
	"context"
	"fmt"

	"smart-receipt-be/internal/constant"
	"smart-receipt-be/internal/dto"
	"smart-receipt-be/pkg/cache"
)

var knownNamespaces = map[string]bool{
	constant.CacheNamespaceOCR:        true,
	constant.CacheNamespaceExtraction: true,
	constant.CacheNamespacePattern:    true,
	constant.CacheNamespaceComplete:   true,
}

type ICacheService interface {
	Stats(ctx context.Context) (*dto.CacheStatsResponse, error)
	NamespaceStats(ctx context.Context, namespace string) (*dto.CacheStatsResponse, error)
	Invalidate(ctx context.Context, namespace string) (*dto.InvalidateNamespaceResponse, error)
}

type cacheService struct {
	cacheStore cache.Store
}

func NewCacheService(cacheStore cache.Store) ICacheService {
	return &cacheService{
		cacheStore: cacheStore,
	}
}

func (s *cacheService) Stats(ctx context.Context) (*dto.CacheStatsResponse, error) {
	stats := s.cacheStore.Stats(ctx)
	return &dto.CacheStatsResponse{
		Count:   stats.Count,
		Hits:    stats.Hits,
		Misses:  stats.Misses,
		HitRate: stats.HitRate,
	}, nil
}

func (s *cacheService) NamespaceStats(ctx context.Context, namespace string) (*dto.CacheStatsResponse, error) {
	if !knownNamespaces[namespace] {
		return nil, fmt.Errorf("unknown cache namespace: %s", namespace)
	}
	stats := s.cacheStore.NamespaceStats(ctx, namespace)
	return &dto.CacheStatsResponse{
		Namespace: namespace,
		Count:     stats.Count,
		Hits:      stats.Hits,
		Misses:    stats.Misses,
		HitRate:   stats.HitRate,
	}, nil
}

func (s *cacheService) Invalidate(ctx context.Context, namespace string) (*dto.InvalidateNamespaceResponse, error) {
	if !knownNamespaces[namespace] {
		return nil, fmt.Errorf("unknown cache namespace: %s", namespace)
	}
	removed := s.cacheStore.Invalidate(ctx, namespace)
	return &dto.InvalidateNamespaceResponse{
		Namespace: namespace,
		Removed:   removed,
	}, nil
}
