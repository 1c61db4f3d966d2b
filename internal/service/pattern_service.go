// FILE: internal/service/pattern_service.go
package service

import (
	"context"
	"sort"

	"smart-receipt-be/internal/constant"
	"smart-receipt-be/internal/entity"
	"smart-receipt-be/internal/repository/contract"
)

// patternLimit caps how many ranked groups a lookup returns.
const patternLimit = 5

type IPatternService interface {
	// FindPatterns returns the top historical groups for a normalized
	// location, strongest match first. No matches is an empty slice, not an
	// error.
	FindPatterns(ctx context.Context, location string) ([]entity.HistoricalPattern, error)
}

type patternService struct {
	expenseRepository contract.ExpenseRepository
}

func NewPatternService(expenseRepository contract.ExpenseRepository) IPatternService {
	return &patternService{
		expenseRepository: expenseRepository,
	}
}

func (s *patternService) FindPatterns(ctx context.Context, location string) ([]entity.HistoricalPattern, error) {
	if location == "" || location == constant.UnknownLocation {
		return []entity.HistoricalPattern{}, nil
	}

	patterns, err := s.expenseRepository.FindPatterns(ctx, location, patternLimit)
	if err != nil {
		return nil, NewStageError(constant.StagePattern, KindProviderUnavailable, err)
	}
	if patterns == nil {
		patterns = []entity.HistoricalPattern{}
	}

	// The query orders by relevance then frequency; re-assert it here so the
	// strongest group is at index 0 no matter what the storage returned.
	sort.SliceStable(patterns, func(i, j int) bool {
		if patterns[i].Relevance != patterns[j].Relevance {
			return patterns[i].Relevance > patterns[j].Relevance
		}
		return patterns[i].Frequency > patterns[j].Frequency
	})
	return patterns, nil
}
