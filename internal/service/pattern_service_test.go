package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-receipt-be/internal/constant"
	"smart-receipt-be/internal/entity"
)

func TestFindPatternsOrdersStrongestFirst(t *testing.T) {
	// A frequent substring match must never outrank a rarer exact match.
	repo := &fakeExpenseRepository{patterns: []entity.HistoricalPattern{
		{Category: "소모품비", Description: "소모품 구매", Frequency: 80, Relevance: entity.RelevanceSubstring},
		{Category: "복리후생비", Description: "커피", Frequency: 5, Relevance: entity.RelevanceExact},
		{Category: "접대비", Description: "고객 미팅", Frequency: 12, Relevance: entity.RelevancePrefix},
		{Category: "복리후생비", Description: "식대", Frequency: 3, Relevance: entity.RelevancePrefix},
	}}

	patterns, err := NewPatternService(repo).FindPatterns(context.Background(), "스타벅스")
	require.NoError(t, err)
	require.Len(t, patterns, 4)

	assert.Equal(t, entity.RelevanceExact, patterns[0].Relevance)
	assert.Equal(t, "커피", patterns[0].Description)
	assert.Equal(t, entity.RelevancePrefix, patterns[1].Relevance)
	assert.Equal(t, 12, patterns[1].Frequency)
	assert.Equal(t, entity.RelevancePrefix, patterns[2].Relevance)
	assert.Equal(t, 3, patterns[2].Frequency)
	assert.Equal(t, entity.RelevanceSubstring, patterns[3].Relevance)
}

func TestFindPatternsSkipsUnusableLocations(t *testing.T) {
	repo := &fakeExpenseRepository{patterns: starbucksPatterns()}
	svc := NewPatternService(repo)

	for _, location := range []string{"", constant.UnknownLocation} {
		patterns, err := svc.FindPatterns(context.Background(), location)
		require.NoError(t, err)
		assert.Empty(t, patterns)
	}
	assert.Equal(t, 0, repo.queryCount())
}
