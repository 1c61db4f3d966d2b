package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"smart-receipt-be/internal/entity"
)

func TestScoreBounds(t *testing.T) {
	inputs := []ScoreInput{
		{},
		{BrandKnown: true},
		{TimeContext: TimeContext{IsOvertime: true}, BrandKnown: true},
		{
			Patterns: []entity.HistoricalPattern{
				{Category: "복리후생비", Frequency: 999, AverageAmount: 4500, Relevance: entity.RelevanceExact},
			},
			TimeContext: TimeContext{IsOvertime: true, IsWeekend: true},
			Amount:      4500,
			BrandKnown:  true,
		},
	}

	for _, in := range inputs {
		score := Score(in)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 0.95)
	}
}

func TestScoreEmptyPatternsContributeNothing(t *testing.T) {
	base := Score(ScoreInput{})
	withEmpty := Score(ScoreInput{Patterns: []entity.HistoricalPattern{}, Amount: 4500})

	assert.Equal(t, base, withEmpty)
}

func TestScorePatternWeightSaturates(t *testing.T) {
	at := func(freq int) float64 {
		return Score(ScoreInput{
			Patterns: []entity.HistoricalPattern{{Frequency: freq}},
		})
	}

	assert.InDelta(t, 0.45+0.20, at(2), 1e-9)
	assert.InDelta(t, 0.45+0.30, at(3), 1e-9)
	assert.InDelta(t, at(3), at(45), 1e-9)
}

func TestScoreAmountRange(t *testing.T) {
	pattern := []entity.HistoricalPattern{{Frequency: 1, AverageAmount: 4500}}

	inRange := Score(ScoreInput{Patterns: pattern, Amount: 4500})
	outOfRange := Score(ScoreInput{Patterns: pattern, Amount: 50000})

	assert.InDelta(t, 0.10, inRange-outOfRange, 1e-9)
}

func TestAnalyzeTimeBuckets(t *testing.T) {
	// 2025-01-06 is a Monday
	cases := []struct {
		hour     int
		period   string
		overtime bool
	}{
		{7, PeriodMorning, false},
		{12, PeriodLunch, false},
		{15, PeriodAfternoon, false},
		{19, PeriodOvertime, true},
		{23, PeriodLateNight, true},
		{3, PeriodLateNight, true},
	}

	for _, c := range cases {
		tc := AnalyzeTime(time.Date(2025, 1, 6, c.hour, 0, 0, 0, time.UTC))
		assert.Equal(t, c.period, tc.Period, "hour %d", c.hour)
		assert.Equal(t, c.overtime, tc.IsOvertime, "hour %d", c.hour)
		assert.False(t, tc.IsWeekend)
	}
}

func TestAnalyzeTimeWeekend(t *testing.T) {
	// 2025-01-04 is a Saturday
	tc := AnalyzeTime(time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC))

	assert.True(t, tc.IsWeekend)
	assert.True(t, tc.IsOvertime)
	assert.Equal(t, "주말 특근", tc.Label())
}

func TestLookupBrand(t *testing.T) {
	cases := []struct {
		location string
		found    bool
		category string
	}{
		{"스타벅스", true, "복리후생비"},
		{"GS25", true, "소모품비"},
		{"이마트", true, "소모품비"},
		{"온누리약국", true, "복리후생비"},
		{"한빛식당", true, "복리후생비"},
		{"unknown", false, ""},
		{"", false, ""},
	}

	for _, c := range cases {
		brand, ok := LookupBrand(c.location)
		assert.Equal(t, c.found, ok, c.location)
		if c.found {
			assert.Equal(t, c.category, brand.Category, c.location)
		}
	}
}
