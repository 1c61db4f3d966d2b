package classify

import "smart-receipt-be/internal/entity"

// Scoring weights. Confidence is a deterministic weighted sum, clamped to a
// hard ceiling below 1.0 so the system never claims full certainty.
const (
	scoreBase           = 0.45
	patternWeightCap    = 0.30
	timeContextWeight   = 0.15
	amountRangeWeight   = 0.10
	brandKnownWeight    = 0.05
	scoreCeiling        = 0.95
	frequencySaturation = 10.0
)

// ScoreInput bundles the signals the scorer combines. Amount is the expense
// amount being classified, compared against the top pattern's average.
type ScoreInput struct {
	Patterns    []entity.HistoricalPattern
	TimeContext TimeContext
	Amount      int64
	BrandKnown  bool
}

// Score computes a classification confidence in [0, 0.95]. Pure function:
// no I/O, no caching, same input always yields the same score.
func Score(in ScoreInput) float64 {
	score := scoreBase

	if len(in.Patterns) > 0 {
		top := in.Patterns[0]

		weight := float64(top.Frequency) / frequencySaturation
		if weight > patternWeightCap {
			weight = patternWeightCap
		}
		score += weight

		if amountInRange(in.Amount, top.AverageAmount) {
			score += amountRangeWeight
		}
	}

	if in.TimeContext.IsOvertime {
		score += timeContextWeight
	}

	if in.BrandKnown {
		score += brandKnownWeight
	}

	if score > scoreCeiling {
		score = scoreCeiling
	}
	if score < 0 {
		score = 0
	}
	return score
}

// amountInRange reports whether the amount sits within half to double the
// historical average, the band where past patterns remain predictive.
func amountInRange(amount int64, average float64) bool {
	if amount <= 0 || average <= 0 {
		return false
	}
	a := float64(amount)
	return a >= average/2 && a <= average*2
}
