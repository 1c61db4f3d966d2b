package contract

import (
	"context"

	"smart-receipt-be/internal/entity"
)

type ExpenseRepository interface {
	Create(ctx context.Context, record *entity.ExpenseRecord) error
	// FindPatterns groups past records matching the location by
	// (category, description) and returns the top groups ranked by match
	// strength, then frequency.
	FindPatterns(ctx context.Context, location string, limit int) ([]entity.HistoricalPattern, error)
}
