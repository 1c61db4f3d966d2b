package implementation

import (
	"context"

	"gorm.io/gorm"

	"smart-receipt-be/internal/entity"
	"smart-receipt-be/internal/mapper"
	"smart-receipt-be/internal/repository/contract"
)

type ExpenseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ExpenseMapper
}

func NewExpenseRepository(db *gorm.DB) contract.ExpenseRepository {
	return &ExpenseRepositoryImpl{
		db:     db,
		mapper: mapper.NewExpenseMapper(),
	}
}

func (r *ExpenseRepositoryImpl) Create(ctx context.Context, record *entity.ExpenseRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

type patternRow struct {
	Category      string
	Description   string
	Frequency     int
	AverageAmount float64
	Relevance     int
}

// FindPatterns ranks past records by match strength against the queried
// location: exact match scores 3, prefix match 2, substring match 1. Groups
// sharing a category and description collapse into one pattern carrying the
// strongest relevance any member achieved.
func (r *ExpenseRepositoryImpl) FindPatterns(ctx context.Context, location string, limit int) ([]entity.HistoricalPattern, error) {
	var rows []patternRow

	query := `
		SELECT
			category,
			description,
			COUNT(*) AS frequency,
			AVG(amount) AS average_amount,
			MAX(CASE
				WHEN usage_location = ? THEN 3
				WHEN usage_location LIKE ? THEN 2
				ELSE 1
			END) AS relevance
		FROM expense_items
		WHERE usage_location = ?
			OR usage_location LIKE ?
			OR usage_location LIKE ?
		GROUP BY category, description
		ORDER BY relevance DESC, frequency DESC
		LIMIT ?`

	err := r.db.WithContext(ctx).
		Raw(query, location, location+"%", location, location+"%", "%"+location+"%", limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	patterns := make([]entity.HistoricalPattern, len(rows))
	for i, row := range rows {
		patterns[i] = entity.HistoricalPattern{
			Category:      row.Category,
			Description:   row.Description,
			Frequency:     row.Frequency,
			AverageAmount: row.AverageAmount,
			Relevance:     row.Relevance,
		}
	}
	return patterns, nil
}
