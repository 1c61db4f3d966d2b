package implementation

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-receipt-be/internal/entity"
	"smart-receipt-be/internal/model"
	"smart-receipt-be/pkg/database"
)

func TestExpenseRepositoryFindPatterns(t *testing.T) {
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&model.ExpenseItem{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM expense_items")
	})

	repo := NewExpenseRepository(db)
	ctx := context.Background()

	seed := func(location, category, description string, amount int64, times int) {
		for i := 0; i < times; i++ {
			require.NoError(t, repo.Create(ctx, &entity.ExpenseRecord{
				Location:    location,
				Category:    category,
				Description: description,
				Amount:      amount,
				UsageDate:   time.Now().AddDate(0, 0, -i),
			}))
		}
	}

	// Prefix match is far more frequent, exact match must still rank first
	seed("스타벅스", "복리후생비", "커피", 4500, 5)
	seed("스타벅스더블역삼", "접대비", "미팅", 12000, 20)
	seed("투썸플레이스", "복리후생비", "커피", 5000, 3)

	patterns, err := repo.FindPatterns(ctx, "스타벅스", 5)
	require.NoError(t, err)
	require.Len(t, patterns, 2)

	assert.Equal(t, "복리후생비", patterns[0].Category)
	assert.Equal(t, entity.RelevanceExact, patterns[0].Relevance)
	assert.Equal(t, 5, patterns[0].Frequency)
	assert.InDelta(t, 4500, patterns[0].AverageAmount, 0.01)

	assert.Equal(t, "접대비", patterns[1].Category)
	assert.Equal(t, entity.RelevancePrefix, patterns[1].Relevance)
	assert.Equal(t, 20, patterns[1].Frequency)

	// Unrelated locations never match
	patterns, err = repo.FindPatterns(ctx, "이마트", 5)
	require.NoError(t, err)
	assert.Empty(t, patterns)
}
