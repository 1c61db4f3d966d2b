package mapper

import (
	"smart-receipt-be/internal/entity"
	"smart-receipt-be/internal/model"
)

type ExpenseMapper struct{}

func NewExpenseMapper() *ExpenseMapper {
	return &ExpenseMapper{}
}

func (m *ExpenseMapper) ToEntity(e *model.ExpenseItem) *entity.ExpenseRecord {
	if e == nil {
		return nil
	}
	return &entity.ExpenseRecord{
		Id:          e.Id,
		Location:    e.UsageLocation,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		UsageDate:   e.UsageDate,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *ExpenseMapper) ToModel(e *entity.ExpenseRecord) *model.ExpenseItem {
	if e == nil {
		return nil
	}
	return &model.ExpenseItem{
		Id:            e.Id,
		UsageLocation: e.Location,
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		UsageDate:     e.UsageDate,
		CreatedAt:     e.CreatedAt,
	}
}
