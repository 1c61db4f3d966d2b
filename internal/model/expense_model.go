package model

import (
	"time"

	"github.com/google/uuid"
)

type ExpenseItem struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsageLocation string    `gorm:"type:varchar(255);not null;index"`
	Category      string    `gorm:"type:varchar(100);not null"`
	Description   string    `gorm:"type:varchar(255);not null"`
	Amount        int64     `gorm:"not null"`
	UsageDate     time.Time `gorm:"not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (ExpenseItem) TableName() string {
	return "expense_items"
}
