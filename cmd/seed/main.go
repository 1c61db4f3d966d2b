package main

import (
	"log"
	"os"
	"time"

	"smart-receipt-be/internal/model"
	"smart-receipt-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds a small expense history so pattern lookups return something useful
// on a fresh install.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedExpenseHistory(db)
}

type seedGroup struct {
	location    string
	category    string
	description string
	amount      int64
	times       int
}

func seedExpenseHistory(db *gorm.DB) {
	groups := []seedGroup{
		{"스타벅스", "복리후생비", "커피", 4500, 45},
		{"스타벅스", "접대비", "고객 미팅", 12500, 6},
		{"GS25", "소모품비", "야근 간식", 3200, 18},
		{"이마트", "소모품비", "사무용품 구매", 28000, 9},
		{"김가네", "복리후생비", "점심식대", 8500, 22},
		{"카카오T", "여비교통비", "택시비", 9800, 14},
	}

	now := time.Now()
	total := 0
	for _, g := range groups {
		for i := 0; i < g.times; i++ {
			item := model.ExpenseItem{
				UsageLocation: g.location,
				Category:      g.category,
				Description:   g.description,
				Amount:        g.amount,
				UsageDate:     now.AddDate(0, 0, -(i*3 + 1)),
			}
			if err := db.Create(&item).Error; err != nil {
				log.Fatalf("Error: Failed to seed expense item: %v", err)
			}
			total++
		}
	}

	log.Printf("✅ Success: Seeded %d expense items across %d groups.", total, len(groups))
}
