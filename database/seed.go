package database

import (
	"event_ticketing/model"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("changeme123"), 10)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}
	hashed := string(bytes)

	users := []model.User{
		{Username: "admin", Email: "admin@example.com", Password: hashed, Balance: decimal.NewFromInt(1000), IsActive: true},
	}
	for _, user := range users {
		if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Email, "error:", err)
		}
	}

	categories := []model.Category{
		{CategoryName: "Music"},
		{CategoryName: "Sports"},
		{CategoryName: "Conference"},
		{CategoryName: "Theatre"},
		{CategoryName: "Other"},
	}
	for _, category := range categories {
		if err := db.Where(model.Category{CategoryName: category.CategoryName}).FirstOrCreate(&category).Error; err != nil {
			log.Println("failed to seed category:", category.CategoryName, "error:", err)
		}
	}
}
