package database

import (
	"github.com/rs/zerolog/log"

	"itemcatalog/internal/models"
)

// Seed inserts a starter user, category and item so a fresh install has
// something to browse. It is a no-op when any user already exists.
func Seed(svc Service) error {
	db := svc.Gorm()

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug().Msg("Database already populated, skipping seed")
		return nil
	}

	user := models.User{
		Name:    "John",
		Email:   "johndoe@example.com",
		Picture: "https://example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	category := models.Category{Name: "Snowboarding", UserID: user.ID}
	if err := db.Create(&category).Error; err != nil {
		return err
	}

	item := models.Item{
		Name:        "Snowboard",
		Description: "Best for any terrain and conditions. All-mountain snowboards perform anywhere on a mountain.",
		CategoryID:  category.ID,
		UserID:      user.ID,
	}
	if err := db.Create(&item).Error; err != nil {
		return err
	}

	log.Info().Msg("Initial database populated")
	return nil
}
