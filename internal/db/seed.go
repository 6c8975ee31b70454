package db

import (
	"errors"
	"fmt"

	"github.com/diewo77/go-freelance/internal/models"
	"gorm.io/gorm"
)

var (
	baseModalities = []models.Modality{
		{Name: "Remoto", Slug: "remote"},
		{Name: "Presencial", Slug: "on-site"},
		{Name: "Híbrido", Slug: "hybrid"},
	}
	baseCategories = []models.Category{
		{Name: "Diseño", Slug: "design"},
		{Name: "Desarrollo", Slug: "development"},
		{Name: "Redacción", Slug: "writing"},
		{Name: "Marketing", Slug: "marketing"},
		{Name: "Datos", Slug: "data"},
		{Name: "Otros", Slug: "other"},
	}
)

// Seed inserts the lookup rows that are missing. Safe to run repeatedly.
func Seed(dbConn *gorm.DB) error {
	for _, m := range baseModalities {
		var existing models.Modality
		err := dbConn.Where("slug = ?", m.Slug).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := dbConn.Create(&m).Error; err != nil {
				return fmt.Errorf("seed modality %s: %w", m.Slug, err)
			}
		} else if err != nil {
			return fmt.Errorf("seed modality %s: %w", m.Slug, err)
		}
	}
	for _, c := range baseCategories {
		var existing models.Category
		err := dbConn.Where("slug = ?", c.Slug).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := dbConn.Create(&c).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", c.Slug, err)
			}
		} else if err != nil {
			return fmt.Errorf("seed category %s: %w", c.Slug, err)
		}
	}
	return nil
}
