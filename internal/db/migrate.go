package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/go-freelance/internal/models"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Migrations returns the ordered schema history.
func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "20250301_create_users_profiles",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Profile{}, &models.Experience{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("experiences", "profiles", "users")
			},
		},
		{
			ID: "20250301_create_lookups",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Modality{}, &models.Category{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("categories", "modalities")
			},
		},
		{
			ID: "20250302_create_projects",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Project{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("projects")
			},
		},
		{
			ID: "20250303_create_applications",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Application{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("applications")
			},
		},
		{
			ID: "20250304_create_contact_messages",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ContactMessage{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("contact_messages")
			},
		},
		{
			ID: "20250310_add_projects_name_folded",
			Migrate: func(tx *gorm.DB) error {
				if !tx.Migrator().HasColumn(&models.Project{}, "NameFolded") {
					if err := tx.Migrator().AddColumn(&models.Project{}, "NameFolded"); err != nil {
						return err
					}
				}
				if !tx.Migrator().HasIndex(&models.Project{}, "NameFolded") {
					if err := tx.Migrator().CreateIndex(&models.Project{}, "NameFolded"); err != nil {
						return err
					}
				}
				return backfillNameFolded(tx)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropColumn(&models.Project{}, "NameFolded")
			},
		},
	}
}

// backfillNameFolded lowers existing project names in Go so non-ASCII
// letters fold the same way on every driver.
func backfillNameFolded(tx *gorm.DB) error {
	var rows []struct {
		ID   uint
		Name string
	}
	if err := tx.Unscoped().Model(&models.Project{}).
		Where("name_folded IS NULL OR name_folded = ''").
		Select("id", "name").Find(&rows).Error; err != nil {
		return err
	}
	for _, r := range rows {
		if err := tx.Unscoped().Model(&models.Project{}).Where("id = ?", r.ID).
			UpdateColumn("name_folded", strings.ToLower(r.Name)).Error; err != nil {
			return err
		}
	}
	return nil
}

// Migrate applies pending migrations and checks the core tables exist.
func Migrate(dbConn *gorm.DB) error {
	m := gormigrate.New(dbConn, gormigrate.DefaultOptions, Migrations())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, table := range []string{"users", "profiles", "projects", "applications"} {
		if !dbConn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}
