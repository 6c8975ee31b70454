package services

import (
	"testing"

	"github.com/diewo77/go-freelance/internal/config"
	"github.com/diewo77/go-freelance/internal/db"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	d, err := db.Open(config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(d))
	require.NoError(t, db.Seed(d))
	sqlDB, err := d.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return d
}

func newTestFiles(t *testing.T) *storage.Local {
	t.Helper()
	l, err := storage.NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)
	return l
}

func mustUser(t *testing.T, d *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := models.User{Username: username, Email: username + "@example.com", Password: string(hash)}
	require.NoError(t, d.Create(&u).Error)
	return &u
}

func lookupID(t *testing.T, d *gorm.DB, model any, slug string) uint {
	t.Helper()
	var row struct{ ID uint }
	require.NoError(t, d.Model(model).Where("slug = ?", slug).Select("id").Scan(&row).Error)
	require.NotZero(t, row.ID, "unknown slug %s", slug)
	return row.ID
}

func mustProject(t *testing.T, d *gorm.DB, owner *models.User, name string, salary float64) *models.Project {
	t.Helper()
	p := models.Project{
		UserID:     owner.ID,
		Name:       name,
		ModalityID: lookupID(t, d, &models.Modality{}, "remote"),
		CategoryID: lookupID(t, d, &models.Category{}, "design"),
		Salary:     models.NewMoney(salary, "USD"),
	}
	require.NoError(t, d.Create(&p).Error)
	return &p
}

func projectNames(ps []models.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}
