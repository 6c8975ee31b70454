package db

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/diewo77/go-freelance/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var passwordRe = regexp.MustCompile(`(password=)([^\s]+)`)

// Open connects to the configured database, retrying while postgres starts up.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	if cfg.Driver == "sqlite" {
		slog.Info("db_connect", slog.String("driver", "sqlite"), slog.String("path", cfg.SQLitePath))
		dbConn, err := gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// SQLite leaves foreign keys off by default; cascades depend on them.
		if err := dbConn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
		return dbConn, nil
	}

	dsn := cfg.DSN()
	slog.Info("db_connect", slog.String("driver", "postgres"), slog.String("dsn", maskDSN(dsn)))
	var dbConn *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		dbConn, err = gorm.Open(postgres.Open(dsn), gcfg)
		if err == nil {
			break
		}
		slog.Warn("db_connect_retry", slog.Int("attempt", i+1), slog.String("err", err.Error()))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := dbConn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return dbConn, nil
}

func maskDSN(dsn string) string {
	return passwordRe.ReplaceAllString(dsn, `${1}***`)
}
