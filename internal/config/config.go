// Package config provides application configuration loaded from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mail     MailConfig
	Storage  StorageConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `env:"PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

// DatabaseConfig selects the driver and holds its connection settings.
type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" env-default:"postgres"`
	Host       string `env:"DB_HOST" env-default:"localhost"`
	Port       int    `env:"DB_PORT" env-default:"5432"`
	User       string `env:"DB_USER" env-default:"freelance"`
	Password   string `env:"DB_PASSWORD" env-default:"freelance123"`
	DBName     string `env:"DB_NAME" env-default:"freelance"`
	SSLMode    string `env:"DB_SSLMODE" env-default:"disable"`
	SQLitePath string `env:"DB_SQLITE_PATH" env-default:"freelance.db"`
	Debug      bool   `env:"DB_DEBUG" env-default:"false"`
}

// MailConfig holds outbound notification settings. Transport is "smtp" or "log".
type MailConfig struct {
	Transport string        `env:"MAIL_TRANSPORT" env-default:"log"`
	Host      string        `env:"SMTP_HOST" env-default:"localhost"`
	Port      int           `env:"SMTP_PORT" env-default:"25"`
	User      string        `env:"SMTP_USER"`
	Password  string        `env:"SMTP_PASSWORD"`
	From      string        `env:"MAIL_FROM" env-default:"no-reply@freelance.local"`
	Timeout   time.Duration `env:"SMTP_TIMEOUT" env-default:"15s"`
}

// StorageConfig selects where uploaded files go. Backend is "local" or "minio".
type StorageConfig struct {
	Backend        string `env:"STORAGE_BACKEND" env-default:"local"`
	LocalDir       string `env:"MEDIA_DIR" env-default:"media"`
	PublicPrefix   string `env:"MEDIA_URL" env-default:"/media/"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" env-default:"10485760"`
	S3             S3Config
}

// S3Config holds MinIO/S3 connection settings.
type S3Config struct {
	Endpoint      string `env:"S3_ENDPOINT" env-default:"http://localhost:9000"`
	AccessKey     string `env:"S3_ACCESS_KEY" env-default:"minioadmin"`
	SecretKey     string `env:"S3_SECRET_KEY" env-default:"minioadmin"`
	Bucket        string `env:"S3_BUCKET" env-default:"freelance"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev           bool   `env:"DEV" env-default:"true"`
	Migrations    bool   `env:"MIGRATIONS" env-default:"true"`
	Seed          bool   `env:"DB_SEED" env-default:"true"`
	LogLevel      string `env:"LOG_LEVEL" env-default:"info"`
	SessionSecret string `env:"SESSION_SECRET" env-default:"devsessionsecret"`
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Addr returns host:port for the SMTP relay.
func (m MailConfig) Addr() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// Level maps LogLevel to a slog level, defaulting to info.
func (a AppConfig) Level() slog.Level {
	switch strings.ToLower(a.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Mail.Transport {
	case "smtp", "log":
	default:
		return fmt.Errorf("unknown MAIL_TRANSPORT %q", c.Mail.Transport)
	}
	switch c.Storage.Backend {
	case "local", "minio":
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	if !c.App.Dev && (c.App.SessionSecret == "" || c.App.SessionSecret == "devsessionsecret") {
		return fmt.Errorf("SESSION_SECRET must be set outside dev")
	}
	return nil
}
