package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/go-freelance/auth"
	"github.com/diewo77/go-freelance/internal/config"
	"github.com/diewo77/go-freelance/internal/db"
	"github.com/diewo77/go-freelance/internal/notify"
	"github.com/diewo77/go-freelance/internal/storage"
	"github.com/diewo77/go-freelance/internal/storage/minio"
	"github.com/diewo77/go-freelance/view"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", slog.Any("err", err))
		os.Exit(1)
	}

	logger := newLogger(cfg.App)
	slog.SetDefault(logger)
	view.SetDevMode(cfg.App.Dev)

	dbConn, err := db.Open(cfg.Database)
	if err != nil {
		fatal("db_connect_failed", err)
	}

	if *migrateOnlyFlag {
		if err := db.Migrate(dbConn); err != nil {
			fatal("migration_failed", err)
		}
		slog.Info("migrations_completed")
		return
	}
	if *seedOnlyFlag {
		if err := db.Seed(dbConn); err != nil {
			fatal("seed_failed", err)
		}
		slog.Info("seed_completed")
		return
	}

	if cfg.App.Migrations {
		if err := db.Migrate(dbConn); err != nil {
			fatal("migration_failed", err)
		}
		slog.Info("migrations_completed")
	}
	if cfg.App.Seed {
		if err := db.Seed(dbConn); err != nil {
			fatal("seed_failed", err)
		}
	}

	auth.SetSecret(cfg.App.SessionSecret)

	ctx := context.Background()
	files, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		fatal("storage_init_failed", err)
	}

	app := NewApp(dbConn, Options{
		Files:     files,
		Mailer:    newMailer(cfg.Mail, logger),
		MaxUpload: cfg.Storage.MaxUploadBytes,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("server_starting", slog.String("port", cfg.Server.Port), slog.Bool("dev", cfg.App.Dev))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server_error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown_signal_received")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown_failed", slog.Any("err", err))
	}
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
	slog.Info("server_stopped")
}

// newLogger logs text in dev and JSON otherwise.
func newLogger(cfg config.AppConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.Dev {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func openStorage(ctx context.Context, cfg config.StorageConfig) (storage.Files, error) {
	if cfg.Backend == "minio" {
		return minio.New(ctx, cfg.S3)
	}
	return storage.NewLocal(cfg.LocalDir, cfg.PublicPrefix)
}

func newMailer(cfg config.MailConfig, logger *slog.Logger) notify.Mailer {
	if cfg.Transport == "smtp" {
		return notify.NewSMTPMailer(cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.From).WithTimeout(cfg.Timeout)
	}
	return notify.NewLogMailer(logger)
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.Any("err", err))
	os.Exit(1)
}
