package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"video-seo-backend/internal/shared/config"
	"video-seo-backend/internal/shared/storage/db"
	"video-seo-backend/internal/shared/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		telemetry.Error("config.invalid", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	if err := db.MigrationStatus(ctx, sqlDB); err != nil {
		telemetry.Warn("migrate.status_failed", map[string]any{"error": err.Error()})
	}
	telemetry.Info("migrate.complete", nil)
}
