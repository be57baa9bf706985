// Package main implements the entry point for the memo API server,
// which stores free-form memos with inline hashtags and optional named
// groups, and serves tag, date-range and group queries over them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/memo-api/internal/config"
	"github.com/phrazzld/memo-api/internal/platform/logger"
	"github.com/phrazzld/memo-api/internal/platform/postgres"
)

func main() {
	migrateOnly := flag.Bool("migrate", false,
		"run database migrations and exit without starting the server")
	flag.Parse()

	if err := run(*migrateOnly); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, wires the application together and either
// runs migrations or starts the HTTP server.
func run(migrateOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Failed to close database connection",
				slog.String("error", closeErr.Error()))
		}
	}()

	ctx := context.Background()

	if err := postgres.MigrateUp(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	appLogger.Info("Database migrations applied")

	if migrateOnly {
		return nil
	}

	app := newApplication(cfg, db, appLogger)
	return app.startHTTPServer(ctx, app.setupRouter())
}
