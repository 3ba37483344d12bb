package main

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/pkg/config"
	"github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type app struct {
	cfg    config.Config
	logger *slog.Logger
	db     *gorm.DB
}

// boot loads the configuration, builds the logger and opens the database.
func boot(ctx context.Context) (*app, error) {
	cfg := config.Load(envFile)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	gdb, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, db: gdb}, nil
}

func (r *app) close() {
	if err := db.Close(r.db); err != nil {
		r.logger.Error("db_close_error", "error", err)
	}
}
