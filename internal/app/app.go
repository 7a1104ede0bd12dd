// Package app wires configuration, storage and the tariff engine together
// for the server and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/Simplici0/tokenwatt/internal/config"
	"github.com/Simplici0/tokenwatt/internal/db"
	"github.com/Simplici0/tokenwatt/internal/migrations"
	"github.com/Simplici0/tokenwatt/internal/schedules"
	"github.com/Simplici0/tokenwatt/internal/seed"
	"github.com/Simplici0/tokenwatt/internal/tariff"
)

// App owns the database handle backing the engine's schedules.
type App struct {
	DB     *sql.DB
	Engine *tariff.Engine
}

// Bootstrap opens the database, applies migrations, seeds the canonical
// schedules plus any configured presets and builds the engine from the
// stored rows.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	vatRate, err := cfg.VATRate()
	if err != nil {
		return nil, err
	}

	var presets []tariff.Schedule
	if cfg.Tariff.PresetsFile != "" {
		presets, err = schedules.LoadFile(cfg.Tariff.PresetsFile)
		if err != nil {
			return nil, fmt.Errorf("load presets: %w", err)
		}
		logger.Info("tariff presets loaded",
			zap.String("file", cfg.Tariff.PresetsFile),
			zap.Int("count", len(presets)),
		)
	}

	database, err := db.Open(ctx, cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrations.Up(database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	version, err := migrations.Version(database)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	logger.Debug("database schema ready", zap.Int64("version", version))

	stats, err := seed.Run(ctx, database, presets...)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("seed schedules: %w", err)
	}
	logger.Info("tariff schedules seeded",
		zap.Int("inserts", stats.Inserts),
		zap.Int("updates", stats.Updates),
	)

	store := schedules.NewStore(database)
	defaultSchedule, err := store.Get(ctx, cfg.Tariff.Default)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("default tariff: %w", err)
	}
	registry, err := store.Registry(ctx, defaultSchedule.ID)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("build registry: %w", err)
	}
	logger.Info("default tariff",
		zap.String("id", defaultSchedule.ID),
		zap.String("name", defaultSchedule.Name),
		zap.String("currency", defaultSchedule.Currency),
	)

	return &App{
		DB:     database,
		Engine: tariff.NewEngine(registry, vatRate),
	}, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	return a.DB.Close()
}
