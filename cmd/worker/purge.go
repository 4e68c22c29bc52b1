package main

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/config"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/bootstrap"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/logging"
	cronjob "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/cron"
	portfoliorepo "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/repository"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/storage/postgres"
)

// RunPurge applies the export retention window once and exits.
func RunPurge(_ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.DSN == "" {
		return errors.New("DB_DSN is required for purge-exports")
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
	if err != nil {
		return err
	}
	defer pool.Close()

	db := postgres.NewConnection(pool)
	defer db.Close()

	n, err := cronjob.NewScheduler(portfoliorepo.NewExportRepository(db), cfg.Export.RetentionDays, logger).RunOnce(ctx)
	if err != nil {
		return err
	}
	logger.Info("purge-exports done", zap.Int64("rows", n))
	return nil
}
