package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/config"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/credentials"
	authservice "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/service"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/auth/session"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/bootstrap"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/logging"
	cronjob "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/cron"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/render"
	portfoliorepo "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/repository"
	portfolioservice "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/portfolio/service"
	settingsrepo "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/repository"
	settingsservice "github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/settings/service"
	"github.com/PyStatRPlus/pystatrplus-ai-portfolio/internal/storage/postgres"
)

const (
	serviceName     = "portfolio-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	var rdb *redis.Client
	if cfg.UsesRedis() {
		client, err := bootstrap.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		rdb = client
		logger.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	var store settingsrepo.Store
	if cfg.Settings.Backend == "redis" {
		store = settingsrepo.NewRedisStore(rdb)
	} else {
		store = settingsrepo.NewFileStore(cfg.Settings.PresetsFile, cfg.Settings.AdminSettingsFile)
	}

	var sessionRepo session.Repository
	if cfg.Session.Backend == "redis" {
		sessionRepo = session.NewRedisRepository(rdb, cfg.Session.IdleTimeout)
	} else {
		sessionRepo = session.NewMemoryRepository()
	}

	accounts := credentials.StaticAccounts(cfg.Accounts)
	authSvc := authservice.NewAuthService(
		credentials.NewResolver(accounts, store, logger.Named("credentials")),
		credentials.NewOverrides(store, logger.Named("overrides")),
		session.NewService(sessionRepo, cfg.Session.IdleTimeout, logger.Named("session")),
		logger.Named("auth"),
	)
	settingsSvc := settingsservice.NewSettingsService(store, logger.Named("settings"))

	var (
		pool    *pgxpool.Pool
		history portfolioservice.History
		sched   *cronjob.Scheduler
	)
	if cfg.Database.DSN != "" {
		p, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
		if err != nil {
			return err
		}
		defer p.Close()
		pool = p
		logger.Info("database connected", zap.String("dsn", postgres.RedactDSN(cfg.Database.DSN)))

		db := postgres.NewConnection(pool)
		defer db.Close()

		repo := portfoliorepo.NewExportRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		history = repo

		sched = cronjob.NewScheduler(repo, cfg.Export.RetentionDays, logger.Named("retention"))
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	} else {
		logger.Warn("DB_DSN not set, export history disabled")
	}

	exportSvc := portfolioservice.NewExportService(
		render.NewRenderer(logger.Named("render")),
		settingsSvc,
		history,
		logger.Named("export"),
	)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:         serviceName,
		Version:             cfg.App.Version,
		Environment:         cfg.App.Environment,
		AllowedOrigins:      cfg.Server.CORSAllowedOrigins,
		ExportRatePerMinute: cfg.Export.RatePerMinute,
		DB:                  pool,
		Redis:               rdb,
		Auth:                authSvc,
		Settings:            settingsSvc,
		Portfolio:           exportSvc,
		Logger:              logger.Named("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
