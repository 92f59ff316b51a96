package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"donorboard/internal/adapter/backend"
	"donorboard/internal/adapter/repo"
	"donorboard/internal/http/handlers"
	"donorboard/internal/http/httpapi"
	"donorboard/internal/infra"
	"donorboard/internal/legacy"
	"donorboard/internal/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger.With().Str("component", "sql").Logger())
	donations := repo.NewDonationRepository(runner)
	users := repo.NewUserRepository(runner)

	deps := report.Deps{
		Scopes:       repo.NewScopeRepository(runner),
		Donations:    donations,
		Transactions: donations,
		Users:        users,
	}
	store, err := backend.SnapshotStore(ctx, cfg, runner, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open legacy snapshot store")
	}
	if store != nil {
		deps.Legacy = legacy.NewProvider(store)
	}

	engine := report.NewEngine(deps, logger.With().Str("component", "report").Logger())
	engine.MaxPerPage = cfg.ReportMaxPerPage
	engine.RecurringMaxPerPage = cfg.ReportRecurringMaxPerPage
	engine.StoragePrefix = cfg.StoragePublicPrefix

	app := handlers.NewApp(engine, users, runner, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Logger:          logger,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("snapshot_backend", cfg.SnapshotBackend).Msg("starting API")
	if err := infra.NewHTTPServer(cfg, router, logger).Run(ctx); err != nil {
		logger.Error().Err(err).Msg("http server failed")
	}
}
