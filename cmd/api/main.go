package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"kopugive/internal/adapter/repo"
	"kopugive/internal/gateway"
	httpapi "kopugive/internal/http"
	"kopugive/internal/http/handlers"
	"kopugive/internal/infra"
	"kopugive/internal/ledger"
)

func main() {
	// Load .env if present (optional)
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

	if err := infra.EnsureSchema(ctx, dbpool); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	runner := infra.NewSQLRunner(dbpool, logger)
	store := repo.NewLedgerRepository(dbpool)
	activity := repo.NewActivityRepository(runner)
	reports := repo.NewReportRepository(runner)

	stripe, err := gateway.NewStripe(gateway.Options{
		SecretKey: cfg.StripeSecretKey,
		BaseURL:   cfg.StripeBaseURL,
		Logger:    &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure payment gateway")
	}

	service := ledger.NewService(store, activity, logger)
	lifecycle := ledger.NewLifecycle(store, activity, logger)
	reconciler := ledger.NewReconciler(stripe, service, store, cfg.GatewayActorID, logger)

	app := &handlers.App{
		Ledger:     service,
		Campaigns:  lifecycle,
		Reconciler: reconciler,
		Store:      store,
		Reports:    reports,
		Activity:   activity,
		Logger:     logger,
	}

	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
