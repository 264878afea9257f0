package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/retailos/accounting_service/internal/consumer"
	"github.com/retailos/accounting_service/internal/core/services"
	"github.com/retailos/accounting_service/internal/repositories/database/pgsql"
	"github.com/retailos/accounting_service/internal/repositories/registry"
	"github.com/retailos/accounting_service/pkg/config"
	"github.com/retailos/accounting_service/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	tenantResolver := registry.NewCompanyRegistryClient(cfg.RegistryURL, logger)
	repos := pgsql.NewRepositoryProvider(dbPool, tenantResolver)
	container := services.NewServiceContainer(repos)

	c := consumer.New(cfg.AMQPURL, container.Posting, logger)

	logger.Info("Event consumer starting", slog.String("amqp_url", cfg.AMQPURL))
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consumer stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Event consumer shut down.")
}
