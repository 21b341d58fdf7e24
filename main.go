package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/cache"
	"github.com/umalmyha/crm/internal/config"
	"github.com/umalmyha/crm/internal/infra"
	"github.com/umalmyha/crm/internal/repository"
	"github.com/umalmyha/crm/internal/seed"
	"github.com/umalmyha/crm/internal/service"
	"github.com/umalmyha/crm/pkg/db/transactor"
)

const defaultConnectTimeout = 5 * time.Second

func main() {
	cfg, err := config.Build()
	if err != nil {
		logrus.Fatal(err)
	}

	app, err := buildApp(cfg)
	if err != nil {
		logrus.Fatal(err)
	}

	start(app, cfg.ServerCfg)
}

func buildApp(cfg config.Config) (*echo.Echo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	stores, seedTrx, snapshotTrx, err := buildStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	customerCache, err := buildCustomerCache(ctx, cfg.RedisCfg)
	if err != nil {
		return nil, err
	}

	if cfg.StorageCfg.SeedDemoData {
		if err := seed.Demo(ctx, seedTrx, stores); err != nil {
			return nil, fmt.Errorf("failed to seed demo data - %w", err)
		}
		logrus.Info("demo dataset has been loaded")
	}

	svc := infra.Services{
		CustomerSvc:  service.NewCustomerService(stores.CustomerRps, customerCache),
		ContactSvc:   service.NewContactService(stores.ContactRps),
		DealSvc:      service.NewDealService(stores.DealRps),
		ActivitySvc:  service.NewActivityService(stores.ActivityRps),
		DashboardSvc: service.NewDashboardService(stores.CustomerRps, stores.ContactRps, stores.DealRps, stores.ActivityRps, snapshotTrx),
	}

	return infra.Router(svc)
}

// buildStores wires repositories for the configured driver. The first returned
// transactor is read-write for seeding, the second opens read-only transactions
// for dashboard snapshots.
func buildStores(ctx context.Context, cfg config.Config) (seed.Stores, transactor.Transactor, transactor.Transactor, error) {
	var stores seed.Stores

	if cfg.StorageCfg.Driver == config.DriverPostgres {
		pool, err := infra.Postgresql(ctx, cfg.PostgresCfg)
		if err != nil {
			return stores, nil, nil, err
		}

		txExecutor := transactor.NewPgxWithinTransactionExecutor(pool)
		stores = seed.Stores{
			CustomerRps: repository.NewPostgresCustomerRepository(txExecutor),
			ContactRps:  repository.NewPostgresContactRepository(txExecutor),
			DealRps:     repository.NewPostgresDealRepository(txExecutor),
			ActivityRps: repository.NewPostgresActivityRepository(txExecutor),
		}

		if cfg.MongoCfg.URI != "" {
			mongoClient, err := infra.Mongodb(ctx, cfg.MongoCfg)
			if err != nil {
				return stores, nil, nil, err
			}
			stores.ActivityRps = repository.NewMongoActivityRepository(mongoClient, cfg.MongoCfg.Database)
		}

		return stores, transactor.NewPgxTransactor(pool), transactor.NewPgxReadOnlyTransactor(pool), nil
	}

	stores = seed.Stores{
		CustomerRps: repository.NewMemoryCustomerRepository(),
		ContactRps:  repository.NewMemoryContactRepository(),
		DealRps:     repository.NewMemoryDealRepository(),
		ActivityRps: repository.NewMemoryActivityRepository(),
	}
	return stores, transactor.NewNoopTransactor(), transactor.NewNoopTransactor(), nil
}

func buildCustomerCache(ctx context.Context, cfg config.RedisCfg) (cache.CustomerCacheRepository, error) {
	if cfg.Addr == "" {
		return cache.NewNoopCustomerCacheRepository(), nil
	}

	client, err := infra.Redis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return cache.NewRedisCustomerCacheRepository(client), nil
}

func start(app *echo.Echo, cfg config.ServerCfg) {
	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 1)
	signal.Notify(shutdownCh, os.Interrupt)

	go func() {
		errorCh <- app.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case <-shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
		defer cancel()

		logrus.Info("shutdown signal has been sent, stopping the server...")
		if err := app.Shutdown(ctx); err != nil {
			logrus.Fatalf("failed to stop server gracefully - %s", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("shutting down the server, unexpected error occurred - %s", err)
		}
	}
}
