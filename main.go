package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikolayk812/vatmoss/internal/config"
	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/nikolayk812/vatmoss/internal/httpapi"
	"github.com/nikolayk812/vatmoss/internal/logger"
	"github.com/nikolayk812/vatmoss/internal/moss"
	"github.com/nikolayk812/vatmoss/internal/repository"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("mossd stopped", zap.Error(err))
	}
}

func run(cfg config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	region, err := domain.NewRegion(cfg.ReportingRegion)
	if err != nil {
		return err
	}

	applicability, err := moss.NewApplicability(cfg.EstablishmentCountry, region)
	if err != nil {
		return err
	}

	products := repository.NewProduct(pool)
	resolver := moss.NewResolver(products, products, products, lg)

	integration, err := moss.NewIntegration(cfg.Source, repository.NewOrder(pool), resolver, applicability, lg,
		moss.WithName(cfg.SourceName))
	if err != nil {
		return err
	}

	registry, err := moss.NewRegistry(integration)
	if err != nil {
		return err
	}

	handler, err := httpapi.NewHandler(registry, lg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	lg.Info("listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("establishment", cfg.EstablishmentCountry),
		zap.Strings("sources", registry.Sources()))

	select {
	case <-ctx.Done():
		lg.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
