package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentfolio/agentfolio-backend/internal/adapter/coingecko"
	"github.com/agentfolio/agentfolio-backend/internal/adapter/httpapi"
	"github.com/agentfolio/agentfolio-backend/internal/adapter/repository/postgres"
	"github.com/agentfolio/agentfolio-backend/internal/config"
	"github.com/agentfolio/agentfolio-backend/internal/logging"
	"github.com/agentfolio/agentfolio-backend/internal/usecase/analytics"
	"github.com/agentfolio/agentfolio-backend/internal/usecase/marketdata"
	"github.com/agentfolio/agentfolio-backend/internal/usecase/valuation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	root := &cobra.Command{
		Use:   "agentfolio-server",
		Short: "Portfolio valuation and analytics backend",
		Long: `Serves portfolio valuation history, trading analytics, and a cached
market overview over an authenticated HTTP JSON API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
		SilenceUsage: true,
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New("api-server", cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	db, err := postgres.NewDB(cfg.Database.ConnString())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	ledgerRepo := postgres.NewLedgerRepository(db)

	quoteSource := coingecko.NewClient(cfg.Market.BaseURL, cfg.Market.FetchTimeout.Std())

	valuationService := valuation.NewValuationService(ledgerRepo)
	analyticsService := analytics.NewAnalyticsService(ledgerRepo)
	marketService := marketdata.NewMarketDataService(marketdata.Config{
		TTL:          cfg.Market.CacheTTL.Std(),
		FetchTimeout: cfg.Market.FetchTimeout.Std(),
		Limit:        cfg.Market.Limit,
	}, quoteSource, logger)

	apiServer := httpapi.NewServer(valuationService, analyticsService, marketService, logger)

	srv := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      apiServer.Router(cfg.Server.APIToken),
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
		IdleTimeout:  cfg.Server.IdleTimeout.Std(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return waitForShutdown(srv, logger, errCh)
}

// waitForShutdown blocks until SIGTERM/SIGINT or a server error, then
// drains in-flight requests before returning.
func waitForShutdown(srv *http.Server, logger *slog.Logger, errCh <-chan error) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	case err := <-errCh:
		logger.Error("http server failed", "err", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}
