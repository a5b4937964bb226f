package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpadapter "github.com/geekendzone/dcasim-backend/internal/adapter/http"
	"github.com/geekendzone/dcasim-backend/internal/adapter/marketdata/alpaca"
	"github.com/geekendzone/dcasim-backend/internal/adapter/repository/sqlite"
	"github.com/geekendzone/dcasim-backend/internal/config"
	"github.com/geekendzone/dcasim-backend/internal/logger"
	"github.com/geekendzone/dcasim-backend/internal/usecase/comparison"
	"github.com/geekendzone/dcasim-backend/internal/usecase/marketdata"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet, write straight to stderr
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("failed to load configuration")
	}

	// 2. Setup logging
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	// 3. Setup the price cache database
	db, err := sqlite.NewDB(cfg.CachePath())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open price cache")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize price cache schema")
	}

	// 4. Initialize the repository and the market data provider
	priceRepo := sqlite.NewPriceRepository(db)
	provider := alpaca.NewProvider(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.BaseURL)

	// 5. Initialize services (use cases)
	priceService := marketdata.NewPriceService(priceRepo, provider, log)
	comparisonService := comparison.NewComparisonService(priceService)

	// 6. Drop cache entries older than the configured maximum age
	if cfg.CacheMaxAgeDays > 0 {
		cutoff := time.Now().UTC().Add(-cfg.CacheMaxAge())
		purged, err := priceRepo.Purge(ctx, cutoff)
		if err != nil {
			log.Warn().Err(err).Msg("failed to purge stale cache entries")
		} else if purged > 0 {
			log.Info().Int64("series", purged).Msg("purged stale cache entries")
		}
	}

	// 7. Start the HTTP server
	server := httpadapter.NewServer(cfg, comparisonService, log)
	go func() {
		if err := server.Run(); err != nil {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	// Graceful shutdown
	waitForShutdown(server, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and drains the server
func waitForShutdown(server *httpadapter.Server, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to shut down http server cleanly")
		return
	}
	log.Info().Msg("http server stopped")
}
