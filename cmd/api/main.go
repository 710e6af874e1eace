package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitflow-box/internal/config"
	"fitflow-box/internal/database"
	"fitflow-box/internal/handler"
	"fitflow-box/internal/promo"
	"fitflow-box/internal/repository"
	"fitflow-box/internal/router"
	"fitflow-box/internal/scheduler"
	"fitflow-box/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting fitflow-box API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	subRepo := repository.NewSubscriptionRepository(pool, logger)
	cycleRepo := repository.NewCycleRepository(pool, logger)
	preorderRepo := repository.NewPreorderRepository(pool, logger)
	promoRepo := repository.NewPromoRepository(pool, logger)
	boxRepo := repository.NewBoxTypeRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	// Initialize promo validation with its TTL cache
	promoCache := promo.NewCache(cfg.Promo.CacheTTL)
	promoValidator := promo.NewValidator(promoRepo, promoCache, logger)

	// Initialize services
	subService := service.NewSubscriptionService(subRepo, logger)
	pricingService := service.NewPricingService(boxRepo, promoValidator, logger)
	preorderService := service.NewPreorderService(preorderRepo, orderRepo, promoRepo, logger)
	orderGenService := service.NewOrderGenService(subRepo, cycleRepo, orderRepo, logger)
	catalogService := service.NewCatalogService(boxRepo, cycleRepo, logger)

	// Initialize HTTP handlers and router
	handlers := router.Handlers{
		Catalog:      handler.NewCatalogHandler(catalogService, logger),
		Pricing:      handler.NewPricingHandler(pricingService, logger),
		Subscription: handler.NewSubscriptionHandler(subService, logger),
		Preorder:     handler.NewPreorderHandler(preorderService, logger),
		OrderGen:     handler.NewOrderGenHandler(orderGenService, logger),
	}
	mux := router.New(handlers, cfg.Auth.APIKey, logger)

	// Initialize background jobs
	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(cfg.Scheduler, preorderService, orderGenService, cycleRepo, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize scheduler: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	} else {
		logger.Info().Msg("background scheduler disabled")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
