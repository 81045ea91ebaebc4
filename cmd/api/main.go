package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bistro-api/internal/auth"
	"bistro-api/internal/catalog"
	"bistro-api/internal/config"
	"bistro-api/internal/database"
	"bistro-api/internal/handler"
	"bistro-api/internal/payment"
	"bistro-api/internal/repository"
	"bistro-api/internal/router"
	"bistro-api/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting bistro API server")

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
	userRepo := repository.NewUserRepository(pool, logger)
	menuRepo := repository.NewMenuRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	paymentRepo := repository.NewPaymentRepository(pool, logger)

	// Seed the menu catalog when enabled, preferring S3 with a local fallback
	if cfg.Catalog.SeedEnabled {
		fileLoader := catalog.NewFileLoader(logger)
		var seedLoader catalog.Loader = fileLoader

		if cfg.Catalog.S3Enabled {
			s3Loader, err := catalog.NewS3Loader(ctx, cfg.Catalog.Bucket, cfg.Catalog.Region, logger)
			if err != nil {
				logger.Warn().
					Err(err).
					Msg("failed to initialise S3 catalog loader, falling back to local file system only")
			} else {
				seedLoader = catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.Catalog.Prefix, logger)
			}
		}

		importer := catalog.NewImporter(seedLoader, menuRepo, logger)
		if err := importer.Run(ctx, cfg.Catalog.SeedPath); err != nil {
			logger.Warn().
				Err(err).
				Str("path", cfg.Catalog.SeedPath).
				Msg("catalog seeding failed, continuing with existing menu")
		}
	}

	// Initialize token manager and payment gateway
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.Timeout, logger)

	// Initialize services
	userService := service.NewUserService(userRepo, logger)
	menuService := service.NewMenuService(menuRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, logger)
	cartService := service.NewCartService(cartRepo, menuRepo, logger)
	checkoutService := service.NewCheckoutService(paymentRepo, cartRepo, gateway, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(tokens, logger),
		User:    handler.NewUserHandler(userService, logger),
		Menu:    handler.NewMenuHandler(menuService, logger),
		Review:  handler.NewReviewHandler(reviewService, logger),
		Cart:    handler.NewCartHandler(cartService, logger),
		Payment: handler.NewPaymentHandler(checkoutService, logger),
	}

	// Initialize router
	mux := router.New(handlers, tokens, userRepo, logger)

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
