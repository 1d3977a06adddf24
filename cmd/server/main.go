package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/unq-dapp-grupoM/futbol-api/internal/auth"
	"github.com/unq-dapp-grupoM/futbol-api/internal/cache"
	"github.com/unq-dapp-grupoM/futbol-api/internal/config"
	"github.com/unq-dapp-grupoM/futbol-api/internal/database"
	"github.com/unq-dapp-grupoM/futbol-api/internal/handlers"
	"github.com/unq-dapp-grupoM/futbol-api/internal/middleware"
	"github.com/unq-dapp-grupoM/futbol-api/internal/scraper"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting football API")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize database
	ctx := context.Background()
	repo, err := database.NewRepository(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer repo.Close()

	// Initialize cache; without REDIS_URL the service runs with caching and
	// rate limiting disabled.
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewCache(cfg.RedisURL, logger)
		if err != nil {
			logger.Fatal("Failed to initialize cache", zap.Error(err))
		}
		defer cacheClient.Close()
	} else {
		logger.Warn("REDIS_URL not set; caching and rate limiting disabled")
	}

	// Token codec and authentication service
	codec := auth.NewCodec(cfg.JWTSecret, cfg.JWTExpiry)
	authService := auth.NewService(repo, codec, logger)

	// Scraper service client
	scraperClient := scraper.NewClient(cfg.ScraperServiceURL, cfg.ScraperTimeout, cacheClient, cfg.CacheTTL, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	playerHandler := handlers.NewPlayerHandler(scraperClient, repo, authService, logger)
	teamHandler := handlers.NewTeamHandler(scraperClient, logger)
	analysisHandler := handlers.NewAnalysisHandler(scraperClient, repo, authService, logger)
	historyHandler := handlers.NewHistoryHandler(repo, logger)
	internalHandler := handlers.NewInternalHandler(cacheClient, cfg.ScraperServiceURL, logger)

	// Authentication pipeline
	routes := auth.DefaultRoutes()
	authenticator := middleware.NewAuthenticator(routes, codec, cfg.APIKey, authService, logger)
	rateLimit := middleware.RateLimitMiddleware(cacheClient, logger, cfg.RateLimit, cfg.RateLimitWindow)

	handler := SetupRouter(
		authHandler,
		playerHandler,
		teamHandler,
		analysisHandler,
		historyHandler,
		internalHandler,
		authenticator,
		rateLimit,
		logger,
	)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
