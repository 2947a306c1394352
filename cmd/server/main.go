// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/optiprice/backend-go/internal/api"
	"github.com/optiprice/backend-go/internal/cache"
	"github.com/optiprice/backend-go/internal/config"
	"github.com/optiprice/backend-go/internal/repository/postgres"
	"github.com/optiprice/backend-go/internal/service"
	"github.com/optiprice/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger and gin mode
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger.UseJSON()
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logger.SetLevel(level)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Initialize analytics cache; a cache failure degrades to direct reads
	analyticsCache, err := cache.NewAnalyticsCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Analytics cache unavailable, continuing without it")
		analyticsCache = cache.NewNoopAnalyticsCache()
	}

	// Initialize services
	repo := postgres.NewProductRepository(db)
	services := &api.Services{
		ProductService:  service.NewProductService(repo, analyticsCache),
		ForecastService: service.NewForecastService(repo),
		PricingService:  service.NewPricingService(repo, analyticsCache),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
