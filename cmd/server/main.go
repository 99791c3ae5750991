package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/popar-tracker/internal/api"
	"github.com/andresuchdata/popar-tracker/internal/cache"
	"github.com/andresuchdata/popar-tracker/internal/config"
	"github.com/andresuchdata/popar-tracker/internal/history"
	"github.com/andresuchdata/popar-tracker/internal/money"
	"github.com/andresuchdata/popar-tracker/internal/repository/postgres"
	"github.com/andresuchdata/popar-tracker/internal/service"
	"github.com/andresuchdata/popar-tracker/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Forecast cache unavailable, continuing without it")
		forecastCache = cache.NewNoopForecastCache()
	}

	// Initialize services
	loader := history.NewLoader(
		postgres.NewHistoryRepository(db),
		history.WithZeroFill(cfg.Forecast.ZeroFill),
	)
	services := &api.Services{
		ForecastService: service.NewForecastService(loader, forecastCache, cfg.Forecast.LookbackMonths),
		DocumentService: service.NewDocumentService(
			postgres.NewDocumentRepository(db),
			forecastCache,
			money.NewFormatter(cfg.Forecast.CurrencyGlyph),
			money.ParseStyle(cfg.Forecast.WordsStyle),
		),
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
