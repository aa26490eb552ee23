package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/inventory-dashboard/internal/api"
	"github.com/andresuchdata/inventory-dashboard/internal/cache"
	"github.com/andresuchdata/inventory-dashboard/internal/config"
	"github.com/andresuchdata/inventory-dashboard/internal/loader"
	"github.com/andresuchdata/inventory-dashboard/internal/service"
	"github.com/andresuchdata/inventory-dashboard/internal/source"
	"github.com/andresuchdata/inventory-dashboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	src, closeSource, err := source.New(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("kind", cfg.Source.Kind).Msg("Failed to configure record source")
	}
	defer closeSource()

	// The dataset is loaded before listening; a broken source stops startup.
	data := loader.NewCache(loader.New(src))
	if _, err := data.Dataset(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load dataset")
	}

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Report cache unavailable, rendering every request")
		reportCache = cache.NewNoopReportCache()
	}
	defer reportCache.Close()

	// Reports cached by a previous process may come from an older dataset.
	if err := reportCache.InvalidateAll(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to clear cached reports")
	}

	dashboardService := service.NewDashboardService(data, reportCache)
	router := api.NewRouter(&api.Services{DashboardService: dashboardService}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("source", src.Name()).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
