// Package main is the entry point for the indicator service.
// The service computes technical-analysis indicators and portfolio
// risk/return statistics from arrays supplied by the caller. It keeps no
// state between requests.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/indicator-service/internal/config"
	"github.com/aristath/indicator-service/internal/metrics"
	"github.com/aristath/indicator-service/internal/modules/indicators"
	"github.com/aristath/indicator-service/internal/modules/quantstats"
	"github.com/aristath/indicator-service/internal/scheduler"
	"github.com/aristath/indicator-service/internal/server"
	"github.com/aristath/indicator-service/pkg/logger"
)

// main orchestrates startup:
// 1. Loads configuration (defaults, YAML, .env, environment)
// 2. Initializes logging
// 3. Creates the Prometheus registry and the host sampler
// 4. Schedules host sampling
// 5. Starts the HTTP server
// 6. Waits for a shutdown signal and shuts down gracefully
func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "indicator-service",
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Int("port", cfg.Port).
		Int("max_series_length", cfg.MaxSeriesLength).
		Int64("max_body_bytes", cfg.MaxBodyBytes).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting indicator service")

	m := metrics.New()

	// Host sampler feeds /system/status and the host gauges.
	// One sample is taken synchronously so the first status call has data.
	sampler := metrics.NewSystemSampler(m, log)
	sched := scheduler.New(log)
	if err := sched.RunNow(sampler); err != nil {
		log.Warn().Err(err).Msg("Initial host sample incomplete")
	}
	if err := sched.AddJob(fmt.Sprintf("@every %s", cfg.SystemSampleInterval), sampler); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule host sampler")
	}
	sched.Start()

	srv := server.New(server.Config{
		Log:        log,
		Config:     cfg,
		Metrics:    m,
		Sampler:    sampler,
		Indicators: indicators.NewService(cfg.MaxSeriesLength, log),
		QuantStats: quantstats.NewService(cfg.MaxSeriesLength, log),
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// In-flight requests get up to 10 seconds to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	sched.Stop()

	log.Info().Msg("Server stopped")
}
