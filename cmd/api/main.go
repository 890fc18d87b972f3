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

	"github.com/payperplay/mcstatus/internal/api"
	"github.com/payperplay/mcstatus/internal/metrics"
	"github.com/payperplay/mcstatus/internal/service"
	"github.com/payperplay/mcstatus/internal/storage"
	"github.com/payperplay/mcstatus/pkg/config"
	"github.com/payperplay/mcstatus/pkg/logger"
	"github.com/payperplay/mcstatus/pkg/mcstatus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Configuration warnings are logged before LOG_LEVEL is known
	logger.SetDefault(logger.NewLogger(logger.INFO, os.Stderr, config.LogJSONFromEnv()))

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.NewLogger(logger.ParseLevel(cfg.LogLevel), os.Stdout, cfg.LogJSON)
	logger.SetDefault(appLogger)

	logger.Info("Starting application", map[string]interface{}{
		"app":      cfg.AppName,
		"debug":    cfg.Debug,
		"port":     cfg.Port,
		"api_url":  cfg.APIBaseURL,
		"timeout":  cfg.DefaultTimeout,
		"query":    cfg.DefaultQuery,
		"watching": len(cfg.WatchJava) + len(cfg.WatchBedrock),
	})

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// mcstatus.io client
	client := mcstatus.NewClient(
		mcstatus.WithBaseURL(cfg.APIBaseURL),
		mcstatus.WithUserAgent(cfg.UserAgent),
		mcstatus.WithHTTPClient(&http.Client{}),
		mcstatus.WithObserver(appMetrics),
	)

	statusService := service.NewStatusService(client, cfg, appMetrics)
	readiness := map[string]api.Pinger{}

	// Try to initialize InfluxDB if configured
	if cfg.InfluxDBEnabled() {
		influxClient, err := storage.NewInfluxDBClient(storage.InfluxDBConfig{
			URL:    cfg.InfluxDBURL,
			Token:  cfg.InfluxDBToken,
			Org:    cfg.InfluxDBOrg,
			Bucket: cfg.InfluxDBBucket,
		})
		if err != nil {
			logger.Warn("Failed to initialize InfluxDB, status history disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer influxClient.Close()
			statusService.SetSnapshotRecorder(influxClient)
			statusService.SetSnapshotQuerier(influxClient)
			readiness["influxdb"] = influxClient
			logger.Info("Status history enabled", map[string]interface{}{
				"influxdb_url": cfg.InfluxDBURL,
				"org":          cfg.InfluxDBOrg,
				"bucket":       cfg.InfluxDBBucket,
			})
		}
	} else {
		logger.Info("InfluxDB not configured, status history disabled", nil)
	}

	// Background watcher
	if cfg.WatchEnabled() {
		watcher := service.NewStatusWatcher(statusService, cfg.WatchJava, cfg.WatchBedrock, cfg.WatchInterval)
		watcher.Start()
		defer watcher.Stop()
	}

	// Setup router
	router := api.SetupRouter(
		api.NewStatusHandler(statusService),
		api.NewHealthHandler(cfg.AppName, readiness),
		api.NewPrometheusHandler(registry),
		cfg,
	)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Server starting", map[string]interface{}{
			"address":      addr,
			"api_endpoint": fmt.Sprintf("http://localhost%s/api", addr),
			"health_check": fmt.Sprintf("http://localhost%s/health", addr),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err, nil)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down gracefully...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", err, nil)
	}

	logger.Info("Shutdown complete", nil)
}
