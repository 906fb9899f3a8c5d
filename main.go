package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"climb-performance-lab/internal/catalog"
	"climb-performance-lab/internal/cloud"
	"climb-performance-lab/internal/config"
	"climb-performance-lab/internal/database"
	"climb-performance-lab/internal/handlers"
	"climb-performance-lab/internal/intervals"
	"climb-performance-lab/internal/metrics"
	"climb-performance-lab/internal/middleware"
	"climb-performance-lab/internal/profile"
	"climb-performance-lab/internal/store"
	"climb-performance-lab/internal/syncer"
)

func main() {
	runServer()
}

func runServer() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set up logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting climb-performance-lab server",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DatabasePath,
		"user", cfg.UserID,
		"cloud", cfg.CloudEnabled,
		"log_level", cfg.LogLevel)

	// Open database
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("Database opened successfully")

	// Wire up state: catalog, optional cloud client, store
	cat := catalog.New(profile.NewGenerator())

	var cloudClient store.CloudClient
	if cfg.CloudEnabled {
		cloudClient = cloud.NewClient(cfg.CloudBaseURL, cfg.CloudAPIKey, logger)
	}

	st := store.New(cfg.UserID, cat, cloudClient, db, logger)
	source, err := st.Load(context.Background())
	if err != nil {
		logger.Warn("State load failed, starting from defaults", "error", err)
	}
	logger.Info("State loaded", "source", source, "activities", st.ActivityCount())

	// Remote activities client
	remoteClient := intervals.NewClient(cfg.IntervalsAPIKey, cfg.IntervalsAthleteID, logger)

	// Create handlers
	profileHandler := handlers.NewProfileHandler(st, cfg)
	climbsHandler := handlers.NewClimbsHandler(st, cfg)
	activitiesHandler := handlers.NewActivitiesHandler(st, cfg)
	importHandler := handlers.NewImportHandler(st, remoteClient, cfg)
	analyticsHandler := handlers.NewAnalyticsHandler(st, cfg)
	coachHandler := handlers.NewCoachHandler(st, cfg)
	syncHandler := handlers.NewSyncHandler(st, db, cfg)

	// Set up HTTP routes
	mux := http.NewServeMux()

	// Rider profile and power calculator
	mux.Handle("/profile", middleware.WrapHandler(metrics.EndpointProfile, profileHandler.HandleProfile))
	mux.Handle("/power/estimate", middleware.WrapHandler(metrics.EndpointPower, profileHandler.HandlePowerEstimate))

	// Climb catalog
	mux.Handle("/climbs", middleware.WrapHandler(metrics.EndpointClimbs, climbsHandler.HandleClimbs))
	mux.Handle("/climbs/{id}", middleware.WrapHandler(metrics.EndpointClimbs, climbsHandler.HandleClimbByID))
	mux.Handle("/climbs/{id}/select", middleware.WrapHandler(metrics.EndpointClimbs, climbsHandler.HandleSelect))
	mux.Handle("/climbs/{id}/profile", middleware.WrapHandler(metrics.EndpointClimbs, climbsHandler.HandleProfile))
	mux.Handle("/climbs/{id}/plan", middleware.WrapHandler(metrics.EndpointClimbs, climbsHandler.HandlePlan))

	// Activity log
	mux.Handle("/activities", middleware.WrapHandler(metrics.EndpointActivities, activitiesHandler.HandleActivities))
	mux.Handle("/activities/{id}", middleware.WrapHandler(metrics.EndpointActivities, activitiesHandler.HandleActivityByID))

	// Import pipeline
	mux.Handle("/import/preview", middleware.WrapHandler(metrics.EndpointImport, importHandler.HandlePreview))
	mux.Handle("/import/commit", middleware.WrapHandler(metrics.EndpointImport, importHandler.HandleCommit))
	mux.Handle("/import/remote", middleware.WrapHandler(metrics.EndpointImport, importHandler.HandleRemote))

	// Analytics
	mux.Handle("/analytics/ftp-history", middleware.WrapHandler(metrics.EndpointAnalytics, analyticsHandler.HandleFTPHistory))
	mux.Handle("/analytics/top", middleware.WrapHandler(metrics.EndpointAnalytics, analyticsHandler.HandleTop))

	// Coaching
	mux.Handle("/coach/workout", middleware.WrapHandler(metrics.EndpointCoach, coachHandler.HandleWorkout))
	mux.Handle("/coach/swot", middleware.WrapHandler(metrics.EndpointCoach, coachHandler.HandleSWOT))
	mux.Handle("/coach/fueling", middleware.WrapHandler(metrics.EndpointCoach, coachHandler.HandleFueling))

	// Persistence
	mux.Handle("/sync/save", middleware.WrapHandler(metrics.EndpointSync, syncHandler.HandleSave))

	// Health check endpoint
	mux.Handle("/health", middleware.WrapHandler(metrics.EndpointHealth, syncHandler.HandleHealth))

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  35 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start autosave loop in background
	autosave := syncer.New(st, 30*time.Second)
	syncCtx, syncCancel := context.WithCancel(context.Background())
	defer syncCancel()

	go func() {
		logger.Info("Starting autosave")
		if err := autosave.Start(syncCtx); err != nil && err != context.Canceled {
			logger.Error("Autosave loop failed", "error", err)
		}
	}()

	// Start state gauge collector if metrics are enabled
	if cfg.MetricsEnabled {
		go func() {
			logger.Info("Starting state collector")
			metrics.StartStateCollector(syncCtx, st, 15*time.Second)
		}()
	}

	// Start metrics server if enabled
	var metricsServer *http.Server
	if cfg.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())

		metricsAddr := fmt.Sprintf("%s:%d", cfg.MetricsHost, cfg.MetricsPort)
		metricsServer = &http.Server{
			Addr:    metricsAddr,
			Handler: metricsMux,
		}

		go func() {
			logger.Info("Metrics server listening", "addr", metricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	// Start HTTP server in background
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down gracefully...")

	// Stop the autosave loop; its shutdown flush saves pending changes
	syncCancel()

	// Shutdown HTTP servers with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown failed", "error", err)
		}
	}

	// Final save so a clean shutdown never loses state
	if st.Dirty() {
		if err := st.Save(shutdownCtx); err != nil {
			logger.Error("Final save failed", "error", err)
		}
	}

	logger.Info("Server stopped")
}
