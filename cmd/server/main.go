package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/verilink/verilink/internal/api"
	"github.com/verilink/verilink/internal/auth"
	"github.com/verilink/verilink/internal/config"
	"github.com/verilink/verilink/internal/database"
	"github.com/verilink/verilink/internal/logging"
	"github.com/verilink/verilink/internal/metrics"
	"github.com/verilink/verilink/internal/scheduler"
	"github.com/verilink/verilink/internal/server"
	"github.com/verilink/verilink/internal/trust"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting verilink")

	// Connect to database (supports both local DATABASE_URL and Cloud SQL)
	logger.Info("connecting to database", "url", cfg.Database.RedactedDatabaseURL())
	db, err := database.Connect(context.Background(), cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connected")

	// Run pending migrations (non-fatal to allow app to start even if migrations fail)
	if err := database.RunMigrations(db, "./migrations", logger); err != nil {
		logger.Warn("failed to run migrations, continuing anyway", "error", err)
	}

	// Create repositories
	profileRepo := database.NewProfileRepository(db)
	verificationRepo := database.NewVerificationRepository(db)
	endorsementRepo := database.NewEndorsementRepository(db)
	trustScoreRepo := database.NewTrustScoreRepository(db)

	// Create trust score engine
	engine := trust.NewEngine(profileRepo, verificationRepo, endorsementRepo, trustScoreRepo, logger)

	// Setup HTTP routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.HealthCheck(r.Context(), db); err != nil {
			logger.Error("health check failed", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Service info endpoint
	mux.HandleFunc("/api/info", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"verilink","status":"ready","version":"0.1.0"}`))
	})

	collector, err := metrics.NewCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}
	mux.Handle("/metrics", collector.Handler())

	// Load auth configuration
	authConfig := auth.LoadConfigFromEnv()
	if cfg.Auth.JWTSecret != "" {
		authConfig.JWTSecret = cfg.Auth.JWTSecret
	}
	authConfig.TokenDuration = cfg.Auth.TokenExpiry
	logger.Info("auth configured", "jwt_secret_set", authConfig.JWTSecret != "change-this-secret")

	// Add REST API routes
	logger.Info("setting up REST API")
	api.SetupRoutes(mux, engine, trustScoreRepo, collector, authConfig, logger)

	// Start stale score recalculation scheduler
	var recalcScheduler *scheduler.RecalcScheduler
	if cfg.Scheduler.Enabled {
		logger.Info("starting recalculation scheduler")
		recalcScheduler = scheduler.NewRecalcScheduler(trustScoreRepo, engine, collector, cfg.Scheduler, logger)
		go recalcScheduler.Start(context.Background())
	} else {
		logger.Info("recalculation scheduler disabled")
	}

	// Wrap with SPA middleware to serve frontend for non-API routes
	logger.Info("setting up static file server for web UI")
	handler := server.SPAMiddleware(collector.InstrumentHandler(mux), "./web/dist", "./web/dist/index.html")

	// Start server
	srv := server.New(cfg.Server, logger, handler)

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("verilink started successfully")
	logger.Info("API available", "url", fmt.Sprintf("http://localhost:%s", cfg.Server.Port))

	waitForSignal(logger)

	logger.Info("shutting down")
	if recalcScheduler != nil {
		recalcScheduler.Stop()
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func waitForSignal(logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	logger.Info("received signal", "signal", sig.String())
	signal.Stop(c)
	close(c)
}
