// Command api is the Matchday API server.
//
// Usage:
//
//	matchday-api
//	API_PORT=8080 matchday-api
//	DATABASE_URL=sqlite://./matchday.db matchday-api

// @title Matchday API
// @version 1.0.0
// @description Football data API: leagues, teams, players, seasons, match results, and player match stats, plus head-to-head records, league tables, and leaderboards recomputed on every request.
// @host localhost:5001
// @BasePath /api
// @schemes http https
// @contact.name Matchday
// @license.name MIT
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

	"github.com/joho/godotenv"

	"github.com/matchday/matchday-api/internal/api"
	"github.com/matchday/matchday-api/internal/config"
	"github.com/matchday/matchday-api/internal/db"
	"github.com/matchday/matchday-api/internal/maintenance"
	"github.com/matchday/matchday-api/internal/seed"

	_ "github.com/matchday/matchday-api/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...", "driver", cfg.Driver())
	store, err := db.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Players reference positions; make sure the catalogue exists.
	if result, err := seed.Positions(ctx, store, logger); err != nil {
		logger.Warn("Position seed failed", "error", err, "summary", result.Summary())
	}

	// Start maintenance tickers (pool gauges, liveness ping)
	mcfg := maintenance.DefaultConfig()
	mcfg.PoolStatsInterval = cfg.PoolStatsInterval
	go maintenance.Start(ctx, store, mcfg, logger)

	// Create router
	router := api.NewRouter(store, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Matchday API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
