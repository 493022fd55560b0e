// Command api is the Valorant Coach Pro API server.
//
// Usage:
//
//	coach-api
//	API_PORT=8080 coach-api

// @title Valorant Coach Pro API
// @version 1.0.0
// @description Team coaching API serving reconciled rosters, computed team statistics, performance trends, and AI training plans. Rosters resolve from cache, database, or a built-in demo team so the dashboard is never empty.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/Beru003/valorant-coach-pro/internal/api"
	"github.com/Beru003/valorant-coach-pro/internal/cache"
	"github.com/Beru003/valorant-coach-pro/internal/config"
	"github.com/Beru003/valorant-coach-pro/internal/db"
	"github.com/Beru003/valorant-coach-pro/internal/listener"
	"github.com/Beru003/valorant-coach-pro/internal/maintenance"
	"github.com/Beru003/valorant-coach-pro/internal/reconcile"
	"github.com/Beru003/valorant-coach-pro/internal/recordstore"
	"github.com/Beru003/valorant-coach-pro/internal/remote"
	"github.com/Beru003/valorant-coach-pro/internal/statistics"

	_ "github.com/Beru003/valorant-coach-pro/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Record store: durable SQLite when a path is configured
	var store recordstore.Store
	var sqliteStore *recordstore.SQLite
	if cfg.CachePath != "" {
		sqliteStore, err = recordstore.OpenSQLite(cfg.CachePath)
		if err != nil {
			logger.Error("Failed to open record store", "path", cfg.CachePath, "error", err)
			os.Exit(1)
		}
		defer sqliteStore.Close()
		store = sqliteStore
		logger.Info("Record store opened", "path", cfg.CachePath)
	} else {
		store = recordstore.NewMemory()
		logger.Info("Record store running in memory (no CACHE_PATH)")
	}

	// Database is optional: without one the service runs on cache + demo data
	var pool *db.Pool
	var remoteClient *remote.Client
	if cfg.DatabaseURL != "" {
		logger.Info("Connecting to database...")
		pool, err = db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		remoteClient = remote.New(pool, logger)
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	} else {
		logger.Info("No DATABASE_URL configured, running without remote sync")
	}

	// Statistics configuration
	statsCfg := statistics.DefaultConfig()
	if cfg.TrendPolicy == config.TrendPolicyHistorical {
		statsCfg.TrendPolicy = statistics.TrendHistorical
	}
	statsCfg.MinTrendPoints = cfg.TrendMinPoints

	// Reconciliation controller
	ctrl := reconcile.New(reconcile.Options{
		Store:     store,
		Remote:    remoteOrNil(remoteClient),
		Stats:     statsCfg,
		SyncDelay: cfg.SyncDelay,
		Log:       logger,
	})
	defer ctrl.Wait()

	// Response cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Response cache initialized", "enabled", cfg.CacheEnabled)

	if pool != nil {
		// LISTEN/NOTIFY consumer for roster changes made elsewhere
		go listener.Start(ctx, cfg.DatabaseURL, ctrl, appCache, logger)
	}

	// Maintenance tickers (stale cache rows, old training plans)
	maintCfg := maintenance.DefaultConfig()
	maintCfg.CacheStaleAge = cfg.CacheStaleAge
	go maintenance.Start(ctx, prunerOrNil(sqliteStore), planPrunerOrNil(remoteClient), maintCfg, logger)

	// Create router
	router := api.NewRouter(ctrl, pool, appCache, cfg, logger)

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
		logger.Info("Starting Valorant Coach Pro API",
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

// remoteOrNil avoids handing the controller a typed nil interface.
func remoteOrNil(c *remote.Client) reconcile.RemoteSource {
	if c == nil {
		return nil
	}
	return c
}

func prunerOrNil(s *recordstore.SQLite) maintenance.RecordPruner {
	if s == nil {
		return nil
	}
	return s
}

func planPrunerOrNil(c *remote.Client) maintenance.RecommendationPruner {
	if c == nil {
		return nil
	}
	return c
}
