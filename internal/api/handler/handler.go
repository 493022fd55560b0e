// Package handler provides HTTP handlers for all API endpoints. Handlers go
// through the reconciliation controller for roster state; the database is
// never queried directly from here.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Beru003/valorant-coach-pro/internal/ai"
	"github.com/Beru003/valorant-coach-pro/internal/api/respond"
	"github.com/Beru003/valorant-coach-pro/internal/cache"
	"github.com/Beru003/valorant-coach-pro/internal/config"
	"github.com/Beru003/valorant-coach-pro/internal/db"
	"github.com/Beru003/valorant-coach-pro/internal/reconcile"
	"github.com/Beru003/valorant-coach-pro/internal/remote"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	ctrl        *reconcile.Controller
	pool        *db.Pool       // nil when no DATABASE_URL is configured
	remote      *remote.Client // nil alongside pool
	cache       *cache.Cache
	cfg         *config.Config
	trainer     *ai.Trainer
	recommender *ai.Recommender
	log         *slog.Logger
}

// New creates a Handler with shared dependencies. pool may be nil.
func New(ctrl *reconcile.Controller, pool *db.Pool, c *cache.Cache, cfg *config.Config, log *slog.Logger) *Handler {
	h := &Handler{
		ctrl:        ctrl,
		pool:        pool,
		cache:       c,
		cfg:         cfg,
		trainer:     ai.NewTrainer(cfg.AnthropicAPIKey, cfg.AIModel, log),
		recommender: ai.NewRecommender(cfg.AIRecommendURL, log),
		log:         log.With("component", "handler"),
	}
	if pool != nil {
		h.remote = remote.New(pool, log)
	}
	return h
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and available features.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Valorant Coach Pro API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"features": []string{
			"roster_reconciliation",
			"team_aggregates",
			"performance_trends",
			"ai_training_plans",
			"etag_support",
			"gzip_compression",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity. Reports not_configured when
// the service runs without a remote database.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	ts := time.Now().UTC().Format(time.RFC3339)
	if h.pool == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "not_configured",
			"timestamp": ts,
		})
		return
	}
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": ts,
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": ts,
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory response cache statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
