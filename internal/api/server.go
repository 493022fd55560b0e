// Package api wires the chi router: middleware stack, CORS, rate limiting,
// and every HTTP route the dashboard talks to.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/Beru003/valorant-coach-pro/internal/api/handler"
	"github.com/Beru003/valorant-coach-pro/internal/cache"
	"github.com/Beru003/valorant-coach-pro/internal/config"
	"github.com/Beru003/valorant-coach-pro/internal/db"
	"github.com/Beru003/valorant-coach-pro/internal/reconcile"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(ctrl *reconcile.Controller, pool *db.Pool, appCache *cache.Cache, cfg *config.Config, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(ctrl, pool, appCache, cfg, log)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1/teams/{teamID}", func(r chi.Router) {
		r.Get("/roster", h.GetRoster)
		r.Get("/stats", h.GetTeamStats)

		r.Post("/players", h.AddPlayer)
		r.Get("/players/{playerID}", h.GetPlayer)
		r.Delete("/players/{playerID}", h.RemovePlayer)

		r.Post("/training-plan", h.GenerateTrainingPlan)
	})

	return r
}
