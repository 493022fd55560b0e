package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Beru003/valorant-coach-pro/internal/api/respond"
	"github.com/Beru003/valorant-coach-pro/internal/cache"
)

// GetRoster returns the full reconciled roster snapshot for a team.
// @Summary Team roster
// @Description Returns the team's player records with per-record sync status,
// the computed aggregate, and which source the roster was resolved from.
// @Tags roster
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} reconcile.Snapshot
// @Success 304 "Not Modified"
// @Router /api/v1/teams/{teamID}/roster [get]
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	h.serveTeamResource(w, r, "roster", h.cacheTTL(cache.TTLRoster), func() (any, error) {
		return h.ctrl.Snapshot(r.Context(), chi.URLParam(r, "teamID"))
	})
}

// GetTeamStats returns only the computed aggregate for a team.
// @Summary Team statistics
// @Description Returns the computed team aggregate: averages, role
// distribution, agent and weapon usage, and the performance trend.
// @Tags stats
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} roster.TeamAggregate
// @Success 304 "Not Modified"
// @Router /api/v1/teams/{teamID}/stats [get]
func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	h.serveTeamResource(w, r, "stats", h.cacheTTL(cache.TTLStats), func() (any, error) {
		snap, err := h.ctrl.Snapshot(r.Context(), chi.URLParam(r, "teamID"))
		if err != nil {
			return nil, err
		}
		return snap.Aggregate, nil
	})
}

// cacheTTL returns the CACHE_TTL_SECONDS override when set, otherwise the
// per-resource default.
func (h *Handler) cacheTTL(fallback time.Duration) time.Duration {
	if h.cfg.CacheTTL > 0 {
		return h.cfg.CacheTTL
	}
	return fallback
}

// serveTeamResource handles the cache/ETag dance shared by the team GET
// endpoints: serve from the response cache when present, honor
// If-None-Match, and populate the cache on a miss.
func (h *Handler) serveTeamResource(w http.ResponseWriter, r *http.Request, resource string, ttl time.Duration, load func() (any, error)) {
	teamID := chi.URLParam(r, "teamID")
	if teamID == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_TEAM_ID", "Team ID is required")
		return
	}
	key := cache.Key(teamID, resource)

	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := load()
	if err != nil {
		h.log.Error("resolving team resource", "team_id", teamID, "resource", resource, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load team data")
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to encode response")
		return
	}

	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}
