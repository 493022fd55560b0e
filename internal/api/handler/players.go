package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Beru003/valorant-coach-pro/internal/api/respond"
	"github.com/Beru003/valorant-coach-pro/internal/cache"
	"github.com/Beru003/valorant-coach-pro/internal/reconcile"
	"github.com/Beru003/valorant-coach-pro/internal/statistics"
)

// GetPlayer returns one player record and its display summary.
// @Summary Player record
// @Description Returns a single roster entry with rounded summary statistics.
// @Tags roster
// @Produce json
// @Param teamID path string true "Team ID"
// @Param playerID path string true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/teams/{teamID}/players/{playerID} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	playerID := chi.URLParam(r, "playerID")

	snap, err := h.ctrl.Snapshot(r.Context(), teamID)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load team data")
		return
	}
	for _, p := range snap.Players {
		if p.ID == playerID {
			respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
				"player":  p,
				"summary": statistics.Summarize(p),
			})
			return
		}
	}
	respond.WriteError(w, http.StatusNotFound, "PLAYER_NOT_FOUND", "Player is not on this roster")
}

// AddPlayer appends a player to the roster.
// @Summary Add player
// @Description Adds a roster entry. The record is visible immediately with a
// pending sync status; the database write happens in the background.
// @Tags roster
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Param player body reconcile.NewPlayer true "Player to add"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/teams/{teamID}/players [post]
func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	var in reconcile.NewPlayer
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
		return
	}
	if strings.TrimSpace(in.Username) == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_USERNAME", "valorant_username is required")
		return
	}

	rec, snap, err := h.ctrl.AddPlayer(r.Context(), teamID, in)
	if err != nil {
		h.log.Error("adding player", "team_id", teamID, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add player")
		return
	}

	h.cache.InvalidatePrefix(cache.TeamPrefix(teamID))
	h.notifyRecommender(teamID, snap)

	respond.WriteJSONObject(w, http.StatusCreated, map[string]interface{}{
		"player":    rec,
		"aggregate": snap.Aggregate,
	})
}

// RemovePlayer drops a player from the roster.
// @Summary Remove player
// @Description Removes a roster entry locally and fires the database delete
// in the background.
// @Tags roster
// @Produce json
// @Param teamID path string true "Team ID"
// @Param playerID path string true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/teams/{teamID}/players/{playerID} [delete]
func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	playerID := chi.URLParam(r, "playerID")

	snap, removed, err := h.ctrl.RemovePlayer(r.Context(), teamID, playerID)
	if err != nil {
		h.log.Error("removing player", "team_id", teamID, "player_id", playerID, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove player")
		return
	}
	if !removed {
		respond.WriteError(w, http.StatusNotFound, "PLAYER_NOT_FOUND", "Player is not on this roster")
		return
	}

	h.cache.InvalidatePrefix(cache.TeamPrefix(teamID))
	h.notifyRecommender(teamID, snap)

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"removed":   playerID,
		"aggregate": snap.Aggregate,
	})
}

// notifyRecommender pushes the fresh snapshot to the external recommendation
// endpoint without blocking the response.
func (h *Handler) notifyRecommender(teamID string, snap reconcile.Snapshot) {
	if !h.recommender.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		h.recommender.Notify(ctx, teamID, snap.Players, snap.Aggregate)
	}()
}
