package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Beru003/valorant-coach-pro/internal/api/respond"
)

type trainingPlanRequest struct {
	TeamName string `json:"team_name"`
}

// GenerateTrainingPlan creates an AI training plan from the current roster.
// @Summary Generate training plan
// @Description Builds a coaching prompt from the reconciled roster and
// aggregate, queries the model, and returns the structured plan. The plan is
// also stored in the database when one is configured.
// @Tags training
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Param request body trainingPlanRequest false "Optional team name"
// @Success 200 {object} ai.TrainingPlan
// @Failure 502 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/teams/{teamID}/training-plan [post]
func (h *Handler) GenerateTrainingPlan(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	if !h.trainer.Enabled() {
		respond.WriteError(w, http.StatusServiceUnavailable, "AI_DISABLED", "No Anthropic API key configured")
		return
	}

	var req trainingPlanRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // body is optional
	}
	teamName := req.TeamName
	if teamName == "" {
		teamName = teamID
	}

	snap, err := h.ctrl.Snapshot(r.Context(), teamID)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load team data")
		return
	}
	if len(snap.Players) == 0 {
		respond.WriteError(w, http.StatusUnprocessableEntity, "EMPTY_ROSTER", "Cannot generate a plan for an empty roster")
		return
	}

	plan, err := h.trainer.GenerateTeamPlan(r.Context(), teamName, snap.Players, snap.Aggregate)
	if err != nil {
		h.log.Error("generating training plan", "team_id", teamID, "error", err)
		respond.WriteError(w, http.StatusBadGateway, "AI_ERROR", "Failed to generate training plan")
		return
	}

	// Best effort; the plan is returned either way.
	if h.remote != nil {
		if raw, err := json.Marshal(plan); err == nil {
			if err := h.remote.SaveRecommendation(r.Context(), teamID, raw); err != nil {
				h.log.Warn("storing training plan", "team_id", teamID, "error", err)
			}
		}
	}

	respond.WriteJSONObject(w, http.StatusOK, plan)
}
