package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Beru003/valorant-coach-pro/internal/roster"
)

const recommendTimeout = 15 * time.Second

// Recommender pushes roster snapshots to an external recommendation service.
// Strictly best-effort: responses are logged, never surfaced to the caller,
// and failures never affect the dashboard.
type Recommender struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewRecommender creates a recommender. url may be empty to disable it.
func NewRecommender(url string, log *slog.Logger) *Recommender {
	return &Recommender{
		url:        url,
		httpClient: &http.Client{Timeout: recommendTimeout},
		log:        log.With("component", "recommender"),
	}
}

// Enabled reports whether an endpoint is configured.
func (r *Recommender) Enabled() bool { return r.url != "" }

// Notify posts the team's players and aggregate to the endpoint. Call it
// from a goroutine; it blocks up to the request timeout.
func (r *Recommender) Notify(ctx context.Context, teamID string, players []roster.PlayerRecord, agg roster.TeamAggregate) {
	if !r.Enabled() {
		return
	}

	body, err := json.Marshal(map[string]any{
		"team_id":   teamID,
		"players":   players,
		"aggregate": agg,
	})
	if err != nil {
		r.log.Warn("encode recommendation payload", "team_id", teamID, "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		r.log.Warn("build recommendation request", "team_id", teamID, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Warn("recommendation endpoint unreachable", "team_id", teamID, "error", err)
		return
	}
	defer resp.Body.Close()

	reply, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode >= 300 {
		r.log.Warn("recommendation endpoint rejected snapshot",
			"team_id", teamID, "status", resp.StatusCode, "body", string(reply))
		return
	}
	r.log.Info("recommendation snapshot accepted",
		"team_id", teamID, "status", resp.StatusCode, "body_bytes", len(reply))
}
