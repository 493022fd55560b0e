package ai

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beru003/valorant-coach-pro/internal/roster"
	"github.com/Beru003/valorant-coach-pro/internal/statistics"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildTeamPromptIncludesRosterData(t *testing.T) {
	players := roster.DemoPlayers()
	agg := statistics.Compute(players)

	prompt := BuildTeamPrompt("Phantom Five", players, agg)

	assert.Contains(t, prompt, "Team: Phantom Five")
	assert.Contains(t, prompt, "Alex Chen")
	assert.Contains(t, prompt, "Sarah Kim")
	assert.Contains(t, prompt, "Jett")
	assert.Contains(t, prompt, "Vandal")
	assert.Contains(t, prompt, "Duelist: 1")
	assert.Contains(t, prompt, "Format as JSON")
}

func TestDecodePlanFromFencedReply(t *testing.T) {
	reply := "Here is your plan:\n```json\n" + `{
		"recommendations": [
			{
				"title": "Crosshair placement",
				"description": "Head-level pre-aim on common angles",
				"priority": "high",
				"category": "aim",
				"tags": ["aim", "warmup"],
				"estimatedTime": 45,
				"specificDrills": ["Range bots 30min"]
			}
		],
		"analysis": "Solid fragging, weak utility usage.",
		"teamFocus": "Utility coordination",
		"strategicInsights": "Double controller on Icebox."
	}` + "\n```\nGood luck!"

	plan, err := DecodePlan(reply)
	require.NoError(t, err)
	require.Len(t, plan.Recommendations, 1)
	assert.Equal(t, "Crosshair placement", plan.Recommendations[0].Title)
	assert.Equal(t, "high", plan.Recommendations[0].Priority)
	assert.Equal(t, 45, plan.Recommendations[0].EstimatedTime)
	assert.Equal(t, "Utility coordination", plan.TeamFocus)
}

func TestDecodePlanNoJSON(t *testing.T) {
	_, err := DecodePlan("I cannot produce a plan right now.")
	assert.Error(t, err)
}

func TestDecodePlanMalformedJSON(t *testing.T) {
	_, err := DecodePlan(`{"recommendations": [}`)
	assert.Error(t, err)
}

func TestTrainerDisabledWithoutKey(t *testing.T) {
	tr := NewTrainer("", "claude-sonnet-4-5", testLogger())
	assert.False(t, tr.Enabled())
	_, err := tr.GenerateTeamPlan(context.Background(), "t", nil, roster.TeamAggregate{})
	assert.Error(t, err)
}

func TestRecommenderNotify(t *testing.T) {
	var gotPath string
	var gotBody int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody = r.ContentLength
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	rec := NewRecommender(srv.URL+"/hooks/roster", testLogger())
	require.True(t, rec.Enabled())
	rec.Notify(context.Background(), "t1", roster.DemoPlayers(), roster.TeamAggregate{})

	assert.Equal(t, "/hooks/roster", gotPath)
	assert.Positive(t, gotBody)
}

func TestRecommenderDisabled(t *testing.T) {
	rec := NewRecommender("", testLogger())
	assert.False(t, rec.Enabled())
	// Must be a no-op, not a panic.
	rec.Notify(context.Background(), "t1", nil, roster.TeamAggregate{})
}
