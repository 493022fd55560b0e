package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beru003/valorant-coach-pro/internal/roster"
)

func TestSyntheticTrendShape(t *testing.T) {
	agg := ComputeWith(testConfig(), roster.DemoPlayers())

	require.Len(t, agg.Trend, 10)
	assert.True(t, agg.TrendSynthetic)
	assert.False(t, agg.TrendInsufficient)

	// Points end "today" (fixed clock) and step back one day at a time.
	assert.Equal(t, "2026-03-15", agg.Trend[len(agg.Trend)-1].Date)
	assert.Equal(t, "2026-03-06", agg.Trend[0].Date)

	for _, p := range agg.Trend {
		assert.InDelta(t, agg.AverageKD, p.KD, trendKDJitter+0.005)
		assert.InDelta(t, float64(agg.AverageACS), float64(p.ACS), trendACSJitter+0.5)
		assert.GreaterOrEqual(t, p.WinRate, 0.0)
		assert.LessOrEqual(t, p.WinRate, 100.0)
		assert.Contains(t, roster.MapPool, p.Map)
	}
}

func TestSyntheticTrendWinRateClamped(t *testing.T) {
	cfg := testConfig()
	// Win rate 100 plus positive jitter must clamp to 100, not exceed it.
	players := []roster.PlayerRecord{
		player("1", roster.RoleDuelist,
			match(20, 10, 250, 25, roster.ResultWin),
			match(18, 9, 240, 24, roster.ResultWin),
		),
	}
	agg := ComputeWith(cfg, players)
	require.Equal(t, 100, agg.WinRate)
	for _, p := range agg.Trend {
		assert.LessOrEqual(t, p.WinRate, 100.0)
	}
}

func TestHistoricalTrendPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.TrendPolicy = TrendHistorical
	cfg.MinTrendPoints = 2

	m1 := match(20, 10, 250, 25, roster.ResultWin)
	m1.MatchDate = "2026-03-01"
	m1.MapName = "Ascent"
	m2 := match(10, 20, 150, 15, roster.ResultLoss)
	m2.MatchDate = "2026-03-02"
	m2.MapName = "Bind"
	m3 := match(15, 15, 200, 20, roster.ResultWin)
	m3.MatchDate = "2026-03-02"

	agg := ComputeWith(cfg, []roster.PlayerRecord{player("1", roster.RoleDuelist, m1, m2, m3)})

	require.Len(t, agg.Trend, 2)
	assert.False(t, agg.TrendSynthetic)
	assert.False(t, agg.TrendInsufficient)

	assert.Equal(t, "2026-03-01", agg.Trend[0].Date)
	assert.Equal(t, 2.0, agg.Trend[0].KD)
	assert.Equal(t, 250, agg.Trend[0].ACS)
	assert.Equal(t, 100.0, agg.Trend[0].WinRate)
	assert.Equal(t, "Ascent", agg.Trend[0].Map)

	// 2026-03-02 averages its two matches.
	assert.Equal(t, 0.75, agg.Trend[1].KD)
	assert.Equal(t, 175, agg.Trend[1].ACS)
	assert.Equal(t, 50.0, agg.Trend[1].WinRate)
}

func TestHistoricalTrendInsufficientData(t *testing.T) {
	cfg := testConfig()
	cfg.TrendPolicy = TrendHistorical
	cfg.MinTrendPoints = 5

	agg := ComputeWith(cfg, []roster.PlayerRecord{
		player("1", roster.RoleDuelist, match(10, 10, 200, 20, roster.ResultWin)),
	})

	assert.Empty(t, agg.Trend)
	assert.True(t, agg.TrendInsufficient)
	assert.False(t, agg.TrendSynthetic, "insufficient history must not be papered over with synthetic points")
}
