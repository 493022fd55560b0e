package statistics

import (
	"math"
	"math/rand"
	"sort"

	"github.com/Beru003/valorant-coach-pro/internal/roster"
)

const syntheticTrendPoints = 10

// Jitter bounds for synthetic trend points, applied around the aggregate.
const (
	trendKDJitter      = 0.2
	trendACSJitter     = 20.0
	trendWinRateJitter = 10.0
)

// applyTrend fills the aggregate's performance-trend series according to the
// configured policy.
//
// Historical policy: replay a per-day series from recorded matches; when
// fewer than cfg.MinTrendPoints distinct days exist, report insufficient
// data instead of fabricating points.
//
// Synthetic policy: generate jittered placeholder points around the computed
// aggregate. These are display filler and are flagged as such.
func applyTrend(cfg Config, agg *roster.TeamAggregate, players []roster.PlayerRecord) {
	if cfg.TrendPolicy == TrendHistorical {
		series := historicalTrend(players)
		if len(series) >= cfg.MinTrendPoints {
			agg.Trend = series
			return
		}
		agg.TrendInsufficient = true
		return
	}
	agg.Trend = syntheticTrend(cfg, *agg)
	agg.TrendSynthetic = true
}

// syntheticTrend produces exactly syntheticTrendPoints daily points ending
// today, jittering the team K/D (±0.2), ACS (±20), and win rate (±10,
// clamped to [0,100]) around the aggregate, with a random map per point.
func syntheticTrend(cfg Config, agg roster.TeamAggregate) []roster.TrendPoint {
	today := cfg.Now().UTC()
	points := make([]roster.TrendPoint, 0, syntheticTrendPoints)
	for i := syntheticTrendPoints - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		points = append(points, roster.TrendPoint{
			Date:    day.Format("2006-01-02"),
			KD:      round2(agg.AverageKD + jitter(cfg.Rand, trendKDJitter)),
			ACS:     int(math.Round(float64(agg.AverageACS) + jitter(cfg.Rand, trendACSJitter))),
			WinRate: clamp(round1(float64(agg.WinRate)+jitter(cfg.Rand, trendWinRateJitter)), 0, 100),
			Map:     roster.MapPool[cfg.Rand.Intn(len(roster.MapPool))],
		})
	}
	return points
}

// historicalTrend groups every match record by match date and computes the
// per-day mean K/D, mean ACS, and win rate. Days sort ascending; records
// without a date are skipped.
func historicalTrend(players []roster.PlayerRecord) []roster.TrendPoint {
	type day struct {
		kdSum, acsSum float64
		wins, matches int
		mapName       string
	}
	byDate := map[string]*day{}
	for _, p := range players {
		for _, s := range p.MatchStats {
			if s.MatchDate == "" {
				continue
			}
			d, ok := byDate[s.MatchDate]
			if !ok {
				d = &day{}
				byDate[s.MatchDate] = d
			}
			d.kdSum += s.KD()
			d.acsSum += float64(s.ACS)
			d.matches++
			if s.MatchResult == roster.ResultWin {
				d.wins++
			}
			if s.MapName != "" {
				d.mapName = s.MapName
			}
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	points := make([]roster.TrendPoint, 0, len(dates))
	for _, date := range dates {
		d := byDate[date]
		n := float64(d.matches)
		points = append(points, roster.TrendPoint{
			Date:    date,
			KD:      round2(d.kdSum / n),
			ACS:     int(math.Round(d.acsSum / n)),
			WinRate: round1(float64(d.wins) / n * 100),
			Map:     d.mapName,
		})
	}
	return points
}

// jitter returns a uniform random value in [-bound, bound].
func jitter(r *rand.Rand, bound float64) float64 {
	return (r.Float64()*2 - 1) * bound
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
