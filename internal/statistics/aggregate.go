// Package statistics computes team-level aggregates from player records.
// Compute is pure and synchronous: no I/O, no side effects, recomputed
// wholesale on every roster change.
package statistics

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/Beru003/valorant-coach-pro/internal/roster"
)

// Defaults substituted for a player with zero recorded matches, so an empty
// history contributes a plausible baseline instead of dragging the team
// averages toward zero. Pinned by tests — do not change casually.
const (
	DefaultKD          = 1.0
	DefaultACS         = 200.0
	DefaultHeadshotPct = 20.0
	DefaultWins        = 1
	DefaultMatches     = 2
)

// winRateMatchWeighted selects how the team win rate is combined. The
// historical dashboard behavior is match-weighted (total wins / total
// matches), while every other team metric is a player-weighted mean.
// Flipping this to false makes win rate player-weighted like the rest.
const winRateMatchWeighted = true

// Caps on the ranked usage lists. Entries past the cap are dropped.
const (
	maxAgentEntries  = 8
	maxWeaponEntries = 6
)

// TrendPolicy selects how the performance-trend series is produced.
type TrendPolicy int

const (
	// TrendSynthetic generates jittered placeholder points around the
	// computed aggregate. Display filler, never ground truth.
	TrendSynthetic TrendPolicy = iota
	// TrendHistorical replays per-day series from recorded matches and
	// reports insufficient data when fewer than MinTrendPoints days exist.
	TrendHistorical
)

// Config controls trend generation and the randomness/clock sources, so
// tests can pin outputs. The zero value is NOT usable; call DefaultConfig.
type Config struct {
	TrendPolicy    TrendPolicy
	MinTrendPoints int
	Rand           *rand.Rand
	Now            func() time.Time
}

// DefaultConfig returns the production configuration: synthetic trend,
// wall clock, unseeded randomness.
func DefaultConfig() Config {
	return Config{
		TrendPolicy:    TrendSynthetic,
		MinTrendPoints: 5,
		Rand:           rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:            time.Now,
	}
}

// Compute aggregates a player list with the default configuration.
func Compute(players []roster.PlayerRecord) roster.TeamAggregate {
	return ComputeWith(DefaultConfig(), players)
}

// ComputeWith aggregates a player list. An empty list yields the zero-valued
// aggregate: all counts and rates 0, empty maps and lists. Malformed numeric
// fields are not validated and propagate into the arithmetic unchanged.
func ComputeWith(cfg Config, players []roster.PlayerRecord) roster.TeamAggregate {
	agg := roster.TeamAggregate{
		RoleDistribution: map[string]int{},
		AgentUsage:       []roster.AgentUsage{},
		WeaponUsage:      []roster.WeaponUsage{},
		Trend:            []roster.TrendPoint{},
	}
	if len(players) == 0 {
		return agg
	}

	var (
		totalKD, totalACS, totalHS float64
		sumPlayerWinRate           float64
		totalWins, totalMatches    int
	)

	for _, p := range players {
		t := totalsFor(p)
		totalKD += t.kd
		totalACS += t.acs
		totalHS += t.headshotPct
		totalWins += t.wins
		totalMatches += t.matches
		sumPlayerWinRate += t.winRate

		agg.RoleDistribution[p.PrimaryRole]++
	}

	n := float64(len(players))
	agg.TotalPlayers = len(players)
	agg.AverageKD = round2(totalKD / n)
	agg.AverageACS = int(math.Round(totalACS / n))
	agg.HeadshotPct = int(math.Round(totalHS / n))

	if winRateMatchWeighted {
		if totalMatches > 0 {
			agg.WinRate = int(math.Round(float64(totalWins) / float64(totalMatches) * 100))
		}
	} else {
		agg.WinRate = int(math.Round(sumPlayerWinRate / n))
	}

	agg.AgentUsage = agentUsage(players)
	agg.WeaponUsage = weaponUsage(players)

	applyTrend(cfg, &agg, players)
	return agg
}

// playerTotals carries per-player derived metrics during aggregation.
type playerTotals struct {
	kd, acs, headshotPct float64
	wins, matches        int
	winRate              float64 // percent
}

// Summarize derives the rounded per-player card metrics, substituting the
// fixed defaults for a player with no recorded matches (win rate 50).
func Summarize(p roster.PlayerRecord) roster.PlayerSummary {
	t := totalsFor(p)
	return roster.PlayerSummary{
		KD:          round2(t.kd),
		ACS:         int(math.Round(t.acs)),
		HeadshotPct: int(math.Round(t.headshotPct)),
		WinRate:     int(math.Round(t.winRate)),
	}
}

// totalsFor computes a player's mean K/D, ACS, and headshot percentage over
// their match records, plus the win count. Zero-record players get the
// fixed defaults and count as 1 win out of 2 matches.
func totalsFor(p roster.PlayerRecord) playerTotals {
	stats := p.MatchStats
	if len(stats) == 0 {
		return playerTotals{
			kd:          DefaultKD,
			acs:         DefaultACS,
			headshotPct: DefaultHeadshotPct,
			wins:        DefaultWins,
			matches:     DefaultMatches,
			winRate:     50,
		}
	}

	var kdSum, acsSum, hsSum float64
	wins := 0
	for _, s := range stats {
		kdSum += s.KD()
		acsSum += float64(s.ACS)
		hsSum += s.HeadshotPct
		if s.MatchResult == roster.ResultWin {
			wins++
		}
	}
	n := float64(len(stats))
	return playerTotals{
		kd:          kdSum / n,
		acs:         acsSum / n,
		headshotPct: hsSum / n,
		wins:        wins,
		matches:     len(stats),
		winRate:     float64(wins) / n * 100,
	}
}

// agentUsage builds the ranked agent-usage list. Usage is the share of the
// team's total match records played on that agent; the color comes from the
// role of the player who most recently contributed the agent during
// accumulation (last writer wins, no frequency tie-break). Stable sort,
// capped at maxAgentEntries.
func agentUsage(players []roster.PlayerRecord) []roster.AgentUsage {
	type acc struct {
		count int
		wins  int
		role  string
	}
	byAgent := map[string]*acc{}
	var order []string
	teamMatches := 0

	for _, p := range players {
		teamMatches += len(p.MatchStats)
		for _, s := range p.MatchStats {
			if s.AgentUsed == "" {
				continue
			}
			a, ok := byAgent[s.AgentUsed]
			if !ok {
				a = &acc{}
				byAgent[s.AgentUsed] = a
				order = append(order, s.AgentUsed)
			}
			a.count++
			if s.MatchResult == roster.ResultWin {
				a.wins++
			}
			a.role = p.PrimaryRole
		}
	}
	if teamMatches == 0 || len(order) == 0 {
		return []roster.AgentUsage{}
	}

	out := make([]roster.AgentUsage, 0, len(order))
	for _, agent := range order {
		a := byAgent[agent]
		out = append(out, roster.AgentUsage{
			Agent:   agent,
			Usage:   round1(float64(a.count) / float64(teamMatches) * 100),
			WinRate: round1(float64(a.wins) / float64(a.count) * 100),
			Role:    a.role,
			Color:   roster.RoleColor(a.role),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Usage > out[j].Usage })
	if len(out) > maxAgentEntries {
		out = out[:maxAgentEntries]
	}
	return out
}

// weaponUsage builds the ranked weapon-usage list. Preference is the share
// of players with a record for that weapon (count / total players, not
// total weapon records). Stable sort by kills, capped at maxWeaponEntries.
func weaponUsage(players []roster.PlayerRecord) []roster.WeaponUsage {
	type acc struct {
		kills  int
		accSum float64
		count  int
	}
	byWeapon := map[string]*acc{}
	var order []string

	for _, p := range players {
		for _, w := range p.WeaponStats {
			a, ok := byWeapon[w.WeaponName]
			if !ok {
				a = &acc{}
				byWeapon[w.WeaponName] = a
				order = append(order, w.WeaponName)
			}
			a.kills += w.Kills
			a.accSum += w.Accuracy
			a.count++
		}
	}
	if len(order) == 0 {
		return []roster.WeaponUsage{}
	}

	out := make([]roster.WeaponUsage, 0, len(order))
	for _, weapon := range order {
		a := byWeapon[weapon]
		out = append(out, roster.WeaponUsage{
			Weapon:     weapon,
			Kills:      a.kills,
			Preference: round1(float64(a.count) / float64(len(players)) * 100),
			Accuracy:   round1(a.accSum / float64(a.count)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Kills > out[j].Kills })
	if len(out) > maxWeaponEntries {
		out = out[:maxWeaponEntries]
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
