// Package roster defines the domain model for team rosters: player records,
// per-match and per-weapon statistics, and the computed team aggregate shared
// by the statistics and reconciliation layers.
package roster

import "time"

// Player roles. Role strings are NOT validated anywhere — an unrecognized
// role keeps its literal value and falls into the default color bucket.
const (
	RoleDuelist    = "Duelist"
	RoleInitiator  = "Initiator"
	RoleController = "Controller"
	RoleSentinel   = "Sentinel"
)

// Match results as stored in player_statistics.match_result.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultDraw = "draw"
)

// RoleColors maps the four canonical roles to their display colors.
var RoleColors = map[string]string{
	RoleDuelist:    "#ef4444",
	RoleInitiator:  "#f59e0b",
	RoleController: "#8b5cf6",
	RoleSentinel:   "#10b981",
}

// DefaultRoleColor is used for any role not present in RoleColors.
const DefaultRoleColor = "#6b7280"

// RoleColor returns the display color for a role label.
func RoleColor(role string) string {
	if c, ok := RoleColors[role]; ok {
		return c
	}
	return DefaultRoleColor
}

// SyncStatus tags a record with its remote-persistence state. Local mutations
// are optimistic: a record is Pending until the remote write is confirmed,
// and Failed if the write errored. Failed records stay in the local list.
type SyncStatus string

const (
	SyncPending   SyncStatus = "pending"
	SyncConfirmed SyncStatus = "confirmed"
	SyncFailed    SyncStatus = "failed"
)

// Source identifies which candidate data source produced the current player
// list (see reconcile). Precedence: supplied > cache > remote > demo.
type Source string

const (
	SourceSupplied Source = "supplied"
	SourceCache    Source = "cache"
	SourceRemote   Source = "remote"
	SourceDemo     Source = "demo"
)

// MatchStatRecord is a single match's statistics for one player.
type MatchStatRecord struct {
	Kills             int     `json:"kills"`
	Deaths            int     `json:"deaths"`
	Assists           int     `json:"assists"`
	ACS               int     `json:"acs"`
	HeadshotPct       float64 `json:"headshot_percentage"`
	FirstKills        int     `json:"first_kills"`
	FirstDeaths       int     `json:"first_deaths"`
	ClutchesWon       int     `json:"clutches_won"`
	ClutchesAttempted int     `json:"clutches_attempted"`
	MatchResult       string  `json:"match_result"`
	AgentUsed         string  `json:"agent_used,omitempty"`
	MapName           string  `json:"map_name,omitempty"`
	MatchDate         string  `json:"match_date"`
}

// KD returns the record's kill/death ratio. With zero deaths the raw kill
// count is returned rather than dividing by one; that matches the behavior
// the dashboard has always shown and is pinned by tests.
func (m MatchStatRecord) KD() float64 {
	if m.Deaths > 0 {
		return float64(m.Kills) / float64(m.Deaths)
	}
	return float64(m.Kills)
}

// WeaponStatRecord is one player's cumulative stats with a single weapon.
type WeaponStatRecord struct {
	WeaponName string  `json:"weapon_name"`
	Kills      int     `json:"kills"`
	Accuracy   float64 `json:"accuracy"`
}

// PlayerRecord is one roster entry with nested statistics.
// ID is unique within a team's record set.
type PlayerRecord struct {
	ID          string             `json:"id"`
	FullName    string             `json:"full_name"`
	Username    string             `json:"valorant_username"`
	Tag         string             `json:"valorant_tag"`
	PrimaryRole string             `json:"primary_role"`
	CurrentRank string             `json:"current_rank"`
	MatchStats  []MatchStatRecord  `json:"player_statistics"`
	WeaponStats []WeaponStatRecord `json:"weapon_statistics,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	SyncStatus  SyncStatus         `json:"sync_status,omitempty"`
	AIAnalysis  map[string]any     `json:"ai_analysis,omitempty"`
}

// PlayerSummary is the per-player card shown on the roster view.
type PlayerSummary struct {
	KD          float64 `json:"kd"`
	ACS         int     `json:"acs"`
	HeadshotPct int     `json:"headshot_percentage"`
	WinRate     int     `json:"win_rate"`
}

// AgentUsage is one entry of the ranked agent-usage list.
type AgentUsage struct {
	Agent   string  `json:"agent"`
	Usage   float64 `json:"usage"`
	WinRate float64 `json:"win_rate"`
	Role    string  `json:"role"`
	Color   string  `json:"color"`
}

// WeaponUsage is one entry of the ranked weapon-usage list.
type WeaponUsage struct {
	Weapon     string  `json:"weapon"`
	Kills      int     `json:"kills"`
	Preference float64 `json:"preference"`
	Accuracy   float64 `json:"accuracy"`
}

// TrendPoint is one point of the performance-trend series.
type TrendPoint struct {
	Date    string  `json:"date"`
	KD      float64 `json:"kd"`
	ACS     int     `json:"acs"`
	WinRate float64 `json:"win_rate"`
	Map     string  `json:"map"`
}

// TeamAggregate is the computed team-level summary. It is a pure function of
// the player list: recomputed wholesale on every roster change, never
// persisted, never partially updated.
type TeamAggregate struct {
	TotalPlayers     int            `json:"total_players"`
	AverageKD        float64        `json:"average_kd"`
	AverageACS       int            `json:"average_acs"`
	HeadshotPct      int            `json:"headshot_percentage"`
	WinRate          int            `json:"win_rate"`
	RoleDistribution map[string]int `json:"role_distribution"`
	AgentUsage       []AgentUsage   `json:"agent_usage"`
	WeaponUsage      []WeaponUsage  `json:"weapon_usage"`
	Trend            []TrendPoint   `json:"performance_trend"`
	// TrendSynthetic is true when the trend series is jittered placeholder
	// data rather than a replay of recorded matches. Consumers must not
	// treat synthetic points as ground truth.
	TrendSynthetic bool `json:"trend_synthetic"`
	// TrendInsufficient is set under the historical trend policy when fewer
	// real data points exist than the configured minimum.
	TrendInsufficient bool `json:"trend_insufficient,omitempty"`
}
