package remote

import (
	"time"

	"github.com/Beru003/valorant-coach-pro/internal/roster"
)

// memberRow is one team_members row joined against users.
type memberRow struct {
	ID        string
	FullName  *string // nil when no linked user account
	Username  string
	Tag       string
	Role      string
	Rank      string
	CreatedAt time.Time
}

// matchRow is one player_statistics row keyed by its member.
type matchRow struct {
	MemberID  string
	Stat      roster.MatchStatRecord
	MatchDate time.Time
}

// weaponRow is one weapon_statistics row keyed by its member.
type weaponRow struct {
	MemberID string
	Stat     roster.WeaponStatRecord
}

// assemblePlayers joins the three row sets into player records, preserving
// the member ordering. Players without a linked user account display their
// in-game username as the full name.
func assemblePlayers(members []memberRow, matches []matchRow, weapons []weaponRow) []roster.PlayerRecord {
	matchByMember := make(map[string][]roster.MatchStatRecord)
	for _, m := range matches {
		s := m.Stat
		s.MatchDate = m.MatchDate.Format("2006-01-02")
		matchByMember[m.MemberID] = append(matchByMember[m.MemberID], s)
	}
	weaponByMember := make(map[string][]roster.WeaponStatRecord)
	for _, w := range weapons {
		weaponByMember[w.MemberID] = append(weaponByMember[w.MemberID], w.Stat)
	}

	players := make([]roster.PlayerRecord, 0, len(members))
	for _, m := range members {
		name := m.Username
		if m.FullName != nil && *m.FullName != "" {
			name = *m.FullName
		}
		players = append(players, roster.PlayerRecord{
			ID:          m.ID,
			FullName:    name,
			Username:    m.Username,
			Tag:         m.Tag,
			PrimaryRole: m.Role,
			CurrentRank: m.Rank,
			MatchStats:  matchByMember[m.ID],
			WeaponStats: weaponByMember[m.ID],
			CreatedAt:   m.CreatedAt,
			SyncStatus:  roster.SyncConfirmed,
		})
	}
	return players
}
