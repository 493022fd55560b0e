package remote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beru003/valorant-coach-pro/internal/roster"
)

func strp(s string) *string { return &s }

func TestAssemblePlayersJoinsNestedStats(t *testing.T) {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	members := []memberRow{
		{ID: "m1", FullName: strp("Alex Chen"), Username: "PhoenixFire", Tag: "1234", Role: roster.RoleDuelist, Rank: "Immortal 2", CreatedAt: created},
		{ID: "m2", FullName: nil, Username: "ViperQueen", Tag: "5678", Role: roster.RoleController, Rank: "Immortal 1", CreatedAt: created},
	}
	matches := []matchRow{
		{MemberID: "m1", Stat: roster.MatchStatRecord{Kills: 18, Deaths: 14, ACS: 245, MatchResult: roster.ResultWin, AgentUsed: "Jett"}, MatchDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{MemberID: "m1", Stat: roster.MatchStatRecord{Kills: 22, Deaths: 16, ACS: 267, MatchResult: roster.ResultWin, AgentUsed: "Jett"}, MatchDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
	}
	weapons := []weaponRow{
		{MemberID: "m1", Stat: roster.WeaponStatRecord{WeaponName: "Vandal", Kills: 245, Accuracy: 23.5}},
	}

	players := assemblePlayers(members, matches, weapons)
	require.Len(t, players, 2)

	p1 := players[0]
	assert.Equal(t, "m1", p1.ID)
	assert.Equal(t, "Alex Chen", p1.FullName)
	assert.Equal(t, roster.SyncConfirmed, p1.SyncStatus)
	require.Len(t, p1.MatchStats, 2)
	assert.Equal(t, "2026-03-01", p1.MatchStats[0].MatchDate)
	assert.Equal(t, "2026-03-02", p1.MatchStats[1].MatchDate)
	require.Len(t, p1.WeaponStats, 1)
	assert.Equal(t, "Vandal", p1.WeaponStats[0].WeaponName)

	// No linked user account: display name falls back to the username.
	p2 := players[1]
	assert.Equal(t, "ViperQueen", p2.FullName)
	assert.Empty(t, p2.MatchStats)
	assert.Empty(t, p2.WeaponStats)
}

func TestAssemblePlayersEmpty(t *testing.T) {
	players := assemblePlayers(nil, nil, nil)
	assert.Empty(t, players)
	assert.NotNil(t, players)
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	require.NotNil(t, nullable("Jett"))
	assert.Equal(t, "Jett", *nullable("Jett"))
}
