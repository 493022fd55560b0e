package recordstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beru003/valorant-coach-pro/internal/roster"
)

func openMemDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTeamKey(t *testing.T) {
	assert.Equal(t, "team_team-1_players", TeamKey("team-1"))
}

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set("k", []byte("v1")))
	got, ok, err := m.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), got)

	// Stored bytes are copied, mutating the returned slice must not
	// leak back into the store.
	got[0] = 'x'
	again, _, _ := m.Get("k")
	assert.Equal(t, []byte("v1"), again)

	require.NoError(t, m.Delete("k"))
	_, ok, err = m.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is fine.
	require.NoError(t, m.Delete("k"))
}

func TestSQLiteRoundTrip(t *testing.T) {
	db := openMemDB(t)

	_, ok, err := db.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Set("k", []byte("v1")))
	require.NoError(t, db.Set("k", []byte("v2")))

	got, ok, err := db.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, db.Delete("k"))
	_, ok, err = db.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLitePruneStale(t *testing.T) {
	db := openMemDB(t)

	require.NoError(t, db.Set("fresh", []byte("a")))
	require.NoError(t, db.Set("old", []byte("b")))
	_, err := db.conn.Exec(`UPDATE records SET updated_at = ? WHERE key = 'old'`,
		time.Now().UTC().Add(-48*time.Hour).Format(time.RFC3339))
	require.NoError(t, err)

	removed, err := db.PruneStale(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, ok, _ := db.Get("fresh")
	assert.True(t, ok)
	_, ok, _ = db.Get("old")
	assert.False(t, ok)
}

func TestLoadSavePlayers(t *testing.T) {
	db := openMemDB(t)
	players := roster.DemoPlayers()

	_, ok, err := LoadPlayers(db, "t1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SavePlayers(db, "t1", players))

	got, ok, err := LoadPlayers(db, "t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, players, got)
}

func TestLoadPlayersCorruptValueIsAMiss(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set(TeamKey("t1"), []byte("{not json")))

	players, ok, err := LoadPlayers(m, "t1")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, players)
}
