package maintenance

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beru003/valorant-coach-pro/internal/recordstore"
)

func TestPruneRecordsAgainstSQLiteStore(t *testing.T) {
	db, err := recordstore.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Set("team_t1_players", []byte("[]")))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Nothing stale yet.
	pruneRecords(db, time.Hour, log)
	_, ok, err := db.Get("team_t1_players")
	require.NoError(t, err)
	assert.True(t, ok)

	// A negative age pushes the cutoff into the future, so every row
	// counts as stale.
	pruneRecords(db, -time.Minute, log)
	_, ok, err = db.Get("team_t1_players")
	require.NoError(t, err)
	assert.False(t, ok)
}
