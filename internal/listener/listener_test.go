package listener

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beru003/valorant-coach-pro/internal/cache"
	"github.com/Beru003/valorant-coach-pro/internal/reconcile"
	"github.com/Beru003/valorant-coach-pro/internal/recordstore"
	"github.com/Beru003/valorant-coach-pro/internal/roster"
	"github.com/Beru003/valorant-coach-pro/internal/statistics"
)

func TestApplyInvalidatesTeamState(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := recordstore.NewMemory()
	ctrl := reconcile.New(reconcile.Options{Store: store, Stats: statistics.DefaultConfig(), Log: log})
	respCache := cache.New(true)

	_, err := ctrl.Supply("t1", roster.DemoPlayers()[:1])
	require.NoError(t, err)
	respCache.Set(cache.Key("t1", "roster"), []byte("cached"), time.Minute)
	respCache.Set(cache.Key("t2", "roster"), []byte("other"), time.Minute)

	Apply(RosterEvent{TeamID: "t1", Operation: "UPDATE"}, ctrl, respCache, log)

	_, ok, err := store.Get(recordstore.TeamKey("t1"))
	require.NoError(t, err)
	assert.False(t, ok, "record store entry must be dropped")

	_, _, ok = respCache.Get(cache.Key("t1", "roster"))
	assert.False(t, ok)
	_, _, ok = respCache.Get(cache.Key("t2", "roster"))
	assert.True(t, ok, "other teams keep their responses")

	snap, err := ctrl.Snapshot(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, roster.SourceDemo, snap.Source, "state re-resolves from scratch")
}
