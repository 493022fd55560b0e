// Package reconcile owns the authoritative in-memory roster per team and
// keeps the three backing stores in agreement: the injected key-value record
// store, the remote database, and the built-in demo roster.
//
// Source precedence is fixed: supplied > cache > remote > demo. Local
// mutations are optimistic; the remote write happens after a short delay in
// the background and only flips each record's sync status, never the roster
// content the dashboard already shows.
package reconcile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Beru003/valorant-coach-pro/internal/recordstore"
	"github.com/Beru003/valorant-coach-pro/internal/roster"
	"github.com/Beru003/valorant-coach-pro/internal/statistics"
)

// RemoteSource is the slice of the remote client the controller needs.
type RemoteSource interface {
	FetchTeamPlayers(ctx context.Context, teamID string) ([]roster.PlayerRecord, error)
	InsertPlayer(ctx context.Context, teamID string, p roster.PlayerRecord) error
	DeletePlayer(ctx context.Context, teamID, playerID string) error
}

// Snapshot is a consistent view of one team at a point in time. Advisory is
// set when the read was degraded, e.g. the remote was unreachable and demo
// data is being served.
type Snapshot struct {
	TeamID    string                `json:"team_id"`
	Players   []roster.PlayerRecord `json:"players"`
	Aggregate roster.TeamAggregate  `json:"aggregate"`
	Source    roster.Source         `json:"source"`
	Advisory  string                `json:"advisory,omitempty"`
	FetchedAt time.Time             `json:"fetched_at"`
}

// Options configures a Controller. Store is required; Remote may be nil, in
// which case the controller runs on the record store and demo roster alone.
type Options struct {
	Store     recordstore.Store
	Remote    RemoteSource
	Stats     statistics.Config
	SyncDelay time.Duration
	Log       *slog.Logger
	Now       func() time.Time
}

// NewPlayer is the input for adding a roster entry.
type NewPlayer struct {
	FullName    string `json:"full_name"`
	Username    string `json:"valorant_username"`
	Tag         string `json:"valorant_tag"`
	PrimaryRole string `json:"primary_role"`
	CurrentRank string `json:"current_rank"`
}

type teamState struct {
	players  []roster.PlayerRecord
	source   roster.Source
	advisory string
	loaded   bool
	// generation is bumped on every local mutation. A remote fetch that
	// started under an older generation is discarded on arrival, so a slow
	// fetch can never clobber a roster the coach just edited.
	generation uint64
}

// Controller reconciles roster state across sources. Safe for concurrent use.
type Controller struct {
	store     recordstore.Store
	remote    RemoteSource
	stats     statistics.Config
	syncDelay time.Duration
	log       *slog.Logger
	now       func() time.Time

	mu    sync.Mutex
	teams map[string]*teamState
	wg    sync.WaitGroup
}

// New creates a Controller from Options.
func New(opts Options) *Controller {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		store:     opts.Store,
		remote:    opts.Remote,
		stats:     opts.Stats,
		syncDelay: opts.SyncDelay,
		log:       log.With("component", "reconcile"),
		now:       now,
		teams:     make(map[string]*teamState),
	}
}

// Wait blocks until all in-flight background syncs finish. Called on
// shutdown and by tests.
func (c *Controller) Wait() { c.wg.Wait() }

func (c *Controller) state(teamID string) *teamState {
	st, ok := c.teams[teamID]
	if !ok {
		st = &teamState{}
		c.teams[teamID] = st
	}
	return st
}

func (c *Controller) snapshotLocked(teamID string, st *teamState) Snapshot {
	players := make([]roster.PlayerRecord, len(st.players))
	copy(players, st.players)
	return Snapshot{
		TeamID:    teamID,
		Players:   players,
		Aggregate: statistics.ComputeWith(c.stats, players),
		Source:    st.source,
		Advisory:  st.advisory,
		FetchedAt: c.now().UTC(),
	}
}

// Snapshot returns the current roster view for a team, resolving the source
// on first use: cached records win over a remote fetch, and with neither
// available the demo roster is served so the dashboard is never empty.
func (c *Controller) Snapshot(ctx context.Context, teamID string) (Snapshot, error) {
	c.mu.Lock()
	st := c.state(teamID)
	if st.loaded {
		snap := c.snapshotLocked(teamID, st)
		c.mu.Unlock()
		return snap, nil
	}
	gen := st.generation
	c.mu.Unlock()

	players, source, advisory := c.resolve(ctx, teamID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if st.generation == gen && !st.loaded {
		st.players = players
		st.source = source
		st.advisory = advisory
		st.loaded = true
	} else {
		c.log.Debug("discarding stale source resolution", "team_id", teamID, "source", source)
	}
	return c.snapshotLocked(teamID, st), nil
}

// resolve walks the source chain below "supplied". Runs outside the lock.
func (c *Controller) resolve(ctx context.Context, teamID string) ([]roster.PlayerRecord, roster.Source, string) {
	players, ok, err := recordstore.LoadPlayers(c.store, teamID)
	if err != nil {
		c.log.Warn("record store read failed, treating as miss", "team_id", teamID, "error", err)
	}
	if ok {
		return players, roster.SourceCache, ""
	}

	if c.remote != nil {
		players, err := c.remote.FetchTeamPlayers(ctx, teamID)
		if err != nil {
			c.log.Warn("remote fetch failed, falling back to demo roster", "team_id", teamID, "error", err)
			return c.adoptDemo(teamID), roster.SourceDemo, "live roster unavailable, showing demo data"
		}
		if len(players) > 0 {
			if err := recordstore.SavePlayers(c.store, teamID, players); err != nil {
				c.log.Warn("caching remote roster failed", "team_id", teamID, "error", err)
			}
			return players, roster.SourceRemote, ""
		}
	}

	return c.adoptDemo(teamID), roster.SourceDemo, "no roster on record, showing demo data"
}

// adoptDemo caches the demo roster under the team's key so later reads (and
// restarted processes) resolve from the record store instead of retrying the
// remote.
func (c *Controller) adoptDemo(teamID string) []roster.PlayerRecord {
	players := roster.DemoPlayers()
	if err := recordstore.SavePlayers(c.store, teamID, players); err != nil {
		c.log.Warn("caching demo roster failed", "team_id", teamID, "error", err)
	}
	return players
}

// Supply replaces a team's roster with caller-provided records. Supplied
// data outranks every other source and is persisted to the record store.
func (c *Controller) Supply(teamID string, players []roster.PlayerRecord) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state(teamID)
	st.players = players
	st.source = roster.SourceSupplied
	st.advisory = ""
	st.loaded = true
	st.generation++

	if err := recordstore.SavePlayers(c.store, teamID, players); err != nil {
		return Snapshot{}, err
	}
	return c.snapshotLocked(teamID, st), nil
}

// AddPlayer appends a new record, recomputes, persists the cache, and
// schedules the remote insert. The returned record carries a fresh ID and a
// pending sync status.
func (c *Controller) AddPlayer(ctx context.Context, teamID string, in NewPlayer) (roster.PlayerRecord, Snapshot, error) {
	if _, err := c.Snapshot(ctx, teamID); err != nil {
		return roster.PlayerRecord{}, Snapshot{}, err
	}

	rec := roster.PlayerRecord{
		ID:          uuid.NewString(),
		FullName:    in.FullName,
		Username:    in.Username,
		Tag:         in.Tag,
		PrimaryRole: in.PrimaryRole,
		CurrentRank: in.CurrentRank,
		MatchStats:  []roster.MatchStatRecord{},
		CreatedAt:   c.now().UTC(),
		SyncStatus:  roster.SyncPending,
	}

	c.mu.Lock()
	st := c.state(teamID)
	st.players = append(st.players, rec)
	st.generation++
	if err := recordstore.SavePlayers(c.store, teamID, st.players); err != nil {
		c.mu.Unlock()
		return roster.PlayerRecord{}, Snapshot{}, err
	}
	snap := c.snapshotLocked(teamID, st)
	c.mu.Unlock()

	c.scheduleInsert(teamID, rec)
	return rec, snap, nil
}

// scheduleInsert pushes the record to the remote after the configured delay
// and flips its sync status based on the outcome. Failed records stay on the
// roster; only the status marks them.
func (c *Controller) scheduleInsert(teamID string, rec roster.PlayerRecord) {
	if c.remote == nil {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		time.Sleep(c.syncDelay)

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		status := roster.SyncConfirmed
		if err := c.remote.InsertPlayer(ctx, teamID, rec); err != nil {
			status = roster.SyncFailed
			c.log.Warn("remote insert failed", "team_id", teamID, "player_id", rec.ID, "error", err)
		}
		c.setSyncStatus(teamID, rec.ID, status)
	}()
}

func (c *Controller) setSyncStatus(teamID, playerID string, status roster.SyncStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state(teamID)
	for i := range st.players {
		if st.players[i].ID == playerID {
			st.players[i].SyncStatus = status
			if err := recordstore.SavePlayers(c.store, teamID, st.players); err != nil {
				c.log.Warn("persisting sync status failed", "team_id", teamID, "error", err)
			}
			return
		}
	}
	// Removed before the sync resolved; nothing to update.
}

// RemovePlayer drops a record locally and fires the remote delete in the
// background. Returns false when the player is not on the roster.
func (c *Controller) RemovePlayer(ctx context.Context, teamID, playerID string) (Snapshot, bool, error) {
	if _, err := c.Snapshot(ctx, teamID); err != nil {
		return Snapshot{}, false, err
	}

	c.mu.Lock()
	st := c.state(teamID)
	kept := st.players[:0:0]
	found := false
	for _, p := range st.players {
		if p.ID == playerID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		snap := c.snapshotLocked(teamID, st)
		c.mu.Unlock()
		return snap, false, nil
	}
	st.players = kept
	st.generation++
	if err := recordstore.SavePlayers(c.store, teamID, st.players); err != nil {
		c.mu.Unlock()
		return Snapshot{}, true, err
	}
	snap := c.snapshotLocked(teamID, st)
	c.mu.Unlock()

	if c.remote != nil {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := c.remote.DeletePlayer(ctx, teamID, playerID); err != nil {
				c.log.Warn("remote delete failed", "team_id", teamID, "player_id", playerID, "error", err)
			}
		}()
	}
	return snap, true, nil
}

// Invalidate drops a team's in-memory state and cached records so the next
// snapshot resolves sources from scratch. Used when an external change
// notification arrives.
func (c *Controller) Invalidate(teamID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.teams, teamID)
	return c.store.Delete(recordstore.TeamKey(teamID))
}
