// Package listener provides a Postgres LISTEN/NOTIFY consumer for roster
// change events. It holds a dedicated pgx connection (not from the pool)
// listening on the `roster_changed` channel.
//
// When another dashboard instance (or the database itself) mutates a team's
// roster, the trigger fires pg_notify and this consumer invalidates the
// local record store and response cache so the next read re-resolves its
// sources.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Beru003/valorant-coach-pro/internal/cache"
	"github.com/Beru003/valorant-coach-pro/internal/reconcile"
)

const (
	channel          = "roster_changed"
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// RosterEvent is the JSON payload from pg_notify('roster_changed', ...).
type RosterEvent struct {
	TeamID    string `json:"team_id"`
	MemberID  string `json:"member_id,omitempty"`
	Operation string `json:"op"` // INSERT, UPDATE, DELETE
	Timestamp int64  `json:"ts"`
}

// Start opens a dedicated connection and listens on the roster_changed
// channel. It reconnects automatically on connection loss. Blocks until ctx
// is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, ctrl *reconcile.Controller, respCache *cache.Cache, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, ctrl, respCache, logger)
		if ctx.Err() != nil {
			logger.Info("Roster listener stopped (context cancelled)")
			return
		}

		logger.Error("Roster listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, ctrl *reconcile.Controller, respCache *cache.Cache, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+channel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", channel, err)
	}
	logger.Info("Roster listener connected", "channel", channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		var event RosterEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			logger.Warn("Failed to parse roster event",
				"payload", notification.Payload, "error", err)
			continue
		}
		if event.TeamID == "" {
			continue
		}

		Apply(event, ctrl, respCache, logger)
	}
}

// Apply invalidates local state for the event's team. Split out of the
// listen loop so tests can drive it without a database.
func Apply(event RosterEvent, ctrl *reconcile.Controller, respCache *cache.Cache, logger *slog.Logger) {
	if err := ctrl.Invalidate(event.TeamID); err != nil {
		logger.Warn("Invalidating team state failed",
			"team_id", event.TeamID, "error", err)
	}
	removed := respCache.InvalidatePrefix(cache.TeamPrefix(event.TeamID))

	logger.Info("Roster change applied",
		"team_id", event.TeamID,
		"op", event.Operation,
		"member_id", event.MemberID,
		"responses_evicted", removed)
}
