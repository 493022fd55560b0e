// Package remote reads and writes rosters in the hosted Postgres database.
// It is one of four candidate sources for a team's player list; the
// reconciliation layer decides when it is consulted and treats every error
// here as a soft failure.
package remote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Beru003/valorant-coach-pro/internal/db"
	"github.com/Beru003/valorant-coach-pro/internal/roster"
)

// Client queries the roster schema through the shared connection pool.
type Client struct {
	pool *db.Pool
	log  *slog.Logger
}

// New creates a remote roster client.
func New(pool *db.Pool, log *slog.Logger) *Client {
	return &Client{pool: pool, log: log.With("component", "remote")}
}

// FetchTeamPlayers loads the full roster for a team, including nested match
// and weapon statistics. An unknown team returns an empty (non-nil) slice.
func (c *Client) FetchTeamPlayers(ctx context.Context, teamID string) ([]roster.PlayerRecord, error) {
	members, err := c.fetchMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []roster.PlayerRecord{}, nil
	}

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	matches, err := c.fetchMatchStats(ctx, ids)
	if err != nil {
		return nil, err
	}
	weapons, err := c.fetchWeaponStats(ctx, ids)
	if err != nil {
		return nil, err
	}

	return assemblePlayers(members, matches, weapons), nil
}

func (c *Client) fetchMembers(ctx context.Context, teamID string) ([]memberRow, error) {
	rows, err := c.pool.Query(ctx, "team_members", teamID)
	if err != nil {
		return nil, fmt.Errorf("query team members: %w", err)
	}
	defer rows.Close()

	var members []memberRow
	for rows.Next() {
		var m memberRow
		if err := rows.Scan(&m.ID, &m.FullName, &m.Username, &m.Tag, &m.Role, &m.Rank, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (c *Client) fetchMatchStats(ctx context.Context, memberIDs []string) ([]matchRow, error) {
	rows, err := c.pool.Query(ctx, "member_match_stats", memberIDs)
	if err != nil {
		return nil, fmt.Errorf("query match stats: %w", err)
	}
	defer rows.Close()

	var out []matchRow
	for rows.Next() {
		var (
			r     matchRow
			agent *string
			mp    *string
		)
		if err := rows.Scan(&r.MemberID, &r.Stat.Kills, &r.Stat.Deaths, &r.Stat.Assists,
			&r.Stat.ACS, &r.Stat.HeadshotPct, &r.Stat.FirstKills, &r.Stat.FirstDeaths,
			&r.Stat.ClutchesWon, &r.Stat.ClutchesAttempted, &r.Stat.MatchResult,
			&agent, &mp, &r.MatchDate); err != nil {
			return nil, fmt.Errorf("scan match stat: %w", err)
		}
		if agent != nil {
			r.Stat.AgentUsed = *agent
		}
		if mp != nil {
			r.Stat.MapName = *mp
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (c *Client) fetchWeaponStats(ctx context.Context, memberIDs []string) ([]weaponRow, error) {
	rows, err := c.pool.Query(ctx, "member_weapon_stats", memberIDs)
	if err != nil {
		return nil, fmt.Errorf("query weapon stats: %w", err)
	}
	defer rows.Close()

	var out []weaponRow
	for rows.Next() {
		var r weaponRow
		if err := rows.Scan(&r.MemberID, &r.Stat.WeaponName, &r.Stat.Kills, &r.Stat.Accuracy); err != nil {
			return nil, fmt.Errorf("scan weapon stat: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// InsertPlayer writes a player and its nested statistics in one transaction.
// The record's ID must already be assigned.
func (c *Client) InsertPlayer(ctx context.Context, teamID string, p roster.PlayerRecord) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin insert player: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "insert_member",
		p.ID, teamID, p.Username, p.Tag, p.PrimaryRole, p.CurrentRank, p.CreatedAt); err != nil {
		return fmt.Errorf("insert member %s: %w", p.ID, err)
	}
	for _, m := range p.MatchStats {
		date, err := time.Parse("2006-01-02", m.MatchDate)
		if err != nil {
			date = time.Now().UTC()
		}
		if _, err := tx.Exec(ctx, "insert_match_stat",
			p.ID, m.Kills, m.Deaths, m.Assists, m.ACS, m.HeadshotPct,
			m.FirstKills, m.FirstDeaths, m.ClutchesWon, m.ClutchesAttempted,
			m.MatchResult, nullable(m.AgentUsed), nullable(m.MapName), date); err != nil {
			return fmt.Errorf("insert match stat for %s: %w", p.ID, err)
		}
	}
	for _, w := range p.WeaponStats {
		if _, err := tx.Exec(ctx, "insert_weapon_stat",
			p.ID, w.WeaponName, w.Kills, w.Accuracy); err != nil {
			return fmt.Errorf("insert weapon stat for %s: %w", p.ID, err)
		}
	}
	return tx.Commit(ctx)
}

// DeletePlayer removes a player row; dependent statistics rows cascade.
// Deleting a player that never reached the database is not an error.
func (c *Client) DeletePlayer(ctx context.Context, teamID, playerID string) error {
	tag, err := c.pool.Exec(ctx, "delete_member", playerID, teamID)
	if err != nil {
		return fmt.Errorf("delete member %s: %w", playerID, err)
	}
	if tag.RowsAffected() == 0 {
		c.log.Debug("delete skipped, player not in remote", "player_id", playerID)
	}
	return nil
}

// SaveRecommendation stores a generated training plan for later review.
func (c *Client) SaveRecommendation(ctx context.Context, teamID string, plan []byte) error {
	if _, err := c.pool.Exec(ctx, "insert_recommendation",
		uuid.NewString(), teamID, plan, time.Now().UTC()); err != nil {
		return fmt.Errorf("save recommendation: %w", err)
	}
	return nil
}

// PruneRecommendations deletes recommendations older than maxAge.
func (c *Client) PruneRecommendations(ctx context.Context, maxAge time.Duration) (int64, error) {
	tag, err := c.pool.Exec(ctx, "prune_recommendations", time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("prune recommendations: %w", err)
	}
	return tag.RowsAffected(), nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
