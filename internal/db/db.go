// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beru003/valorant-coach-pro/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API and sync
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Roster reads
		"team_exists":  "SELECT 1 FROM teams WHERE id = $1",
		"team_members": "SELECT tm.id, u.full_name, tm.valorant_username, tm.valorant_tag, tm.primary_role, tm.current_rank, tm.created_at FROM team_members tm LEFT JOIN users u ON u.id = tm.user_id WHERE tm.team_id = $1 ORDER BY tm.created_at, tm.id",
		"member_match_stats": "SELECT team_member_id, kills, deaths, assists, acs, headshot_percentage, first_kills, first_deaths, clutches_won, clutches_attempted, match_result, agent_used, map_name, match_date FROM player_statistics WHERE team_member_id = ANY($1) ORDER BY match_date, id",
		"member_weapon_stats": "SELECT team_member_id, weapon_name, kills, accuracy FROM weapon_statistics WHERE team_member_id = ANY($1) ORDER BY kills DESC, weapon_name",

		// Roster writes
		"insert_member":      "INSERT INTO team_members (id, team_id, valorant_username, valorant_tag, primary_role, current_rank, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		"insert_match_stat":  "INSERT INTO player_statistics (team_member_id, kills, deaths, assists, acs, headshot_percentage, first_kills, first_deaths, clutches_won, clutches_attempted, match_result, agent_used, map_name, match_date) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)",
		"insert_weapon_stat": "INSERT INTO weapon_statistics (team_member_id, weapon_name, kills, accuracy) VALUES ($1, $2, $3, $4)",
		"delete_member":      "DELETE FROM team_members WHERE id = $1 AND team_id = $2",

		// Training recommendations
		"insert_recommendation": "INSERT INTO ai_training_recommendations (id, team_id, recommendation, created_at) VALUES ($1, $2, $3, $4)",
		"prune_recommendations": "DELETE FROM ai_training_recommendations WHERE created_at < $1",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
