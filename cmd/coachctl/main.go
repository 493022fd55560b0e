// Command coachctl is the Valorant Coach Pro operations CLI. It works
// against the same record store (and optionally the same database) as the
// API server.
//
// Usage:
//
//	coachctl seed --team team-1
//	coachctl stats --team team-1
//	coachctl cache inspect
//	coachctl cache clear --team team-1
//	coachctl plan --team team-1 --name "Phantom Five"
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Beru003/valorant-coach-pro/internal/ai"
	"github.com/Beru003/valorant-coach-pro/internal/config"
	"github.com/Beru003/valorant-coach-pro/internal/db"
	"github.com/Beru003/valorant-coach-pro/internal/reconcile"
	"github.com/Beru003/valorant-coach-pro/internal/recordstore"
	"github.com/Beru003/valorant-coach-pro/internal/remote"
	"github.com/Beru003/valorant-coach-pro/internal/roster"
	"github.com/Beru003/valorant-coach-pro/internal/statistics"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "coachctl",
		Short: "Valorant Coach Pro operations CLI",
	}

	root.AddCommand(seedCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(cacheCmd())
	root.AddCommand(planCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (*recordstore.SQLite, error) {
	path := cfg.CachePath
	if path == "" {
		path = "coach.db"
	}
	return recordstore.OpenSQLite(path)
}

func loadConfig() (*config.Config, error) {
	return config.Load()
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	var teamID string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the record store with the demo roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			players := roster.DemoPlayers()
			if err := recordstore.SavePlayers(store, teamID, players); err != nil {
				return err
			}
			fmt.Printf("Seeded %d demo players for team %s\n", len(players), teamID)

			if cfg.DatabaseURL == "" {
				return nil
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			pool, err := db.New(ctx, cfg)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer pool.Close()

			client := remote.New(pool, logger)
			for _, p := range players {
				if err := client.InsertPlayer(ctx, teamID, p); err != nil {
					return fmt.Errorf("inserting %s: %w", p.Username, err)
				}
			}
			fmt.Printf("Inserted %d demo players into the remote database\n", len(players))
			return nil
		},
	}
	cmd.Flags().StringVar(&teamID, "team", "team-1", "team ID to seed")
	return cmd
}

// --------------------------------------------------------------------------
// stats command
// --------------------------------------------------------------------------

func statsCmd() *cobra.Command {
	var teamID string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the computed team aggregate",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := resolveSnapshot(cmd.Context(), teamID)
			if err != nil {
				return err
			}

			agg := snap.Aggregate
			fmt.Printf("Team %s (%s, %d players)\n", teamID, snap.Source, agg.TotalPlayers)
			fmt.Printf("  K/D %.2f  ACS %d  HS %d%%  Win %d%%\n",
				agg.AverageKD, agg.AverageACS, agg.HeadshotPct, agg.WinRate)
			fmt.Println("  Roles:")
			for role, n := range agg.RoleDistribution {
				fmt.Printf("    %-12s %d\n", role, n)
			}
			if len(agg.AgentUsage) > 0 {
				fmt.Println("  Agents:")
				for _, a := range agg.AgentUsage {
					fmt.Printf("    %-10s %5.1f%% usage  %5.1f%% win\n", a.Agent, a.Usage, a.WinRate)
				}
			}
			if len(agg.WeaponUsage) > 0 {
				fmt.Println("  Weapons:")
				for _, w := range agg.WeaponUsage {
					fmt.Printf("    %-10s %4d kills  %5.1f%% accuracy\n", w.Weapon, w.Kills, w.Accuracy)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&teamID, "team", "team-1", "team ID")
	return cmd
}

// resolveSnapshot builds a read-only controller over the record store and
// resolves the team the same way the API does, minus the database.
func resolveSnapshot(ctx context.Context, teamID string) (reconcile.Snapshot, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return reconcile.Snapshot{}, nil, err
	}
	store, err := openStore(cfg)
	if err != nil {
		return reconcile.Snapshot{}, nil, err
	}
	defer store.Close()

	statsCfg := statistics.DefaultConfig()
	if cfg.TrendPolicy == config.TrendPolicyHistorical {
		statsCfg.TrendPolicy = statistics.TrendHistorical
	}
	statsCfg.MinTrendPoints = cfg.TrendMinPoints

	ctrl := reconcile.New(reconcile.Options{Store: store, Stats: statsCfg, Log: logger})
	snap, err := ctrl.Snapshot(ctx, teamID)
	return snap, cfg, err
}

// --------------------------------------------------------------------------
// cache command
// --------------------------------------------------------------------------

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the record store",
	}
	cmd.AddCommand(cacheInspectCmd())
	cmd.AddCommand(cacheClearCmd())
	return cmd
}

func cacheInspectCmd() *cobra.Command {
	var teamID string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show a team's cached player records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			players, ok, err := recordstore.LoadPlayers(store, teamID)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Printf("No cached records for team %s\n", teamID)
				return nil
			}
			for _, p := range players {
				status := p.SyncStatus
				if status == "" {
					status = "-"
				}
				fmt.Printf("%-36s  %-20s %-12s %-12s sync=%s  matches=%d\n",
					p.ID, p.Username+"#"+p.Tag, p.PrimaryRole, p.CurrentRank, status, len(p.MatchStats))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&teamID, "team", "team-1", "team ID")
	return cmd
}

func cacheClearCmd() *cobra.Command {
	var teamID string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete a team's cached player records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(recordstore.TeamKey(teamID)); err != nil {
				return err
			}
			fmt.Printf("Cleared cached records for team %s\n", teamID)
			return nil
		},
	}
	cmd.Flags().StringVar(&teamID, "team", "team-1", "team ID")
	return cmd
}

// --------------------------------------------------------------------------
// plan command
// --------------------------------------------------------------------------

func planCmd() *cobra.Command {
	var teamID, teamName string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate an AI training plan for a team (requires ANTHROPIC_API_KEY)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			snap, cfg, err := resolveSnapshot(ctx, teamID)
			if err != nil {
				return err
			}
			if len(snap.Players) == 0 {
				return fmt.Errorf("no players for team %s", teamID)
			}
			name := teamName
			if name == "" {
				name = teamID
			}

			trainer := ai.NewTrainer(cfg.AnthropicAPIKey, cfg.AIModel, logger)
			if !trainer.Enabled() {
				return fmt.Errorf("ANTHROPIC_API_KEY is required")
			}
			plan, err := trainer.GenerateTeamPlan(ctx, name, snap.Players, snap.Aggregate)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(plan, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&teamID, "team", "team-1", "team ID")
	cmd.Flags().StringVar(&teamName, "name", "", "team display name used in the prompt")
	return cmd
}
