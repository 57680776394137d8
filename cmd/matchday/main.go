// Command matchday is the Matchday operations CLI.
//
// Usage:
//
//	matchday migrate
//	matchday seed positions
//	matchday table --league 1
//	matchday scorers --league 1
//	matchday assists --league 1
//	matchday leaders --league 1 --metric yellow_cards
//	matchday h2h --team-a 3 --team-b 7
//	matchday --db sqlite://./matchday.db table --league 1 --json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matchday/matchday-api/internal/analysis"
	"github.com/matchday/matchday-api/internal/config"
	"github.com/matchday/matchday-api/internal/db"
	"github.com/matchday/matchday-api/internal/model"
	"github.com/matchday/matchday-api/internal/report"
	"github.com/matchday/matchday-api/internal/seed"
	"github.com/matchday/matchday-api/internal/stats"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Persistent flags.
var (
	databaseURL string
	asJSON      bool
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "matchday",
		Short:        "Matchday operations CLI",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&databaseURL, "db", "", "Database URL (overrides DATABASE_URL)")
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "Print aggregates as JSON")

	root.AddCommand(migrateCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(tableCmd())
	root.AddCommand(leadersCmd("scorers", "Top goal scorers of a league", stats.MetricGoals))
	root.AddCommand(leadersCmd("assists", "Top assist providers of a league", stats.MetricAssists))
	root.AddCommand(leadersCmd("leaders", "Leaders of a league for any counter", ""))
	root.AddCommand(h2hCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// migrate / seed commands
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, cfg *config.Config, store db.Store) error {
				start := time.Now()
				if err := store.Migrate(ctx); err != nil {
					return err
				}
				logger.Info("Schema applied", "driver", cfg.Driver(), "duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed reference data",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "positions",
		Short: "Insert the default football positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, cfg *config.Config, store db.Store) error {
				result, err := seed.Positions(ctx, store, logger)
				logger.Info("Position seed finished", "summary", result.Summary())
				return err
			})
		},
	})
	return cmd
}

// --------------------------------------------------------------------------
// aggregate commands
// --------------------------------------------------------------------------

func tableCmd() *cobra.Command {
	var leagueID int
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the all-time table of a league",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, cfg *config.Config, store db.Store) error {
				table, err := analysis.New(store).Table(ctx, leagueID)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(table)
				}
				report.PrintTable(os.Stdout, table)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&leagueID, "league", 0, "League ID")
	_ = cmd.MarkFlagRequired("league")
	return cmd
}

// leadersCmd builds a leaderboard command. An empty fixed metric adds a
// --metric flag instead.
func leadersCmd(use, short string, fixed stats.Metric) *cobra.Command {
	var leagueID int
	var metricName string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			metric := fixed
			if metric == "" {
				m, err := stats.ParseMetric(metricName)
				if err != nil {
					return err
				}
				metric = m
			}
			return withStore(func(ctx context.Context, cfg *config.Config, store db.Store) error {
				leaders, err := analysis.New(store).Leaders(ctx, leagueID, metric)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(leaders)
				}
				report.PrintLeaders(os.Stdout, metric, leaders)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&leagueID, "league", 0, "League ID")
	_ = cmd.MarkFlagRequired("league")
	if fixed == "" {
		cmd.Flags().StringVar(&metricName, "metric", string(stats.MetricGoals),
			"Counter: goals, assists, shots_on_target, key_passes, yellow_cards, red_cards")
	}
	return cmd
}

func h2hCmd() *cobra.Command {
	var teamA, teamB int
	cmd := &cobra.Command{
		Use:   "h2h",
		Short: "Print the head-to-head record of two teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, cfg *config.Config, store db.Store) error {
				summary, err := analysis.New(store).HeadToHead(ctx, teamA, teamB)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(summary)
				}
				names, err := teamNames(ctx, store)
				if err != nil {
					return err
				}
				report.PrintHeadToHead(os.Stdout, names(teamA), names(teamB), summary)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&teamA, "team-a", 0, "First team ID")
	cmd.Flags().IntVar(&teamB, "team-b", 0, "Second team ID")
	_ = cmd.MarkFlagRequired("team-a")
	_ = cmd.MarkFlagRequired("team-b")
	return cmd
}

// --------------------------------------------------------------------------
// helpers
// --------------------------------------------------------------------------

func withStore(fn func(ctx context.Context, cfg *config.Config, store db.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// --db wins over every environment source.
	if databaseURL != "" {
		os.Setenv("MATCHDAY_DATABASE_URL", databaseURL)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	return fn(ctx, cfg, store)
}

// teamNames loads the team list once and returns a lookup that falls back to
// "Unknown" for deleted teams.
func teamNames(ctx context.Context, store db.Store) (func(int) string, error) {
	teams, err := store.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]string, len(teams))
	for _, t := range teams {
		byID[t.ID] = t.Name
	}
	return func(id int) string {
		if name, ok := byID[id]; ok {
			return name
		}
		return model.UnknownName
	}, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
