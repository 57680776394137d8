// Package db is the storage layer. Store is implemented twice: Postgres, a
// pgxpool-backed store with prepared statement registration for the managed
// database, and SQLite, an embedded store for local development, the CLI, and
// tests. Both read and write the same schema.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/matchday/matchday-api/internal/config"
	"github.com/matchday/matchday-api/internal/model"
)

// ErrNotFound is returned when a delete targets a row that does not exist.
var ErrNotFound = errors.New("not found")

// ContractActive is the contract status given to roster rows created with a
// player.
const ContractActive = "Active"

// PoolStats is a backend-neutral snapshot of connection usage.
type PoolStats struct {
	Total int
	Idle  int
	InUse int
}

// Store is every query the API and CLI issue.
type Store interface {
	Ping(ctx context.Context) error
	Stats() PoolStats
	Migrate(ctx context.Context) error
	Close()

	ListLeagues(ctx context.Context) ([]model.League, error)
	CreateLeague(ctx context.Context, l model.League) (model.League, error)
	DeleteLeague(ctx context.Context, id int) error

	ListTeams(ctx context.Context) ([]model.Team, error)
	CreateTeam(ctx context.Context, t model.Team) (model.Team, error)
	DeleteTeam(ctx context.Context, id int) error

	ListPositions(ctx context.Context) ([]model.Position, error)
	// InsertPositions adds the positions whose names are not stored yet and
	// reports how many were added.
	InsertPositions(ctx context.Context, positions []model.Position) (int, error)

	ListPlayers(ctx context.Context) ([]model.Player, error)
	CreatePlayer(ctx context.Context, p model.NewPlayer) (model.Player, error)
	DeletePlayer(ctx context.Context, id int) error

	ListSeasons(ctx context.Context) ([]model.Season, error)
	CreateSeason(ctx context.Context, s model.Season) (model.Season, error)
	DeleteSeason(ctx context.Context, id int) error

	// CreateMatch stores the match and both sides atomically.
	CreateMatch(ctx context.Context, m model.NewMatch) (int, error)

	ListPlayerStats(ctx context.Context, limit int) ([]model.PlayerStat, error)
	CreatePlayerStat(ctx context.Context, s model.PlayerStat) (model.PlayerStat, error)

	SeasonIDsByLeague(ctx context.Context, leagueID int) ([]int, error)
	MatchIDsBySeasons(ctx context.Context, seasonIDs []int) ([]int, error)
	MatchTeamsByMatches(ctx context.Context, matchIDs []int) ([]model.MatchTeam, error)
	MatchTeamsByTeams(ctx context.Context, teamIDs []int) ([]model.MatchTeam, error)
	PlayerStatsByMatches(ctx context.Context, matchIDs []int) ([]model.PlayerStat, error)
}

// Open connects to the backend the configured URL points at.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Driver() {
	case config.DriverSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		p, err := NewPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver())
	}
}

// matchSideRows expands a new match into its two stored sides, normalising
// role tags and deriving result tags from the goals.
func matchSideRows(m model.NewMatch) [2]model.MatchTeam {
	a := model.MatchTeam{
		TeamID:     model.Int(m.A.TeamID),
		Role:       model.NormalizeRole(m.A.Role, model.RoleHome),
		Goals:      model.Int(m.A.Goals),
		Possession: m.A.Possession,
		Result:     model.ResultFor(m.A.Goals, m.B.Goals),
	}
	b := model.MatchTeam{
		TeamID:     model.Int(m.B.TeamID),
		Role:       model.NormalizeRole(m.B.Role, model.RoleAway),
		Goals:      model.Int(m.B.Goals),
		Possession: m.B.Possession,
		Result:     model.ResultFor(m.B.Goals, m.A.Goals),
	}
	return [2]model.MatchTeam{a, b}
}

var (
	_ Store = (*Postgres)(nil)
	_ Store = (*SQLite)(nil)
)
