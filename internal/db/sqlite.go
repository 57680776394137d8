package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/matchday/matchday-api/internal/model"
)

// SQLite is the embedded Store used for local development, the CLI, and tests.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	conn, err := sql.Open("sqlite", path+sep+"_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)

	s := &SQLite{conn: conn}
	if err := s.Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func (s *SQLite) Ping(ctx context.Context) error {
	var n int
	return s.conn.QueryRowContext(ctx, "SELECT 1").Scan(&n)
}

func (s *SQLite) Stats() PoolStats {
	st := s.conn.Stats()
	return PoolStats{Total: st.OpenConnections, Idle: st.Idle, InUse: st.InUse}
}

func (s *SQLite) Migrate(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *SQLite) Close() { s.conn.Close() }

// ---------------------------------------------------------------------------
// Reference data
// ---------------------------------------------------------------------------

func (s *SQLite) ListLeagues(ctx context.Context) ([]model.League, error) {
	return liteQuery(ctx, s.conn, "leagues", scanLeague,
		"SELECT league_id, league_name, country FROM leagues ORDER BY league_name")
}

func (s *SQLite) CreateLeague(ctx context.Context, l model.League) (model.League, error) {
	id, err := s.insert(ctx, "INSERT INTO leagues (league_name, country) VALUES (?, ?)", l.Name, l.Country)
	if err != nil {
		return l, fmt.Errorf("insert league: %w", err)
	}
	l.ID = id
	return l, nil
}

func (s *SQLite) DeleteLeague(ctx context.Context, id int) error {
	return s.deleteByID(ctx, "DELETE FROM leagues WHERE league_id = ?", id)
}

func (s *SQLite) ListTeams(ctx context.Context) ([]model.Team, error) {
	return liteQuery(ctx, s.conn, "teams", scanTeam,
		`SELECT t.team_id, t.league_id, t.team_name, t.city, t.stadium, t.founded_year, l.league_name
		FROM teams t LEFT JOIN leagues l ON l.league_id = t.league_id ORDER BY t.team_name`)
}

func (s *SQLite) CreateTeam(ctx context.Context, t model.Team) (model.Team, error) {
	id, err := s.insert(ctx,
		"INSERT INTO teams (league_id, team_name, city, stadium, founded_year) VALUES (?, ?, ?, ?, ?)",
		t.LeagueID, t.Name, t.City, t.Stadium, t.FoundedYear)
	if err != nil {
		return t, fmt.Errorf("insert team: %w", err)
	}
	t.ID = id
	return t, nil
}

func (s *SQLite) DeleteTeam(ctx context.Context, id int) error {
	return s.deleteByID(ctx, "DELETE FROM teams WHERE team_id = ?", id)
}

func (s *SQLite) ListPositions(ctx context.Context) ([]model.Position, error) {
	return liteQuery(ctx, s.conn, "positions", scanPosition,
		"SELECT position_id, position_name, position_category FROM positions ORDER BY position_id")
}

func (s *SQLite) InsertPositions(ctx context.Context, positions []model.Position) (int, error) {
	added := 0
	for _, pos := range positions {
		res, err := s.conn.ExecContext(ctx,
			"INSERT OR IGNORE INTO positions (position_name, position_category) VALUES (?, ?)",
			pos.Name, pos.Category)
		if err != nil {
			return added, fmt.Errorf("insert position %s: %w", pos.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("insert position %s: %w", pos.Name, err)
		}
		added += int(n)
	}
	return added, nil
}

func (s *SQLite) ListPlayers(ctx context.Context) ([]model.Player, error) {
	return liteQuery(ctx, s.conn, "players", scanPlayer,
		`SELECT p.player_id, p.player_name, p.default_position_id, p.team_id, p.date_of_birth,
			p.nationality, p.height_cm, p.foot, pos.position_name
		FROM players p LEFT JOIN positions pos ON pos.position_id = p.default_position_id
		ORDER BY p.player_name`)
}

func (s *SQLite) CreatePlayer(ctx context.Context, np model.NewPlayer) (model.Player, error) {
	pl := np.Player
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return pl, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`INSERT INTO players (player_name, default_position_id, team_id, date_of_birth, nationality, height_cm, foot)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pl.Name, pl.DefaultPositionID, pl.TeamID, pl.DateOfBirth, pl.Nationality, pl.HeightCM, pl.Foot)
	if err != nil {
		return pl, fmt.Errorf("insert player: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return pl, fmt.Errorf("player id: %w", err)
	}
	pl.ID = int(id)

	if np.SeasonID.Valid && pl.TeamID.Valid {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO team_rosters (team_id, player_id, season_id, join_date, contract_status)
			VALUES (?, ?, ?, date('now'), ?)`,
			pl.TeamID, pl.ID, np.SeasonID, ContractActive)
		if err != nil {
			return pl, fmt.Errorf("insert roster: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return pl, fmt.Errorf("commit: %w", err)
	}
	return pl, nil
}

func (s *SQLite) DeletePlayer(ctx context.Context, id int) error {
	return s.deleteByID(ctx, "DELETE FROM players WHERE player_id = ?", id)
}

func (s *SQLite) ListSeasons(ctx context.Context) ([]model.Season, error) {
	return liteQuery(ctx, s.conn, "seasons", scanSeason,
		`SELECT season_id, league_id, season_year, start_date, end_date
		FROM seasons ORDER BY start_date DESC, season_id DESC`)
}

func (s *SQLite) CreateSeason(ctx context.Context, se model.Season) (model.Season, error) {
	id, err := s.insert(ctx,
		"INSERT INTO seasons (league_id, season_year, start_date, end_date) VALUES (?, ?, ?, ?)",
		se.LeagueID, se.Year, se.StartDate, se.EndDate)
	if err != nil {
		return se, fmt.Errorf("insert season: %w", err)
	}
	se.ID = id
	return se, nil
}

func (s *SQLite) DeleteSeason(ctx context.Context, id int) error {
	return s.deleteByID(ctx, "DELETE FROM seasons WHERE season_id = ?", id)
}

// ---------------------------------------------------------------------------
// Matches and player stats
// ---------------------------------------------------------------------------

func (s *SQLite) CreateMatch(ctx context.Context, m model.NewMatch) (int, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		"INSERT INTO matches (season_id, match_date, match_time, venue) VALUES (?, ?, ?, ?)",
		m.SeasonID, m.Date, m.Time, m.Venue)
	if err != nil {
		return 0, fmt.Errorf("insert match: %w", err)
	}
	id64, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("match id: %w", err)
	}
	id := int(id64)

	for _, side := range matchSideRows(m) {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO match_teams (match_id, team_id, team_role, goals_scored, possession_percentage, result)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, side.TeamID, side.Role, side.Goals, side.Possession, side.Result)
		if err != nil {
			return 0, fmt.Errorf("insert match side: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (s *SQLite) ListPlayerStats(ctx context.Context, limit int) ([]model.PlayerStat, error) {
	return liteQuery(ctx, s.conn, "player stats", scanPlayerStat,
		playerStatSelect+" ORDER BY ps.created_at DESC, ps.stat_id DESC LIMIT ?", limit)
}

func (s *SQLite) CreatePlayerStat(ctx context.Context, ps model.PlayerStat) (model.PlayerStat, error) {
	id, err := s.insert(ctx,
		`INSERT INTO player_stats (match_id, player_id, `+playerStatColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		playerStatArgs(ps)...)
	if err != nil {
		return ps, fmt.Errorf("insert player stat: %w", err)
	}
	ps.ID = id
	return ps, nil
}

// ---------------------------------------------------------------------------
// Aggregation inputs
// ---------------------------------------------------------------------------

const playerStatSelect = `SELECT ps.stat_id, ps.match_id, ps.player_id, p.player_name, m.match_date, ` + playerStatColumnsQualified + `
	FROM player_stats ps
	LEFT JOIN players p ON p.player_id = ps.player_id
	LEFT JOIN matches m ON m.match_id = ps.match_id`

func (s *SQLite) SeasonIDsByLeague(ctx context.Context, leagueID int) ([]int, error) {
	return liteQuery(ctx, s.conn, "season ids", scanInt,
		"SELECT season_id FROM seasons WHERE league_id = ? ORDER BY season_id", leagueID)
}

func (s *SQLite) MatchIDsBySeasons(ctx context.Context, seasonIDs []int) ([]int, error) {
	if len(seasonIDs) == 0 {
		return []int{}, nil
	}
	return liteQuery(ctx, s.conn, "match ids", scanInt,
		"SELECT match_id FROM matches WHERE season_id IN (SELECT value FROM json_each(?)) ORDER BY match_id",
		idList(seasonIDs))
}

func (s *SQLite) MatchTeamsByMatches(ctx context.Context, matchIDs []int) ([]model.MatchTeam, error) {
	if len(matchIDs) == 0 {
		return []model.MatchTeam{}, nil
	}
	return liteQuery(ctx, s.conn, "match teams", scanMatchTeam,
		liteMatchTeamSelect+" WHERE mt.match_id IN (SELECT value FROM json_each(?))"+matchTeamOrder,
		idList(matchIDs))
}

func (s *SQLite) MatchTeamsByTeams(ctx context.Context, teamIDs []int) ([]model.MatchTeam, error) {
	if len(teamIDs) == 0 {
		return []model.MatchTeam{}, nil
	}
	return liteQuery(ctx, s.conn, "match teams", scanMatchTeam,
		liteMatchTeamSelect+" WHERE mt.team_id IN (SELECT value FROM json_each(?))"+matchTeamOrder,
		idList(teamIDs))
}

func (s *SQLite) PlayerStatsByMatches(ctx context.Context, matchIDs []int) ([]model.PlayerStat, error) {
	if len(matchIDs) == 0 {
		return []model.PlayerStat{}, nil
	}
	return liteQuery(ctx, s.conn, "player stats", scanPlayerStat,
		playerStatSelect+" WHERE ps.match_id IN (SELECT value FROM json_each(?)) ORDER BY ps.stat_id",
		idList(matchIDs))
}

const liteMatchTeamSelect = `SELECT mt.match_id, mt.team_id, t.team_name, mt.team_role, mt.goals_scored,
	mt.possession_percentage, mt.result, m.season_id, m.match_date, m.match_time, m.venue
	FROM match_teams mt
	JOIN matches m ON m.match_id = mt.match_id
	LEFT JOIN teams t ON t.team_id = mt.team_id`

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// idList encodes ids as a JSON array for json_each set filters.
func idList(ids []int) string {
	b, _ := json.Marshal(ids)
	return string(b)
}

func liteQuery[T any](ctx context.Context, conn *sql.DB, what string, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", what, err)
	}
	defer rows.Close()
	return collect(rows.Next, rows, scan, rows.Err, what)
}

func (s *SQLite) insert(ctx context.Context, query string, args ...any) (int, error) {
	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (s *SQLite) deleteByID(ctx context.Context, query string, id int) error {
	res, err := s.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
