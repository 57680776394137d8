package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday/matchday-api/internal/config"
	"github.com/matchday/matchday-api/internal/model"
)

// Postgres is the pgxpool-backed Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres applies the schema, then creates and validates a connection
// pool. The schema goes first because every pooled connection prepares
// statements against the tables.
func NewPostgres(ctx context.Context, cfg *config.Config) (*Postgres, error) {
	if err := applyPostgresSchema(ctx, cfg.DatabaseURL); err != nil {
		return nil, err
	}

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

	return &Postgres{pool: pool}, nil
}

func applyPostgresSchema(ctx context.Context, url string) error {
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("connect for migration: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// registerPreparedStatements registers every read the API issues. Dates and
// times are rendered as text so both backends hand the same strings upward.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Reference data
		"list_leagues": "SELECT league_id, league_name, country FROM leagues ORDER BY league_name",
		"list_teams": `SELECT t.team_id, t.league_id, t.team_name, t.city, t.stadium, t.founded_year, l.league_name
			FROM teams t LEFT JOIN leagues l ON l.league_id = t.league_id ORDER BY t.team_name`,
		"list_positions": "SELECT position_id, position_name, position_category FROM positions ORDER BY position_id",
		"list_players": `SELECT p.player_id, p.player_name, p.default_position_id, p.team_id, p.date_of_birth::text,
			p.nationality, p.height_cm, p.foot, pos.position_name
			FROM players p LEFT JOIN positions pos ON pos.position_id = p.default_position_id ORDER BY p.player_name`,
		"list_seasons": `SELECT season_id, league_id, season_year, start_date::text, end_date::text
			FROM seasons ORDER BY start_date DESC, season_id DESC`,
		"list_player_stats": `SELECT ps.stat_id, ps.match_id, ps.player_id, p.player_name, m.match_date::text, ` + playerStatColumnsQualified + `
			FROM player_stats ps
			LEFT JOIN players p ON p.player_id = ps.player_id
			LEFT JOIN matches m ON m.match_id = ps.match_id
			ORDER BY ps.created_at DESC, ps.stat_id DESC LIMIT $1`,

		// Aggregation inputs
		"season_ids_by_league": "SELECT season_id FROM seasons WHERE league_id = $1 ORDER BY season_id",
		"match_ids_by_seasons": "SELECT match_id FROM matches WHERE season_id = ANY($1) ORDER BY match_id",
		"match_teams_by_matches": matchTeamSelect + `
			WHERE mt.match_id = ANY($1)` + matchTeamOrder,
		"match_teams_by_teams": matchTeamSelect + `
			WHERE mt.team_id = ANY($1)` + matchTeamOrder,
		"player_stats_by_matches": `SELECT ps.stat_id, ps.match_id, ps.player_id, p.player_name, m.match_date::text, ` + playerStatColumnsQualified + `
			FROM player_stats ps
			LEFT JOIN players p ON p.player_id = ps.player_id
			LEFT JOIN matches m ON m.match_id = ps.match_id
			WHERE ps.match_id = ANY($1) ORDER BY ps.stat_id`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}

const matchTeamSelect = `SELECT mt.match_id, mt.team_id, t.team_name, mt.team_role, mt.goals_scored,
	mt.possession_percentage, mt.result, m.season_id, m.match_date::text, m.match_time::text, m.venue
	FROM match_teams mt
	JOIN matches m ON m.match_id = mt.match_id
	LEFT JOIN teams t ON t.team_id = mt.team_id`

const matchTeamOrder = `
	ORDER BY mt.match_id, (mt.team_role = 'home') DESC, mt.team_id`

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// Ping runs a trivial query to verify the database is reachable.
func (p *Postgres) Ping(ctx context.Context) error {
	var n int
	return p.pool.QueryRow(ctx, "health_check").Scan(&n)
}

func (p *Postgres) Stats() PoolStats {
	s := p.pool.Stat()
	return PoolStats{
		Total: int(s.TotalConns()),
		Idle:  int(s.IdleConns()),
		InUse: int(s.AcquiredConns()),
	}
}

// Migrate re-applies the idempotent schema.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (p *Postgres) Close() { p.pool.Close() }

// ---------------------------------------------------------------------------
// Reference data
// ---------------------------------------------------------------------------

func (p *Postgres) ListLeagues(ctx context.Context) ([]model.League, error) {
	return pgQuery(ctx, p.pool, "leagues", scanLeague, "list_leagues")
}

func (p *Postgres) CreateLeague(ctx context.Context, l model.League) (model.League, error) {
	err := p.pool.QueryRow(ctx,
		"INSERT INTO leagues (league_name, country) VALUES ($1, $2) RETURNING league_id",
		l.Name, l.Country).Scan(&l.ID)
	if err != nil {
		return l, fmt.Errorf("insert league: %w", err)
	}
	return l, nil
}

func (p *Postgres) DeleteLeague(ctx context.Context, id int) error {
	return p.deleteByID(ctx, "DELETE FROM leagues WHERE league_id = $1", id)
}

func (p *Postgres) ListTeams(ctx context.Context) ([]model.Team, error) {
	return pgQuery(ctx, p.pool, "teams", scanTeam, "list_teams")
}

func (p *Postgres) CreateTeam(ctx context.Context, t model.Team) (model.Team, error) {
	err := p.pool.QueryRow(ctx,
		`INSERT INTO teams (league_id, team_name, city, stadium, founded_year)
		VALUES ($1, $2, $3, $4, $5) RETURNING team_id`,
		t.LeagueID, t.Name, t.City, t.Stadium, t.FoundedYear).Scan(&t.ID)
	if err != nil {
		return t, fmt.Errorf("insert team: %w", err)
	}
	return t, nil
}

func (p *Postgres) DeleteTeam(ctx context.Context, id int) error {
	return p.deleteByID(ctx, "DELETE FROM teams WHERE team_id = $1", id)
}

func (p *Postgres) ListPositions(ctx context.Context) ([]model.Position, error) {
	return pgQuery(ctx, p.pool, "positions", scanPosition, "list_positions")
}

func (p *Postgres) InsertPositions(ctx context.Context, positions []model.Position) (int, error) {
	added := 0
	for _, pos := range positions {
		tag, err := p.pool.Exec(ctx,
			`INSERT INTO positions (position_name, position_category) VALUES ($1, $2)
			ON CONFLICT (position_name) DO NOTHING`,
			pos.Name, pos.Category)
		if err != nil {
			return added, fmt.Errorf("insert position %s: %w", pos.Name, err)
		}
		added += int(tag.RowsAffected())
	}
	return added, nil
}

func (p *Postgres) ListPlayers(ctx context.Context) ([]model.Player, error) {
	return pgQuery(ctx, p.pool, "players", scanPlayer, "list_players")
}

// CreatePlayer inserts the player and, when a season and team are known, the
// matching roster row, in one transaction.
func (p *Postgres) CreatePlayer(ctx context.Context, np model.NewPlayer) (model.Player, error) {
	pl := np.Player
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return pl, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	err = tx.QueryRow(ctx,
		`INSERT INTO players (player_name, default_position_id, team_id, date_of_birth, nationality, height_cm, foot)
		VALUES ($1, $2, $3, $4::text::date, $5, $6, $7) RETURNING player_id`,
		pl.Name, pl.DefaultPositionID, pl.TeamID, pl.DateOfBirth, pl.Nationality, pl.HeightCM, pl.Foot).Scan(&pl.ID)
	if err != nil {
		return pl, fmt.Errorf("insert player: %w", err)
	}

	if np.SeasonID.Valid && pl.TeamID.Valid {
		_, err = tx.Exec(ctx,
			`INSERT INTO team_rosters (team_id, player_id, season_id, join_date, contract_status)
			VALUES ($1, $2, $3, CURRENT_DATE, $4)`,
			pl.TeamID, pl.ID, np.SeasonID, ContractActive)
		if err != nil {
			return pl, fmt.Errorf("insert roster: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return pl, fmt.Errorf("commit: %w", err)
	}
	return pl, nil
}

func (p *Postgres) DeletePlayer(ctx context.Context, id int) error {
	return p.deleteByID(ctx, "DELETE FROM players WHERE player_id = $1", id)
}

func (p *Postgres) ListSeasons(ctx context.Context) ([]model.Season, error) {
	return pgQuery(ctx, p.pool, "seasons", scanSeason, "list_seasons")
}

func (p *Postgres) CreateSeason(ctx context.Context, s model.Season) (model.Season, error) {
	err := p.pool.QueryRow(ctx,
		`INSERT INTO seasons (league_id, season_year, start_date, end_date)
		VALUES ($1, $2, $3::text::date, $4::text::date) RETURNING season_id`,
		s.LeagueID, s.Year, s.StartDate, s.EndDate).Scan(&s.ID)
	if err != nil {
		return s, fmt.Errorf("insert season: %w", err)
	}
	return s, nil
}

func (p *Postgres) DeleteSeason(ctx context.Context, id int) error {
	return p.deleteByID(ctx, "DELETE FROM seasons WHERE season_id = $1", id)
}

// ---------------------------------------------------------------------------
// Matches and player stats
// ---------------------------------------------------------------------------

func (p *Postgres) CreateMatch(ctx context.Context, m model.NewMatch) (int, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO matches (season_id, match_date, match_time, venue)
		VALUES ($1, $2::text::date, $3::text::time, $4) RETURNING match_id`,
		m.SeasonID, m.Date, m.Time, m.Venue).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert match: %w", err)
	}

	for _, side := range matchSideRows(m) {
		_, err := tx.Exec(ctx,
			`INSERT INTO match_teams (match_id, team_id, team_role, goals_scored, possession_percentage, result)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			id, side.TeamID, side.Role, side.Goals, side.Possession, side.Result)
		if err != nil {
			return 0, fmt.Errorf("insert match side: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (p *Postgres) ListPlayerStats(ctx context.Context, limit int) ([]model.PlayerStat, error) {
	return pgQuery(ctx, p.pool, "player stats", scanPlayerStat, "list_player_stats", limit)
}

func (p *Postgres) CreatePlayerStat(ctx context.Context, s model.PlayerStat) (model.PlayerStat, error) {
	err := p.pool.QueryRow(ctx,
		`INSERT INTO player_stats (match_id, player_id, `+playerStatColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING stat_id`,
		playerStatArgs(s)...).Scan(&s.ID)
	if err != nil {
		return s, fmt.Errorf("insert player stat: %w", err)
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Aggregation inputs
// ---------------------------------------------------------------------------

func (p *Postgres) SeasonIDsByLeague(ctx context.Context, leagueID int) ([]int, error) {
	return pgQuery(ctx, p.pool, "season ids", scanInt, "season_ids_by_league", leagueID)
}

func (p *Postgres) MatchIDsBySeasons(ctx context.Context, seasonIDs []int) ([]int, error) {
	if len(seasonIDs) == 0 {
		return []int{}, nil
	}
	return pgQuery(ctx, p.pool, "match ids", scanInt, "match_ids_by_seasons", seasonIDs)
}

func (p *Postgres) MatchTeamsByMatches(ctx context.Context, matchIDs []int) ([]model.MatchTeam, error) {
	if len(matchIDs) == 0 {
		return []model.MatchTeam{}, nil
	}
	return pgQuery(ctx, p.pool, "match teams", scanMatchTeam, "match_teams_by_matches", matchIDs)
}

func (p *Postgres) MatchTeamsByTeams(ctx context.Context, teamIDs []int) ([]model.MatchTeam, error) {
	if len(teamIDs) == 0 {
		return []model.MatchTeam{}, nil
	}
	return pgQuery(ctx, p.pool, "match teams", scanMatchTeam, "match_teams_by_teams", teamIDs)
}

func (p *Postgres) PlayerStatsByMatches(ctx context.Context, matchIDs []int) ([]model.PlayerStat, error) {
	if len(matchIDs) == 0 {
		return []model.PlayerStat{}, nil
	}
	return pgQuery(ctx, p.pool, "player stats", scanPlayerStat, "player_stats_by_matches", matchIDs)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func pgQuery[T any](ctx context.Context, pool *pgxpool.Pool, what string, scan func(scanner) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", what, err)
	}
	defer rows.Close()
	return collect(rows.Next, rows, scan, rows.Err, what)
}

func (p *Postgres) deleteByID(ctx context.Context, sql string, id int) error {
	tag, err := p.pool.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

