package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchday/matchday-api/internal/model"
)

func strp(s string) *string { return &s }

func openMemDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err, "open in-memory db")
	t.Cleanup(s.Close)
	return s
}

// seedLeague stores a league with one season and two teams.
func seedLeague(t *testing.T, s *SQLite) (league model.League, season model.Season, a, b model.Team) {
	t.Helper()
	ctx := context.Background()

	league, err := s.CreateLeague(ctx, model.League{Name: "Premier League", Country: "England"})
	require.NoError(t, err)
	season, err = s.CreateSeason(ctx, model.Season{
		LeagueID: league.ID, Year: "2023/2024", StartDate: "2023-08-11", EndDate: "2024-05-19",
	})
	require.NoError(t, err)
	a, err = s.CreateTeam(ctx, model.Team{LeagueID: model.Int(league.ID), Name: "Arsenal"})
	require.NoError(t, err)
	b, err = s.CreateTeam(ctx, model.Team{LeagueID: model.Int(league.ID), Name: "Chelsea"})
	require.NoError(t, err)
	return league, season, a, b
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openMemDB(t)
	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.Ping(context.Background()))
}

func TestReferenceDataRoundTrip(t *testing.T) {
	s := openMemDB(t)
	ctx := context.Background()
	league, season, a, _ := seedLeague(t, s)

	leagues, err := s.ListLeagues(ctx)
	require.NoError(t, err)
	require.Len(t, leagues, 1)
	assert.Equal(t, league, leagues[0])

	teams, err := s.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Arsenal", teams[0].Name)
	require.NotNil(t, teams[0].LeagueName)
	assert.Equal(t, "Premier League", *teams[0].LeagueName)
	assert.False(t, teams[0].FoundedYear.Valid)

	seasons, err := s.ListSeasons(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Season{season}, seasons)

	added, err := s.InsertPositions(ctx, []model.Position{
		{Name: "ST", Category: "Forward"},
		{Name: "GK", Category: "Goalkeeper"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = s.InsertPositions(ctx, []model.Position{{Name: "ST", Category: "Forward"}})
	require.NoError(t, err)
	assert.Zero(t, added, "existing names are skipped")

	positions, err := s.ListPositions(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 2)

	p, err := s.CreatePlayer(ctx, model.NewPlayer{
		Player: model.Player{
			Name:              "Bukayo Saka",
			TeamID:            model.Int(a.ID),
			DefaultPositionID: model.Int(positions[0].ID),
			DateOfBirth:       strp("2001-09-05"),
		},
		SeasonID: model.Int(season.ID),
	})
	require.NoError(t, err)
	assert.Positive(t, p.ID)

	var rosters int
	require.NoError(t, s.conn.QueryRow("SELECT COUNT(*) FROM team_rosters WHERE player_id = ?", p.ID).Scan(&rosters))
	assert.Equal(t, 1, rosters)

	players, err := s.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.NotNil(t, players[0].PositionName)
	assert.Equal(t, "ST", *players[0].PositionName)
	assert.Equal(t, "2001-09-05", *players[0].DateOfBirth)
}

func TestDeleteMissingReturnsNotFound(t *testing.T) {
	s := openMemDB(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.DeleteLeague(ctx, 99), ErrNotFound)
	assert.ErrorIs(t, s.DeleteTeam(ctx, 99), ErrNotFound)
	assert.ErrorIs(t, s.DeletePlayer(ctx, 99), ErrNotFound)
	assert.ErrorIs(t, s.DeleteSeason(ctx, 99), ErrNotFound)
}

func TestCreateMatchStoresBothSides(t *testing.T) {
	s := openMemDB(t)
	ctx := context.Background()
	_, season, a, b := seedLeague(t, s)

	id, err := s.CreateMatch(ctx, model.NewMatch{
		SeasonID: season.ID,
		Date:     "2024-03-01",
		Venue:    strp("Emirates Stadium"),
		A:        model.MatchSide{TeamID: a.ID, Goals: 2, Possession: model.Float(55.5)},
		B:        model.MatchSide{TeamID: b.ID, Goals: 1},
	})
	require.NoError(t, err)

	rows, err := s.MatchTeamsByMatches(ctx, []int{id})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	home, away := rows[0], rows[1]
	assert.Equal(t, model.RoleHome, home.Role)
	assert.Equal(t, model.ResultWin, home.Result)
	assert.Equal(t, "Arsenal", *home.TeamName)
	assert.Equal(t, model.Float(55.5), home.Possession)
	assert.Equal(t, model.RoleAway, away.Role)
	assert.Equal(t, model.ResultLoss, away.Result)
	assert.False(t, away.Possession.Valid)
	assert.Equal(t, "2024-03-01", *home.Match.Date)
	assert.Equal(t, model.Int(season.ID), home.Match.SeasonID)
	assert.Nil(t, home.Match.Time)
}

func TestCreateMatchRollsBackOnDuplicateTeam(t *testing.T) {
	s := openMemDB(t)
	ctx := context.Background()
	_, season, a, _ := seedLeague(t, s)

	_, err := s.CreateMatch(ctx, model.NewMatch{
		SeasonID: season.ID,
		Date:     "2024-03-01",
		A:        model.MatchSide{TeamID: a.ID},
		B:        model.MatchSide{TeamID: a.ID},
	})
	require.Error(t, err)

	ids, err := s.MatchIDsBySeasons(ctx, []int{season.ID})
	require.NoError(t, err)
	assert.Empty(t, ids, "match row must not survive a failed side insert")
}

func TestAggregationInputs(t *testing.T) {
	s := openMemDB(t)
	ctx := context.Background()
	league, season, a, b := seedLeague(t, s)

	m1, err := s.CreateMatch(ctx, model.NewMatch{SeasonID: season.ID, Date: "2024-01-01",
		A: model.MatchSide{TeamID: a.ID, Goals: 1}, B: model.MatchSide{TeamID: b.ID, Goals: 1}})
	require.NoError(t, err)
	m2, err := s.CreateMatch(ctx, model.NewMatch{SeasonID: season.ID, Date: "2024-02-01",
		A: model.MatchSide{TeamID: b.ID, Goals: 3}, B: model.MatchSide{TeamID: a.ID, Goals: 0}})
	require.NoError(t, err)

	seasonIDs, err := s.SeasonIDsByLeague(ctx, league.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{season.ID}, seasonIDs)

	matchIDs, err := s.MatchIDsBySeasons(ctx, seasonIDs)
	require.NoError(t, err)
	assert.Equal(t, []int{m1, m2}, matchIDs)

	byTeams, err := s.MatchTeamsByTeams(ctx, []int{a.ID})
	require.NoError(t, err)
	assert.Len(t, byTeams, 2)

	player, err := s.CreatePlayer(ctx, model.NewPlayer{Player: model.Player{Name: "Cole Palmer", TeamID: model.Int(b.ID)}})
	require.NoError(t, err)
	_, err = s.CreatePlayerStat(ctx, model.PlayerStat{MatchID: m2, PlayerID: player.ID, Goals: model.Int(2), Rating: model.Float(8.7)})
	require.NoError(t, err)

	stats, err := s.PlayerStatsByMatches(ctx, matchIDs)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Cole Palmer", *stats[0].PlayerName)
	assert.Equal(t, model.Int(2), stats[0].Goals)
	assert.False(t, stats[0].Assists.Valid)

	recent, err := s.ListPlayerStats(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
	assert.Equal(t, "2024-02-01", *recent[0].MatchDate)
}

func TestEmptySetFiltersReturnEmptySlices(t *testing.T) {
	s := openMemDB(t)
	ctx := context.Background()

	ids, err := s.MatchIDsBySeasons(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	rows, err := s.MatchTeamsByTeams(ctx, []int{42})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestDeletedTeamLeavesResultsInPlace(t *testing.T) {
	s := openMemDB(t)
	ctx := context.Background()
	_, season, a, b := seedLeague(t, s)

	id, err := s.CreateMatch(ctx, model.NewMatch{SeasonID: season.ID, Date: "2024-01-01",
		A: model.MatchSide{TeamID: a.ID, Goals: 2}, B: model.MatchSide{TeamID: b.ID}})
	require.NoError(t, err)
	require.NoError(t, s.DeleteTeam(ctx, b.ID))

	rows, err := s.MatchTeamsByMatches(ctx, []int{id})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[1].TeamName)
	assert.Equal(t, model.Int(b.ID), rows[1].TeamID)
}

func TestInsertPositionsCountsAndErrors(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)

	added, err := s.InsertPositions(ctx, []model.Position{
		{Name: "CB", Category: "Defender"},
		{Name: "CB", Category: "Defender"},
		{Name: "LB", Category: "Defender"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added, "duplicate names in one batch count once")

	s.Close()
	added, err = s.InsertPositions(ctx, []model.Position{{Name: "RB", Category: "Defender"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert position RB")
	assert.Zero(t, added)
}
