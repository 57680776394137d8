package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchday/matchday-api/internal/db"
	"github.com/matchday/matchday-api/internal/model"
	"github.com/matchday/matchday-api/internal/stats"
)

// fakeSource serves canned rows and counts calls.
type fakeSource struct {
	seasons    []int
	matches    []int
	matchTeams []model.MatchTeam
	playerRows []model.PlayerStat
	err        error
	calls      int

	statMatchIDs []int
}

func (f *fakeSource) SeasonIDsByLeague(context.Context, int) ([]int, error) {
	f.calls++
	return f.seasons, f.err
}

func (f *fakeSource) MatchIDsBySeasons(context.Context, []int) ([]int, error) {
	f.calls++
	return f.matches, f.err
}

func (f *fakeSource) MatchTeamsByMatches(context.Context, []int) ([]model.MatchTeam, error) {
	f.calls++
	return f.matchTeams, f.err
}

func (f *fakeSource) MatchTeamsByTeams(context.Context, []int) ([]model.MatchTeam, error) {
	f.calls++
	return f.matchTeams, f.err
}

func (f *fakeSource) PlayerStatsByMatches(_ context.Context, matchIDs []int) ([]model.PlayerStat, error) {
	f.calls++
	f.statMatchIDs = matchIDs
	return f.playerRows, f.err
}

func TestHeadToHeadRejectsInvalidPairWithoutQuerying(t *testing.T) {
	src := &fakeSource{}
	_, err := New(src).HeadToHead(context.Background(), 5, 5)
	assert.ErrorIs(t, err, stats.ErrInvalidTeamPair)
	assert.Zero(t, src.calls)
}

func TestLeagueWithoutSeasonsIsEmpty(t *testing.T) {
	src := &fakeSource{}
	svc := New(src)

	table, err := svc.Table(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, table)

	scorers, err := svc.TopScorers(context.Background(), 1)
	require.NoError(t, err)
	out, err := json.Marshal(scorers)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(out))
	assert.Equal(t, 2, src.calls, "only the seasons lookup runs")
}

func TestSeasonsWithoutMatchesIsEmpty(t *testing.T) {
	src := &fakeSource{seasons: []int{1, 2}, matches: []int{}}
	table, err := New(src).Table(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, table)
	assert.Empty(t, table)
	assert.Equal(t, 2, src.calls)
}

func TestLeadersSkipIncompleteMatches(t *testing.T) {
	striker := "Striker"
	src := &fakeSource{
		seasons: []int{1},
		matches: []int{10},
		matchTeams: []model.MatchTeam{
			{MatchID: 10, TeamID: model.Int(1), Goals: model.Int(2)},
		},
		playerRows: []model.PlayerStat{
			{MatchID: 10, PlayerID: 9, PlayerName: &striker, Goals: model.Int(2)},
		},
	}
	svc := New(src)

	table, err := svc.Table(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, table)

	scorers, err := svc.TopScorers(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, scorers)
	assert.Nil(t, src.statMatchIDs, "no stat lookup without a complete match")
}

func TestLeadersScopedToCompleteMatches(t *testing.T) {
	src := &fakeSource{
		seasons: []int{1},
		matches: []int{10, 11},
		matchTeams: []model.MatchTeam{
			{MatchID: 11, TeamID: model.Int(1), Goals: model.Int(1)},
			{MatchID: 10, TeamID: model.Int(1), Goals: model.Int(0)},
			{MatchID: 10, TeamID: model.Int(2), Goals: model.Int(3)},
		},
		playerRows: []model.PlayerStat{
			{MatchID: 10, PlayerID: 4, Goals: model.Int(3)},
		},
	}

	scorers, err := New(src).TopScorers(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int{10}, src.statMatchIDs)
	require.Len(t, scorers, 1)
	assert.Equal(t, 3, scorers[0].Total)
}

func TestFetchErrorsPropagate(t *testing.T) {
	boom := errors.New("connection reset")
	src := &fakeSource{err: boom}
	svc := New(src)

	_, err := svc.Table(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	_, err = svc.TopAssists(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	_, err = svc.HeadToHead(context.Background(), 1, 2)
	assert.ErrorIs(t, err, boom)
}

// TestAgainstSQLite drives the whole lookup chain through a real store.
func TestAgainstSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(store.Close)

	league, err := store.CreateLeague(ctx, model.League{Name: "Serie A", Country: "Italy"})
	require.NoError(t, err)
	other, err := store.CreateLeague(ctx, model.League{Name: "Ligue 1", Country: "France"})
	require.NoError(t, err)
	season, err := store.CreateSeason(ctx, model.Season{LeagueID: league.ID, Year: "2023", StartDate: "2023-08-01", EndDate: "2024-05-31"})
	require.NoError(t, err)

	inter, err := store.CreateTeam(ctx, model.Team{Name: "Inter"})
	require.NoError(t, err)
	milan, err := store.CreateTeam(ctx, model.Team{Name: "Milan"})
	require.NoError(t, err)

	m1, err := store.CreateMatch(ctx, model.NewMatch{SeasonID: season.ID, Date: "2023-09-16",
		A: model.MatchSide{TeamID: inter.ID, Goals: 5}, B: model.MatchSide{TeamID: milan.ID, Goals: 1}})
	require.NoError(t, err)
	_, err = store.CreateMatch(ctx, model.NewMatch{SeasonID: season.ID, Date: "2024-04-22",
		A: model.MatchSide{TeamID: milan.ID, Goals: 1}, B: model.MatchSide{TeamID: inter.ID, Goals: 2}})
	require.NoError(t, err)

	striker, err := store.CreatePlayer(ctx, model.NewPlayer{Player: model.Player{Name: "Lautaro Martinez"}})
	require.NoError(t, err)
	_, err = store.CreatePlayerStat(ctx, model.PlayerStat{MatchID: m1, PlayerID: striker.ID, Goals: model.Int(2), Assists: model.Int(1)})
	require.NoError(t, err)

	svc := New(store)

	table, err := svc.Table(ctx, league.ID)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "Inter", table[0].TeamName)
	assert.Equal(t, 6, table[0].Points)
	assert.Equal(t, 7, table[0].GoalsFor)

	h2h, err := svc.HeadToHead(ctx, inter.ID, milan.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, h2h.TotalMatches)
	assert.Equal(t, 2, h2h.TeamAWins)
	assert.Equal(t, 100, h2h.TeamAWinPct)
	assert.Equal(t, "2024-04-22", *h2h.RecentMatches[0].MatchDate)

	scorers, err := svc.TopScorers(ctx, league.ID)
	require.NoError(t, err)
	require.Len(t, scorers, 1)
	assert.Equal(t, 2, scorers[0].Total)

	empty, err := svc.Table(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
