package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchday/matchday-api/internal/api/respond"
	"github.com/matchday/matchday-api/internal/config"
	"github.com/matchday/matchday-api/internal/db"
	"github.com/matchday/matchday-api/internal/seed"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerAt(t, ":memory:")
}

// newTestServerAt serves a SQLite store at path; a file path lets a test
// reach the same database through a second connection.
func newTestServerAt(t *testing.T, path string) *httptest.Server {
	t.Helper()
	store, err := db.OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	_, err = seed.Positions(context.Background(), store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	cfg := &config.Config{
		DatabaseURL:      "sqlite://:memory:",
		CORSAllowOrigins: []string{"http://localhost:3000"},
		RateLimitWindow:  time.Minute,
	}
	srv := httptest.NewServer(NewRouter(store, cfg))
	t.Cleanup(srv.Close)
	return srv
}

// call sends a request and decodes a JSON response into out when given.
func call(t *testing.T, srv *httptest.Server, method, path, body string, out any) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func itoa(n int) string { return strconv.Itoa(n) }

type idResponse struct {
	LeagueID int `json:"league_id"`
	TeamID   int `json:"team_id"`
	SeasonID int `json:"season_id"`
	PlayerID int `json:"player_id"`
	MatchID  int `json:"match_id"`
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]any
	resp := call(t, srv, http.MethodGet, "/health/db", "", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "connected", body["database"])
	assert.NotEmpty(t, resp.Header.Get("X-Process-Time"))
}

func TestEmptyLeagueAggregatesAreEmptyArrays(t *testing.T) {
	srv := newTestServer(t)

	var league idResponse
	resp := call(t, srv, http.MethodPost, "/api/leagues", `{"league_name":"Eredivisie","country":"Netherlands"}`, &league)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, path := range []string{"table", "top-scorers", "top-assists", "leaders?metric=red_cards"} {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/leagues/"+itoa(league.LeagueID)+"/"+path, nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		var raw json.RawMessage
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.JSONEq(t, `[]`, string(raw), path)
	}
}

func TestFullMatchdayFlow(t *testing.T) {
	srv := newTestServer(t)

	var league, season, arsenal, chelsea, player idResponse
	call(t, srv, http.MethodPost, "/api/leagues", `{"league_name":"Premier League","country":"England"}`, &league)
	lid := itoa(league.LeagueID)
	resp := call(t, srv, http.MethodPost, "/api/seasons",
		`{"league_id":`+lid+`,"season_year":"2023/2024","start_date":"2023-08-11","end_date":"2024-05-19"}`, &season)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	call(t, srv, http.MethodPost, "/api/teams", `{"league_id":"`+lid+`","team_name":"Arsenal"}`, &arsenal)
	call(t, srv, http.MethodPost, "/api/teams", `{"league_id":`+lid+`,"team_name":"Chelsea"}`, &chelsea)
	require.Positive(t, arsenal.TeamID)
	require.Positive(t, chelsea.TeamID)

	// Legacy position_id is honoured when default_position_id is absent.
	resp = call(t, srv, http.MethodPost, "/api/players",
		`{"player_name":"Bukayo Saka","position_id":1,"team_id":`+itoa(arsenal.TeamID)+`,"season_id":`+itoa(season.SeasonID)+`}`, &player)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var match idResponse
	resp = call(t, srv, http.MethodPost, "/api/matches",
		`{"season_id":`+itoa(season.SeasonID)+`,"match_date":"2024-04-20","teamA_id":`+itoa(arsenal.TeamID)+
			`,"teamB_id":`+itoa(chelsea.TeamID)+`,"teamA_goals":"5","teamB_goals":0,"teamA_role":" HOME "}`, &match)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Positive(t, match.MatchID)

	resp = call(t, srv, http.MethodPost, "/api/player-stats",
		`{"match_id":`+itoa(match.MatchID)+`,"player_id":`+itoa(player.PlayerID)+`,"goals":2,"assists":"1","rating":8.9}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var table []map[string]any
	call(t, srv, http.MethodGet, "/api/leagues/"+lid+"/table", "", &table)
	require.Len(t, table, 2)
	assert.Equal(t, "Arsenal", table[0]["team_name"])
	assert.EqualValues(t, 3, table[0]["points"])
	assert.EqualValues(t, 5, table[0]["goal_diff"])

	var scorers []map[string]any
	call(t, srv, http.MethodGet, "/api/leagues/"+lid+"/top-scorers", "", &scorers)
	require.Len(t, scorers, 1)
	assert.Equal(t, "Bukayo Saka", scorers[0]["player_name"])
	assert.EqualValues(t, 2, scorers[0]["total_goals"])

	var assists []map[string]any
	call(t, srv, http.MethodGet, "/api/leagues/"+lid+"/top-assists", "", &assists)
	require.Len(t, assists, 1)
	assert.EqualValues(t, 1, assists[0]["total_assists"])

	var h2h map[string]any
	resp = call(t, srv, http.MethodGet,
		"/api/head-to-head?teamA="+itoa(arsenal.TeamID)+"&teamB="+itoa(chelsea.TeamID), "", &h2h)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, h2h["totalMatches"])
	assert.EqualValues(t, 100, h2h["teamAWinPct"])
	recent := h2h["recentMatches"].([]any)
	require.Len(t, recent, 1)
	assert.EqualValues(t, 5, recent[0].(map[string]any)["teamA_goals"])

	var recentStats []map[string]any
	call(t, srv, http.MethodGet, "/api/player-stats", "", &recentStats)
	require.Len(t, recentStats, 1)
	assert.Equal(t, "2024-04-20", recentStats[0]["match_date"])
}

func TestOneSidedMatchCountsNowhere(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matchday.db")
	srv := newTestServerAt(t, path)

	var league, season, home, away, player, match idResponse
	call(t, srv, http.MethodPost, "/api/leagues", `{"league_name":"Eredivisie","country":"Netherlands"}`, &league)
	lid := itoa(league.LeagueID)
	call(t, srv, http.MethodPost, "/api/seasons",
		`{"league_id":`+lid+`,"season_year":"2024","start_date":"2024-08-09","end_date":"2025-05-18"}`, &season)
	call(t, srv, http.MethodPost, "/api/teams", `{"league_id":`+lid+`,"team_name":"Ajax"}`, &home)
	call(t, srv, http.MethodPost, "/api/teams", `{"league_id":`+lid+`,"team_name":"PSV"}`, &away)
	call(t, srv, http.MethodPost, "/api/players", `{"player_name":"Brian Brobbey","default_position_id":1,"team_id":`+itoa(home.TeamID)+`}`, &player)
	resp := call(t, srv, http.MethodPost, "/api/matches",
		`{"season_id":`+itoa(season.SeasonID)+`,"teamA_id":`+itoa(home.TeamID)+
			`,"teamB_id":`+itoa(away.TeamID)+`,"teamA_goals":2,"teamB_goals":0}`, &match)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = call(t, srv, http.MethodPost, "/api/player-stats",
		`{"match_id":`+itoa(match.MatchID)+`,"player_id":`+itoa(player.PlayerID)+`,"goals":2,"assists":1}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Drop the away side so only one participation row remains.
	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer raw.Close()
	_, err = raw.Exec("DELETE FROM match_teams WHERE match_id = ? AND team_id = ?", match.MatchID, away.TeamID)
	require.NoError(t, err)

	for _, route := range []string{"table", "top-scorers", "top-assists"} {
		var body json.RawMessage
		resp := call(t, srv, http.MethodGet, "/api/leagues/"+lid+"/"+route, "", &body)
		assert.Equal(t, http.StatusOK, resp.StatusCode, route)
		assert.JSONEq(t, `[]`, string(body), route)
	}
}

func TestHeadToHeadRejectsInvalidPairs(t *testing.T) {
	srv := newTestServer(t)

	for _, q := range []string{"teamA=3&teamB=3", "teamA=abc&teamB=2", "teamA=1", "teamA=-1&teamB=2", ""} {
		var body respond.ErrorResponse
		resp := call(t, srv, http.MethodGet, "/api/head-to-head?"+q, "", &body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, "teamA and teamB must be different valid team IDs", body.Error.Message, q)
	}
}

func TestCreateMatchValidation(t *testing.T) {
	srv := newTestServer(t)

	var body respond.ErrorResponse
	resp := call(t, srv, http.MethodPost, "/api/matches",
		`{"season_id":1,"match_date":"2024-01-01","teamA_id":4,"teamB_id":4}`, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, respond.CodeInvalidTeams, body.Error.Code)

	resp = call(t, srv, http.MethodPost, "/api/matches", `{"match_date":"2024-01-01","teamA_id":1,"teamB_id":2}`, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, respond.CodeValidationFailed, body.Error.Code)

	resp = call(t, srv, http.MethodPost, "/api/matches", `not json`, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, respond.CodeInvalidBody, body.Error.Code)
}

func TestCreatePlayerRequiresPosition(t *testing.T) {
	srv := newTestServer(t)

	var body respond.ErrorResponse
	resp := call(t, srv, http.MethodPost, "/api/players", `{"player_name":"Nobody","team_id":1}`, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, respond.CodeValidationFailed, body.Error.Code)
}

func TestDeleteMissingIs404(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/leagues/9", "/api/teams/9", "/api/players/9", "/api/seasons/9"} {
		var body respond.ErrorResponse
		resp := call(t, srv, http.MethodDelete, path, "", &body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, respond.CodeNotFound, body.Error.Code, path)
	}

	var body respond.ErrorResponse
	resp := call(t, srv, http.MethodDelete, "/api/teams/abc", "", &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, respond.CodeInvalidID, body.Error.Code)
}

func TestDeleteExistingLeague(t *testing.T) {
	srv := newTestServer(t)

	var league idResponse
	call(t, srv, http.MethodPost, "/api/leagues", `{"league_name":"MLS","country":"USA"}`, &league)

	var body map[string]string
	resp := call(t, srv, http.MethodDelete, "/api/leagues/"+itoa(league.LeagueID), "", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "League deleted", body["message"])
}

func TestAggregateETagRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	resp := call(t, srv, http.MethodGet, "/api/leagues/1/table", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/leagues/1/table", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp2.StatusCode)
}

func TestLeadersRejectsUnknownMetric(t *testing.T) {
	srv := newTestServer(t)

	var body respond.ErrorResponse
	resp := call(t, srv, http.MethodGet, "/api/leagues/1/leaders?metric=xg", "", &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, respond.CodeInvalidMetric, body.Error.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	call(t, srv, http.MethodGet, "/health", "", nil)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	h := RateLimitMiddleware(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}
