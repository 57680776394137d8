// Package model defines the rows shared by the store, the statistics core,
// and the HTTP layer. JSON tags match the public API's snake_case columns.
package model

import "strings"

// UnknownName is displayed for teams and players whose rows no longer exist.
const UnknownName = "Unknown"

// Result tags stored on match_teams rows.
const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultDraw = "draw"
)

// Role tags stored on match_teams rows.
const (
	RoleHome = "home"
	RoleAway = "away"
)

// --------------------------------------------------------------------------
// Reference entities
// --------------------------------------------------------------------------

type League struct {
	ID      int    `json:"league_id"`
	Name    string `json:"league_name"`
	Country string `json:"country"`
}

type Team struct {
	ID          int     `json:"team_id"`
	LeagueID    OptInt  `json:"league_id"`
	Name        string  `json:"team_name"`
	City        *string `json:"city"`
	Stadium     *string `json:"stadium"`
	FoundedYear OptInt  `json:"founded_year"`
	LeagueName  *string `json:"league_name,omitempty"`
}

type Position struct {
	ID       int    `json:"position_id"`
	Name     string `json:"position_name"`
	Category string `json:"position_category"`
}

type Player struct {
	ID                int     `json:"player_id"`
	Name              string  `json:"player_name"`
	DefaultPositionID OptInt  `json:"default_position_id"`
	TeamID            OptInt  `json:"team_id"`
	DateOfBirth       *string `json:"date_of_birth"`
	Nationality       *string `json:"nationality"`
	HeightCM          OptInt  `json:"height_cm"`
	Foot              *string `json:"foot"`
	PositionName      *string `json:"position_name,omitempty"`
}

type Season struct {
	ID        int    `json:"season_id"`
	LeagueID  int    `json:"league_id"`
	Year      string `json:"season_year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// --------------------------------------------------------------------------
// Match rows
// --------------------------------------------------------------------------

// Match carries the fixture details embedded in participation rows. Dates are
// kept as the store's text rendering; the statistics core parses them.
type Match struct {
	ID       int     `json:"match_id"`
	SeasonID OptInt  `json:"season_id"`
	Date     *string `json:"match_date"`
	Time     *string `json:"match_time"`
	Venue    *string `json:"venue"`
}

// MatchTeam is one team's side of one match.
type MatchTeam struct {
	MatchID    int      `json:"match_id"`
	TeamID     OptInt   `json:"team_id"`
	TeamName   *string  `json:"team_name"`
	Role       string   `json:"team_role"`
	Goals      OptInt   `json:"goals_scored"`
	Possession OptFloat `json:"possession_percentage"`
	Result     string   `json:"result"`
	Match      Match    `json:"matches"`
}

// PlayerStat is one player's counters for one match.
type PlayerStat struct {
	ID                 int      `json:"stat_id"`
	MatchID            int      `json:"match_id"`
	PlayerID           int      `json:"player_id"`
	PlayerName         *string  `json:"player_name,omitempty"`
	MatchDate          *string  `json:"match_date,omitempty"`
	Goals              OptInt   `json:"goals"`
	Assists            OptInt   `json:"assists"`
	ShotsOnTarget      OptInt   `json:"shots_on_target"`
	ShotsOffTarget     OptInt   `json:"shots_off_target"`
	KeyPasses          OptInt   `json:"key_passes"`
	TacklesWon         OptInt   `json:"tackles_won"`
	TacklesAttempted   OptInt   `json:"tackles_attempted"`
	Interceptions      OptInt   `json:"interceptions"`
	Clearances         OptInt   `json:"clearances"`
	FoulsCommitted     OptInt   `json:"fouls_committed"`
	FoulsWon           OptInt   `json:"fouls_won"`
	YellowCards        OptInt   `json:"yellow_cards"`
	RedCards           OptInt   `json:"red_cards"`
	PassCompletionRate OptFloat `json:"pass_completion_rate"`
	DribblesSuccessful OptInt   `json:"dribbles_successful"`
	DribblesAttempted  OptInt   `json:"dribbles_attempted"`
	Rating             OptFloat `json:"rating"`
}

// --------------------------------------------------------------------------
// Write-path inputs
// --------------------------------------------------------------------------

// MatchSide is one team's submitted line of a new match.
type MatchSide struct {
	TeamID     int
	Goals      int
	Role       string
	Possession OptFloat
}

// NewMatch is a fixture plus both participating sides.
type NewMatch struct {
	SeasonID int
	Date     string
	Time     *string
	Venue    *string
	A, B     MatchSide
}

// NewPlayer is a player row plus the optional season to add them to the
// team's roster for.
type NewPlayer struct {
	Player
	SeasonID OptInt
}

// ResultFor derives the stored result tag from one side's perspective.
func ResultFor(goalsFor, goalsAgainst int) string {
	switch {
	case goalsFor > goalsAgainst:
		return ResultWin
	case goalsFor < goalsAgainst:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// NormalizeRole lower-cases and trims a role tag, applying fallback when empty.
func NormalizeRole(role, fallback string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return fallback
	}
	return role
}

// NameOrUnknown resolves an optional display name.
func NameOrUnknown(name *string) string {
	if name == nil || *name == "" {
		return UnknownName
	}
	return *name
}
