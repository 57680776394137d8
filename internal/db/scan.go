package db

import (
	"fmt"

	"github.com/matchday/matchday-api/internal/model"
)

// scanner is satisfied by pgx.Row(s) and *sql.Row(s).
type scanner interface {
	Scan(dest ...any) error
}

// Column lists are shared by both backends so the scan helpers below line up
// with either dialect's SELECT.

func scanLeague(s scanner) (model.League, error) {
	var l model.League
	err := s.Scan(&l.ID, &l.Name, &l.Country)
	return l, err
}

func scanTeam(s scanner) (model.Team, error) {
	var t model.Team
	err := s.Scan(&t.ID, &t.LeagueID, &t.Name, &t.City, &t.Stadium, &t.FoundedYear, &t.LeagueName)
	return t, err
}

func scanPosition(s scanner) (model.Position, error) {
	var p model.Position
	err := s.Scan(&p.ID, &p.Name, &p.Category)
	return p, err
}

func scanPlayer(s scanner) (model.Player, error) {
	var p model.Player
	err := s.Scan(&p.ID, &p.Name, &p.DefaultPositionID, &p.TeamID,
		&p.DateOfBirth, &p.Nationality, &p.HeightCM, &p.Foot, &p.PositionName)
	return p, err
}

func scanSeason(s scanner) (model.Season, error) {
	var se model.Season
	err := s.Scan(&se.ID, &se.LeagueID, &se.Year, &se.StartDate, &se.EndDate)
	return se, err
}

func scanInt(s scanner) (int, error) {
	var n int
	err := s.Scan(&n)
	return n, err
}

// match_id, team_id, team_name, team_role, goals_scored,
// possession_percentage, result, season_id, match_date, match_time, venue
func scanMatchTeam(s scanner) (model.MatchTeam, error) {
	var mt model.MatchTeam
	var role, result *string
	err := s.Scan(&mt.MatchID, &mt.TeamID, &mt.TeamName, &role, &mt.Goals,
		&mt.Possession, &result, &mt.Match.SeasonID, &mt.Match.Date, &mt.Match.Time, &mt.Match.Venue)
	if err != nil {
		return mt, err
	}
	mt.Match.ID = mt.MatchID
	if role != nil {
		mt.Role = *role
	}
	if result != nil {
		mt.Result = *result
	}
	return mt, nil
}

// stat_id, match_id, player_id, player_name, match_date, then the counters in
// playerStatColumns order.
func scanPlayerStat(s scanner) (model.PlayerStat, error) {
	var ps model.PlayerStat
	err := s.Scan(&ps.ID, &ps.MatchID, &ps.PlayerID, &ps.PlayerName, &ps.MatchDate,
		&ps.Goals, &ps.Assists, &ps.ShotsOnTarget, &ps.ShotsOffTarget, &ps.KeyPasses,
		&ps.TacklesWon, &ps.TacklesAttempted, &ps.Interceptions, &ps.Clearances,
		&ps.FoulsCommitted, &ps.FoulsWon, &ps.YellowCards, &ps.RedCards,
		&ps.PassCompletionRate, &ps.DribblesSuccessful, &ps.DribblesAttempted, &ps.Rating)
	return ps, err
}

// playerStatColumns are the insertable counters, in scan order.
const playerStatColumns = `goals, assists, shots_on_target, shots_off_target, key_passes,
	tackles_won, tackles_attempted, interceptions, clearances,
	fouls_committed, fouls_won, yellow_cards, red_cards,
	pass_completion_rate, dribbles_successful, dribbles_attempted, rating`

// playerStatColumnsQualified is playerStatColumns against the ps alias.
const playerStatColumnsQualified = `ps.goals, ps.assists, ps.shots_on_target, ps.shots_off_target, ps.key_passes,
	ps.tackles_won, ps.tackles_attempted, ps.interceptions, ps.clearances,
	ps.fouls_committed, ps.fouls_won, ps.yellow_cards, ps.red_cards,
	ps.pass_completion_rate, ps.dribbles_successful, ps.dribbles_attempted, ps.rating`

func playerStatArgs(ps model.PlayerStat) []any {
	return []any{
		ps.MatchID, ps.PlayerID,
		ps.Goals, ps.Assists, ps.ShotsOnTarget, ps.ShotsOffTarget, ps.KeyPasses,
		ps.TacklesWon, ps.TacklesAttempted, ps.Interceptions, ps.Clearances,
		ps.FoulsCommitted, ps.FoulsWon, ps.YellowCards, ps.RedCards,
		ps.PassCompletionRate, ps.DribblesSuccessful, ps.DribblesAttempted, ps.Rating,
	}
}

// collect drains a row iterator through scan.
func collect[T any](next func() bool, s scanner, scan func(scanner) (T, error), errFn func() error, what string) ([]T, error) {
	out := make([]T, 0)
	for next() {
		v, err := scan(s)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		out = append(out, v)
	}
	if err := errFn(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}
	return out, nil
}
