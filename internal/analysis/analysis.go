// Package analysis runs the league-scoped and team-pair lookups against the
// store and hands the rows to the stats package. HTTP handlers and the CLI
// share it so both see identical aggregates.
package analysis

import (
	"context"
	"fmt"

	"github.com/matchday/matchday-api/internal/model"
	"github.com/matchday/matchday-api/internal/stats"
)

// Source is the subset of the store aggregation reads from.
type Source interface {
	SeasonIDsByLeague(ctx context.Context, leagueID int) ([]int, error)
	MatchIDsBySeasons(ctx context.Context, seasonIDs []int) ([]int, error)
	MatchTeamsByMatches(ctx context.Context, matchIDs []int) ([]model.MatchTeam, error)
	MatchTeamsByTeams(ctx context.Context, teamIDs []int) ([]model.MatchTeam, error)
	PlayerStatsByMatches(ctx context.Context, matchIDs []int) ([]model.PlayerStat, error)
}

// Service computes aggregates from a Source. It holds no state between calls.
type Service struct {
	src Source
}

func New(src Source) *Service {
	return &Service{src: src}
}

// HeadToHead summarises every completed meeting of two teams. An invalid pair
// is rejected with stats.ErrInvalidTeamPair before the store is touched.
func (s *Service) HeadToHead(ctx context.Context, teamA, teamB int) (stats.HeadToHeadSummary, error) {
	if err := stats.ValidateTeamPair(teamA, teamB); err != nil {
		return stats.HeadToHeadSummary{}, err
	}
	rows, err := s.src.MatchTeamsByTeams(ctx, []int{teamA, teamB})
	if err != nil {
		return stats.HeadToHeadSummary{}, fmt.Errorf("head-to-head rows: %w", err)
	}
	return stats.HeadToHead(teamA, teamB, rows)
}

// Table builds the all-time table across every season of the league.
func (s *Service) Table(ctx context.Context, leagueID int) ([]stats.Standing, error) {
	matchIDs, err := s.leagueMatches(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if len(matchIDs) == 0 {
		return []stats.Standing{}, nil
	}
	rows, err := s.src.MatchTeamsByMatches(ctx, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("league %d match teams: %w", leagueID, err)
	}
	return stats.BuildTable(rows), nil
}

// TopScorers is Leaders for goals.
func (s *Service) TopScorers(ctx context.Context, leagueID int) ([]stats.Leader, error) {
	return s.Leaders(ctx, leagueID, stats.MetricGoals)
}

// TopAssists is Leaders for assists.
func (s *Service) TopAssists(ctx context.Context, leagueID int) ([]stats.Leader, error) {
	return s.Leaders(ctx, leagueID, stats.MetricAssists)
}

// Leaders ranks the league's players by the summed metric. Only stats from
// complete matches count, so the board covers the same matches as Table.
func (s *Service) Leaders(ctx context.Context, leagueID int, metric stats.Metric) ([]stats.Leader, error) {
	matchIDs, err := s.leagueMatches(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if len(matchIDs) == 0 {
		return []stats.Leader{}, nil
	}
	sides, err := s.src.MatchTeamsByMatches(ctx, matchIDs)
	if err != nil {
		return nil, fmt.Errorf("league %d match teams: %w", leagueID, err)
	}
	completed := stats.CompletedMatchIDs(sides)
	if len(completed) == 0 {
		return []stats.Leader{}, nil
	}
	rows, err := s.src.PlayerStatsByMatches(ctx, completed)
	if err != nil {
		return nil, fmt.Errorf("league %d player stats: %w", leagueID, err)
	}
	return stats.Leaderboard(rows, metric), nil
}

// leagueMatches resolves league -> seasons -> matches.
func (s *Service) leagueMatches(ctx context.Context, leagueID int) ([]int, error) {
	seasonIDs, err := s.src.SeasonIDsByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("league %d seasons: %w", leagueID, err)
	}
	if len(seasonIDs) == 0 {
		return nil, nil
	}
	matchIDs, err := s.src.MatchIDsBySeasons(ctx, seasonIDs)
	if err != nil {
		return nil, fmt.Errorf("league %d matches: %w", leagueID, err)
	}
	return matchIDs, nil
}
