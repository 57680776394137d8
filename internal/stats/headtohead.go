package stats

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/matchday/matchday-api/internal/model"
)

// RecentLimit is how many meetings a head-to-head summary lists.
const RecentLimit = 5

// ErrInvalidTeamPair is returned when the two team ids are missing,
// non-positive, or equal.
var ErrInvalidTeamPair = errors.New("teamA and teamB must be different valid team IDs")

// Meeting is one completed match between the two queried teams.
type Meeting struct {
	MatchID    int     `json:"match_id"`
	MatchDate  *string `json:"match_date"`
	MatchTime  *string `json:"match_time"`
	Venue      *string `json:"venue"`
	TeamAGoals int     `json:"teamA_goals"`
	TeamBGoals int     `json:"teamB_goals"`
}

// HeadToHeadSummary is the win/draw/loss record between two teams.
type HeadToHeadSummary struct {
	TeamA         int       `json:"teamA"`
	TeamB         int       `json:"teamB"`
	TotalMatches  int       `json:"totalMatches"`
	TeamAWins     int       `json:"teamAWins"`
	TeamBWins     int       `json:"teamBWins"`
	Draws         int       `json:"draws"`
	TeamAWinPct   int       `json:"teamAWinPct"`
	TeamBWinPct   int       `json:"teamBWinPct"`
	DrawPct       int       `json:"drawPct"`
	RecentMatches []Meeting `json:"recentMatches"`
}

// ValidateTeamPair checks the ids before any rows are fetched.
func ValidateTeamPair(teamA, teamB int) error {
	if teamA <= 0 || teamB <= 0 || teamA == teamB {
		return ErrInvalidTeamPair
	}
	return nil
}

// HeadToHead summarises every completed meeting of teamA and teamB found in
// rows. The rows are expected to be filtered to the two teams already; any
// complete match that does not feature both of them is ignored.
//
// Results are recomputed from goals rather than the stored result tags.
func HeadToHead(teamA, teamB int, rows []model.MatchTeam) (HeadToHeadSummary, error) {
	if err := ValidateTeamPair(teamA, teamB); err != nil {
		return HeadToHeadSummary{}, err
	}

	meetings := make([]Meeting, 0)
	for _, g := range CompletedMatches(rows) {
		a, okA := g.Side(teamA)
		b, okB := g.Side(teamB)
		if !okA || !okB {
			continue
		}
		meetings = append(meetings, Meeting{
			MatchID:    g.MatchID,
			MatchDate:  g.Match.Date,
			MatchTime:  g.Match.Time,
			Venue:      g.Match.Venue,
			TeamAGoals: a.Goals.OrZero(),
			TeamBGoals: b.Goals.OrZero(),
		})
	}

	// Most recent first; equal dates keep grouping order.
	sort.SliceStable(meetings, func(i, j int) bool {
		return matchDate(meetings[i].MatchDate).After(matchDate(meetings[j].MatchDate))
	})

	summary := HeadToHeadSummary{
		TeamA:        teamA,
		TeamB:        teamB,
		TotalMatches: len(meetings),
	}
	for _, m := range meetings {
		switch {
		case m.TeamAGoals > m.TeamBGoals:
			summary.TeamAWins++
		case m.TeamAGoals < m.TeamBGoals:
			summary.TeamBWins++
		default:
			summary.Draws++
		}
	}
	summary.TeamAWinPct = percent(summary.TeamAWins, summary.TotalMatches)
	summary.TeamBWinPct = percent(summary.TeamBWins, summary.TotalMatches)
	summary.DrawPct = percent(summary.Draws, summary.TotalMatches)

	if len(meetings) > RecentLimit {
		meetings = meetings[:RecentLimit]
	}
	summary.RecentMatches = meetings
	return summary, nil
}

// percent rounds count/total to a whole percentage; 0 when total is 0.
func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

var epoch = time.Unix(0, 0).UTC()

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07",
}

// matchDate parses a stored match date. Missing or unparseable dates sort as
// the Unix epoch.
func matchDate(s *string) time.Time {
	if s == nil || *s == "" {
		return epoch
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return t
		}
	}
	return epoch
}
