package stats

import (
	"sort"

	"github.com/matchday/matchday-api/internal/model"
)

// Points awarded per result.
const (
	PointsWin  = 3
	PointsDraw = 1
)

// Standing is one team's row in a league table.
type Standing struct {
	TeamID       int    `json:"team_id"`
	TeamName     string `json:"team_name"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

// BuildTable computes standings from the participation rows of a league's
// matches. Incomplete matches are dropped, as is any match where a side has
// no team reference; neither aborts the table.
//
// Rows are ordered by points, goal difference, and goals scored, all
// descending, with team id ascending as the final tie-break.
func BuildTable(rows []model.MatchTeam) []Standing {
	index := make(map[int]*Standing)
	order := make([]*Standing, 0)

	entry := func(side model.MatchTeam) *Standing {
		if s, ok := index[side.TeamID.Int]; ok {
			return s
		}
		s := &Standing{TeamID: side.TeamID.Int, TeamName: model.NameOrUnknown(side.TeamName)}
		index[side.TeamID.Int] = s
		order = append(order, s)
		return s
	}

	for _, g := range CompletedMatches(rows) {
		a, b := g.Sides[0], g.Sides[1]
		if !a.TeamID.Valid || !b.TeamID.Valid {
			continue
		}
		ta, tb := entry(a), entry(b)
		ga, gb := a.Goals.OrZero(), b.Goals.OrZero()

		ta.Played++
		tb.Played++
		ta.GoalsFor += ga
		ta.GoalsAgainst += gb
		tb.GoalsFor += gb
		tb.GoalsAgainst += ga

		switch {
		case ga > gb:
			ta.Wins++
			ta.Points += PointsWin
			tb.Losses++
		case ga < gb:
			tb.Wins++
			tb.Points += PointsWin
			ta.Losses++
		default:
			ta.Draws++
			tb.Draws++
			ta.Points += PointsDraw
			tb.Points += PointsDraw
		}
	}

	table := make([]Standing, 0, len(order))
	for _, s := range order {
		s.GoalDiff = s.GoalsFor - s.GoalsAgainst
		table = append(table, *s)
	}

	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamID < b.TeamID
	})
	return table
}
