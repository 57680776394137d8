// Package stats derives standings and summaries from raw match rows.
//
// Everything here is a pure function of its inputs: callers fetch the rows,
// hand them over, and serialize whatever comes back. Nothing is cached and no
// state survives a call, so concurrent use needs no coordination.
//
// A match only counts once it is complete, meaning exactly two participation
// rows reference it. Incomplete matches are dropped silently by every
// summariser in this package.
package stats

import "github.com/matchday/matchday-api/internal/model"

// MatchGroup is every participation row recorded for one match.
type MatchGroup struct {
	MatchID int
	Match   model.Match
	Sides   []model.MatchTeam
}

// Complete reports whether exactly two sides were recorded.
func (g MatchGroup) Complete() bool {
	return len(g.Sides) == 2
}

// Side returns the row for teamID, if present.
func (g MatchGroup) Side(teamID int) (model.MatchTeam, bool) {
	for _, s := range g.Sides {
		if s.TeamID.Valid && s.TeamID.Int == teamID {
			return s, true
		}
	}
	return model.MatchTeam{}, false
}

// GroupByMatch groups participation rows by match id. Groups come back in
// order of each match id's first appearance and sides keep arrival order, so
// the output order is fully determined by the input order.
//
// The embedded match details are taken from the first row of each group.
func GroupByMatch(rows []model.MatchTeam) []MatchGroup {
	index := make(map[int]int, len(rows))
	groups := make([]MatchGroup, 0, len(rows)/2+1)
	for _, row := range rows {
		i, ok := index[row.MatchID]
		if !ok {
			match := row.Match
			match.ID = row.MatchID
			groups = append(groups, MatchGroup{MatchID: row.MatchID, Match: match})
			i = len(groups) - 1
			index[row.MatchID] = i
		}
		groups[i].Sides = append(groups[i].Sides, row)
	}
	return groups
}

// CompletedMatches is GroupByMatch restricted to complete groups.
func CompletedMatches(rows []model.MatchTeam) []MatchGroup {
	groups := GroupByMatch(rows)
	completed := groups[:0]
	for _, g := range groups {
		if g.Complete() {
			completed = append(completed, g)
		}
	}
	return completed
}

// CompletedMatchIDs lists the ids of the complete matches in rows, in first
// appearance order. Leaderboards use it to scope player stats to the same
// matches the table counts.
func CompletedMatchIDs(rows []model.MatchTeam) []int {
	completed := CompletedMatches(rows)
	ids := make([]int, 0, len(completed))
	for _, g := range completed {
		ids = append(ids, g.MatchID)
	}
	return ids
}
