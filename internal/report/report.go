// Package report renders aggregates as terminal tables for the CLI.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/matchday/matchday-api/internal/stats"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintTable writes a league table with its positions.
func PrintTable(w io.Writer, table []stats.Standing) {
	if len(table) == 0 {
		fmt.Fprintln(w, "No completed matches.")
		return
	}

	t := newTable(w)
	t.Header("#", "TEAM", "P", "W", "D", "L", "GF", "GA", "GD", "PTS")
	for i, s := range table {
		t.Append(
			strconv.Itoa(i+1),
			s.TeamName,
			strconv.Itoa(s.Played),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Draws),
			strconv.Itoa(s.Losses),
			strconv.Itoa(s.GoalsFor),
			strconv.Itoa(s.GoalsAgainst),
			fmt.Sprintf("%+d", s.GoalDiff),
			strconv.Itoa(s.Points),
		)
	}
	t.Render()
}

// PrintLeaders writes a leaderboard headed by the metric name.
func PrintLeaders(w io.Writer, metric stats.Metric, leaders []stats.Leader) {
	if len(leaders) == 0 {
		fmt.Fprintf(w, "No %s recorded.\n", metric)
		return
	}

	t := newTable(w)
	t.Header("#", "PLAYER", "ID", metric.TotalKey())
	for i, l := range leaders {
		t.Append(
			strconv.Itoa(i+1),
			l.PlayerName,
			strconv.Itoa(l.PlayerID),
			strconv.Itoa(l.Total),
		)
	}
	t.Render()
}

// PrintHeadToHead writes the summary line followed by the recent meetings.
func PrintHeadToHead(w io.Writer, nameA, nameB string, s stats.HeadToHeadSummary) {
	fmt.Fprintf(w, "\n%s vs %s  |  Played: %d  |  %s wins: %d (%d%%)  |  %s wins: %d (%d%%)  |  Draws: %d (%d%%)\n\n",
		nameA, nameB, s.TotalMatches,
		nameA, s.TeamAWins, s.TeamAWinPct,
		nameB, s.TeamBWins, s.TeamBWinPct,
		s.Draws, s.DrawPct)

	if len(s.RecentMatches) == 0 {
		fmt.Fprintln(w, "No meetings recorded.")
		return
	}

	t := newTable(w)
	t.Header("MATCH", "DATE", "VENUE", "SCORE")
	for _, m := range s.RecentMatches {
		t.Append(
			strconv.Itoa(m.MatchID),
			orDash(m.MatchDate),
			orDash(m.Venue),
			fmt.Sprintf("%d-%d", m.TeamAGoals, m.TeamBGoals),
		)
	}
	t.Render()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
