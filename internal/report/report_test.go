package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matchday/matchday-api/internal/stats"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, []stats.Standing{
		{TeamID: 1, TeamName: "Arsenal", Played: 2, Wins: 2, GoalsFor: 5, GoalsAgainst: 1, GoalDiff: 4, Points: 6},
		{TeamID: 2, TeamName: "Chelsea", Played: 2, Losses: 2, GoalsFor: 1, GoalsAgainst: 5, GoalDiff: -4},
	})

	out := buf.String()
	assert.Contains(t, out, "Arsenal")
	assert.Contains(t, out, "Chelsea")
	assert.Contains(t, out, "+4")
	assert.Contains(t, out, "-4")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Arsenal")), bytes.Index(buf.Bytes(), []byte("Chelsea")))
}

func TestPrintTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil)
	assert.Equal(t, "No completed matches.\n", buf.String())
}

func TestPrintLeaders(t *testing.T) {
	var buf bytes.Buffer
	PrintLeaders(&buf, stats.MetricGoals, []stats.Leader{
		{PlayerID: 9, PlayerName: "Erling Haaland", Metric: stats.MetricGoals, Total: 27},
	})
	assert.Contains(t, buf.String(), "Erling Haaland")
	assert.Contains(t, buf.String(), "27")

	buf.Reset()
	PrintLeaders(&buf, stats.MetricAssists, nil)
	assert.Equal(t, "No assists recorded.\n", buf.String())
}

func TestPrintHeadToHead(t *testing.T) {
	date := "2024-03-01"
	var buf bytes.Buffer
	PrintHeadToHead(&buf, "Arsenal", "Chelsea", stats.HeadToHeadSummary{
		TeamA: 1, TeamB: 2, TotalMatches: 1, TeamAWins: 1, TeamAWinPct: 100,
		RecentMatches: []stats.Meeting{{MatchID: 7, MatchDate: &date, TeamAGoals: 3, TeamBGoals: 1}},
	})

	out := buf.String()
	assert.Contains(t, out, "Arsenal wins: 1 (100%)")
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "3-1")
}
