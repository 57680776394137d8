package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/matchday/matchday-api/internal/model"
)

// LeaderboardLimit caps every leaderboard.
const LeaderboardLimit = 10

// ErrUnknownMetric is returned by ParseMetric for unsupported stat names.
var ErrUnknownMetric = errors.New("unknown leaderboard metric")

// Metric names a summable player_stats counter.
type Metric string

const (
	MetricGoals         Metric = "goals"
	MetricAssists       Metric = "assists"
	MetricShotsOnTarget Metric = "shots_on_target"
	MetricKeyPasses     Metric = "key_passes"
	MetricYellowCards   Metric = "yellow_cards"
	MetricRedCards      Metric = "red_cards"
)

var metricFields = map[Metric]func(model.PlayerStat) model.OptInt{
	MetricGoals:         func(s model.PlayerStat) model.OptInt { return s.Goals },
	MetricAssists:       func(s model.PlayerStat) model.OptInt { return s.Assists },
	MetricShotsOnTarget: func(s model.PlayerStat) model.OptInt { return s.ShotsOnTarget },
	MetricKeyPasses:     func(s model.PlayerStat) model.OptInt { return s.KeyPasses },
	MetricYellowCards:   func(s model.PlayerStat) model.OptInt { return s.YellowCards },
	MetricRedCards:      func(s model.PlayerStat) model.OptInt { return s.RedCards },
}

// ParseMetric validates a metric name from user input.
func ParseMetric(name string) (Metric, error) {
	m := Metric(name)
	if _, ok := metricFields[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	return m, nil
}

// TotalKey is the JSON key a leaderboard row uses for its total.
func (m Metric) TotalKey() string {
	return "total_" + string(m)
}

// Leader is one player's summed counter.
type Leader struct {
	PlayerID   int
	PlayerName string
	Metric     Metric
	Total      int
}

// MarshalJSON names the total after the metric, e.g. total_goals.
func (l Leader) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"player_id":         l.PlayerID,
		"player_name":       l.PlayerName,
		l.Metric.TotalKey(): l.Total,
	})
}

// Leaderboard sums metric per player across rows and returns the top
// LeaderboardLimit players, highest total first, player id ascending on ties.
// An unknown metric yields an empty board.
func Leaderboard(rows []model.PlayerStat, metric Metric) []Leader {
	field, ok := metricFields[metric]
	if !ok {
		return []Leader{}
	}

	index := make(map[int]int)
	leaders := make([]Leader, 0)
	for _, row := range rows {
		i, seen := index[row.PlayerID]
		if !seen {
			leaders = append(leaders, Leader{
				PlayerID:   row.PlayerID,
				PlayerName: model.NameOrUnknown(row.PlayerName),
				Metric:     metric,
			})
			i = len(leaders) - 1
			index[row.PlayerID] = i
		}
		leaders[i].Total += field(row).OrZero()
	}

	sort.Slice(leaders, func(i, j int) bool {
		if leaders[i].Total != leaders[j].Total {
			return leaders[i].Total > leaders[j].Total
		}
		return leaders[i].PlayerID < leaders[j].PlayerID
	})
	if len(leaders) > LeaderboardLimit {
		leaders = leaders[:LeaderboardLimit]
	}
	return leaders
}
