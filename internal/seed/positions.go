package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matchday/matchday-api/internal/model"
)

// Position categories.
const (
	CategoryGoalkeeper = "Goalkeeper"
	CategoryDefender   = "Defender"
	CategoryMidfielder = "Midfielder"
	CategoryForward    = "Forward"
)

// DefaultPositions is the catalogue players are assigned from: one generic
// entry per category followed by its specific roles.
var DefaultPositions = []model.Position{
	{Name: "Goalkeeper", Category: CategoryGoalkeeper},
	{Name: "GK", Category: CategoryGoalkeeper},

	{Name: "Defender", Category: CategoryDefender},
	{Name: "CB", Category: CategoryDefender},
	{Name: "LB", Category: CategoryDefender},
	{Name: "RB", Category: CategoryDefender},
	{Name: "LWB", Category: CategoryDefender},
	{Name: "RWB", Category: CategoryDefender},

	{Name: "Midfielder", Category: CategoryMidfielder},
	{Name: "CDM", Category: CategoryMidfielder},
	{Name: "CM", Category: CategoryMidfielder},
	{Name: "CAM", Category: CategoryMidfielder},
	{Name: "LM", Category: CategoryMidfielder},
	{Name: "RM", Category: CategoryMidfielder},

	{Name: "Forward", Category: CategoryForward},
	{Name: "LW", Category: CategoryForward},
	{Name: "RW", Category: CategoryForward},
	{Name: "CF", Category: CategoryForward},
	{Name: "ST", Category: CategoryForward},
}

// PositionStore is the slice of the store seeding needs.
type PositionStore interface {
	InsertPositions(ctx context.Context, positions []model.Position) (int, error)
}

// Positions inserts every default position whose name is not stored yet.
// Running it again is a no-op.
func Positions(ctx context.Context, store PositionStore, logger *slog.Logger) (SeedResult, error) {
	var result SeedResult

	logger.Info("Seeding positions...", "candidates", len(DefaultPositions))
	added, err := store.InsertPositions(ctx, DefaultPositions)
	if err != nil {
		result.AddErrorf("insert positions: %v", err)
		return result, fmt.Errorf("seed positions: %w", err)
	}
	result.PositionsAdded = added
	result.PositionsSkipped = len(DefaultPositions) - added

	if added == 0 {
		logger.Info("No new positions to insert")
	} else {
		logger.Info("Positions seeded", "added", added, "skipped", result.PositionsSkipped)
	}
	return result, nil
}
