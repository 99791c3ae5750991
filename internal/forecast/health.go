package forecast

import (
	"math"

	"github.com/andresuchdata/popar-tracker/internal/domain"
)

// Health derives the inventory, PO efficiency and PAR health indicators from
// the first and latest months of history. Each is clamped to 0..100; an empty
// history scores 75 across the board.
func Health(history []domain.PeriodRecord) domain.HealthScores {
	if len(history) == 0 {
		return domain.HealthScores{
			InventoryHealth: defaultScore,
			POEfficiency:    defaultScore,
			PARHealth:       defaultScore,
		}
	}

	first := history[0]
	latest := history[len(history)-1]

	demandChange := (latest.Demand - first.Demand) / math.Max(1, first.Demand)
	poParRatio := latest.POAmount / math.Max(1, latest.PARAmount)
	utilization := latest.PARAmount / math.Max(1, latest.POAmount)
	distribution := float64(latest.RecipientCount) / math.Max(1, float64(latest.PARCount))

	return domain.HealthScores{
		InventoryHealth: clampScore((1 + demandChange) * 75),
		POEfficiency:    clampScore((1 - math.Abs(1-poParRatio)) * 100),
		PARHealth:       clampScore((0.7*utilization + 0.3*distribution) * 100),
	}
}
