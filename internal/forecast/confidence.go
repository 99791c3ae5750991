package forecast

import (
	"math"

	"github.com/andresuchdata/popar-tracker/internal/domain"
)

// Confidence scores history from 0 to 100 as 60% consistency (low
// coefficient of variation) plus 40% stability (small month-over-month
// changes), both averaged over the PO and PAR amount series. An empty
// history scores 75.
func Confidence(history []domain.PeriodRecord) int {
	if len(history) == 0 {
		return defaultScore
	}

	po := Series(history, MetricPOAmount)
	par := Series(history, MetricPARAmount)

	consistency := (cvScore(po) + cvScore(par)) / 2
	stability := (stabilityScore(po) + stabilityScore(par)) / 2

	return int(math.Round(0.6*consistency + 0.4*stability))
}

func cvScore(values []float64) float64 {
	return clamp(100-100*coefficientOfVariation(values), 0, 100)
}

// stabilityScore is 100 minus the mean relative change between consecutive
// values, skipping pairs whose previous value is zero. With fewer than two
// usable changes it falls back to 75.
func stabilityScore(values []float64) float64 {
	var changes []float64
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			continue
		}
		changes = append(changes, math.Abs((values[i]-prev)/prev))
	}

	if len(changes) < 2 {
		return defaultScore
	}

	return clamp(100-100*mean(changes), 0, 100)
}
