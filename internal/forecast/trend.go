package forecast

import "math"

const (
	MinTrendMultiplier = 0.95
	MaxTrendMultiplier = 1.05
)

// EstimateTrend fits a least-squares line to series against its index and
// turns the slope into a per-period growth multiplier of 1 + slope/100,
// clamped to [MinTrendMultiplier, MaxTrendMultiplier]. Series shorter than two
// points have no trend and yield 1.
func EstimateTrend(series []float64) float64 {
	n := len(series)
	if n < 2 {
		return 1
	}

	xMean := float64(n-1) / 2
	yMean := mean(series)

	var num, den float64
	for i, y := range series {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		den += dx * dx
	}

	slope := num / den
	if math.IsNaN(slope) {
		return 1
	}

	return clamp(1+slope/100, MinTrendMultiplier, MaxTrendMultiplier)
}
