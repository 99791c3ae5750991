package forecast

import "math"

// defaultScore is reported by every scorer when there is nothing to score.
const defaultScore = 75

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

func coefficientOfVariation(values []float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	return stdDev(values) / m
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// clampScore clamps v to [0,100] and rounds it to the nearest integer.
func clampScore(v float64) int {
	return int(math.Round(clamp(v, 0, 100)))
}

func tail[T any](values []T, n int) []T {
	if n >= len(values) {
		return values
	}
	return values[len(values)-n:]
}
