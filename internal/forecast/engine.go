package forecast

import (
	"math"

	"github.com/andresuchdata/popar-tracker/internal/domain"
)

const (
	// Horizon is the number of months projected by Forecast.
	Horizon = 12

	baseWindow  = 3
	trendWindow = 6
	floorRatio  = 0.5
)

// Forecast projects the Horizon months following the last record of history.
//
// For each metric the base is the mean of the last three months and the
// trend multiplier comes from the last six. Month i is projected as
// base * trend^i * seasonal factor, never less than half the base. An empty
// history yields no points; the only error is an unparseable period key.
func Forecast(history []domain.PeriodRecord) ([]domain.ForecastPoint, error) {
	if len(history) == 0 {
		return []domain.ForecastPoint{}, nil
	}

	last, err := ParsePeriod(history[len(history)-1].Period)
	if err != nil {
		return nil, err
	}

	recent := tail(history, baseWindow)
	trendSpan := tail(history, trendWindow)

	po := newProjection(Series(recent, MetricPOAmount), Series(trendSpan, MetricPOAmount))
	par := newProjection(Series(recent, MetricPARAmount), Series(trendSpan, MetricPARAmount))
	demand := newProjection(Series(recent, MetricDemand), Series(trendSpan, MetricDemand))

	points := make([]domain.ForecastPoint, 0, Horizon)
	for i := 1; i <= Horizon; i++ {
		month := AddMonths(last, i)
		season := SeasonalFactor(int(month.Month()))

		points = append(points, domain.ForecastPoint{
			Period:    PeriodOf(month),
			POAmount:  po.at(i, season),
			PARAmount: par.at(i, season),
			Demand:    demand.at(i, season),
		})
	}

	return points, nil
}

type projection struct {
	base       float64
	multiplier float64
}

func newProjection(recent, trendSpan []float64) projection {
	return projection{
		base:       mean(recent),
		multiplier: EstimateTrend(trendSpan),
	}
}

func (p projection) at(step int, season float64) float64 {
	predicted := p.base * math.Pow(p.multiplier, float64(step)) * season
	return math.Max(p.base*floorRatio, predicted)
}

// Floor is the smallest value Forecast may report for a metric of history.
func Floor(history []domain.PeriodRecord, metric Metric) float64 {
	return mean(Series(tail(history, baseWindow), metric)) * floorRatio
}
