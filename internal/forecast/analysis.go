package forecast

import "github.com/andresuchdata/popar-tracker/internal/domain"

// Analysis bundles every output computed from one history.
type Analysis struct {
	Forecast []domain.ForecastPoint
	Scores   domain.ScoreBundle
	Alerts   []domain.Alert
}

// Analyze runs the forecast, the scorers and the alert scan over history.
func Analyze(history []domain.PeriodRecord) (Analysis, error) {
	points, err := Forecast(history)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		Forecast: points,
		Scores: domain.ScoreBundle{
			ConfidenceScore: Confidence(history),
			HealthScores:    Health(history),
		},
		Alerts: Alerts(history),
	}, nil
}
