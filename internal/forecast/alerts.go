package forecast

import (
	"fmt"

	"github.com/andresuchdata/popar-tracker/internal/domain"
)

const (
	parOverPOThreshold = 1.2
	spikeThreshold     = 1.5
)

// Alerts scans history twice. The first pass warns about every month whose
// PAR amount exceeds its PO amount by more than 20%. The second reports every
// month where the PO or PAR amount is above 1.5 times that series' mean, PO
// before PAR. Alerts are not deduplicated across passes.
func Alerts(history []domain.PeriodRecord) []domain.Alert {
	alerts := []domain.Alert{}

	for _, r := range history {
		if r.PARAmount > r.POAmount*parOverPOThreshold {
			alerts = append(alerts, domain.Alert{
				Type:    domain.AlertWarning,
				Message: fmt.Sprintf("PAR amount exceeds PO amount by more than 20%% in %s", r.Period),
			})
		}
	}

	poMean := mean(Series(history, MetricPOAmount))
	parMean := mean(Series(history, MetricPARAmount))

	for _, r := range history {
		if r.POAmount > poMean*spikeThreshold {
			alerts = append(alerts, spikeAlert("PO", r.Period, r.POAmount, poMean))
		}
		if r.PARAmount > parMean*spikeThreshold {
			alerts = append(alerts, spikeAlert("PAR", r.Period, r.PARAmount, parMean))
		}
	}

	return alerts
}

func spikeAlert(metric, period string, value, avg float64) domain.Alert {
	return domain.Alert{
		Type:    domain.AlertInfo,
		Message: fmt.Sprintf("Unusually high %s amount in %s: %.2f against an average of %.2f", metric, period, value, avg),
	}
}
