package forecast

import "github.com/andresuchdata/popar-tracker/internal/domain"

// Metric selects one numeric column of a PeriodRecord.
type Metric string

const (
	MetricPOAmount  Metric = "po_amount"
	MetricPARAmount Metric = "par_amount"
	MetricDemand    Metric = "demand"
)

// Series extracts metric from every record, in order.
func Series(history []domain.PeriodRecord, metric Metric) []float64 {
	out := make([]float64, len(history))
	for i, r := range history {
		switch metric {
		case MetricPOAmount:
			out[i] = r.POAmount
		case MetricPARAmount:
			out[i] = r.PARAmount
		case MetricDemand:
			out[i] = r.Demand
		}
	}
	return out
}
