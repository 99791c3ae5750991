package domain

// AlertType classifies a generated alert.
type AlertType string

const (
	AlertWarning AlertType = "warning"
	AlertInfo    AlertType = "info"
)

// ForecastPoint is one projected month.
type ForecastPoint struct {
	Period    string  `json:"period"`
	POAmount  float64 `json:"po_amount"`
	PARAmount float64 `json:"par_amount"`
	Demand    float64 `json:"demand"`
}

// Alert is a threshold breach found in the historical series.
type Alert struct {
	Type    AlertType `json:"type"`
	Message string    `json:"message"`
}

// HealthScores holds the three balance indicators derived from the latest month.
type HealthScores struct {
	InventoryHealth int `json:"inventory_health"`
	POEfficiency    int `json:"po_efficiency"`
	PARHealth       int `json:"par_health"`
}

// ScoreBundle groups every 0-100 score reported with a forecast.
type ScoreBundle struct {
	ConfidenceScore int `json:"confidence_score"`
	HealthScores
}

// ForecastRequest carries the parameters of a forecast call.
type ForecastRequest struct {
	LookbackMonths    int  `json:"lookback_months"`
	IncludeHistorical bool `json:"include_historical"`
}

// ForecastResponse is the object consumed by the reporting layer.
type ForecastResponse struct {
	Success         bool            `json:"success"`
	Error           string          `json:"error,omitempty"`
	Message         string          `json:"message,omitempty"`
	YearlyForecast  []ForecastPoint `json:"yearly_forecast"`
	ConfidenceScore int             `json:"confidence_score"`
	Alerts          []Alert         `json:"alerts"`
	InventoryHealth int             `json:"inventory_health"`
	POEfficiency    int             `json:"po_efficiency"`
	PARHealth       int             `json:"par_health"`
	Historical      []PeriodRecord  `json:"historical,omitempty"`
}
