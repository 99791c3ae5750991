package domain

// PeriodRecord is one calendar month of PO and PAR activity.
type PeriodRecord struct {
	Period         string  `json:"period" db:"period"` // YYYY-MM
	POAmount       float64 `json:"po_amount" db:"po_amount"`
	PARAmount      float64 `json:"par_amount" db:"par_amount"`
	POCount        int     `json:"po_count" db:"po_count"`
	PARCount       int     `json:"par_count" db:"par_count"`
	SupplierCount  int     `json:"supplier_count" db:"supplier_count"`
	RecipientCount int     `json:"recipient_count" db:"recipient_count"`
	Demand         float64 `json:"demand" db:"-"`
}

// POAggregate is a single row of the monthly purchase order query.
type POAggregate struct {
	Period        string  `db:"period"`
	POCount       int     `db:"po_count"`
	POAmount      float64 `db:"po_amount"`
	SupplierCount int     `db:"supplier_count"`
}

// PARAggregate is a single row of the monthly property receipt query.
type PARAggregate struct {
	Period         string  `db:"period"`
	PARCount       int     `db:"par_count"`
	PARAmount      float64 `db:"par_amount"`
	RecipientCount int     `db:"recipient_count"`
}

// DemandOf returns the larger of the PO and PAR counts.
func DemandOf(poCount, parCount int) float64 {
	if parCount > poCount {
		return float64(parCount)
	}
	return float64(poCount)
}
