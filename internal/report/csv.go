// Package report renders a forecast response as CSV or as an XLSX workbook.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/andresuchdata/popar-tracker/internal/domain"
)

var seriesHeader = []string{"Section", "Period", "PO Amount", "PAR Amount", "Demand"}

// WriteForecastCSV writes historical rows (when present), then the forecast
// rows, then one row per score and alert.
func WriteForecastCSV(w io.Writer, resp *domain.ForecastResponse) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(seriesHeader); err != nil {
		return err
	}

	for _, r := range resp.Historical {
		if err := writer.Write([]string{
			"historical",
			r.Period,
			formatFloat(r.POAmount),
			formatFloat(r.PARAmount),
			formatFloat(r.Demand),
		}); err != nil {
			return err
		}
	}

	for _, p := range resp.YearlyForecast {
		if err := writer.Write([]string{
			"forecast",
			p.Period,
			formatFloat(p.POAmount),
			formatFloat(p.PARAmount),
			formatFloat(p.Demand),
		}); err != nil {
			return err
		}
	}

	for _, s := range scoreRows(resp) {
		if err := writer.Write([]string{"score", s.name, strconv.Itoa(s.value), "", ""}); err != nil {
			return err
		}
	}

	for _, a := range resp.Alerts {
		if err := writer.Write([]string{"alert", string(a.Type), a.Message, "", ""}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

type scoreRow struct {
	name  string
	value int
}

func scoreRows(resp *domain.ForecastResponse) []scoreRow {
	return []scoreRow{
		{"confidence_score", resp.ConfidenceScore},
		{"inventory_health", resp.InventoryHealth},
		{"po_efficiency", resp.POEfficiency},
		{"par_health", resp.PARHealth},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
