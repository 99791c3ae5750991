package report

import (
	"fmt"
	"io"

	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	ForecastSheet = "Forecast"
	SummarySheet  = "Summary"

	// built-in "#,##0.00"
	amountNumFmt = 4
)

// WriteForecastXLSX writes a workbook with the series on ForecastSheet and
// the scores and alerts on SummarySheet.
func WriteForecastXLSX(w io.Writer, resp *domain.ForecastResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ForecastSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	if err := writeSeriesSheet(f, resp); err != nil {
		return err
	}
	if err := writeSummarySheet(f, resp); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSeriesSheet(f *excelize.File, resp *domain.ForecastResponse) error {
	header := make([]interface{}, len(seriesHeader))
	for i, h := range seriesHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(ForecastSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	for _, r := range resp.Historical {
		if err := setRow(f, ForecastSheet, row, "historical", r.Period, r.POAmount, r.PARAmount, r.Demand); err != nil {
			return err
		}
		row++
	}
	for _, p := range resp.YearlyForecast {
		if err := setRow(f, ForecastSheet, row, "forecast", p.Period, p.POAmount, p.PARAmount, p.Demand); err != nil {
			return err
		}
		row++
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}
	if err := f.SetColStyle(ForecastSheet, "C:E", style); err != nil {
		return fmt.Errorf("failed to style amount columns: %w", err)
	}
	return f.SetColWidth(ForecastSheet, "A", "E", 16)
}

func writeSummarySheet(f *excelize.File, resp *domain.ForecastResponse) error {
	row := 1
	for _, s := range scoreRows(resp) {
		if err := setRow(f, SummarySheet, row, s.name, s.value); err != nil {
			return err
		}
		row++
	}

	if len(resp.Alerts) == 0 {
		return nil
	}

	row++
	if err := setRow(f, SummarySheet, row, "Alert", "Message"); err != nil {
		return err
	}
	for _, a := range resp.Alerts {
		row++
		if err := setRow(f, SummarySheet, row, string(a.Type), a.Message); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
