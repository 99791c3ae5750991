package forecast

import (
	"fmt"
	"time"
)

// PeriodLayout is the year-month key format of a period.
const PeriodLayout = "2006-01"

// ParsePeriod returns the first instant (UTC) of the month named by period.
func ParsePeriod(period string) (time.Time, error) {
	t, err := time.Parse(PeriodLayout, period)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q: %w", period, err)
	}
	return t, nil
}

// PeriodOf returns the period key of t.
func PeriodOf(t time.Time) string {
	return t.Format(PeriodLayout)
}

// MonthStart truncates t to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths shifts a month start by n calendar months.
func AddMonths(monthStart time.Time, n int) time.Time {
	return monthStart.AddDate(0, n, 0)
}

// MonthsBetween counts calendar months from a to b.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
