package forecast

var seasonalFactors = [12]float64{
	1.10, // Jan
	0.90,
	1.00,
	1.05,
	1.00,
	0.95,
	0.90,
	0.95,
	1.00,
	1.05,
	1.10,
	1.15, // Dec
}

// SeasonalFactor returns the month-of-year multiplier for month. Months
// outside 1..12 wrap, so 0 is December and 13 is January.
func SeasonalFactor(month int) float64 {
	m := ((month-1)%12+12)%12 + 1
	return seasonalFactors[m-1]
}
