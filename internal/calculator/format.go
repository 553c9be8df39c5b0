package calculator

import (
	"math"
	"strconv"

	"RegimeBoard/internal/model"
)

// NotAvailable is shown in place of a statistic that needs more data.
const NotAvailable = "not yet available"

// FormatAvgLogReturn renders the average log return with three decimals, e.g. "0.125".
func FormatAvgLogReturn(stats model.DerivedStatistics) string {
	if stats.AvgLogReturn == nil {
		return NotAvailable
	}
	return formatFixed(*stats.AvgLogReturn, 3)
}

// FormatVolatility renders volatility with four decimals, e.g. "0.0398".
func FormatVolatility(stats model.DerivedStatistics) string {
	if stats.Volatility == nil {
		return NotAvailable
	}
	return formatFixed(*stats.Volatility, 4)
}

// formatFixed rounds half away from zero and never prints "-0".
func formatFixed(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	scale := math.Pow(10, float64(decimals))
	r := math.Round(v*scale) / scale
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', decimals, 64)
}
