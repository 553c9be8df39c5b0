package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"RegimeBoard/internal/model"
)

// DefaultOutlierThreshold flags days moving more than ~10% in log terms.
const DefaultOutlierThreshold = 0.1

// ExtremeReturns lists the observations whose absolute log return exceeds threshold.
func ExtremeReturns(series model.RawSeries, threshold float64) []model.ExtremeReturn {
	returns := LogReturns(series)
	var out []model.ExtremeReturn
	for i := 1; i < len(returns); i++ {
		if math.Abs(returns[i]) > threshold {
			out = append(out, model.ExtremeReturn{
				Date:      series[i].Date,
				Price:     series[i].Price,
				LogReturn: returns[i],
			})
		}
	}
	return out
}

// RollingVolatility computes the sample standard deviation of the trailing window log returns,
// aligned to series. Entries stay nil until window returns are available.
func RollingVolatility(series model.RawSeries, window int) []*float64 {
	out := make([]*float64, len(series))
	if window < 2 {
		return out
	}
	returns := LogReturns(series)
	for i := window; i < len(returns); i++ {
		sd := stat.StdDev(returns[i-window+1:i+1], nil)
		out[i] = &sd
	}
	return out
}
