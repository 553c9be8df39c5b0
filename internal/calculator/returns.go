package calculator

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"RegimeBoard/internal/model"
)

// ErrNonPositivePrice is returned when a price cannot produce a finite log return.
var ErrNonPositivePrice = errors.New("price must be positive and finite")

// LogReturns computes r[0] = 0, r[i] = ln(p[i]/p[i-1]). Returns nil for fewer than two points.
// Non-positive prices are not guarded here and yield non-finite entries.
func LogReturns(series model.RawSeries) []float64 {
	if len(series) < 2 {
		return nil
	}
	returns := make([]float64, len(series))
	for i := 1; i < len(series); i++ {
		returns[i] = math.Log(series[i].Price / series[i-1].Price)
	}
	return returns
}

// CalculateStatistics derives the average log return (in percent) and the population standard
// deviation of log returns over series. Both stay nil below two points.
func CalculateStatistics(series model.RawSeries) (model.DerivedStatistics, error) {
	stats := model.DerivedStatistics{Samples: len(series)}
	if len(series) < 2 {
		return stats, nil
	}
	if err := ValidatePrices(series); err != nil {
		return stats, err
	}

	returns := LogReturns(series)
	mean, variance := stat.PopMeanVariance(returns, nil)
	vol := math.Sqrt(variance)
	avg := mean * 100

	stats.Volatility = &vol
	stats.AvgLogReturn = &avg
	return stats, nil
}

// ValidatePrices checks that every price is strictly positive and finite.
func ValidatePrices(series model.RawSeries) error {
	for i, p := range series {
		if !(p.Price > 0) || math.IsInf(p.Price, 0) {
			return &PriceError{Index: i, Date: p.Date, Price: p.Price}
		}
	}
	return nil
}

// PriceError locates the offending observation. It matches ErrNonPositivePrice with errors.Is.
type PriceError struct {
	Index int
	Date  string
	Price float64
}

func (e *PriceError) Error() string {
	return fmt.Sprintf("%v: index %d (%s) has price %v", ErrNonPositivePrice, e.Index, e.Date, e.Price)
}

func (e *PriceError) Is(target error) bool { return target == ErrNonPositivePrice }
