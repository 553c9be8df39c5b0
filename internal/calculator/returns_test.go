package calculator

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegimeBoard/internal/model"
)

func seriesOf(prices ...float64) model.RawSeries {
	s := make(model.RawSeries, len(prices))
	for i, p := range prices {
		s[i] = model.PricePoint{Date: fmt.Sprintf("2020-01-%02d", i+1), Price: p}
	}
	return s
}

func TestLogReturns(t *testing.T) {
	r := LogReturns(seriesOf(100, 105, 100))
	require.Len(t, r, 3)
	assert.Equal(t, 0.0, r[0])
	assert.InDelta(t, 0.04879, r[1], 1e-5)
	assert.InDelta(t, -0.04879, r[2], 1e-5)
}

func TestLogReturns_TooShort(t *testing.T) {
	assert.Nil(t, LogReturns(nil))
	assert.Nil(t, LogReturns(seriesOf(42)))
}

func TestCalculateStatistics_AbsentBelowTwoPoints(t *testing.T) {
	for _, s := range []model.RawSeries{nil, seriesOf(), seriesOf(10)} {
		stats, err := CalculateStatistics(s)
		require.NoError(t, err)
		assert.Nil(t, stats.Volatility)
		assert.Nil(t, stats.AvgLogReturn)
		assert.False(t, stats.Available())
		assert.Equal(t, NotAvailable, FormatVolatility(stats))
		assert.Equal(t, NotAvailable, FormatAvgLogReturn(stats))
	}
}

func TestCalculateStatistics_ThreePoints(t *testing.T) {
	stats, err := CalculateStatistics(seriesOf(100, 105, 100))
	require.NoError(t, err)
	require.True(t, stats.Available())

	assert.InDelta(t, 0.0, *stats.AvgLogReturn, 1e-9)
	assert.InDelta(t, 0.039837, *stats.Volatility, 1e-6)
	assert.InDelta(t, 0.001587, *stats.Volatility**stats.Volatility, 1e-6)
	assert.Equal(t, "0.000", FormatAvgLogReturn(stats))
	assert.Equal(t, "0.0398", FormatVolatility(stats))
}

func TestCalculateStatistics_FivePoints(t *testing.T) {
	stats, err := CalculateStatistics(seriesOf(50, 51, 49, 53, 52))
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Samples)
	assert.InDelta(t, 0.784414, *stats.AvgLogReturn, 1e-6)
	assert.InDelta(t, 0.040511, *stats.Volatility, 1e-6)
	assert.Equal(t, "0.784", FormatAvgLogReturn(stats))
	assert.Equal(t, "0.0405", FormatVolatility(stats))
}

func TestCalculateStatistics_ConstantSeriesHasZeroVolatility(t *testing.T) {
	stats, err := CalculateStatistics(seriesOf(70, 70, 70, 70))
	require.NoError(t, err)
	require.NotNil(t, stats.Volatility)
	assert.Equal(t, 0.0, *stats.Volatility)
	assert.Equal(t, "0.0000", FormatVolatility(stats))
}

func TestCalculateStatistics_NonPositivePrice(t *testing.T) {
	for _, bad := range []float64{0, -5, math.Inf(1), math.NaN()} {
		_, err := CalculateStatistics(seriesOf(10, bad, 12))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNonPositivePrice))

		var pe *PriceError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 1, pe.Index)
	}
}

func TestFormatFixed(t *testing.T) {
	assert.Equal(t, "0.000", formatFixed(-2.3e-16, 3))
	assert.Equal(t, "-0.125", formatFixed(-0.12549, 3))
	assert.Equal(t, "1.2346", formatFixed(1.23456, 4))
}
