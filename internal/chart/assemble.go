// Package chart turns the filtered window into the structure a line-chart renderer consumes.
package chart

import (
	"fmt"

	"RegimeBoard/internal/calculator"
	"RegimeBoard/internal/model"
)

// Assemble builds the base line from every filtered point and one overlay per resolved change
// point. Overlays share the filtered date axis and hold a value only at their own date.
func Assemble(filtered model.RawSeries, resolved []model.ResolvedChangePoint, style Style) model.PlotSeries {
	plot := model.PlotSeries{
		Labels:   filtered.Dates(),
		Overlays: make([]model.LineSeries, 0, len(resolved)),
	}

	base := make([]*float64, len(filtered))
	for i := range filtered {
		base[i] = &filtered[i].Price
	}
	plot.Base = line(style.SeriesLabel, style.Base, base)

	for _, cp := range resolved {
		values := make([]*float64, len(filtered))
		price := cp.Price
		if i := position(filtered, cp); i >= 0 {
			values[i] = &price
		}
		plot.Overlays = append(plot.Overlays, line(OverlayLabel(cp), style.provider(cp.Provider), values))
	}
	return plot
}

// position finds the single slot an overlay occupies: the first filtered point carrying the
// change point's date and price, else the first with its date. -1 when the date is not shown.
func position(filtered model.RawSeries, cp model.ResolvedChangePoint) int {
	first := -1
	for i, p := range filtered {
		if p.Date != cp.Date {
			continue
		}
		if p.Price == cp.Price {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

// OverlayLabel captions an overlay with its provider and calendar date, e.g. "Rupture CP (2008-07-11)".
func OverlayLabel(cp model.ResolvedChangePoint) string {
	return fmt.Sprintf("%s (%s)", cp.Label, cp.DisplayDate)
}

func line(label string, ls LineStyle, values []*float64) model.LineSeries {
	return model.LineSeries{
		Label:       label,
		Color:       ls.Color,
		Dash:        ls.Dash,
		PointRadius: ls.PointRadius,
		BorderWidth: ls.BorderWidth,
		Tension:     ls.Tension,
		Values:      values,
	}
}

// StatsDisplay maps statistic names to their on-screen strings.
func StatsDisplay(stats model.DerivedStatistics) map[string]string {
	avg := calculator.FormatAvgLogReturn(stats)
	if stats.AvgLogReturn != nil {
		avg += "%"
	}
	return map[string]string{
		"Volatility":     calculator.FormatVolatility(stats),
		"Avg Log Return": avg,
	}
}
