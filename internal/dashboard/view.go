// Package dashboard composes the window filter, the statistics and the plot assembler into the
// view a renderer draws, and owns the one piece of mutable view state: the date range.
package dashboard

import (
	"RegimeBoard/internal/calculator"
	"RegimeBoard/internal/chart"
	"RegimeBoard/internal/model"
	"RegimeBoard/internal/window"
)

// Status is the lifecycle state of the view.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// ErrorMessage replaces the whole dashboard when the price series cannot be loaded.
const ErrorMessage = "Error loading price data."

// Options tunes the derived parts of the view.
type Options struct {
	Style            chart.Style
	OutlierThreshold float64 // 0 disables extreme-return detection
	RollingWindow    int     // 0 disables rolling volatility
	EventWindowDays  int     // max distance for linking a key event to a change point
}

// DefaultOptions mirrors the stock chart, a 10% outlier threshold and a 30-day event link window.
func DefaultOptions() Options {
	return Options{
		Style:            chart.DefaultStyle(),
		OutlierThreshold: calculator.DefaultOutlierThreshold,
		EventWindowDays:  window.DefaultEventWindowDays,
	}
}

// View is everything the renderer needs for one date range.
type View struct {
	Status            Status                      `json:"status"`
	Error             string                      `json:"error,omitempty"`
	Range             model.DateRange             `json:"range"`
	Points            int                         `json:"points"`
	ChangePoints      []model.ResolvedChangePoint `json:"change_points"`
	Stats             model.DerivedStatistics     `json:"stats"`
	StatsDisplay      map[string]string           `json:"stats_display,omitempty"`
	ExtremeReturns    []model.ExtremeReturn       `json:"extreme_returns,omitempty"`
	RollingVolatility []*float64                  `json:"rolling_volatility,omitempty"`
	Events            []model.KeyEvent            `json:"events,omitempty"`
	ChangePointEvents []model.ChangePointEvent    `json:"change_point_events,omitempty"`
	Warnings          []string                    `json:"warnings,omitempty"`
	Plot              *model.PlotSeries           `json:"plot,omitempty"`

	filtered model.RawSeries
}

// Filtered returns the series restricted to the view's range.
func (v View) Filtered() model.RawSeries { return v.filtered }

// Build derives the view from the loaded datasets and rng. It is pure: the same inputs always
// give the same view.
func Build(ds model.Datasets, rng model.DateRange, opts Options) View {
	v := View{Range: rng}
	switch {
	case ds.RawErr != nil:
		v.Status = StatusError
		v.Error = ErrorMessage
		return v
	case !ds.RawLoaded:
		v.Status = StatusLoading
		return v
	}

	v.Status = StatusReady
	v.filtered = window.FilterSeries(ds.Raw, rng)
	v.Points = len(v.filtered)
	v.ChangePoints = window.ResolveAll(ds.Raw, ds.ChangePoints, rng)
	v.Events = window.FilterEvents(ds.Events, rng)
	if len(ds.Events) > 0 {
		// Link against every event: the nearest one may sit just outside the display window.
		v.ChangePointEvents = window.LinkEvents(v.ChangePoints, ds.Events, opts.EventWindowDays)
	}

	stats, err := calculator.CalculateStatistics(v.filtered)
	if err != nil {
		v.Warnings = append(v.Warnings, err.Error())
	}
	v.Stats = stats
	v.StatsDisplay = chart.StatsDisplay(stats)

	if opts.OutlierThreshold > 0 {
		v.ExtremeReturns = calculator.ExtremeReturns(v.filtered, opts.OutlierThreshold)
	}
	if opts.RollingWindow > 0 {
		v.RollingVolatility = calculator.RollingVolatility(v.filtered, opts.RollingWindow)
	}

	plot := chart.Assemble(v.filtered, v.ChangePoints, opts.Style)
	v.Plot = &plot
	return v
}
