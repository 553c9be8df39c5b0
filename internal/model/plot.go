package model

// LineSeries is one renderer dataset. Values is aligned to PlotSeries.Labels; nil entries are gaps.
type LineSeries struct {
	Label       string     `json:"label"`
	Color       string     `json:"borderColor"`
	Dash        []int      `json:"borderDash,omitempty"`
	PointRadius float64    `json:"pointRadius"`
	BorderWidth float64    `json:"borderWidth,omitempty"`
	Tension     float64    `json:"tension,omitempty"`
	Fill        bool       `json:"fill"`
	Values      []*float64 `json:"data"`
}

// PlotSeries is the structure handed to the chart renderer: one base line plus one overlay
// per resolved change point, all sharing the Labels date axis.
type PlotSeries struct {
	Labels   []string     `json:"labels"`
	Base     LineSeries   `json:"base"`
	Overlays []LineSeries `json:"overlays"`
}

// Datasets returns the base line followed by the overlays, the order renderers draw them in.
func (p PlotSeries) Datasets() []LineSeries {
	out := make([]LineSeries, 0, 1+len(p.Overlays))
	out = append(out, p.Base)
	return append(out, p.Overlays...)
}
