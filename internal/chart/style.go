package chart

import "RegimeBoard/internal/model"

// DefaultSeriesLabel names the base line when no label is configured.
const DefaultSeriesLabel = "Brent Oil Price"

// LineStyle is the visual treatment a renderer applies to one dataset.
type LineStyle struct {
	Color       string
	Dash        []int
	PointRadius float64
	BorderWidth float64
	Tension     float64
}

// Style configures the base line and the per-provider overlay markers.
type Style struct {
	SeriesLabel string
	Base        LineStyle
	Providers   map[model.Provider]LineStyle
}

// DefaultStyle distinguishes Bayesian from rupture markers by color and dash pattern.
func DefaultStyle() Style {
	return Style{
		SeriesLabel: DefaultSeriesLabel,
		Base:        LineStyle{Color: "blue", PointRadius: 0, Tension: 0.3},
		Providers: map[model.Provider]LineStyle{
			model.ProviderBayesian: {Color: "red", Dash: []int{10, 5}, PointRadius: 6, BorderWidth: 2},
			model.ProviderRupture:  {Color: "orange", Dash: []int{5, 5}, PointRadius: 6, BorderWidth: 2},
		},
	}
}

// WithSeriesLabel returns a copy of s using label for the base line. An empty label keeps the current one.
func (s Style) WithSeriesLabel(label string) Style {
	if label != "" {
		s.SeriesLabel = label
	}
	return s
}

func (s Style) provider(p model.Provider) LineStyle {
	if ls, ok := s.Providers[p]; ok {
		return ls
	}
	return LineStyle{Color: "gray", Dash: []int{2, 2}, PointRadius: 6, BorderWidth: 2}
}
