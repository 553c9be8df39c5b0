package model

// Provider identifies a change-point detection method.
type Provider string

const (
	ProviderBayesian Provider = "bayesian"
	ProviderRupture  Provider = "rupture"
)

// Providers lists every known provider in display order.
var Providers = []Provider{ProviderBayesian, ProviderRupture}

// Label is the human-readable name used in overlay captions.
func (p Provider) Label() string {
	switch p {
	case ProviderBayesian:
		return "Bayesian CP"
	case ProviderRupture:
		return "Rupture CP"
	default:
		return string(p) + " CP"
	}
}

// ChangePointIndexList is a provider's list of indices into RawSeries.
// Entries are not validated: they may be negative, out of range or duplicated.
type ChangePointIndexList struct {
	Provider Provider `json:"provider"`
	Indices  []int    `json:"change_points"`
}

// ResolvedChangePoint is a change-point index translated into a concrete observation
// that falls inside the active window.
type ResolvedChangePoint struct {
	Provider    Provider `json:"provider"`
	Label       string   `json:"label"`
	Index       int      `json:"index"`
	Date        string   `json:"date"`
	DisplayDate string   `json:"display_date"`
	Price       float64  `json:"price"`
}

// ChangePointEvent pairs a change point with the nearest key event. Event and DaysApart are nil
// when no event lies within the link window.
type ChangePointEvent struct {
	ChangePoint ResolvedChangePoint `json:"change_point"`
	Event       *KeyEvent           `json:"event"`
	DaysApart   *int                `json:"days_apart"`
}
