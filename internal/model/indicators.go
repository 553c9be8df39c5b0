package model

// DerivedStatistics holds the risk statistics of the filtered window.
// A nil field means "not yet available" (fewer than two points), which is distinct from zero.
type DerivedStatistics struct {
	Volatility   *float64 `json:"volatility"`
	AvgLogReturn *float64 `json:"avg_log_return"` // percent
	Samples      int      `json:"samples"`
}

// Available reports whether both statistics have been computed.
func (s DerivedStatistics) Available() bool {
	return s.Volatility != nil && s.AvgLogReturn != nil
}

// ExtremeReturn is a day whose absolute log return exceeds the outlier threshold.
type ExtremeReturn struct {
	Date      string  `json:"date"`
	Price     float64 `json:"price"`
	LogReturn float64 `json:"log_return"`
}
