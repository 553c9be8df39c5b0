package model

// PricePoint is a single observation of the raw price series.
// Date is an ISO-8601 string; zero-padded dates compare lexicographically in chronological order.
type PricePoint struct {
	Date  string  `json:"Date"`
	Price float64 `json:"Price"`
}

// RawSeries is the price series in arrival order. The slice index is the key
// change-point providers refer to.
type RawSeries []PricePoint

// Prices extracts the price column.
func (s RawSeries) Prices() []float64 {
	prices := make([]float64, len(s))
	for i, p := range s {
		prices[i] = p.Price
	}
	return prices
}

// Dates extracts the date column.
func (s RawSeries) Dates() []string {
	dates := make([]string, len(s))
	for i, p := range s {
		dates[i] = p.Date
	}
	return dates
}

// DateOnly returns the calendar-date portion of an ISO-8601 timestamp.
func DateOnly(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

// DateRange is the user-selected display window. An empty side means unbounded.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Complete reports whether both bounds are set. Only a complete range filters anything.
func (r DateRange) Complete() bool {
	return r.Start != "" && r.End != ""
}

// Contains applies the inclusive lexicographic window test. An incomplete range contains every date.
func (r DateRange) Contains(date string) bool {
	if !r.Complete() {
		return true
	}
	return date >= r.Start && date <= r.End
}

// KeyEvent is a dated market event shown alongside the series.
type KeyEvent struct {
	Date    string `json:"Date"`
	Event   string `json:"Event"`
	Details string `json:"Details,omitempty"`
}
