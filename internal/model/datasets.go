package model

// API paths served by the dataset backend and consumed by the series store.
const (
	PriceDataPath = "/api/price-data"
	EventsPath    = "/api/events"
	DashboardPath = "/api/dashboard"
)

// ChangePointsPath is the endpoint serving a provider's change points.
func ChangePointsPath(p Provider) string {
	if p == ProviderRupture {
		return "/api/change-points/ruptures"
	}
	return "/api/change-points/" + string(p)
}

// Datasets is a read-only view of everything loaded so far.
// RawErr is terminal; change points and events that failed to load are simply absent.
type Datasets struct {
	Raw          RawSeries
	RawLoaded    bool
	RawErr       error
	ChangePoints map[Provider]ChangePointIndexList
	Events       []KeyEvent
}
