package collector

import (
	"context"

	"RegimeBoard/internal/model"
)

// Fetcher retrieves the datasets behind the dashboard. Each call is independent and may fail on its own.
type Fetcher interface {
	FetchRawSeries(ctx context.Context) (model.RawSeries, error)
	FetchChangePoints(ctx context.Context, provider model.Provider) ([]int, error)
	FetchEvents(ctx context.Context) ([]model.KeyEvent, error)
	Name() string
}
