package collector

import (
	"context"
	"sync/atomic"

	"RegimeBoard/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// A non-nil error field makes the matching call fail. Gate, when set, blocks every call until closed.
type MockFetcher struct {
	Raw          model.RawSeries
	ChangePoints map[model.Provider][]int
	Events       []model.KeyEvent

	RawErr          error
	ChangePointErrs map[model.Provider]error
	EventsErr       error

	Gate chan struct{}

	rawCalls    atomic.Int32
	cpCalls     atomic.Int32
	eventsCalls atomic.Int32
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchRawSeries(ctx context.Context) (model.RawSeries, error) {
	m.rawCalls.Add(1)
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.RawErr != nil {
		return nil, m.RawErr
	}
	return m.Raw, nil
}

func (m *MockFetcher) FetchChangePoints(ctx context.Context, provider model.Provider) ([]int, error) {
	m.cpCalls.Add(1)
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if err := m.ChangePointErrs[provider]; err != nil {
		return nil, err
	}
	return m.ChangePoints[provider], nil
}

func (m *MockFetcher) FetchEvents(ctx context.Context) ([]model.KeyEvent, error) {
	m.eventsCalls.Add(1)
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	if m.EventsErr != nil {
		return nil, m.EventsErr
	}
	return m.Events, nil
}

// Calls reports how many times each dataset was requested.
func (m *MockFetcher) Calls() (raw, changePoints, events int) {
	return int(m.rawCalls.Load()), int(m.cpCalls.Load()), int(m.eventsCalls.Load())
}

func (m *MockFetcher) wait(ctx context.Context) error {
	if m.Gate == nil {
		return nil
	}
	select {
	case <-m.Gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
