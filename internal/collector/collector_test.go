package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegimeBoard/internal/calculator"
	"RegimeBoard/internal/model"
)

func fiveDays() model.RawSeries {
	return model.RawSeries{
		{Date: "2020-01-01", Price: 50},
		{Date: "2020-01-02", Price: 51},
		{Date: "2020-01-03", Price: 49},
		{Date: "2020-01-04", Price: 53},
		{Date: "2020-01-05", Price: 52},
	}
}

func newMock() *MockFetcher {
	return &MockFetcher{
		Raw: fiveDays(),
		ChangePoints: map[model.Provider][]int{
			model.ProviderBayesian: {2},
			model.ProviderRupture:  {1, 5},
		},
		Events: []model.KeyEvent{{Date: "2020-01-02", Event: "OPEC meeting"}},
	}
}

func drain(ch <-chan LoadResult) []LoadResult {
	var out []LoadResult
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func TestStore_LoadAll(t *testing.T) {
	store := NewStore(newMock(), zerolog.Nop())
	results := drain(store.LoadAll(context.Background()))

	require.Len(t, results, 4)
	for _, r := range results {
		assert.NoError(t, r.Err, r.Dataset)
	}

	ds := store.Snapshot()
	assert.True(t, ds.RawLoaded)
	assert.NoError(t, ds.RawErr)
	assert.Equal(t, fiveDays(), ds.Raw)
	assert.Equal(t, []int{2}, ds.ChangePoints[model.ProviderBayesian].Indices)
	assert.Equal(t, []int{1, 5}, ds.ChangePoints[model.ProviderRupture].Indices)
	assert.Len(t, ds.Events, 1)
}

func TestStore_LoadsOnce(t *testing.T) {
	mock := newMock()
	store := NewStore(mock, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.LoadRawSeries(ctx)
		require.NoError(t, err)
		_, err = store.LoadChangePoints(ctx, model.ProviderBayesian)
		require.NoError(t, err)
	}
	drain(store.LoadAll(ctx))

	raw, cps, events := mock.Calls()
	assert.Equal(t, 1, raw)
	assert.Equal(t, 2, cps)
	assert.Equal(t, 1, events)
}

func TestStore_RawFailureIsTerminal(t *testing.T) {
	mock := newMock()
	mock.RawErr = errors.New("connection refused")
	store := NewStore(mock, zerolog.Nop())
	ctx := context.Background()

	_, err := store.LoadRawSeries(ctx)
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, DatasetRawSeries, le.Dataset)

	mock.RawErr = nil
	_, err = store.LoadRawSeries(ctx)
	assert.Error(t, err, "a failed load must not be retried")
	raw, _, _ := mock.Calls()
	assert.Equal(t, 1, raw)

	ds := store.Snapshot()
	assert.False(t, ds.RawLoaded)
	assert.Error(t, ds.RawErr)
}

func TestStore_RejectsNonPositivePrices(t *testing.T) {
	mock := newMock()
	mock.Raw = model.RawSeries{{Date: "2020-04-20", Price: 20}, {Date: "2020-04-21", Price: -37.63}}
	store := NewStore(mock, zerolog.Nop())

	_, err := store.LoadRawSeries(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, calculator.ErrNonPositivePrice))
}

func TestStore_ChangePointFailureDegrades(t *testing.T) {
	mock := newMock()
	mock.ChangePointErrs = map[model.Provider]error{model.ProviderBayesian: errors.New("500")}
	store := NewStore(mock, zerolog.Nop())

	var fatal int
	for r := range store.LoadAll(context.Background()) {
		if r.Fatal() {
			fatal++
		}
		if r.Provider == model.ProviderBayesian {
			assert.Error(t, r.Err)
		}
	}
	assert.Zero(t, fatal)

	ds := store.Snapshot()
	assert.True(t, ds.RawLoaded)
	_, ok := ds.ChangePoints[model.ProviderBayesian]
	assert.False(t, ok)
	assert.Contains(t, ds.ChangePoints, model.ProviderRupture)
}

func TestStore_UnknownProvider(t *testing.T) {
	store := NewStore(newMock(), zerolog.Nop())
	_, err := store.LoadChangePoints(context.Background(), model.Provider("hmm"))
	assert.True(t, IsLoadError(err))
}

func TestStore_PartialCompletionVisible(t *testing.T) {
	mock := newMock()
	mock.Gate = make(chan struct{})
	store := NewStore(mock, zerolog.Nop())
	ctx := context.Background()

	ds := store.Snapshot()
	assert.False(t, ds.RawLoaded)
	assert.NoError(t, ds.RawErr)

	results := store.LoadAll(ctx)
	close(mock.Gate)
	drain(results)
	assert.True(t, store.Snapshot().RawLoaded)
}

func TestLoadResult_Fatal(t *testing.T) {
	assert.True(t, LoadResult{Dataset: DatasetRawSeries, Err: errors.New("x")}.Fatal())
	assert.False(t, LoadResult{Dataset: DatasetRawSeries}.Fatal())
	assert.False(t, LoadResult{Dataset: DatasetEvents, Err: errors.New("x")}.Fatal())
}
