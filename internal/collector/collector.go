// Package collector loads the raw price series, the change-point lists and the key events,
// each exactly once per process.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"RegimeBoard/internal/calculator"
	"RegimeBoard/internal/model"
)

// Dataset names used in load results and errors.
const (
	DatasetRawSeries = "raw series"
	DatasetEvents    = "events"
)

// ChangePointsDataset names a provider's change-point dataset.
func ChangePointsDataset(p model.Provider) string {
	return fmt.Sprintf("change points (%s)", p)
}

// LoadError wraps a failed dataset load.
type LoadError struct {
	Dataset string
	Err     error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Dataset, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// LoadResult reports the completion of one dataset load.
type LoadResult struct {
	Dataset  string
	Provider model.Provider // set for change-point loads only
	Err      error
}

// Fatal reports whether the result takes the dashboard into its error state.
func (r LoadResult) Fatal() bool {
	return r.Err != nil && r.Dataset == DatasetRawSeries
}

// slot holds one dataset: fetched at most once, readable at any time.
type slot[T any] struct {
	once sync.Once
	mu   sync.RWMutex
	done bool
	val  T
	err  error
}

func (s *slot[T]) load(fn func() (T, error)) (T, error) {
	s.once.Do(func() {
		v, err := fn()
		s.mu.Lock()
		s.val, s.err, s.done = v, err, true
		s.mu.Unlock()
	})
	v, _, err := s.peek()
	return v, err
}

func (s *slot[T]) peek() (val T, done bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.val, s.done, s.err
}

// Store owns the loaded datasets for the process lifetime. Nothing is retried: a failed load
// keeps returning its original error.
type Store struct {
	fetcher      Fetcher
	log          zerolog.Logger
	raw          slot[model.RawSeries]
	changePoints map[model.Provider]*slot[[]int]
	events       slot[[]model.KeyEvent]
}

// NewStore creates a Store backed by fetcher.
func NewStore(fetcher Fetcher, log zerolog.Logger) *Store {
	cps := make(map[model.Provider]*slot[[]int], len(model.Providers))
	for _, p := range model.Providers {
		cps[p] = &slot[[]int]{}
	}
	return &Store{
		fetcher:      fetcher,
		log:          log.With().Str("component", "store").Str("source", fetcher.Name()).Logger(),
		changePoints: cps,
	}
}

// LoadRawSeries fetches the price series on first call. A series containing a non-positive or
// non-finite price is rejected here so the statistics never see it.
func (s *Store) LoadRawSeries(ctx context.Context) (model.RawSeries, error) {
	return s.raw.load(func() (model.RawSeries, error) {
		series, err := s.fetcher.FetchRawSeries(ctx)
		if err == nil {
			err = calculator.ValidatePrices(series)
		}
		if err != nil {
			s.log.Error().Err(err).Msg("price data unavailable")
			return nil, &LoadError{Dataset: DatasetRawSeries, Err: err}
		}
		if i := firstUnordered(series); i > 0 {
			s.log.Warn().Int("index", i).Str("date", series[i].Date).Msg("price dates are not strictly increasing")
		}
		s.log.Info().Int("points", len(series)).Msg("price data loaded")
		return series, nil
	})
}

// LoadChangePoints fetches one provider's index list on first call. Failures are logged only;
// the caller decides whether to surface them.
func (s *Store) LoadChangePoints(ctx context.Context, provider model.Provider) (model.ChangePointIndexList, error) {
	sl, ok := s.changePoints[provider]
	if !ok {
		return model.ChangePointIndexList{}, &LoadError{
			Dataset: ChangePointsDataset(provider),
			Err:     fmt.Errorf("unknown provider %q", provider),
		}
	}
	indices, err := sl.load(func() ([]int, error) {
		indices, err := s.fetcher.FetchChangePoints(ctx, provider)
		if err != nil {
			s.log.Warn().Err(err).Str("provider", string(provider)).Msg("change points unavailable")
			return nil, &LoadError{Dataset: ChangePointsDataset(provider), Err: err}
		}
		s.log.Info().Str("provider", string(provider)).Int("count", len(indices)).Msg("change points loaded")
		return indices, nil
	})
	if err != nil {
		return model.ChangePointIndexList{}, err
	}
	return model.ChangePointIndexList{Provider: provider, Indices: indices}, nil
}

// LoadEvents fetches the key events on first call.
func (s *Store) LoadEvents(ctx context.Context) ([]model.KeyEvent, error) {
	return s.events.load(func() ([]model.KeyEvent, error) {
		events, err := s.fetcher.FetchEvents(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("key events unavailable")
			return nil, &LoadError{Dataset: DatasetEvents, Err: err}
		}
		return events, nil
	})
}

// LoadAll issues every load concurrently. Each result is delivered as soon as its own load
// finishes, in no particular order; the channel is closed once all have finished.
func (s *Store) LoadAll(ctx context.Context) <-chan LoadResult {
	results := make(chan LoadResult, 2+len(model.Providers))
	var wg sync.WaitGroup

	run := func(fn func() LoadResult) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- fn()
		}()
	}

	run(func() LoadResult {
		_, err := s.LoadRawSeries(ctx)
		return LoadResult{Dataset: DatasetRawSeries, Err: err}
	})
	for _, p := range model.Providers {
		p := p
		run(func() LoadResult {
			_, err := s.LoadChangePoints(ctx, p)
			return LoadResult{Dataset: ChangePointsDataset(p), Provider: p, Err: err}
		})
	}
	run(func() LoadResult {
		_, err := s.LoadEvents(ctx)
		return LoadResult{Dataset: DatasetEvents, Err: err}
	})

	go func() {
		wg.Wait()
		close(results)
	}()
	return results
}

// Snapshot returns what has been loaded so far. Failed change-point and event loads are omitted.
func (s *Store) Snapshot() model.Datasets {
	ds := model.Datasets{ChangePoints: make(map[model.Provider]model.ChangePointIndexList)}

	raw, done, err := s.raw.peek()
	ds.RawLoaded = done && err == nil
	ds.RawErr = err
	if ds.RawLoaded {
		ds.Raw = raw
	}

	for _, p := range model.Providers {
		indices, done, err := s.changePoints[p].peek()
		if done && err == nil {
			ds.ChangePoints[p] = model.ChangePointIndexList{Provider: p, Indices: indices}
		}
	}

	if events, done, err := s.events.peek(); done && err == nil {
		ds.Events = events
	}
	return ds
}

// IsLoadError reports whether err came from a dataset load.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

func firstUnordered(series model.RawSeries) int {
	for i := 1; i < len(series); i++ {
		if series[i].Date <= series[i-1].Date {
			return i
		}
	}
	return -1
}
