// Package dataset loads the backend's price series, change points and key events from files
// or SQLite and keeps the current snapshot for the HTTP API.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"RegimeBoard/internal/calculator"
	"RegimeBoard/internal/model"
)

// ErrInvalidRow marks an input row that could not be turned into an observation.
var ErrInvalidRow = errors.New("invalid row")

// Snapshot is one consistent load of every dataset.
type Snapshot struct {
	Prices       model.RawSeries
	ChangePoints map[model.Provider][]int
	Events       []model.KeyEvent
	LoadedAt     time.Time
}

// Validate rejects snapshots the dashboard cannot compute statistics for, and price series whose
// dates are not strictly increasing: change-point indices and overlays assume one point per date.
func (s *Snapshot) Validate() error {
	if len(s.Prices) == 0 {
		return errors.New("price series is empty")
	}
	for i := 1; i < len(s.Prices); i++ {
		if s.Prices[i].Date <= s.Prices[i-1].Date {
			return fmt.Errorf("%w: index %d: date %s does not follow %s",
				ErrInvalidRow, i, s.Prices[i].Date, s.Prices[i-1].Date)
		}
	}
	return calculator.ValidatePrices(s.Prices)
}

// Datasets exposes the snapshot in the shape the dashboard builder consumes.
func (s *Snapshot) Datasets() model.Datasets {
	ds := model.Datasets{
		Raw:          s.Prices,
		RawLoaded:    true,
		ChangePoints: make(map[model.Provider]model.ChangePointIndexList, len(s.ChangePoints)),
		Events:       s.Events,
	}
	for p, idx := range s.ChangePoints {
		ds.ChangePoints[p] = model.ChangePointIndexList{Provider: p, Indices: idx}
	}
	return ds
}

// Source produces snapshots.
type Source interface {
	Load(ctx context.Context) (*Snapshot, error)
	Name() string
}

// Holder serves the latest good snapshot. A failed refresh keeps the previous one.
type Holder struct {
	source  Source
	log     zerolog.Logger
	current atomic.Pointer[Snapshot]
}

// NewHolder creates an empty Holder; call Refresh before serving.
func NewHolder(source Source, log zerolog.Logger) *Holder {
	return &Holder{
		source: source,
		log:    log.With().Str("component", "dataset").Str("source", source.Name()).Logger(),
	}
}

// Current returns the latest snapshot, or nil before the first successful refresh.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Refresh reloads every dataset from the source and swaps the snapshot in on success.
func (h *Holder) Refresh(ctx context.Context) (*Snapshot, error) {
	snap, err := h.source.Load(ctx)
	if err == nil {
		err = snap.Validate()
	}
	if err != nil {
		h.log.Error().Err(err).Msg("dataset refresh failed, keeping previous snapshot")
		return nil, fmt.Errorf("refresh from %s: %w", h.source.Name(), err)
	}
	if snap.LoadedAt.IsZero() {
		snap.LoadedAt = time.Now()
	}
	h.current.Store(snap)
	h.log.Info().
		Int("prices", len(snap.Prices)).
		Int("bayesian", len(snap.ChangePoints[model.ProviderBayesian])).
		Int("rupture", len(snap.ChangePoints[model.ProviderRupture])).
		Int("events", len(snap.Events)).
		Msg("dataset refreshed")
	return snap, nil
}
