package dashboard

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"RegimeBoard/internal/collector"
	"RegimeBoard/internal/model"
)

// Controller is the single writer of the date range. Every change, whether a finished load or a
// new range, is answered with a freshly built View.
type Controller struct {
	store *collector.Store
	opts  Options
	log   zerolog.Logger

	mu  sync.Mutex
	rng model.DateRange
}

// NewController creates a Controller reading from store.
func NewController(store *collector.Store, opts Options, log zerolog.Logger) *Controller {
	return &Controller{
		store: store,
		opts:  opts,
		log:   log.With().Str("component", "dashboard").Logger(),
	}
}

// Range returns the current date range.
func (c *Controller) Range() model.DateRange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng
}

// SetRange replaces both bounds.
func (c *Controller) SetRange(rng model.DateRange) View {
	return c.update(func(model.DateRange) model.DateRange { return rng })
}

// SetStart changes the lower bound only. An empty value unsets it.
func (c *Controller) SetStart(start string) View {
	return c.update(func(rng model.DateRange) model.DateRange {
		rng.Start = start
		return rng
	})
}

// SetEnd changes the upper bound only. An empty value unsets it.
func (c *Controller) SetEnd(end string) View {
	return c.update(func(rng model.DateRange) model.DateRange {
		rng.End = end
		return rng
	})
}

// update applies fn to the range under the lock, so concurrent single-bound edits never lose a side.
func (c *Controller) update(fn func(model.DateRange) model.DateRange) View {
	c.mu.Lock()
	rng := fn(c.rng)
	c.rng = rng
	c.mu.Unlock()
	c.log.Debug().Str("start", rng.Start).Str("end", rng.End).Msg("date range changed")
	return Build(c.store.Snapshot(), rng, c.opts)
}

// View builds the view for the current datasets and range.
func (c *Controller) View() View {
	return Build(c.store.Snapshot(), c.Range(), c.opts)
}

// Load starts every dataset load and calls onChange with a rebuilt view after each one finishes.
// It returns the view once all loads are done. onChange may be nil.
func (c *Controller) Load(ctx context.Context, onChange func(View)) View {
	for res := range c.store.LoadAll(ctx) {
		if res.Err != nil && !res.Fatal() {
			c.log.Debug().Str("dataset", res.Dataset).Msg("continuing without dataset")
		}
		if onChange != nil {
			onChange(c.View())
		}
	}
	return c.View()
}
