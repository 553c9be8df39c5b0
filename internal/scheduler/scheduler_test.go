package scheduler

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegimeBoard/internal/dataset"
	"RegimeBoard/internal/metrics"
	"RegimeBoard/internal/model"
)

type countingSource struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (c *countingSource) Name() string { return "counting" }

func (c *countingSource) Load(context.Context) (*dataset.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.fail {
		return nil, errors.New("source offline")
	}
	return &dataset.Snapshot{
		Prices:       model.RawSeries{{Date: "2020-01-01", Price: 60}, {Date: "2020-01-02", Price: 61}},
		ChangePoints: map[model.Provider][]int{model.ProviderRupture: {1}},
	}, nil
}

func (c *countingSource) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func scrape(m *metrics.Registry) string {
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}

func TestRefreshNow(t *testing.T) {
	src := &countingSource{}
	m := metrics.NewRegistry()
	s := NewScheduler(context.Background(), dataset.NewHolder(src, zerolog.Nop()), m, zerolog.Nop())

	require.NoError(t, s.RefreshNow())
	require.NotNil(t, s.Holder.Current())

	src.fail = true
	assert.Error(t, s.RefreshNow())
	assert.Len(t, s.Holder.Current().Prices, 2)

	body := scrape(m)
	assert.Contains(t, body, `regimeboard_dataset_refresh_total{result="success"} 1`)
	assert.Contains(t, body, `regimeboard_dataset_refresh_total{result="failure"} 1`)
	assert.Contains(t, body, `regimeboard_dataset_points{dataset="change_points_rupture"} 1`)
}

func TestRegister(t *testing.T) {
	s := NewScheduler(context.Background(), dataset.NewHolder(&countingSource{}, zerolog.Nop()), nil, zerolog.Nop())

	assert.NoError(t, s.Register(""))
	assert.Empty(t, s.Cron.Entries())

	assert.Error(t, s.Register("not a cron"))
	assert.NoError(t, s.Register("@every 1h"))
	assert.Len(t, s.Cron.Entries(), 1)
}

func TestScheduledRefreshRuns(t *testing.T) {
	src := &countingSource{}
	s := NewScheduler(context.Background(), dataset.NewHolder(src, zerolog.Nop()), nil, zerolog.Nop())
	require.NoError(t, s.Register("* * * * * *"))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return src.count() > 0 }, 3*time.Second, 50*time.Millisecond)
}
