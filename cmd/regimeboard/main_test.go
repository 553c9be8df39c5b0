package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegimeBoard/internal/config"
	"RegimeBoard/internal/dashboard"
	"RegimeBoard/internal/model"
)

func TestDashboardOptions_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	opts := dashboardOptions(cfg)
	assert.Equal(t, 0.1, opts.OutlierThreshold)
	assert.Equal(t, 30, opts.EventWindowDays)
	assert.Equal(t, "Brent Oil Price", opts.Style.SeriesLabel)
}

func TestDashboardOptions_ZeroThresholdDisablesExtremes(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	off := 0.0
	cfg.Chart.OutlierThreshold = &off

	opts := dashboardOptions(cfg)
	assert.Equal(t, 0.0, opts.OutlierThreshold)

	raw := model.RawSeries{{Date: "2020-03-06", Price: 45.27}, {Date: "2020-03-09", Price: 34.36}}
	v := dashboard.Build(model.Datasets{Raw: raw, RawLoaded: true}, model.DateRange{}, opts)
	assert.Empty(t, v.ExtremeReturns)
}
