package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestFilterSeries_EmptyRangeReturnsRaw(t *testing.T) {
	raw := fiveDays()
	got := FilterSeries(raw, model.DateRange{})
	assert.Equal(t, raw, got)
}

func TestFilterSeries_OneSidedRangeIsIgnored(t *testing.T) {
	raw := fiveDays()
	assert.Equal(t, raw, FilterSeries(raw, model.DateRange{Start: "2020-01-03"}))
	assert.Equal(t, raw, FilterSeries(raw, model.DateRange{End: "2020-01-02"}))
}

func TestFilterSeries_InclusiveBounds(t *testing.T) {
	raw := fiveDays()
	got := FilterSeries(raw, model.DateRange{Start: "2020-01-02", End: "2020-01-04"})
	require.Len(t, got, 3)
	assert.Equal(t, "2020-01-02", got[0].Date)
	assert.Equal(t, "2020-01-04", got[2].Date)

	for _, p := range raw {
		inside := p.Date >= "2020-01-02" && p.Date <= "2020-01-04"
		assert.Equal(t, inside, containsDate(got, p.Date), p.Date)
	}
}

func TestFilterSeries_EmptyWindow(t *testing.T) {
	got := FilterSeries(fiveDays(), model.DateRange{Start: "2021-01-01", End: "2021-12-31"})
	assert.Empty(t, got)
}

func TestFilterSeries_DoesNotMutateRaw(t *testing.T) {
	raw := fiveDays()
	_ = FilterSeries(raw, model.DateRange{Start: "2020-01-02", End: "2020-01-02"})
	assert.Equal(t, fiveDays(), raw)
}

func TestResolveChangePoints_Scenario(t *testing.T) {
	list := model.ChangePointIndexList{Provider: model.ProviderBayesian, Indices: []int{2}}
	got := ResolveChangePoints(fiveDays(), list, model.DateRange{})
	require.Len(t, got, 1)
	assert.Equal(t, "2020-01-03", got[0].Date)
	assert.Equal(t, 49.0, got[0].Price)
	assert.Equal(t, "Bayesian CP", got[0].Label)
}

func TestResolveChangePoints_OutOfBoundsDropped(t *testing.T) {
	list := model.ChangePointIndexList{Provider: model.ProviderRupture, Indices: []int{-1, 5, 100, 4}}
	got := ResolveChangePoints(fiveDays(), list, model.DateRange{})
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Index)
}

func TestResolveChangePoints_OutsideWindowDropped(t *testing.T) {
	list := model.ChangePointIndexList{Provider: model.ProviderRupture, Indices: []int{0, 2, 4}}
	got := ResolveChangePoints(fiveDays(), list, model.DateRange{Start: "2020-01-02", End: "2020-01-04"})
	require.Len(t, got, 1)
	assert.Equal(t, "2020-01-03", got[0].Date)
}

func TestResolveChangePoints_OneSidedRangeSkipsCheck(t *testing.T) {
	list := model.ChangePointIndexList{Provider: model.ProviderBayesian, Indices: []int{0}}
	got := ResolveChangePoints(fiveDays(), list, model.DateRange{Start: "2020-01-04"})
	assert.Len(t, got, 1)
}

func TestResolveChangePoints_TruncatesDisplayDate(t *testing.T) {
	raw := model.RawSeries{{Date: "2020-03-09T00:00:00.000", Price: 34.36}}
	list := model.ChangePointIndexList{Provider: model.ProviderRupture, Indices: []int{0}}
	got := ResolveChangePoints(raw, list, model.DateRange{})
	require.Len(t, got, 1)
	assert.Equal(t, "2020-03-09", got[0].DisplayDate)
	assert.Equal(t, "2020-03-09T00:00:00.000", got[0].Date)
}

func TestResolveAll_ProviderOrder(t *testing.T) {
	lists := map[model.Provider]model.ChangePointIndexList{
		model.ProviderRupture:  {Provider: model.ProviderRupture, Indices: []int{1}},
		model.ProviderBayesian: {Provider: model.ProviderBayesian, Indices: []int{3}},
	}
	got := ResolveAll(fiveDays(), lists, model.DateRange{})
	require.Len(t, got, 2)
	assert.Equal(t, model.ProviderBayesian, got[0].Provider)
	assert.Equal(t, model.ProviderRupture, got[1].Provider)
}

func TestFilterEvents(t *testing.T) {
	events := []model.KeyEvent{
		{Date: "2020-01-01", Event: "a"},
		{Date: "2020-02-01", Event: "b"},
	}
	assert.Len(t, FilterEvents(events, model.DateRange{}), 2)
	got := FilterEvents(events, model.DateRange{Start: "2020-01-15", End: "2020-03-01"})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Event)
}

func containsDate(s model.RawSeries, date string) bool {
	for _, p := range s {
		if p.Date == date {
			return true
		}
	}
	return false
}
