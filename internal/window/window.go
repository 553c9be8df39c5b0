// Package window restricts the raw series, change points and events to a display window.
//
// A window only filters when both of its bounds are set. A one-sided range behaves exactly like
// no range at all, for the series and for change-point visibility alike.
package window

import "RegimeBoard/internal/model"

// FilterSeries returns the points of raw whose date lies inside rng (inclusive).
// An incomplete range returns raw unchanged.
func FilterSeries(raw model.RawSeries, rng model.DateRange) model.RawSeries {
	if !rng.Complete() {
		return raw
	}
	filtered := make(model.RawSeries, 0, len(raw))
	for _, p := range raw {
		if rng.Contains(p.Date) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// ResolveChangePoints looks each index up in raw (not in the filtered series) and keeps the
// ones that exist and fall inside rng. Misses are dropped silently: providers may have been
// trained on a differently sized series.
func ResolveChangePoints(raw model.RawSeries, list model.ChangePointIndexList, rng model.DateRange) []model.ResolvedChangePoint {
	var resolved []model.ResolvedChangePoint
	for _, idx := range list.Indices {
		if idx < 0 || idx >= len(raw) {
			continue
		}
		p := raw[idx]
		if !rng.Contains(p.Date) {
			continue
		}
		resolved = append(resolved, model.ResolvedChangePoint{
			Provider:    list.Provider,
			Label:       list.Provider.Label(),
			Index:       idx,
			Date:        p.Date,
			DisplayDate: model.DateOnly(p.Date),
			Price:       p.Price,
		})
	}
	return resolved
}

// ResolveAll resolves every provider's list in model.Providers order.
func ResolveAll(raw model.RawSeries, lists map[model.Provider]model.ChangePointIndexList, rng model.DateRange) []model.ResolvedChangePoint {
	var resolved []model.ResolvedChangePoint
	for _, p := range model.Providers {
		list, ok := lists[p]
		if !ok {
			continue
		}
		resolved = append(resolved, ResolveChangePoints(raw, list, rng)...)
	}
	return resolved
}

// FilterEvents keeps the key events inside rng using the same rule as FilterSeries.
func FilterEvents(events []model.KeyEvent, rng model.DateRange) []model.KeyEvent {
	if !rng.Complete() {
		return events
	}
	var out []model.KeyEvent
	for _, e := range events {
		if rng.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}
