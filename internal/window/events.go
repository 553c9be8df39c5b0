package window

import (
	"time"

	"RegimeBoard/internal/model"
)

// DefaultEventWindowDays is how far from a change point a key event may lie and still be linked.
const DefaultEventWindowDays = 30

// LinkEvents pairs every resolved change point with the key event closest to it in calendar days,
// provided the distance is at most windowDays. On a tie the event listed first wins. Change points
// with no event in reach are kept with a nil Event. Dates that do not parse never link.
func LinkEvents(resolved []model.ResolvedChangePoint, events []model.KeyEvent, windowDays int) []model.ChangePointEvent {
	if len(resolved) == 0 {
		return nil
	}
	eventDays := make([]*time.Time, len(events))
	for i, e := range events {
		if t, ok := parseDay(e.Date); ok {
			eventDays[i] = &t
		}
	}

	links := make([]model.ChangePointEvent, 0, len(resolved))
	for _, cp := range resolved {
		link := model.ChangePointEvent{ChangePoint: cp}
		cpDay, ok := parseDay(cp.Date)
		if ok {
			best := -1
			bestDays := 0
			for i, day := range eventDays {
				if day == nil {
					continue
				}
				d := daysBetween(cpDay, *day)
				if d > windowDays {
					continue
				}
				if best < 0 || d < bestDays {
					best, bestDays = i, d
				}
			}
			if best >= 0 {
				event := events[best]
				days := bestDays
				link.Event = &event
				link.DaysApart = &days
			}
		}
		links = append(links, link)
	}
	return links
}

func parseDay(date string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", model.DateOnly(date))
	return t, err == nil
}

// daysBetween is the absolute distance in whole days.
func daysBetween(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
