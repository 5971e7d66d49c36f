package filter

import (
	"github.com/campusboard/calendar/internal/storage"
)

// Apply narrows events to the active category set, preserving order.
//
// An empty active set means "no filter" and returns the input unchanged.
// This mirrors how category toggles behave in the calendar UI: nothing
// selected shows everything, it does NOT mean "select none". Do not invert
// this convention.
func Apply(events []storage.Event, active []storage.Category) []storage.Event {
	if len(active) == 0 {
		return events
	}

	set := make(map[storage.Category]struct{}, len(active))
	for _, c := range active {
		set[c] = struct{}{}
	}

	filtered := make([]storage.Event, 0, len(events))
	for _, e := range events {
		if _, ok := set[e.Category]; ok {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
