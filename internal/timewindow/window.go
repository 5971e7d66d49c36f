package timewindow

import (
	"errors"
	"fmt"
	"time"

	"github.com/campusboard/calendar/internal/util"
)

var ErrUnknownGranularity = errors.New("unknown granularity")

type Granularity string

const (
	Month Granularity = "month"
	Week  Granularity = "week"
	Day   Granularity = "day"
)

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case Month, Week, Day:
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGranularity, s)
	}
}

// Window is the inclusive display range derived from an anchor date and a
// granularity, plus the ordered days inside it. It is recomputed on every
// query and never stored.
type Window struct {
	Granularity Granularity
	Anchor      time.Time
	Start       time.Time
	End         time.Time
	Days        []time.Time
}

// Calculator derives windows. The zero value uses the default week start
// (Sunday).
type Calculator struct {
	FirstWeekDay time.Weekday
}

func (c Calculator) Compute(anchor time.Time, g Granularity) (Window, error) {
	w := Window{Granularity: g, Anchor: anchor}
	switch g {
	case Month:
		w.Start = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		w.End = util.EndOfDay(w.Start.AddDate(0, 1, -1))
	case Week:
		day := util.TruncateToDay(anchor)
		back := (int(day.Weekday()) - int(c.FirstWeekDay) + 7) % 7
		w.Start = day.AddDate(0, 0, -back)
		w.End = util.EndOfDay(w.Start.AddDate(0, 0, 6))
	case Day:
		w.Start = util.TruncateToDay(anchor)
		w.End = util.EndOfDay(anchor)
	default:
		return Window{}, fmt.Errorf("%w: %q", ErrUnknownGranularity, g)
	}

	for day := w.Start; !day.After(w.End); day = day.AddDate(0, 0, 1) {
		w.Days = append(w.Days, day)
	}
	return w, nil
}

// Next shifts the anchor forward by exactly one granularity unit. Month
// arithmetic pins the anchor to the first day of the month so that a
// Jan 31 anchor lands in February, not March.
func Next(anchor time.Time, g Granularity) time.Time {
	switch g {
	case Month:
		return firstOfMonth(anchor).AddDate(0, 1, 0)
	case Week:
		return anchor.AddDate(0, 0, 7)
	default:
		return anchor.AddDate(0, 0, 1)
	}
}

// Previous shifts the anchor backward by exactly one granularity unit.
func Previous(anchor time.Time, g Granularity) time.Time {
	switch g {
	case Month:
		return firstOfMonth(anchor).AddDate(0, -1, 0)
	case Week:
		return anchor.AddDate(0, 0, -7)
	default:
		return anchor.AddDate(0, 0, -1)
	}
}

// Today resets the anchor to the current date.
func Today() time.Time {
	return util.TruncateToDay(time.Now())
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
