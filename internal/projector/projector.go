package projector

import (
	"sort"
	"time"

	"github.com/campusboard/calendar/internal/storage"
	"github.com/campusboard/calendar/internal/timewindow"
	"github.com/campusboard/calendar/internal/util"
)

// DayBucket holds the events visible on one calendar day. Hidden counts
// events cut off by the per-day display limit.
type DayBucket struct {
	Date   time.Time       `json:"date"`
	Events []storage.Event `json:"events"`
	Hidden int             `json:"hidden,omitempty"`
}

type HourBucket struct {
	Hour   int             `json:"hour"`
	Events []storage.Event `json:"events"`
}

type Projection struct {
	Window timewindow.Window `json:"-"`
	// Days is populated for month and week windows.
	Days []DayBucket `json:"days,omitempty"`
	// Hours is populated for day windows, one bucket per hour 0-23.
	Hours []HourBucket `json:"hours,omitempty"`
}

// Projector maps events onto the buckets of a window. It is a pure
// read-side transform, inputs are never mutated and repeated calls with
// the same arguments produce the same projection.
type Projector struct {
	// MaxEventsPerDay truncates day bucket event lists for display.
	// Zero means no limit.
	MaxEventsPerDay int
}

func (p Projector) Project(w timewindow.Window, events []storage.Event) Projection {
	ordered := make([]storage.Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].StartTime.Equal(ordered[j].StartTime) {
			return ordered[i].StartTime.Before(ordered[j].StartTime)
		}
		return ordered[i].Seq < ordered[j].Seq
	})

	if w.Granularity == timewindow.Day {
		return Projection{Window: w, Hours: p.projectHours(w, ordered)}
	}
	return Projection{Window: w, Days: p.projectDays(w, ordered)}
}

// projectDays assigns each event to every day it overlaps, so a multi-day
// event shows up on each of its days.
func (p Projector) projectDays(w timewindow.Window, events []storage.Event) []DayBucket {
	buckets := make([]DayBucket, 0, len(w.Days))
	for _, day := range w.Days {
		bucket := DayBucket{Date: day, Events: []storage.Event{}}
		dayEnd := util.EndOfDay(day)
		for _, e := range events {
			if e.Overlaps(day, dayEnd) {
				bucket.Events = append(bucket.Events, e)
			}
		}
		if p.MaxEventsPerDay > 0 && len(bucket.Events) > p.MaxEventsPerDay {
			bucket.Hidden = len(bucket.Events) - p.MaxEventsPerDay
			bucket.Events = bucket.Events[:p.MaxEventsPerDay]
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

// projectHours shows each event once, in the bucket of its start hour. An
// event that started before the displayed day lands in the first bucket.
func (p Projector) projectHours(w timewindow.Window, events []storage.Event) []HourBucket {
	buckets := make([]HourBucket, 24)
	for h := range buckets {
		buckets[h] = HourBucket{Hour: h, Events: []storage.Event{}}
	}
	for _, e := range events {
		if !e.Overlaps(w.Start, w.End) {
			continue
		}
		hour := 0
		if !e.StartTime.Before(w.Start) {
			hour = e.StartTime.Hour()
		}
		buckets[hour].Events = append(buckets[hour].Events, e)
	}
	return buckets
}
