package memorystorage_test

import (
	"context"
	"testing"
	"time"

	"github.com/campusboard/calendar/internal/storage"
	memorystorage "github.com/campusboard/calendar/internal/storage/memory"
	"github.com/stretchr/testify/require"
)

var initDate = time.Date(2025, 4, 22, 0, 0, 0, 0, time.UTC)

func newEvent(title string, start, end time.Time) storage.Event {
	return storage.Event{
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Category:  storage.CategoryAssignment,
	}
}

func TestStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("add event", func(t *testing.T) {
		s := memorystorage.New()
		e := newEvent("test", initDate.Add(10*time.Hour), initDate.Add(11*time.Hour))

		require.NoError(t, s.AddEvent(ctx, &e))
		require.NotEmpty(t, e.ID)
		require.NotNil(t, e.SharedWith)
		require.Empty(t, e.SharedWith)

		events, err := s.QueryRange(ctx, initDate, initDate.Add(24*time.Hour))
		require.NoError(t, err)
		require.Equal(t, 1, len(events))
		require.Equal(t, e, events[0])
	})

	t.Run("zero duration event", func(t *testing.T) {
		s := memorystorage.New()
		e := newEvent("reminder", initDate.Add(9*time.Hour), initDate.Add(9*time.Hour))

		require.NoError(t, s.AddEvent(ctx, &e))
	})

	t.Run("update event", func(t *testing.T) {
		s := memorystorage.New()
		e := newEvent("test", initDate.Add(10*time.Hour), initDate.Add(11*time.Hour))
		require.NoError(t, s.AddEvent(ctx, &e))

		e.Title = "updated title"
		e.StartTime = e.StartTime.Add(30 * time.Minute)
		e.Description = "updated description"

		updated, err := s.UpdateEvent(ctx, e.ID, e)
		require.NoError(t, err)
		require.Equal(t, e, updated)

		got, err := s.GetEvent(ctx, e.ID)
		require.NoError(t, err)
		require.Equal(t, e, got)
	})

	t.Run("update keeps shares and creation order", func(t *testing.T) {
		s := memorystorage.New()
		e := newEvent("test", initDate.Add(10*time.Hour), initDate.Add(11*time.Hour))
		require.NoError(t, s.AddEvent(ctx, &e))

		shares := []storage.Share{{RecipientID: "s1", Status: storage.SharePending}}
		require.NoError(t, s.SetShares(ctx, e.ID, shares))

		patch := e
		patch.Title = "renamed"
		patch.SharedWith = nil

		updated, err := s.UpdateEvent(ctx, e.ID, patch)
		require.NoError(t, err)
		require.Equal(t, shares, updated.SharedWith)
		require.Equal(t, e.Seq, updated.Seq)
	})

	t.Run("delete event", func(t *testing.T) {
		s := memorystorage.New()
		e := newEvent("test", initDate.Add(10*time.Hour), initDate.Add(11*time.Hour))
		require.NoError(t, s.AddEvent(ctx, &e))

		require.NoError(t, s.RemoveEvent(ctx, e.ID))

		events, err := s.QueryRange(ctx, initDate, initDate.Add(24*time.Hour))
		require.NoError(t, err)
		require.Equal(t, 0, len(events))
	})

	t.Run("query range intersection", func(t *testing.T) {
		s := memorystorage.New()
		overnight := newEvent("overnight", initDate.Add(23*time.Hour), initDate.Add(25*time.Hour))
		before := newEvent("before", initDate.Add(-2*time.Hour), initDate.Add(-time.Hour))
		require.NoError(t, s.AddEvent(ctx, &overnight))
		require.NoError(t, s.AddEvent(ctx, &before))

		day1End := initDate.Add(24*time.Hour - time.Nanosecond)
		events, err := s.QueryRange(ctx, initDate, day1End)
		require.NoError(t, err)
		require.Equal(t, 1, len(events))
		require.Equal(t, "overnight", events[0].Title)

		day2 := initDate.AddDate(0, 0, 1)
		events, err = s.QueryRange(ctx, day2, day2.Add(24*time.Hour-time.Nanosecond))
		require.NoError(t, err)
		require.Equal(t, 1, len(events))
		require.Equal(t, "overnight", events[0].Title)

		// touching the range boundary counts as intersection
		events, err = s.QueryRange(ctx, initDate.Add(25*time.Hour), initDate.Add(30*time.Hour))
		require.NoError(t, err)
		require.Equal(t, 1, len(events))
	})

	t.Run("query by categories", func(t *testing.T) {
		s := memorystorage.New()
		exam := newEvent("exam", initDate.Add(10*time.Hour), initDate.Add(11*time.Hour))
		exam.Category = storage.CategoryExam
		quiz := newEvent("quiz", initDate.Add(12*time.Hour), initDate.Add(13*time.Hour))
		require.NoError(t, s.AddEvent(ctx, &exam))
		require.NoError(t, s.AddEvent(ctx, &quiz))

		events, err := s.QueryRange(ctx, initDate, initDate.Add(24*time.Hour), storage.CategoryExam)
		require.NoError(t, err)
		require.Equal(t, 1, len(events))
		require.Equal(t, "exam", events[0].Title)
	})

	t.Run("query ordering", func(t *testing.T) {
		s := memorystorage.New()
		second := newEvent("second", initDate.Add(12*time.Hour), initDate.Add(13*time.Hour))
		first := newEvent("first", initDate.Add(10*time.Hour), initDate.Add(11*time.Hour))
		tied := newEvent("tied", initDate.Add(12*time.Hour), initDate.Add(14*time.Hour))
		require.NoError(t, s.AddEvent(ctx, &second))
		require.NoError(t, s.AddEvent(ctx, &first))
		require.NoError(t, s.AddEvent(ctx, &tied))

		events, err := s.QueryRange(ctx, initDate, initDate.Add(24*time.Hour))
		require.NoError(t, err)
		require.Equal(t, 3, len(events))
		require.Equal(t, "first", events[0].Title)
		require.Equal(t, "second", events[1].Title)
		require.Equal(t, "tied", events[2].Title)
	})
}

func TestStorageNegativeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("add event with same id", func(t *testing.T) {
		s := memorystorage.New()
		e := newEvent("test", initDate.Add(10*time.Hour), initDate.Add(11*time.Hour))
		require.NoError(t, s.AddEvent(ctx, &e))

		dup := newEvent("dup", initDate.Add(10*time.Hour), initDate.Add(11*time.Hour))
		dup.ID = e.ID
		require.ErrorIs(t, s.AddEvent(ctx, &dup), storage.ErrDuplicateEventID)
	})

	t.Run("invalid events are rejected", func(t *testing.T) {
		tests := []struct {
			name  string
			event storage.Event
		}{
			{name: "blank title", event: newEvent("   ", initDate, initDate.Add(time.Hour))},
			{name: "end before start", event: newEvent("test", initDate.Add(time.Hour), initDate)},
			{name: "unknown category", event: storage.Event{
				Title:     "test",
				StartTime: initDate,
				EndTime:   initDate.Add(time.Hour),
				Category:  "party",
			}},
		}
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				s := memorystorage.New()
				e := tt.event
				require.ErrorIs(t, s.AddEvent(ctx, &e), storage.ErrValidation)

				events, err := s.QueryRange(ctx, initDate.AddDate(0, 0, -1), initDate.AddDate(0, 0, 1))
				require.NoError(t, err)
				require.Empty(t, events)
			})
		}
	})

	t.Run("failed update leaves event unchanged", func(t *testing.T) {
		s := memorystorage.New()
		e := newEvent("test", initDate.Add(10*time.Hour), initDate.Add(11*time.Hour))
		require.NoError(t, s.AddEvent(ctx, &e))

		patch := e
		patch.Title = ""
		_, err := s.UpdateEvent(ctx, e.ID, patch)
		require.ErrorIs(t, err, storage.ErrValidation)

		got, err := s.GetEvent(ctx, e.ID)
		require.NoError(t, err)
		require.Equal(t, e, got)
	})

	t.Run("update not exist event", func(t *testing.T) {
		s := memorystorage.New()
		e := newEvent("test", initDate, initDate.Add(time.Hour))
		_, err := s.UpdateEvent(ctx, "___not_exists___", e)
		require.ErrorIs(t, err, storage.ErrNotFoundEvent)
	})

	t.Run("delete not exist event", func(t *testing.T) {
		s := memorystorage.New()
		require.ErrorIs(t, s.RemoveEvent(ctx, "___not_exists___"), storage.ErrNotFoundEvent)
	})

	t.Run("get not exist event", func(t *testing.T) {
		s := memorystorage.New()
		_, err := s.GetEvent(ctx, "___not_exists___")
		require.ErrorIs(t, err, storage.ErrNotFoundEvent)
	})

	t.Run("set shares of not exist event", func(t *testing.T) {
		s := memorystorage.New()
		err := s.SetShares(ctx, "___not_exists___", []storage.Share{})
		require.ErrorIs(t, err, storage.ErrNotFoundEvent)
	})
}
