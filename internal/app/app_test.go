package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/campusboard/calendar/internal/app"
	"github.com/campusboard/calendar/internal/editor"
	"github.com/campusboard/calendar/internal/storage"
	memorystorage "github.com/campusboard/calendar/internal/storage/memory"
	"github.com/campusboard/calendar/internal/timewindow"
	"github.com/stretchr/testify/require"
)

func newApp() *app.App {
	return app.New(memorystorage.New(), app.Config{
		WeekStart:       time.Sunday,
		DefaultCategory: storage.CategoryReminder,
	})
}

func TestCalendarScenario(t *testing.T) {
	ctx := context.Background()
	calendar := newApp()

	quiz, err := calendar.CreateEvent(ctx, editor.Draft{
		Title:      "Quiz",
		Date:       "2025-04-22",
		StartClock: "10:00",
		EndClock:   "11:00",
		Category:   "assignment",
	})
	require.NoError(t, err)
	require.NotEmpty(t, quiz.ID)

	later, err := calendar.CreateEvent(ctx, editor.Draft{
		Title:      "Office hours",
		Date:       "2025-04-22",
		StartClock: "15:00",
		EndClock:   "16:00",
		Category:   "liveSession",
	})
	require.NoError(t, err)

	anchor := time.Date(2025, 4, 22, 0, 0, 0, 0, time.Local)

	t.Run("day query returns the event", func(t *testing.T) {
		p, err := calendar.Calendar(ctx, anchor, timewindow.Day, nil)
		require.NoError(t, err)
		require.Equal(t, 1, len(p.Hours[10].Events))
		require.Equal(t, quiz.ID, p.Hours[10].Events[0].ID)
	})

	t.Run("month window buckets the day in order", func(t *testing.T) {
		p, err := calendar.Calendar(ctx, anchor, timewindow.Month, nil)
		require.NoError(t, err)
		require.Equal(t, 30, len(p.Days))

		bucket := p.Days[21] // April 22
		require.Equal(t, 22, bucket.Date.Day())
		require.Equal(t, 2, len(bucket.Events))
		require.Equal(t, quiz.ID, bucket.Events[0].ID)
		require.Equal(t, later.ID, bucket.Events[1].ID)
	})

	t.Run("category filter narrows the projection", func(t *testing.T) {
		p, err := calendar.Calendar(ctx, anchor, timewindow.Month, []storage.Category{storage.CategoryExam})
		require.NoError(t, err)
		require.Empty(t, p.Days[21].Events)
	})

	t.Run("share then respond", func(t *testing.T) {
		result, err := calendar.ShareEvent(ctx, quiz.ID, []string{"s1", "s2"})
		require.NoError(t, err)
		require.Equal(t, 2, len(result.Added))

		result, err = calendar.ShareEvent(ctx, quiz.ID, []string{"s1"})
		require.NoError(t, err)
		require.Empty(t, result.Added)
		require.Equal(t, []string{"s1"}, result.Skipped)

		share, err := calendar.RespondShare(ctx, quiz.ID, "s2", storage.ShareDeclined)
		require.NoError(t, err)
		require.Equal(t, storage.ShareDeclined, share.Status)

		_, err = calendar.RespondShare(ctx, quiz.ID, "s2", storage.ShareAccepted)
		require.ErrorIs(t, err, storage.ErrInvalidTransition)

		shares, err := calendar.SharedRecipients(ctx, quiz.ID)
		require.NoError(t, err)
		require.Equal(t, 2, len(shares))
	})

	t.Run("update revalidates before commit", func(t *testing.T) {
		_, err := calendar.UpdateEvent(ctx, quiz.ID, editor.Draft{
			Title:      "  ",
			Date:       "2025-04-22",
			StartClock: "10:00",
			EndClock:   "11:00",
		})
		require.ErrorIs(t, err, storage.ErrValidation)

		got, err := calendar.GetEvent(ctx, quiz.ID)
		require.NoError(t, err)
		require.Equal(t, "Quiz", got.Title)
	})

	t.Run("remove event", func(t *testing.T) {
		require.NoError(t, calendar.RemoveEvent(ctx, later.ID))
		require.ErrorIs(t, calendar.RemoveEvent(ctx, later.ID), storage.ErrNotFoundEvent)
	})
}
