package app

import (
	"context"
	"time"

	"github.com/campusboard/calendar/internal/editor"
	"github.com/campusboard/calendar/internal/filter"
	"github.com/campusboard/calendar/internal/projector"
	"github.com/campusboard/calendar/internal/sharing"
	"github.com/campusboard/calendar/internal/storage"
	"github.com/campusboard/calendar/internal/timewindow"
)

type Config struct {
	WeekStart       time.Weekday
	DefaultCategory storage.Category
	MaxEventsPerDay int
}

// App ties the engine together: drafts go through the editor into the
// store, calendar queries go store -> filter -> projector, share mutations
// go through the sharing state machine.
type App struct {
	Storage   storage.Storage
	Sharing   *sharing.Manager
	Editor    *editor.Editor
	Calc      timewindow.Calculator
	Projector projector.Projector
}

func New(stor storage.Storage, config Config) *App {
	category := config.DefaultCategory
	if category == "" {
		category = storage.CategoryReminder
	}
	return &App{
		Storage:   stor,
		Sharing:   sharing.New(stor),
		Editor:    editor.New(category),
		Calc:      timewindow.Calculator{FirstWeekDay: config.WeekStart},
		Projector: projector.Projector{MaxEventsPerDay: config.MaxEventsPerDay},
	}
}

func (a *App) CreateEvent(ctx context.Context, d editor.Draft) (storage.Event, error) {
	e, err := a.Editor.Normalize(d)
	if err != nil {
		return storage.Event{}, err
	}
	if err := a.Storage.AddEvent(ctx, &e); err != nil {
		return storage.Event{}, err
	}
	return e, nil
}

func (a *App) UpdateEvent(ctx context.Context, id string, d editor.Draft) (storage.Event, error) {
	e, err := a.Editor.Normalize(d)
	if err != nil {
		return storage.Event{}, err
	}
	return a.Storage.UpdateEvent(ctx, id, e)
}

func (a *App) RemoveEvent(ctx context.Context, id string) error {
	return a.Storage.RemoveEvent(ctx, id)
}

func (a *App) GetEvent(ctx context.Context, id string) (storage.Event, error) {
	return a.Storage.GetEvent(ctx, id)
}

// Calendar computes the window for the anchor, queries the overlapping
// events, applies the active category filter and projects the result into
// day or hour buckets.
func (a *App) Calendar(
	ctx context.Context,
	anchor time.Time,
	g timewindow.Granularity,
	active []storage.Category,
) (projector.Projection, error) {
	window, err := a.Calc.Compute(anchor, g)
	if err != nil {
		return projector.Projection{}, err
	}
	events, err := a.Storage.QueryRange(ctx, window.Start, window.End)
	if err != nil {
		return projector.Projection{}, err
	}
	return a.Projector.Project(window, filter.Apply(events, active)), nil
}

func (a *App) ShareEvent(ctx context.Context, eventID string, recipientIDs []string) (sharing.Result, error) {
	return a.Sharing.Share(ctx, eventID, recipientIDs)
}

func (a *App) RespondShare(
	ctx context.Context,
	eventID, recipientID string,
	decision storage.ShareStatus,
) (storage.Share, error) {
	return a.Sharing.Respond(ctx, eventID, recipientID, decision)
}

func (a *App) SharedRecipients(
	ctx context.Context,
	eventID string,
	status ...storage.ShareStatus,
) ([]storage.Share, error) {
	return a.Sharing.SharedRecipients(ctx, eventID, status...)
}
