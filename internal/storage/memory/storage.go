package memorystorage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/campusboard/calendar/internal/storage"
	"github.com/google/uuid"
)

type Storage struct {
	mu   sync.RWMutex
	data map[string]storage.Event
	seq  int64
}

func New() *Storage {
	return &Storage{data: make(map[string]storage.Event)}
}

func (s *Storage) AddEvent(_ context.Context, e *storage.Event) error {
	if err := storage.ValidateEvent(*e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	} else if _, ok := s.data[e.ID]; ok {
		return fmt.Errorf("duplicate ID %q: %w", e.ID, storage.ErrDuplicateEventID)
	}
	s.seq++
	e.Seq = s.seq
	if e.SharedWith == nil {
		e.SharedWith = []storage.Share{}
	}
	s.data[e.ID] = *e
	return nil
}

// UpdateEvent replaces the editable fields of an event. The share list and
// creation order are kept from the stored event, shares change only through
// SetShares. A failed validation leaves the storage untouched.
func (s *Storage) UpdateEvent(_ context.Context, id string, e storage.Event) (storage.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.data[id]
	if !ok {
		return storage.Event{}, fmt.Errorf("failed to update event with id %q: %w", id, storage.ErrNotFoundEvent)
	}

	e.ID = id
	e.Seq = current.Seq
	e.SharedWith = current.SharedWith
	if err := storage.ValidateEvent(e); err != nil {
		return storage.Event{}, err
	}
	s.data[id] = e
	return copyEvent(e), nil
}

func (s *Storage) RemoveEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[id]; !ok {
		return fmt.Errorf("failed to remove event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	delete(s.data, id)
	return nil
}

func (s *Storage) GetEvent(_ context.Context, id string) (storage.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[id]
	if !ok {
		return storage.Event{}, fmt.Errorf("failed to get event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	return copyEvent(e), nil
}

func (s *Storage) QueryRange(
	_ context.Context,
	from, to time.Time,
	categories ...storage.Category,
) ([]storage.Event, error) {
	events := make([]storage.Event, 0)
	s.mu.RLock()
	for _, event := range s.data {
		if !event.Overlaps(from, to) {
			continue
		}
		if len(categories) > 0 && !containsCategory(categories, event.Category) {
			continue
		}
		events = append(events, copyEvent(event))
	}
	s.mu.RUnlock()

	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartTime.Equal(events[j].StartTime) {
			return events[i].StartTime.Before(events[j].StartTime)
		}
		return events[i].Seq < events[j].Seq
	})
	return events, nil
}

func (s *Storage) SetShares(_ context.Context, id string, shares []storage.Share) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.data[id]
	if !ok {
		return fmt.Errorf("failed to set shares of event with id %q: %w", id, storage.ErrNotFoundEvent)
	}
	copied := make([]storage.Share, len(shares))
	copy(copied, shares)
	e.SharedWith = copied
	s.data[id] = e
	return nil
}

func containsCategory(categories []storage.Category, c storage.Category) bool {
	for _, candidate := range categories {
		if candidate == c {
			return true
		}
	}
	return false
}

// copyEvent detaches the share slice so callers never alias stored state.
func copyEvent(e storage.Event) storage.Event {
	shares := make([]storage.Share, len(e.SharedWith))
	copy(shares, e.SharedWith)
	e.SharedWith = shares
	return e
}
