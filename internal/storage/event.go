package storage

import (
	"time"
)

type ShareStatus string

const (
	SharePending  ShareStatus = "pending"
	ShareAccepted ShareStatus = "accepted"
	ShareDeclined ShareStatus = "declined"
)

// Share is one invitation of an event to one recipient. Shares are never
// deleted, only transitioned out of pending.
type Share struct {
	RecipientID string      `json:"recipientId"`
	Status      ShareStatus `json:"status"`
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Category    Category  `json:"category"`
	Course      string    `json:"course,omitempty"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	SharedWith  []Share   `json:"sharedWith"`

	// Seq is the creation order assigned by the storage, used as a
	// deterministic tie-break when events start at the same time.
	Seq int64 `json:"-"`
}

// Overlaps reports whether the event intersects the inclusive range
// [from:to]. Partial overlap counts, an event spanning midnight belongs
// to both affected days.
func (e Event) Overlaps(from, to time.Time) bool {
	return !e.StartTime.After(to) && !e.EndTime.Before(from)
}

// FindShare returns the share for the recipient, if any.
func (e Event) FindShare(recipientID string) (Share, bool) {
	for _, s := range e.SharedWith {
		if s.RecipientID == recipientID {
			return s, true
		}
	}
	return Share{}, false
}
