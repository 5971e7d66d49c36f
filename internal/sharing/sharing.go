package sharing

import (
	"context"
	"fmt"

	"github.com/campusboard/calendar/internal/storage"
)

// Manager is the share state machine. Shares start as pending and may
// transition once, to accepted or declined. There is at most one share per
// (event, recipient) pair; re-inviting an existing recipient is reported as
// skipped, never duplicated.
type Manager struct {
	storage storage.Storage
}

func New(s storage.Storage) *Manager {
	return &Manager{storage: s}
}

// Result reports the outcome of a Share call. Skipped recipients already
// had a share on the event and were left untouched.
type Result struct {
	Added   []storage.Share `json:"added"`
	Skipped []string        `json:"skipped"`
}

func (m *Manager) Share(ctx context.Context, eventID string, recipientIDs []string) (Result, error) {
	event, err := m.storage.GetEvent(ctx, eventID)
	if err != nil {
		return Result{}, err
	}

	result := Result{Added: []storage.Share{}, Skipped: []string{}}
	shares := event.SharedWith
	seen := make(map[string]struct{}, len(shares))
	for _, s := range shares {
		seen[s.RecipientID] = struct{}{}
	}

	for _, recipientID := range recipientIDs {
		if _, ok := seen[recipientID]; ok {
			result.Skipped = append(result.Skipped, recipientID)
			continue
		}
		seen[recipientID] = struct{}{}
		share := storage.Share{RecipientID: recipientID, Status: storage.SharePending}
		shares = append(shares, share)
		result.Added = append(result.Added, share)
	}

	if len(result.Added) == 0 {
		return result, nil
	}
	if err := m.storage.SetShares(ctx, eventID, shares); err != nil {
		return Result{}, err
	}
	return result, nil
}

// Respond applies a recipient's decision. Only pending shares can be
// resolved, responding to an accepted or declined share fails with
// ErrInvalidTransition and leaves the share as it was.
func (m *Manager) Respond(
	ctx context.Context,
	eventID string,
	recipientID string,
	decision storage.ShareStatus,
) (storage.Share, error) {
	if decision != storage.ShareAccepted && decision != storage.ShareDeclined {
		return storage.Share{}, storage.NewValidationError(storage.FieldError{
			Field:   "decision",
			Message: fmt.Sprintf("must be %q or %q", storage.ShareAccepted, storage.ShareDeclined),
		})
	}

	event, err := m.storage.GetEvent(ctx, eventID)
	if err != nil {
		return storage.Share{}, err
	}

	shares := event.SharedWith
	for i, s := range shares {
		if s.RecipientID != recipientID {
			continue
		}
		if s.Status != storage.SharePending {
			return storage.Share{}, fmt.Errorf(
				"share of event %q for %q is %s: %w",
				eventID, recipientID, s.Status, storage.ErrInvalidTransition)
		}
		shares[i].Status = decision
		if err := m.storage.SetShares(ctx, eventID, shares); err != nil {
			return storage.Share{}, err
		}
		return shares[i], nil
	}
	return storage.Share{}, fmt.Errorf(
		"no share of event %q for %q: %w", eventID, recipientID, storage.ErrNotFoundShare)
}

// SharedRecipients lists an event's shares, optionally narrowed by status.
func (m *Manager) SharedRecipients(
	ctx context.Context,
	eventID string,
	status ...storage.ShareStatus,
) ([]storage.Share, error) {
	event, err := m.storage.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(status) == 0 {
		return event.SharedWith, nil
	}

	shares := make([]storage.Share, 0, len(event.SharedWith))
	for _, s := range event.SharedWith {
		for _, st := range status {
			if s.Status == st {
				shares = append(shares, s)
				break
			}
		}
	}
	return shares, nil
}
