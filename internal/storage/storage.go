package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrDuplicateEventID  = errors.New("event with same ID exists")
	ErrNotFoundEvent     = errors.New("event not found")
	ErrNotFoundShare     = errors.New("share not found")
	ErrInvalidTransition = errors.New("share is already resolved")
	ErrDuplicateShare    = errors.New("recipient already invited")
	ErrValidation        = errors.New("invalid event")
)

// FieldError points a validation failure at a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field failures and matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ValidateEvent checks the invariants every committed event must hold:
// non-blank title, start <= end (equal start and end is a zero-duration
// reminder and is allowed), known category.
func ValidateEvent(e Event) error {
	var fields []FieldError
	if strings.TrimSpace(e.Title) == "" {
		fields = append(fields, FieldError{Field: "title", Message: "must not be empty"})
	}
	if e.StartTime.After(e.EndTime) {
		fields = append(fields, FieldError{Field: "endTime", Message: "must not be before startTime"})
	}
	if !e.Category.Valid() {
		fields = append(fields, FieldError{Field: "category", Message: fmt.Sprintf("unknown category %q", e.Category)})
	}
	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

type Storage interface {
	AddEvent(ctx context.Context, e *Event) error
	UpdateEvent(ctx context.Context, id string, e Event) (Event, error)
	RemoveEvent(ctx context.Context, id string) error
	GetEvent(ctx context.Context, id string) (Event, error)
	// QueryRange returns events intersecting the inclusive range [from:to],
	// optionally narrowed to the given categories, ordered by start time
	// and then by creation order.
	QueryRange(ctx context.Context, from, to time.Time, categories ...Category) ([]Event, error)
	// SetShares replaces the share list of an event. Share invariants are
	// owned by the sharing package, storage only persists the result.
	SetShares(ctx context.Context, id string, shares []Share) error
}
