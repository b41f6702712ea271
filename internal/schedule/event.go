// Package schedule defines the core domain types for planbook.
package schedule

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidInterval = errors.New("start time must be before end time")
	ErrInvalidCategory = errors.New("category must be 'room', 'instructor' or 'equipment'")
)

// Domain errors.
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrAllocationNotFound  = errors.New("allocation not found")
	ErrDuplicateAllocation = errors.New("resource already allocated to event")
)

// Event represents a scheduled happening that may occupy shared resources
// for its whole duration.
type Event struct {
	ID          int64
	Name        string
	Description string
	Start       time.Time // UTC
	End         time.Time // UTC
	CreatedAt   time.Time
}

// NewEvent creates an Event with validation.
// start must be strictly before end; both are normalized to UTC.
func NewEvent(name, description string, start, end time.Time) (*Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	iv, err := NewInterval(start, end)
	if err != nil {
		return nil, err
	}

	return &Event{
		Name:        name,
		Description: description,
		Start:       iv.Start,
		End:         iv.End,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Interval returns the event's occupancy interval [Start, End).
func (e *Event) Interval() Interval {
	return Interval{Start: e.Start, End: e.End}
}

// DurationHours returns the event length in fractional hours.
func (e *Event) DurationHours() float64 {
	return e.Interval().Hours()
}
