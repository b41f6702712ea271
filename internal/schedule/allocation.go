package schedule

import "time"

// Allocation binds one Resource to one Event for the event's duration.
// Its effective time interval is always the event's [Start, End).
type Allocation struct {
	ID         int64
	EventID    int64
	ResourceID int64
	CreatedAt  time.Time
}

// Booking is an allocation joined with its event's name and time interval.
// It is the read model both core computations operate on.
type Booking struct {
	AllocationID int64
	EventID      int64
	EventName    string
	ResourceID   int64
	Interval     Interval
}
