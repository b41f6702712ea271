package schedule

import (
	"context"
	"time"
)

// Counts holds totals for the dashboard.
type Counts struct {
	Events    int
	Resources int
}

// Repository defines the storage interface for events, resources and
// allocations. Implementations return nil (not an error) for lookups of
// rows that do not exist; mutations of missing rows return the matching
// not-found sentinel.
type Repository interface {
	// CreateEvent adds a new event and fills in its ID.
	CreateEvent(ctx context.Context, e *Event) error

	// GetEvent retrieves an event by ID. Returns nil, nil if not found.
	GetEvent(ctx context.Context, id int64) (*Event, error)

	// ListEvents returns all events ordered by start time.
	ListEvents(ctx context.Context) ([]*Event, error)

	// UpdateEvent rewrites an event's name, description and interval.
	// Returns ErrEventNotFound if the row does not exist.
	UpdateEvent(ctx context.Context, e *Event) error

	// DeleteEvent removes an event and, via cascade, its allocations.
	DeleteEvent(ctx context.Context, id int64) error

	// UpcomingEvents returns up to limit events ending at or after now,
	// soonest first.
	UpcomingEvents(ctx context.Context, now time.Time, limit int) ([]*Event, error)

	// CreateResource adds a new resource and fills in its ID.
	CreateResource(ctx context.Context, r *Resource) error

	// GetResource retrieves a resource by ID. Returns nil, nil if not found.
	GetResource(ctx context.Context, id int64) (*Resource, error)

	// ListResources returns all resources ordered by name.
	ListResources(ctx context.Context) ([]*Resource, error)

	// UpdateResource rewrites a resource's name and category.
	// Returns ErrResourceNotFound if the row does not exist.
	UpdateResource(ctx context.Context, r *Resource) error

	// DeleteResource removes a resource and, via cascade, its allocations.
	DeleteResource(ctx context.Context, id int64) error

	// CreateAllocation binds a resource to an event.
	// Returns ErrDuplicateAllocation if the pair already exists.
	CreateAllocation(ctx context.Context, eventID, resourceID int64) (*Allocation, error)

	// DeleteAllocation removes the binding between an event and a resource.
	// Returns ErrAllocationNotFound if no such binding exists.
	DeleteAllocation(ctx context.Context, eventID, resourceID int64) error

	// ListAllocationsByEvent returns the allocations of one event.
	ListAllocationsByEvent(ctx context.Context, eventID int64) ([]*Allocation, error)

	// ReplaceEventAllocations swaps an event's allocation set atomically.
	ReplaceEventAllocations(ctx context.Context, eventID int64, resourceIDs []int64) error

	// ListBookingsByResource returns all bookings of a resource ordered by
	// event start time.
	ListBookingsByResource(ctx context.Context, resourceID int64) ([]Booking, error)

	// ListBookingsByResourceInRange returns the bookings of a resource whose
	// intervals intersect [from, to), ordered by event start time.
	ListBookingsByResourceInRange(ctx context.Context, resourceID int64, from, to time.Time) ([]Booking, error)

	// ListAllBookings returns every booking across all resources, ordered by
	// resource id then event start time. Input for the conflict audit.
	ListAllBookings(ctx context.Context) ([]Booking, error)

	// Counts returns total event and resource counts for the dashboard.
	Counts(ctx context.Context) (Counts, error)

	// Close releases any resources held by the repository.
	Close() error
}
