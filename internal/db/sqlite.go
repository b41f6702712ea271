// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dmreiter/planbook/internal/schedule"
)

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// Cascade deletes on allocations depend on this pragma.
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateEvent adds a new event and fills in its ID.
func (s *SQLite) CreateEvent(ctx context.Context, e *schedule.Event) error {
	query := `
		INSERT INTO events (name, description, start_time, end_time, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		e.Name,
		e.Description,
		e.Start.UTC().Format(time.RFC3339),
		e.End.UTC().Format(time.RFC3339),
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	e.ID = id

	return nil
}

// GetEvent retrieves an event by ID. Returns nil, nil if not found.
func (s *SQLite) GetEvent(ctx context.Context, id int64) (*schedule.Event, error) {
	query := `
		SELECT id, name, description, start_time, end_time, created_at
		FROM events
		WHERE id = ?
	`

	e, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return e, nil
}

// ListEvents returns all events ordered by start time.
func (s *SQLite) ListEvents(ctx context.Context) ([]*schedule.Event, error) {
	query := `
		SELECT id, name, description, start_time, end_time, created_at
		FROM events
		ORDER BY start_time, id
	`
	return s.queryEvents(ctx, query)
}

// UpcomingEvents returns up to limit events ending at or after now, soonest first.
func (s *SQLite) UpcomingEvents(ctx context.Context, now time.Time, limit int) ([]*schedule.Event, error) {
	query := `
		SELECT id, name, description, start_time, end_time, created_at
		FROM events
		WHERE end_time >= ?
		ORDER BY start_time, id
		LIMIT ?
	`
	return s.queryEvents(ctx, query, now.UTC().Format(time.RFC3339), limit)
}

// UpdateEvent rewrites an event's name, description and interval.
func (s *SQLite) UpdateEvent(ctx context.Context, e *schedule.Event) error {
	query := `UPDATE events SET name = ?, description = ?, start_time = ?, end_time = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		e.Name,
		e.Description,
		e.Start.UTC().Format(time.RFC3339),
		e.End.UTC().Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return schedule.ErrEventNotFound
	}

	return nil
}

// DeleteEvent removes an event; its allocations go with it via cascade.
func (s *SQLite) DeleteEvent(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return schedule.ErrEventNotFound
	}

	return nil
}

// CreateResource adds a new resource and fills in its ID.
func (s *SQLite) CreateResource(ctx context.Context, r *schedule.Resource) error {
	query := `INSERT INTO resources (name, category, created_at) VALUES (?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		r.Name,
		r.Category,
		r.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	r.ID = id

	return nil
}

// GetResource retrieves a resource by ID. Returns nil, nil if not found.
func (s *SQLite) GetResource(ctx context.Context, id int64) (*schedule.Resource, error) {
	query := `SELECT id, name, category, created_at FROM resources WHERE id = ?`

	var (
		r         schedule.Resource
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Name, &r.Category, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying resource: %w", err)
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &r, nil
}

// ListResources returns all resources ordered by name.
func (s *SQLite) ListResources(ctx context.Context) ([]*schedule.Resource, error) {
	query := `SELECT id, name, category, created_at FROM resources ORDER BY name, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying resources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var resources []*schedule.Resource
	for rows.Next() {
		var (
			r         schedule.Resource
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning resource: %w", err)
		}
		r.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		resources = append(resources, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}

	return resources, nil
}

// UpdateResource rewrites a resource's name and category.
func (s *SQLite) UpdateResource(ctx context.Context, r *schedule.Resource) error {
	query := `UPDATE resources SET name = ?, category = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, r.Name, r.Category, r.ID)
	if err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return schedule.ErrResourceNotFound
	}

	return nil
}

// DeleteResource removes a resource; its allocations go with it via cascade.
func (s *SQLite) DeleteResource(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting resource: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return schedule.ErrResourceNotFound
	}

	return nil
}

// CreateAllocation binds a resource to an event.
func (s *SQLite) CreateAllocation(ctx context.Context, eventID, resourceID int64) (*schedule.Allocation, error) {
	query := `INSERT INTO allocations (event_id, resource_id, created_at) VALUES (?, ?, ?)`

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, query, eventID, resourceID, now.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, schedule.ErrDuplicateAllocation
		}
		return nil, fmt.Errorf("inserting allocation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	return &schedule.Allocation{
		ID:         id,
		EventID:    eventID,
		ResourceID: resourceID,
		CreatedAt:  now,
	}, nil
}

// DeleteAllocation removes the binding between an event and a resource.
func (s *SQLite) DeleteAllocation(ctx context.Context, eventID, resourceID int64) error {
	query := `DELETE FROM allocations WHERE event_id = ? AND resource_id = ?`

	result, err := s.db.ExecContext(ctx, query, eventID, resourceID)
	if err != nil {
		return fmt.Errorf("deleting allocation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return schedule.ErrAllocationNotFound
	}

	return nil
}

// ListAllocationsByEvent returns the allocations of one event.
func (s *SQLite) ListAllocationsByEvent(ctx context.Context, eventID int64) ([]*schedule.Allocation, error) {
	query := `
		SELECT id, event_id, resource_id, created_at
		FROM allocations
		WHERE event_id = ?
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("querying allocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var allocations []*schedule.Allocation
	for rows.Next() {
		var (
			a         schedule.Allocation
			createdAt string
		)
		if err := rows.Scan(&a.ID, &a.EventID, &a.ResourceID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning allocation: %w", err)
		}
		a.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}
		allocations = append(allocations, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocations: %w", err)
	}

	return allocations, nil
}

// ReplaceEventAllocations swaps an event's allocation set atomically.
func (s *SQLite) ReplaceEventAllocations(ctx context.Context, eventID int64, resourceIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM allocations WHERE event_id = ?`, eventID); err != nil {
		return fmt.Errorf("clearing allocations: %w", err)
	}

	query := `INSERT INTO allocations (event_id, resource_id, created_at) VALUES (?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, rid := range resourceIDs {
		if _, err := stmt.ExecContext(ctx, eventID, rid, now); err != nil {
			if isUniqueViolation(err) {
				return schedule.ErrDuplicateAllocation
			}
			return fmt.Errorf("inserting allocation for resource %d: %w", rid, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ListBookingsByResource returns all bookings of a resource ordered by event start.
func (s *SQLite) ListBookingsByResource(ctx context.Context, resourceID int64) ([]schedule.Booking, error) {
	query := `
		SELECT a.id, a.event_id, e.name, a.resource_id, e.start_time, e.end_time
		FROM allocations a
		JOIN events e ON e.id = a.event_id
		WHERE a.resource_id = ?
		ORDER BY e.start_time, a.id
	`
	return s.queryBookings(ctx, query, resourceID)
}

// ListBookingsByResourceInRange returns the bookings of a resource whose
// intervals intersect [from, to). The filter uses the same half-open overlap
// rule as the conflict detector: start_time < to AND end_time > from.
func (s *SQLite) ListBookingsByResourceInRange(ctx context.Context, resourceID int64, from, to time.Time) ([]schedule.Booking, error) {
	query := `
		SELECT a.id, a.event_id, e.name, a.resource_id, e.start_time, e.end_time
		FROM allocations a
		JOIN events e ON e.id = a.event_id
		WHERE a.resource_id = ?
		  AND e.start_time < ?
		  AND e.end_time > ?
		ORDER BY e.start_time, a.id
	`
	return s.queryBookings(ctx, query,
		resourceID,
		to.UTC().Format(time.RFC3339),
		from.UTC().Format(time.RFC3339),
	)
}

// ListAllBookings returns every booking across all resources, ordered by
// resource id then event start.
func (s *SQLite) ListAllBookings(ctx context.Context) ([]schedule.Booking, error) {
	query := `
		SELECT a.id, a.event_id, e.name, a.resource_id, e.start_time, e.end_time
		FROM allocations a
		JOIN events e ON e.id = a.event_id
		ORDER BY a.resource_id, e.start_time, a.id
	`
	return s.queryBookings(ctx, query)
}

// Counts returns total event and resource counts for the dashboard.
func (s *SQLite) Counts(ctx context.Context) (schedule.Counts, error) {
	var c schedule.Counts
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&c.Events); err != nil {
		return schedule.Counts{}, fmt.Errorf("counting events: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&c.Resources); err != nil {
		return schedule.Counts{}, fmt.Errorf("counting resources: %w", err)
	}
	return c, nil
}

func (s *SQLite) queryEvents(ctx context.Context, query string, args ...any) ([]*schedule.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*schedule.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

func (s *SQLite) queryBookings(ctx context.Context, query string, args ...any) ([]schedule.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bookings []schedule.Booking
	for rows.Next() {
		var (
			b          schedule.Booking
			start, end string
		)
		if err := rows.Scan(&b.AllocationID, &b.EventID, &b.EventName, &b.ResourceID, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}

		b.Interval.Start, err = parseTime(start)
		if err != nil {
			return nil, fmt.Errorf("parsing start time: %w", err)
		}
		b.Interval.End, err = parseTime(end)
		if err != nil {
			return nil, fmt.Errorf("parsing end time: %w", err)
		}

		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}

	return bookings, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*schedule.Event, error) {
	var (
		e          schedule.Event
		start, end string
		createdAt  string
	)

	err := row.Scan(&e.ID, &e.Name, &e.Description, &start, &end, &createdAt)
	if err != nil {
		return nil, err
	}

	e.Start, err = parseTime(start)
	if err != nil {
		return nil, fmt.Errorf("parsing start time: %w", err)
	}
	e.End, err = parseTime(end)
	if err != nil {
		return nil, fmt.Errorf("parsing end time: %w", err)
	}
	e.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	return &e, nil
}

// parseTime parses a timestamp in the formats SQLite might return.
// All stored values are UTC instants.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}

// isUniqueViolation detects a UNIQUE constraint failure from the driver.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
