package db

import "fmt"

func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			start_time  DATETIME NOT NULL,
			end_time    DATETIME NOT NULL,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			CHECK(start_time < end_time)
		);

		CREATE TABLE IF NOT EXISTS resources (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL,
			category   TEXT NOT NULL CHECK(category IN ('room', 'instructor', 'equipment')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS allocations (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id    INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
			resource_id INTEGER NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(event_id, resource_id)
		);

		CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_time);
		CREATE INDEX IF NOT EXISTS idx_allocations_resource ON allocations(resource_id);
		CREATE INDEX IF NOT EXISTS idx_allocations_event ON allocations(event_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
