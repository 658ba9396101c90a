/*
Package storage provides SQLite database migrations.

This file contains schema definitions and migration logic for the
behavior record: events, sessions, and counters.
*/
package storage

import (
	"fmt"
	"log"
)

// runMigrations executes database schema migrations.
func (s *SQLiteBackend) runMigrations() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	if err := s.createMigrationsTable(); err != nil {
		return err
	}

	version, err := s.currentMigrationVersion()
	if err != nil {
		return err
	}

	migrations := []migration{
		{version: 1, name: "initial_schema", up: s.migration001InitialSchema},
	}

	for _, m := range migrations {
		if version < m.version {
			log.Printf("Running migration %d: %s", m.version, m.name)
			if err := m.up(); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
			if err := s.setMigrationVersion(m.version); err != nil {
				return err
			}
		}
	}

	return nil
}

// migration represents a single database migration.
type migration struct {
	version int
	name    string
	up      func() error
}

// createMigrationsTable creates the schema_migrations table.
func (s *SQLiteBackend) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`
	_, err := s.db.Exec(query)
	return err
}

// currentMigrationVersion returns the highest applied migration version.
func (s *SQLiteBackend) currentMigrationVersion() (int, error) {
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")

	var version int
	if err := row.Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// setMigrationVersion records a migration as applied.
func (s *SQLiteBackend) setMigrationVersion(version int) error {
	query := "INSERT INTO schema_migrations (version, name) VALUES (?, ?)"
	_, err := s.db.Exec(query, version, fmt.Sprintf("migration_%d", version))
	return err
}

// migration001InitialSchema creates the initial database schema.
func (s *SQLiteBackend) migration001InitialSchema() error {
	// Append-only event log. All four event kinds share this table;
	// the payload is the JSON encoding of the concrete event.
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			session_id TEXT NOT NULL,
			payload TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_events_kind
		ON events(kind)
	`); err != nil {
		return fmt.Errorf("failed to create events kind index: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_events_timestamp
		ON events(timestamp DESC)
	`); err != nil {
		return fmt.Errorf("failed to create events timestamp index: %w", err)
	}

	// Sessions; the row with NULL end_time is the open session.
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			start_time TEXT NOT NULL,
			end_time TEXT
		)
	`); err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}

	// Single-row cumulative counters.
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS counters (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			total_searches INTEGER NOT NULL DEFAULT 0,
			successful_searches INTEGER NOT NULL DEFAULT 0,
			total_files_accessed INTEGER NOT NULL DEFAULT 0,
			renames_performed INTEGER NOT NULL DEFAULT 0,
			suggestions_accepted INTEGER NOT NULL DEFAULT 0,
			suggestions_rejected INTEGER NOT NULL DEFAULT 0,
			suggestions_customized INTEGER NOT NULL DEFAULT 0,
			first_seen TEXT,
			last_seen TEXT
		)
	`); err != nil {
		return fmt.Errorf("failed to create counters table: %w", err)
	}

	return nil
}
