/*
Package storage implements the persistent record behind the behavior store.

This package provides SQLite-based storage for behavior events, sessions,
and cumulative stat counters with graceful degradation if the database is
unavailable: a failed open or a corrupt file disables the backend, reads
return empty results, writes become no-ops, and the engine keeps working
on an empty in-memory store.

The database lives at <data-dir>/behavior.db and uses modernc.org/sqlite
(a pure Go, CGo-free implementation).
*/
package storage

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "behavior.db"

// Backend defines the interface for persistent storage operations.
type Backend interface {
	// Init initializes the database and runs migrations.
	Init() error

	// AppendEvent durably appends one event to the log.
	AppendEvent(rec EventRecord) error

	// LoadEvents returns the full event log in append order.
	LoadEvents() ([]EventRecord, error)

	// SaveSession inserts or updates a session row.
	SaveSession(rec SessionRecord) error

	// LoadSessions returns all sessions ordered by start time.
	LoadSessions() ([]SessionRecord, error)

	// SaveCounters persists the cumulative stat counters.
	SaveCounters(c Counters) error

	// LoadCounters returns the persisted counters, zero-valued if absent.
	LoadCounters() (Counters, error)

	// Reset deletes all events, sessions, and counters.
	Reset() error

	// Close closes the database connection.
	Close() error
}

// SQLiteBackend implements Backend using SQLite.
type SQLiteBackend struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	mu       sync.Mutex
	initOnce sync.Once
}

// NewBackend creates a SQLite backend rooted at dataDir.
//
// The directory is created if missing. If the database cannot be opened
// later during Init, the backend is disabled but operations will not fail.
func NewBackend(dataDir string) *SQLiteBackend {
	return &SQLiteBackend{
		dbPath:  filepath.Join(dataDir, dbFileName),
		enabled: true,
	}
}

// Init initializes the database and runs migrations.
//
// If initialization fails, storage is disabled and subsequent operations
// become no-ops (graceful degradation).
func (s *SQLiteBackend) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		if err := os.MkdirAll(filepath.Dir(s.dbPath), 0755); err != nil {
			initErr = fmt.Errorf("failed to create data directory: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.enabled = false
			log.Printf("Warning: %v", initErr)
			return
		}
	})

	return initErr
}

// Close closes the database connection.
func (s *SQLiteBackend) Close() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	s.db = nil
	return nil
}

// Reset deletes all events, sessions, and counters (privacy wipe).
func (s *SQLiteBackend) Reset() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"events", "sessions", "counters"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// formatTime renders a timestamp for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime reads a stored timestamp, tolerating second precision.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Parse(time.RFC3339, s)
	}
	return t, nil
}
