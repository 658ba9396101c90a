package storage

import (
	"database/sql"
	"log"
)

// AppendEvent durably appends one event to the log.
func (s *SQLiteBackend) AppendEvent(rec EventRecord) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO events (kind, timestamp, session_id, payload)
		VALUES (?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		rec.Kind,
		formatTime(rec.Timestamp),
		rec.SessionID,
		string(rec.Payload),
	)
	if err != nil {
		log.Printf("Warning: failed to append event: %v", err)
	}
	return nil
}

// LoadEvents returns the full event log in append order.
func (s *SQLiteBackend) LoadEvents() ([]EventRecord, error) {
	if !s.enabled || s.db == nil {
		return []EventRecord{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT kind, timestamp, session_id, payload
		FROM events
		ORDER BY id ASC
	`)
	if err != nil {
		log.Printf("Warning: failed to query events: %v", err)
		return []EventRecord{}, nil
	}
	defer rows.Close()

	var records []EventRecord
	for rows.Next() {
		var rec EventRecord
		var timestampStr, payload string

		if err := rows.Scan(&rec.Kind, &timestampStr, &rec.SessionID, &payload); err != nil {
			log.Printf("Warning: failed to scan event row: %v", err)
			continue
		}

		rec.Timestamp, err = parseTime(timestampStr)
		if err != nil {
			log.Printf("Warning: failed to parse event timestamp: %v", err)
			continue
		}
		rec.Payload = []byte(payload)

		records = append(records, rec)
	}

	return records, nil
}

// SaveSession inserts or updates a session row.
func (s *SQLiteBackend) SaveSession(rec SessionRecord) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var endTime interface{}
	if rec.EndTime != nil {
		endTime = formatTime(*rec.EndTime)
	}

	query := `
		INSERT INTO sessions (session_id, start_time, end_time)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET end_time = excluded.end_time
	`
	_, err := s.db.Exec(query, rec.SessionID, formatTime(rec.StartTime), endTime)
	if err != nil {
		log.Printf("Warning: failed to save session: %v", err)
	}
	return nil
}

// LoadSessions returns all sessions ordered by start time.
func (s *SQLiteBackend) LoadSessions() ([]SessionRecord, error) {
	if !s.enabled || s.db == nil {
		return []SessionRecord{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT session_id, start_time, end_time
		FROM sessions
		ORDER BY start_time ASC
	`)
	if err != nil {
		log.Printf("Warning: failed to query sessions: %v", err)
		return []SessionRecord{}, nil
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var startStr string
		var endStr sql.NullString

		if err := rows.Scan(&rec.SessionID, &startStr, &endStr); err != nil {
			log.Printf("Warning: failed to scan session row: %v", err)
			continue
		}

		rec.StartTime, err = parseTime(startStr)
		if err != nil {
			log.Printf("Warning: failed to parse session start: %v", err)
			continue
		}
		if endStr.Valid {
			end, err := parseTime(endStr.String)
			if err != nil {
				log.Printf("Warning: failed to parse session end: %v", err)
			} else {
				rec.EndTime = &end
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

// SaveCounters persists the cumulative stat counters.
func (s *SQLiteBackend) SaveCounters(c Counters) error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var firstSeen, lastSeen interface{}
	if c.FirstSeen != nil {
		firstSeen = formatTime(*c.FirstSeen)
	}
	if c.LastSeen != nil {
		lastSeen = formatTime(*c.LastSeen)
	}

	query := `
		INSERT INTO counters (
			id, total_searches, successful_searches, total_files_accessed,
			renames_performed, suggestions_accepted, suggestions_rejected,
			suggestions_customized, first_seen, last_seen
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			total_searches = excluded.total_searches,
			successful_searches = excluded.successful_searches,
			total_files_accessed = excluded.total_files_accessed,
			renames_performed = excluded.renames_performed,
			suggestions_accepted = excluded.suggestions_accepted,
			suggestions_rejected = excluded.suggestions_rejected,
			suggestions_customized = excluded.suggestions_customized,
			first_seen = excluded.first_seen,
			last_seen = excluded.last_seen
	`
	_, err := s.db.Exec(query,
		c.TotalSearches,
		c.SuccessfulSearches,
		c.TotalFilesAccessed,
		c.RenamesPerformed,
		c.SuggestionsAccepted,
		c.SuggestionsRejected,
		c.SuggestionsCustomized,
		firstSeen,
		lastSeen,
	)
	if err != nil {
		log.Printf("Warning: failed to save counters: %v", err)
	}
	return nil
}

// LoadCounters returns the persisted counters, zero-valued if absent.
func (s *SQLiteBackend) LoadCounters() (Counters, error) {
	var c Counters
	if !s.enabled || s.db == nil {
		return c, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`
		SELECT total_searches, successful_searches, total_files_accessed,
			renames_performed, suggestions_accepted, suggestions_rejected,
			suggestions_customized, first_seen, last_seen
		FROM counters WHERE id = 1
	`)

	var firstSeen, lastSeen sql.NullString
	err := row.Scan(
		&c.TotalSearches,
		&c.SuccessfulSearches,
		&c.TotalFilesAccessed,
		&c.RenamesPerformed,
		&c.SuggestionsAccepted,
		&c.SuggestionsRejected,
		&c.SuggestionsCustomized,
		&firstSeen,
		&lastSeen,
	)
	if err == sql.ErrNoRows {
		return c, nil
	}
	if err != nil {
		log.Printf("Warning: failed to load counters: %v", err)
		return Counters{}, nil
	}

	if firstSeen.Valid {
		if t, err := parseTime(firstSeen.String); err == nil {
			c.FirstSeen = &t
		}
	}
	if lastSeen.Valid {
		if t, err := parseTime(lastSeen.String); err == nil {
			c.LastSeen = &t
		}
	}

	return c, nil
}
