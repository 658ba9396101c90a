/*
Package storage provides data models for the persisted behavior record.

These models are the wire form of what the behavior store keeps on disk:
typed events (as kind + JSON payload), user sessions, and the cumulative
stat counters maintained across sessions.
*/
package storage

import "time"

// EventRecord is a single behavior event as persisted.
//
// The event kinds form a closed set; the payload is the JSON encoding of
// the concrete event struct owned by the behavior package. Keeping the
// payload opaque here lets all four kinds share one append-only table.
type EventRecord struct {
	// Kind identifies the event variant ("search", "file_access",
	// "navigation", "decision").
	Kind string `json:"kind"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// SessionID is the session the event belongs to.
	SessionID string `json:"session_id"`

	// Payload is the JSON-encoded event body.
	Payload []byte `json:"payload"`
}

// SessionRecord is a user session as persisted.
//
// A session with a nil EndTime is still open; at most one such row exists
// and it is resumed when the store is reloaded.
type SessionRecord struct {
	// SessionID uniquely identifies the session.
	SessionID string `json:"session_id"`

	// StartTime is when the session was started.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the session ended, or nil if still open.
	EndTime *time.Time `json:"end_time,omitempty"`
}

// Counters holds the cumulative stat counters derived from the event log.
//
// They are maintained incrementally on every record call so summaries do
// not require a full scan of the log.
type Counters struct {
	TotalSearches         int `json:"total_searches"`
	SuccessfulSearches    int `json:"successful_searches"`
	TotalFilesAccessed    int `json:"total_files_accessed"`
	RenamesPerformed      int `json:"renames_performed"`
	SuggestionsAccepted   int `json:"suggestions_accepted"`
	SuggestionsRejected   int `json:"suggestions_rejected"`
	SuggestionsCustomized int `json:"suggestions_customized"`

	// FirstSeen and LastSeen bracket the user's activity.
	FirstSeen *time.Time `json:"first_seen,omitempty"`
	LastSeen  *time.Time `json:"last_seen,omitempty"`
}
