package behavior

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/wayfinderhq/wayfinder-coach/internal/storage"
)

// ErrNoActiveSession is returned when ending a session with none open.
var ErrNoActiveSession = errors.New("no active session")

// Session groups the events that occurred between a start and an end.
type Session struct {
	SessionID string     `json:"session_id"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	Searches     []SearchEvent     `json:"searches"`
	FileAccesses []FileAccessEvent `json:"file_accesses"`
	Navigations  []NavigationEvent `json:"navigation"`
	Decisions    []DecisionEvent   `json:"decisions"`
}

// Store is the behavior tracking engine.
//
// The full event log is loaded into memory at construction; every record
// call appends to memory and durably to the backend. Queries are pure and
// operate over the in-memory log. A failed load falls back silently to an
// empty store.
type Store struct {
	backend storage.Backend
	now     func() time.Time

	searches     []SearchEvent
	fileAccesses []FileAccessEvent
	navigations  []NavigationEvent
	decisions    []DecisionEvent

	sessions []Session
	current  *Session

	counters storage.Counters
}

// NewStore creates a store backed by the given backend.
//
// now defaults to time.Now when nil. The backend is initialized here; an
// open session left by a previous process is resumed.
func NewStore(backend storage.Backend, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{backend: backend, now: now}

	if err := backend.Init(); err != nil {
		log.Printf("Warning: behavior storage initialization failed: %v", err)
	}
	s.load()
	return s
}

// load rebuilds the in-memory log from the backend.
func (s *Store) load() {
	records, err := s.backend.LoadEvents()
	if err != nil {
		log.Printf("Warning: failed to load events: %v", err)
		records = nil
	}
	for _, rec := range records {
		event, err := decodeEvent(Kind(rec.Kind), rec.Payload)
		if err != nil {
			log.Printf("Warning: skipping undecodable %s event: %v", rec.Kind, err)
			continue
		}
		s.keep(event)
	}

	sessionRecs, err := s.backend.LoadSessions()
	if err != nil {
		log.Printf("Warning: failed to load sessions: %v", err)
		sessionRecs = nil
	}
	for _, rec := range sessionRecs {
		sess := Session{
			SessionID: rec.SessionID,
			StartTime: rec.StartTime,
			EndTime:   rec.EndTime,
		}
		s.attachEvents(&sess)
		if rec.EndTime == nil {
			s.current = &sess
		} else {
			s.sessions = append(s.sessions, sess)
		}
	}

	s.counters, err = s.backend.LoadCounters()
	if err != nil {
		log.Printf("Warning: failed to load counters: %v", err)
		s.counters = storage.Counters{}
	}
}

// keep appends an event to the per-kind in-memory slices.
func (s *Store) keep(event Event) {
	switch e := event.(type) {
	case SearchEvent:
		s.searches = append(s.searches, e)
	case FileAccessEvent:
		s.fileAccesses = append(s.fileAccesses, e)
	case NavigationEvent:
		s.navigations = append(s.navigations, e)
	case DecisionEvent:
		s.decisions = append(s.decisions, e)
	}
}

// attachEvents rebuilds a session's owned event lists from the log.
func (s *Store) attachEvents(sess *Session) {
	for _, e := range s.searches {
		if e.SessionID == sess.SessionID {
			sess.Searches = append(sess.Searches, e)
		}
	}
	for _, e := range s.fileAccesses {
		if e.SessionID == sess.SessionID {
			sess.FileAccesses = append(sess.FileAccesses, e)
		}
	}
	for _, e := range s.navigations {
		if e.SessionID == sess.SessionID {
			sess.Navigations = append(sess.Navigations, e)
		}
	}
	for _, e := range s.decisions {
		if e.SessionID == sess.SessionID {
			sess.Decisions = append(sess.Decisions, e)
		}
	}
}

// StartSession starts a new tracking session and returns its ID.
//
// An already-open session is ended first so at most one stays open.
func (s *Store) StartSession() string {
	if s.current != nil {
		if _, err := s.EndSession(); err != nil {
			log.Printf("Warning: failed to end previous session: %v", err)
		}
	}

	now := s.now()
	sess := &Session{
		SessionID: uuid.NewString(),
		StartTime: now,
	}
	s.current = sess

	if s.counters.FirstSeen == nil {
		first := now
		s.counters.FirstSeen = &first
	}
	last := now
	s.counters.LastSeen = &last

	s.persistSession(sess)
	s.persistCounters()
	return sess.SessionID
}

// EndSession closes the current session and flushes it into history.
func (s *Store) EndSession() (*Session, error) {
	if s.current == nil {
		return nil, ErrNoActiveSession
	}

	end := s.now()
	s.current.EndTime = &end
	ended := *s.current
	s.sessions = append(s.sessions, ended)
	s.current = nil

	s.persistSession(&ended)
	return &ended, nil
}

// CurrentSession returns the open session, or nil.
func (s *Store) CurrentSession() *Session {
	return s.current
}

// Sessions returns the closed session history.
func (s *Store) Sessions() []Session {
	return s.sessions
}

// ensureSession lazily opens a session when an event arrives with none open.
func (s *Store) ensureSession() *Session {
	if s.current == nil {
		s.StartSession()
	}
	return s.current
}

// RecordSearch records a search event. Timestamp and session are stamped
// by the store; an immediate durable write follows.
func (s *Store) RecordSearch(e SearchEvent) {
	sess := s.ensureSession()
	e.Timestamp = s.now()
	e.SessionID = sess.SessionID

	sess.Searches = append(sess.Searches, e)
	s.searches = append(s.searches, e)

	s.counters.TotalSearches++
	if e.ClickedResult != "" {
		s.counters.SuccessfulSearches++
	}

	s.persistEvent(e)
	s.persistCounters()
}

// RecordFileAccess records a file access event.
func (s *Store) RecordFileAccess(e FileAccessEvent) {
	sess := s.ensureSession()
	e.Timestamp = s.now()
	e.SessionID = sess.SessionID
	if e.FileType == "" {
		e.FileType = fileTypeOf(e.FilePath)
	}

	sess.FileAccesses = append(sess.FileAccesses, e)
	s.fileAccesses = append(s.fileAccesses, e)

	s.counters.TotalFilesAccessed++
	if e.AccessType == AccessRename {
		s.counters.RenamesPerformed++
	}

	s.persistEvent(e)
	s.persistCounters()
}

// RecordNavigation records a folder navigation event.
func (s *Store) RecordNavigation(e NavigationEvent) {
	sess := s.ensureSession()
	e.Timestamp = s.now()
	e.SessionID = sess.SessionID

	sess.Navigations = append(sess.Navigations, e)
	s.navigations = append(s.navigations, e)

	s.persistEvent(e)
	s.persistCounters()
}

// RecordDecision records an organizational decision event.
func (s *Store) RecordDecision(e DecisionEvent) {
	sess := s.ensureSession()
	e.Timestamp = s.now()
	e.SessionID = sess.SessionID

	sess.Decisions = append(sess.Decisions, e)
	s.decisions = append(s.decisions, e)

	switch e.DecisionType {
	case DecisionApprove, DecisionFolderChoice:
		s.counters.SuggestionsAccepted++
	case DecisionReject:
		s.counters.SuggestionsRejected++
	case DecisionCustomName:
		s.counters.SuggestionsCustomized++
	}

	s.persistEvent(e)
	s.persistCounters()
}

// SearchEvents returns the full search log.
func (s *Store) SearchEvents() []SearchEvent { return s.searches }

// FileAccessEvents returns the full file access log.
func (s *Store) FileAccessEvents() []FileAccessEvent { return s.fileAccesses }

// NavigationEvents returns the full navigation log.
func (s *Store) NavigationEvents() []NavigationEvent { return s.navigations }

// DecisionEvents returns the full decision log.
func (s *Store) DecisionEvents() []DecisionEvent { return s.decisions }

// Counters returns the cumulative stat counters.
func (s *Store) Counters() storage.Counters { return s.counters }

// ClearAll wipes all tracked data (privacy feature).
func (s *Store) ClearAll() {
	s.searches = nil
	s.fileAccesses = nil
	s.navigations = nil
	s.decisions = nil
	s.sessions = nil
	s.current = nil
	s.counters = storage.Counters{}

	if err := s.backend.Reset(); err != nil {
		log.Printf("Warning: failed to reset storage: %v", err)
	}
}

// ExportData is a full backup of the tracked behavior.
type ExportData struct {
	Searches     []SearchEvent     `json:"searches"`
	FileAccesses []FileAccessEvent `json:"file_accesses"`
	Navigations  []NavigationEvent `json:"navigation"`
	Decisions    []DecisionEvent   `json:"decisions"`
	Sessions     []Session         `json:"sessions"`
	Counters     storage.Counters  `json:"stats"`
	ExportedAt   time.Time         `json:"exported_at"`
}

// Export returns all tracked data for backup.
func (s *Store) Export() ExportData {
	return ExportData{
		Searches:     s.searches,
		FileAccesses: s.fileAccesses,
		Navigations:  s.navigations,
		Decisions:    s.decisions,
		Sessions:     s.sessions,
		Counters:     s.counters,
		ExportedAt:   s.now(),
	}
}

// Summary is a condensed view of tracked behavior.
type Summary struct {
	TotalSearches        int                     `json:"total_searches"`
	SearchSuccessRate    float64                 `json:"search_success_rate"`
	FilesAccessed        int                     `json:"files_accessed"`
	Renames              int                     `json:"renames"`
	SuggestionAcceptance SuggestionEffectiveness `json:"suggestion_acceptance"`
	NamingPreferences    NamingPreferences       `json:"naming_preferences"`
	FirstSeen            *time.Time              `json:"first_seen,omitempty"`
	LastSeen             *time.Time              `json:"last_seen,omitempty"`
	DaysActive           int                     `json:"days_active"`
}

// Summarize returns a summary of tracked behavior.
func (s *Store) Summarize() Summary {
	total := s.counters.TotalSearches
	successRate := 0.0
	if total > 0 {
		successRate = float64(s.counters.SuccessfulSearches) / float64(total)
	}

	days := 0
	if s.counters.FirstSeen != nil && s.counters.LastSeen != nil {
		days = int(s.counters.LastSeen.Sub(*s.counters.FirstSeen).Hours()/24) + 1
	}

	return Summary{
		TotalSearches:        total,
		SearchSuccessRate:    successRate,
		FilesAccessed:        s.counters.TotalFilesAccessed,
		Renames:              s.counters.RenamesPerformed,
		SuggestionAcceptance: s.SuggestionEffectiveness(),
		NamingPreferences:    s.NamingPreferences(),
		FirstSeen:            s.counters.FirstSeen,
		LastSeen:             s.counters.LastSeen,
		DaysActive:           days,
	}
}

// persistEvent writes one event durably to the backend.
func (s *Store) persistEvent(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Warning: failed to encode %s event: %v", event.EventKind(), err)
		return
	}
	rec := storage.EventRecord{
		Kind:      string(event.EventKind()),
		Timestamp: event.When(),
		SessionID: event.Session(),
		Payload:   payload,
	}
	if err := s.backend.AppendEvent(rec); err != nil {
		log.Printf("Warning: failed to persist event: %v", err)
	}
}

// persistSession writes a session row durably to the backend.
func (s *Store) persistSession(sess *Session) {
	rec := storage.SessionRecord{
		SessionID: sess.SessionID,
		StartTime: sess.StartTime,
		EndTime:   sess.EndTime,
	}
	if err := s.backend.SaveSession(rec); err != nil {
		log.Printf("Warning: failed to persist session: %v", err)
	}
}

// persistCounters writes the cumulative counters durably to the backend.
func (s *Store) persistCounters() {
	if err := s.backend.SaveCounters(s.counters); err != nil {
		log.Printf("Warning: failed to persist counters: %v", err)
	}
}
