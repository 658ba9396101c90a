/*
Package behavior provides tests for the behavior store.
*/
package behavior

import (
	"errors"
	"testing"
	"time"

	"github.com/wayfinderhq/wayfinder-coach/internal/storage"
)

// testClock is a settable clock for deterministic timestamps.
type testClock struct {
	current time.Time
}

func newTestClock() *testClock {
	return &testClock{current: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) now() time.Time {
	return c.current
}

func (c *testClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

// newTestStore creates a store over a fresh temp-dir backend.
func newTestStore(t *testing.T, clock *testClock) *Store {
	t.Helper()
	backend := storage.NewBackend(t.TempDir())
	store := NewStore(backend, clock.now)
	t.Cleanup(func() { backend.Close() })
	return store
}

// TestSessionLifecycle verifies start, end, and the no-session error.
func TestSessionLifecycle(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	if store.CurrentSession() != nil {
		t.Fatal("expected no session on a fresh store")
	}

	id := store.StartSession()
	if id == "" {
		t.Fatal("StartSession returned empty ID")
	}
	if store.CurrentSession() == nil || store.CurrentSession().SessionID != id {
		t.Fatal("current session not set")
	}

	clock.advance(10 * time.Minute)
	ended, err := store.EndSession()
	if err != nil {
		t.Fatalf("EndSession failed: %v", err)
	}
	if ended.SessionID != id {
		t.Errorf("expected ended session %s, got %s", id, ended.SessionID)
	}
	if ended.EndTime == nil || !ended.EndTime.After(ended.StartTime) {
		t.Errorf("end time not set after start: %+v", ended)
	}
	if store.CurrentSession() != nil {
		t.Error("session still current after end")
	}
	if len(store.Sessions()) != 1 {
		t.Errorf("expected 1 closed session, got %d", len(store.Sessions()))
	}

	if _, err := store.EndSession(); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("expected ErrNoActiveSession, got %v", err)
	}
}

// TestStartSessionEndsPrevious verifies at most one session stays open.
func TestStartSessionEndsPrevious(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	first := store.StartSession()
	clock.advance(time.Minute)
	second := store.StartSession()

	if first == second {
		t.Fatal("expected distinct session IDs")
	}
	if store.CurrentSession().SessionID != second {
		t.Errorf("expected %s current, got %s", second, store.CurrentSession().SessionID)
	}
	if len(store.Sessions()) != 1 || store.Sessions()[0].SessionID != first {
		t.Errorf("expected first session closed into history")
	}
}

// TestRecordAutoSession verifies events open a session lazily.
func TestRecordAutoSession(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	store.RecordSearch(SearchEvent{Query: "budget", ResultsCount: 3, ClickedResult: "budget.xlsx"})

	sess := store.CurrentSession()
	if sess == nil {
		t.Fatal("expected auto-started session")
	}
	if len(sess.Searches) != 1 {
		t.Fatalf("expected 1 search in session, got %d", len(sess.Searches))
	}
	if sess.Searches[0].SessionID != sess.SessionID {
		t.Error("event not stamped with session ID")
	}
	if !sess.Searches[0].Timestamp.Equal(clock.now()) {
		t.Error("event not stamped with store clock")
	}
}

// TestCounters verifies cumulative counter updates across event kinds.
func TestCounters(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	store.RecordSearch(SearchEvent{Query: "a", ClickedResult: "a.md"})
	store.RecordSearch(SearchEvent{Query: "b"})
	store.RecordFileAccess(FileAccessEvent{FilePath: "a.md", AccessType: AccessOpen})
	store.RecordFileAccess(FileAccessEvent{FilePath: "a.md", AccessType: AccessRename, NewName: "meeting_a.md"})
	store.RecordDecision(DecisionEvent{DecisionType: DecisionApprove, UserValue: "x"})
	store.RecordDecision(DecisionEvent{DecisionType: DecisionReject, UserValue: "y"})
	store.RecordDecision(DecisionEvent{DecisionType: DecisionCustomName, UserValue: "z"})
	store.RecordDecision(DecisionEvent{DecisionType: DecisionFolderChoice, UserValue: "/docs/Reports"})

	c := store.Counters()
	if c.TotalSearches != 2 || c.SuccessfulSearches != 1 {
		t.Errorf("search counters wrong: %+v", c)
	}
	if c.TotalFilesAccessed != 2 || c.RenamesPerformed != 1 {
		t.Errorf("file counters wrong: %+v", c)
	}
	// Folder choices count as accepted suggestions.
	if c.SuggestionsAccepted != 2 || c.SuggestionsRejected != 1 || c.SuggestionsCustomized != 1 {
		t.Errorf("decision counters wrong: %+v", c)
	}
}

// TestFileAccessTypeDerived verifies the file type falls back to the
// extension when not supplied.
func TestFileAccessTypeDerived(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	store.RecordFileAccess(FileAccessEvent{FilePath: "/docs/Notes.MD", AccessType: AccessOpen})

	accesses := store.FileAccessEvents()
	if len(accesses) != 1 {
		t.Fatalf("expected 1 access, got %d", len(accesses))
	}
	if accesses[0].FileType != ".md" {
		t.Errorf("expected derived file type .md, got %q", accesses[0].FileType)
	}
}

// TestPersistenceAcrossRestart verifies the log, counters, and the open
// session survive a process restart.
func TestPersistenceAcrossRestart(t *testing.T) {
	clock := newTestClock()
	dataDir := t.TempDir()

	backend := storage.NewBackend(dataDir)
	store := NewStore(backend, clock.now)
	id := store.StartSession()
	store.RecordSearch(SearchEvent{Query: "budget", ClickedResult: "budget.xlsx"})
	store.RecordNavigation(NavigationEvent{Path: "/docs", TimeSpentSeconds: 12})
	backend.Close()

	reopened := storage.NewBackend(dataDir)
	defer reopened.Close()
	restored := NewStore(reopened, clock.now)

	if len(restored.SearchEvents()) != 1 || len(restored.NavigationEvents()) != 1 {
		t.Fatalf("events not restored: %d searches, %d navigations",
			len(restored.SearchEvents()), len(restored.NavigationEvents()))
	}
	if restored.Counters().TotalSearches != 1 {
		t.Errorf("counters not restored: %+v", restored.Counters())
	}

	sess := restored.CurrentSession()
	if sess == nil || sess.SessionID != id {
		t.Fatal("open session not resumed after restart")
	}
	if len(sess.Searches) != 1 {
		t.Errorf("session events not reattached: %+v", sess)
	}
}

// TestClearAll verifies the privacy wipe empties memory and storage.
func TestClearAll(t *testing.T) {
	clock := newTestClock()
	dataDir := t.TempDir()

	backend := storage.NewBackend(dataDir)
	store := NewStore(backend, clock.now)
	store.RecordSearch(SearchEvent{Query: "a"})
	store.ClearAll()
	backend.Close()

	if len(store.SearchEvents()) != 0 || store.CurrentSession() != nil {
		t.Error("in-memory state not cleared")
	}
	if store.Counters().TotalSearches != 0 {
		t.Error("counters not cleared")
	}

	reopened := storage.NewBackend(dataDir)
	defer reopened.Close()
	restored := NewStore(reopened, clock.now)
	if len(restored.SearchEvents()) != 0 {
		t.Error("storage not cleared")
	}
}

// TestSummarize verifies the condensed summary math.
func TestSummarize(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	store.StartSession()
	store.RecordSearch(SearchEvent{Query: "a", ClickedResult: "a.md"})
	store.RecordSearch(SearchEvent{Query: "b"})
	clock.advance(48 * time.Hour)
	store.StartSession()

	summary := store.Summarize()
	if summary.TotalSearches != 2 {
		t.Errorf("expected 2 searches, got %d", summary.TotalSearches)
	}
	if summary.SearchSuccessRate != 0.5 {
		t.Errorf("expected 50%% success rate, got %v", summary.SearchSuccessRate)
	}
	if summary.DaysActive != 3 {
		t.Errorf("expected 3 days active, got %d", summary.DaysActive)
	}
}

// TestExport verifies the backup includes everything tracked.
func TestExport(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	store.StartSession()
	store.RecordSearch(SearchEvent{Query: "a"})
	store.RecordDecision(DecisionEvent{DecisionType: DecisionApprove, UserValue: "x"})
	store.EndSession()

	export := store.Export()
	if len(export.Searches) != 1 || len(export.Decisions) != 1 {
		t.Errorf("export missing events: %+v", export)
	}
	if len(export.Sessions) != 1 {
		t.Errorf("export missing sessions: %d", len(export.Sessions))
	}
	if !export.ExportedAt.Equal(clock.now()) {
		t.Error("export timestamp not from store clock")
	}
}
