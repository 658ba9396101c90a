package coach

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestStateRoundTrip verifies save and reload preserve everything.
func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), stateFileName)

	state := newState()
	state.TotalSuggestionsOffered = 12
	state.TotalSuggestionsAccepted = 8
	state.TotalSuggestionsDismissed = 4
	when := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	state.LastAssessment = &when
	state.SkillHistory["search_ability"] = []ScorePoint{
		{Date: when, Score: 0.6, Trend: "stable"},
	}
	state.FadeOutOverrides["naming_consistency"] = true

	if err := state.save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := loadState(path)
	if loaded.TotalSuggestionsOffered != 12 || loaded.TotalSuggestionsAccepted != 8 {
		t.Errorf("counters not preserved: %+v", loaded)
	}
	if loaded.LastAssessment == nil || !loaded.LastAssessment.Equal(when) {
		t.Errorf("last assessment not preserved: %v", loaded.LastAssessment)
	}
	points := loaded.SkillHistory["search_ability"]
	if len(points) != 1 || points[0].Score != 0.6 || points[0].Trend != "stable" {
		t.Errorf("skill history not preserved: %+v", points)
	}
	if !loaded.FadeOutOverrides["naming_consistency"] {
		t.Error("override not preserved")
	}
}

// TestLoadStateMissing verifies a missing file loads as defaults.
func TestLoadStateMissing(t *testing.T) {
	state := loadState(filepath.Join(t.TempDir(), "nope.json"))
	if state == nil {
		t.Fatal("expected default state")
	}
	if state.SkillHistory == nil || state.FadeOutOverrides == nil {
		t.Error("maps not initialized")
	}
	if state.TotalSuggestionsOffered != 0 {
		t.Errorf("expected zero counters, got %+v", state)
	}
}

// TestLoadStateCorrupt verifies corrupt JSON falls back to defaults.
func TestLoadStateCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), stateFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	state := loadState(path)
	if state == nil || state.TotalSuggestionsOffered != 0 {
		t.Errorf("expected defaults on corrupt state, got %+v", state)
	}
}

// TestSaveCreatesBackup verifies the previous file lands in .bak.
func TestSaveCreatesBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), stateFileName)

	first := newState()
	first.TotalSuggestionsOffered = 1
	if err := first.save(path); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	second := newState()
	second.TotalSuggestionsOffered = 2
	if err := second.save(path); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	backup := loadState(path + ".bak")
	if backup.TotalSuggestionsOffered != 1 {
		t.Errorf("backup should hold the previous state, got %+v", backup)
	}
	current := loadState(path)
	if current.TotalSuggestionsOffered != 2 {
		t.Errorf("current state wrong: %+v", current)
	}
}

// TestAtomicWriteLeavesNoTemp verifies the temp file is cleaned up.
func TestAtomicWriteLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, stateFileName)

	if err := newState().save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if entry.Name() != stateFileName {
			t.Errorf("unexpected leftover file: %s", entry.Name())
		}
	}
}
