package coach

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// stateFileName is the orchestrator state file inside the data directory.
const stateFileName = "coaching_state.json"

// maxHistoryEntries bounds the persisted score history per skill.
const maxHistoryEntries = 100

// ScorePoint is one persisted skill-score snapshot.
type ScorePoint struct {
	Date  time.Time `json:"date"`
	Score float64   `json:"score"`
	Trend string    `json:"trend"`
}

// State is the orchestrator's durable record: cumulative suggestion
// counters, persisted skill-score history, and per-skill user overrides.
//
// It is loaded at construction and saved synchronously after every
// mutation; a corrupt or missing file loads as empty defaults.
type State struct {
	TotalSuggestionsOffered   int `json:"total_suggestions_offered"`
	TotalSuggestionsAccepted  int `json:"total_suggestions_accepted"`
	TotalSuggestionsDismissed int `json:"total_suggestions_dismissed"`

	LastAssessment *time.Time `json:"last_assessment,omitempty"`

	// SkillHistory keeps up to maxHistoryEntries score points per skill.
	SkillHistory map[string][]ScorePoint `json:"skill_history"`

	// FadeOutOverrides marks skills whose suggestions the user disabled.
	FadeOutOverrides map[string]bool `json:"fade_out_overrides"`
}

// newState returns empty defaults with maps initialized.
func newState() *State {
	return &State{
		SkillHistory:     make(map[string][]ScorePoint),
		FadeOutOverrides: make(map[string]bool),
	}
}

// loadState reads the state file, falling back to defaults on any error.
func loadState(path string) *State {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to read coaching state: %v", err)
		}
		return newState()
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("Warning: corrupt coaching state, starting fresh: %v", err)
		return newState()
	}

	if state.SkillHistory == nil {
		state.SkillHistory = make(map[string][]ScorePoint)
	}
	if state.FadeOutOverrides == nil {
		state.FadeOutOverrides = make(map[string]bool)
	}
	return &state
}

// save writes the state with backup + atomic replace.
func (s *State) save(path string) error {
	if err := backupFile(path); err != nil {
		log.Printf("Warning: failed to create state backup: %v", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal coaching state: %w", err)
	}

	return atomicWrite(path, data)
}

// backupFile copies the existing file to .bak; a first run is fine.
func backupFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.WriteFile(path+".bak", data, 0644)
}

// atomicWrite writes to a temp file in the same directory then renames.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
