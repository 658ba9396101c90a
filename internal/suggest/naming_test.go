/*
Package suggest provides tests for the suggestion engine.
*/
package suggest

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/wayfinderhq/wayfinder-coach/internal/behavior"
)

var testTime = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testTime }

// defaultEngine builds an engine with no learned preferences.
func defaultEngine() *Engine {
	return NewEngine(behavior.NamingPreferences{}, fixedNow)
}

// TestSuggestFilenameMeetingNotes verifies the canonical flow: a vague
// name plus meeting/budget content becomes a categorized suggestion.
func TestSuggestFilenameMeetingNotes(t *testing.T) {
	engine := defaultEngine()

	info := ParseContent("Meeting notes about budget")
	suggestion := engine.SuggestFilename("notes.md", info, "")

	if suggestion.OriginalName != "notes.md" {
		t.Errorf("expected original notes.md, got %q", suggestion.OriginalName)
	}
	if !strings.HasSuffix(suggestion.SuggestedName, ".md") {
		t.Errorf("extension not preserved: %q", suggestion.SuggestedName)
	}
	if suggestion.SuggestedName == suggestion.OriginalName {
		t.Error("expected a different name")
	}
	// "meeting" is the first topic keyword in the content.
	if suggestion.Category != "meetings" {
		t.Errorf("expected meetings category, got %q", suggestion.Category)
	}
	if suggestion.Confidence < 0.1 || suggestion.Confidence > 1.0 {
		t.Errorf("confidence out of bounds: %v", suggestion.Confidence)
	}
	// Title and topics present, name changed: 0.5+0.2+0.1+0.1.
	if suggestion.Confidence < 0.89 || suggestion.Confidence > 0.91 {
		t.Errorf("expected confidence near 0.9, got %v", suggestion.Confidence)
	}
	if len(suggestion.Alternatives) == 0 || len(suggestion.Alternatives) > 3 {
		t.Errorf("expected 1 to 3 alternatives, got %d", len(suggestion.Alternatives))
	}
	for _, alt := range suggestion.Alternatives {
		if alt == suggestion.SuggestedName {
			t.Errorf("alternative duplicates the suggestion: %q", alt)
		}
	}
}

// TestSuggestFilenameForcedConvention verifies each convention renders
// its template.
func TestSuggestFilenameForcedConvention(t *testing.T) {
	engine := defaultEngine()
	info := &ContentInfo{Title: "Budget Review", Topics: []string{"budget"}, Date: "20260830"}

	date := engine.SuggestFilename("doc.md", info, ConventionDatePrefix)
	if !strings.HasPrefix(date.SuggestedName, "20260830_") {
		t.Errorf("date prefix missing: %q", date.SuggestedName)
	}

	category := engine.SuggestFilename("doc.md", info, ConventionCategoryFirst)
	if !strings.HasPrefix(category.SuggestedName, "FIN_") {
		t.Errorf("expected FIN prefix for budget content: %q", category.SuggestedName)
	}

	semantic := engine.SuggestFilename("doc.md", info, ConventionSemantic)
	if semantic.SuggestedName != "budget_review.md" {
		t.Errorf("expected cleaned title, got %q", semantic.SuggestedName)
	}
}

// TestSuggestFilenameNoContent verifies fallbacks without content info.
func TestSuggestFilenameNoContent(t *testing.T) {
	engine := defaultEngine()

	suggestion := engine.SuggestFilename("My Report Draft.docx", nil, "")
	if !strings.HasSuffix(suggestion.SuggestedName, ".docx") {
		t.Errorf("extension not preserved: %q", suggestion.SuggestedName)
	}
	if strings.ContainsAny(suggestion.SuggestedName, " <>:\"/\\|?*") {
		t.Errorf("suggested name not sanitized: %q", suggestion.SuggestedName)
	}
}

// TestLearnedSeparator verifies learned hyphen preference is applied.
func TestLearnedSeparator(t *testing.T) {
	prefs := behavior.NamingPreferences{
		Patterns: &behavior.NamingPatterns{
			UsesHyphens:     8,
			UsesUnderscores: 1,
			UsesLowercase:   9,
			AverageLength:   40,
		},
		SampleSize: 9,
	}
	engine := NewEngine(prefs, fixedNow)

	suggestion := engine.SuggestFilename("doc.md",
		&ContentInfo{Title: "weekly status update"}, ConventionSemantic)
	if suggestion.SuggestedName != "weekly-status-update.md" {
		t.Errorf("expected hyphen separators, got %q", suggestion.SuggestedName)
	}
}

// TestLearnedStyleTies verifies tied style counts fall to hyphen
// separators and camelCase.
func TestLearnedStyleTies(t *testing.T) {
	prefs := behavior.NamingPreferences{
		Patterns: &behavior.NamingPatterns{
			UsesHyphens:     4,
			UsesUnderscores: 4,
			UsesLowercase:   4,
			UsesCamelCase:   4,
			AverageLength:   40,
		},
		SampleSize: 8,
	}
	engine := NewEngine(prefs, fixedNow)

	if engine.learned.separator != "-" {
		t.Errorf("expected hyphen on tie, got %q", engine.learned.separator)
	}
	if engine.learned.caseStyle != "camelCase" {
		t.Errorf("expected camelCase on tie, got %q", engine.learned.caseStyle)
	}
}

// TestLearnedDatesPickDatePrefix verifies frequent dates steer the
// convention choice.
func TestLearnedDatesPickDatePrefix(t *testing.T) {
	prefs := behavior.NamingPreferences{
		Patterns: &behavior.NamingPatterns{
			UsesUnderscores: 5,
			UsesLowercase:   5,
			DateFrequency:   0.6,
			AverageLength:   40,
		},
		SampleSize: 5,
	}
	engine := NewEngine(prefs, fixedNow)

	suggestion := engine.SuggestFilename("doc.md", &ContentInfo{Title: "standup"}, "")
	if suggestion.ConventionUsed != ConventionDatePrefix {
		t.Errorf("expected date prefix convention, got %q", suggestion.ConventionUsed)
	}
	// Date falls back to the engine clock.
	if !strings.HasPrefix(suggestion.SuggestedName, "20260830_") {
		t.Errorf("expected today's date prefix, got %q", suggestion.SuggestedName)
	}
}

// TestCleanForFilename verifies sanitization edge cases.
func TestCleanForFilename(t *testing.T) {
	engine := defaultEngine()

	tests := []struct {
		in   string
		want string
	}{
		{"Meeting Notes: Budget?", "meeting_notes_budget"},
		{"a/b\\c<d>e", "abcde"},
		{"  spaced   out  ", "spaced_out"},
		{"", "untitled"},
		{"---", "untitled"},
	}
	for _, tt := range tests {
		if got := engine.cleanForFilename(tt.in); got != tt.want {
			t.Errorf("cleanForFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestCleanForFilenameTruncation verifies long titles cut at a
// separator boundary.
func TestCleanForFilenameTruncation(t *testing.T) {
	engine := defaultEngine()

	long := strings.Repeat("word ", 30)
	got := engine.cleanForFilename(long)
	if len(got) > 50 {
		t.Errorf("expected truncation to 50 chars, got %d: %q", len(got), got)
	}
	if strings.HasSuffix(got, "_") || strings.HasPrefix(got, "_") {
		t.Errorf("separator left at the edge: %q", got)
	}
}

// TestCleanForFilenameMultibyte verifies truncation never splits a
// multi-byte character.
func TestCleanForFilenameMultibyte(t *testing.T) {
	engine := defaultEngine()

	got := engine.cleanForFilename(strings.Repeat("日本語ファイル ", 20))
	if !utf8.ValidString(got) {
		t.Errorf("truncation produced invalid UTF-8: %q", got)
	}
	if utf8.RuneCountInString(got) > 50 {
		t.Errorf("expected at most 50 characters, got %d", utf8.RuneCountInString(got))
	}
}

// TestParseContent verifies title and topic extraction.
func TestParseContent(t *testing.T) {
	info := ParseContent("\n\nQ3 Budget Report\nDetails about the invoice follow.")
	if info == nil {
		t.Fatal("expected content info")
	}
	if info.Title != "Q3 Budget Report" {
		t.Errorf("expected first non-empty line as title, got %q", info.Title)
	}
	hasTopic := func(topic string) bool {
		for _, t := range info.Topics {
			if t == topic {
				return true
			}
		}
		return false
	}
	if !hasTopic("budget") || !hasTopic("invoice") || !hasTopic("report") {
		t.Errorf("topics missing: %v", info.Topics)
	}

	if ParseContent("   \n  ") != nil {
		t.Error("expected nil for blank content")
	}
}

// TestParseContentMultibyteTitle verifies long non-ASCII titles stay
// valid UTF-8 after truncation.
func TestParseContentMultibyteTitle(t *testing.T) {
	info := ParseContent(strings.Repeat("会議", 60))
	if info == nil {
		t.Fatal("expected content info")
	}
	if !utf8.ValidString(info.Title) {
		t.Errorf("invalid UTF-8 title: %q", info.Title)
	}
	if utf8.RuneCountInString(info.Title) != 80 {
		t.Errorf("expected 80-character title, got %d", utf8.RuneCountInString(info.Title))
	}
}

// TestSuggestBatchRename verifies one convention across a batch.
func TestSuggestBatchRename(t *testing.T) {
	engine := defaultEngine()

	files := []string{"a report.docx", "b report.docx", "c report.docx"}
	suggestions := engine.SuggestBatchRename(files, "")
	if len(suggestions) != len(files) {
		t.Fatalf("expected %d suggestions, got %d", len(files), len(suggestions))
	}

	convention := suggestions[0].ConventionUsed
	for _, s := range suggestions {
		if s.ConventionUsed != convention {
			t.Errorf("batch used mixed conventions: %q vs %q", s.ConventionUsed, convention)
		}
	}
}
