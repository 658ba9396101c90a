package behavior

import (
	"testing"
	"time"
)

// TestSearchPatternQuery verifies term counting, failures, refinements,
// and the success rate.
func TestSearchPatternQuery(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	store.RecordSearch(SearchEvent{Query: "budget report", ClickedResult: "budget.xlsx"})
	store.RecordSearch(SearchEvent{Query: "budget q3", ClickedResult: "q3.xlsx"})
	store.RecordSearch(SearchEvent{Query: "meting notes", RefinedQuery: "meeting notes"})
	store.RecordSearch(SearchEvent{Query: "old invoice"})

	patterns := store.SearchPatternQuery(30)

	if patterns.Total != 4 {
		t.Fatalf("expected 4 searches, got %d", patterns.Total)
	}
	if patterns.SuccessRate != 0.5 {
		t.Errorf("expected 50%% success rate, got %v", patterns.SuccessRate)
	}
	if len(patterns.FailedQueries) != 2 {
		t.Errorf("expected 2 failed queries, got %v", patterns.FailedQueries)
	}
	if len(patterns.Refinements) != 1 || patterns.Refinements[0].Refined != "meeting notes" {
		t.Errorf("refinements wrong: %+v", patterns.Refinements)
	}
	if len(patterns.CommonTerms) == 0 || patterns.CommonTerms[0].Term != "budget" {
		t.Errorf("expected budget as top term, got %+v", patterns.CommonTerms)
	}
	if patterns.CommonTerms[0].Count != 2 {
		t.Errorf("expected budget counted twice, got %d", patterns.CommonTerms[0].Count)
	}
}

// TestSearchPatternWindow verifies old searches fall out of the window.
func TestSearchPatternWindow(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	store.RecordSearch(SearchEvent{Query: "ancient"})
	clock.advance(40 * 24 * time.Hour)
	store.RecordSearch(SearchEvent{Query: "recent", ClickedResult: "r.md"})

	patterns := store.SearchPatternQuery(30)
	if patterns.Total != 1 {
		t.Fatalf("expected only the recent search, got %d", patterns.Total)
	}
	if patterns.SuccessRate != 1.0 {
		t.Errorf("expected 100%% success rate in window, got %v", patterns.SuccessRate)
	}
}

// TestFilePatternQuery verifies access aggregation and the rename tail.
func TestFilePatternQuery(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	store.RecordFileAccess(FileAccessEvent{FilePath: "a.md", AccessType: AccessOpen})
	store.RecordFileAccess(FileAccessEvent{FilePath: "b.md", AccessType: AccessOpen})
	store.RecordFileAccess(FileAccessEvent{FilePath: "c.xlsx", AccessType: AccessEdit})
	for i := 0; i < 12; i++ {
		store.RecordFileAccess(FileAccessEvent{
			FilePath:     "d.md",
			AccessType:   AccessRename,
			PreviousName: "d.md",
			NewName:      "renamed_d.md",
		})
	}

	patterns := store.FilePatternQuery(30)
	if patterns.Total != 15 {
		t.Fatalf("expected 15 accesses, got %d", patterns.Total)
	}
	if patterns.ByType[".md"] != 14 || patterns.ByType[".xlsx"] != 1 {
		t.Errorf("by-type counts wrong: %+v", patterns.ByType)
	}
	if patterns.ByAccessType[AccessOpen] != 2 || patterns.ByAccessType[AccessRename] != 12 {
		t.Errorf("by-access counts wrong: %+v", patterns.ByAccessType)
	}
	if len(patterns.RecentRenames) != 10 {
		t.Errorf("expected rename tail capped at 10, got %d", len(patterns.RecentRenames))
	}
}

// TestNamingPreferences verifies naming style classification.
func TestNamingPreferences(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	rename := func(newName string) {
		store.RecordFileAccess(FileAccessEvent{
			FilePath:   "f.md",
			AccessType: AccessRename,
			NewName:    newName,
		})
	}
	rename("NOTES_meeting_20260830.md")
	rename("NOTES_budget_review.md")
	rename("NOTES_standup.md")
	rename("projectplan.md")
	rename("myFile-Draft.md")

	prefs := store.NamingPreferences()
	if prefs.SampleSize != 5 {
		t.Fatalf("expected 5 samples, got %d", prefs.SampleSize)
	}
	p := prefs.Patterns
	if p == nil {
		t.Fatal("expected learned patterns")
	}

	if p.UsesUnderscores != 3 || p.UsesHyphens != 1 {
		t.Errorf("separator counts wrong: %+v", p)
	}
	if p.PrimarySeparator != "underscore" {
		t.Errorf("expected underscore separator, got %q", p.PrimarySeparator)
	}
	// Only the dated name has four or more digits.
	if p.UsesDates != 1 || p.DateFrequency != 0.2 {
		t.Errorf("date stats wrong: dates=%d freq=%v", p.UsesDates, p.DateFrequency)
	}
	if p.UsesLowercase != 1 {
		t.Errorf("expected 1 all-lowercase name, got %d", p.UsesLowercase)
	}
	if p.UsesCamelCase != 4 {
		t.Errorf("expected 4 names with uppercase past first char, got %d", p.UsesCamelCase)
	}
	if len(p.Prefixes) == 0 || p.Prefixes[0].Prefix != "NOTES" || p.Prefixes[0].Count != 3 {
		t.Errorf("prefixes wrong: %+v", p.Prefixes)
	}
}

// TestNamingPreferencesEmpty verifies no renames means no patterns.
func TestNamingPreferencesEmpty(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	prefs := store.NamingPreferences()
	if prefs.Patterns != nil || prefs.SampleSize != 0 {
		t.Errorf("expected empty preferences, got %+v", prefs)
	}
}

// TestSuggestionEffectiveness verifies the response rate math and that
// effectiveness stays unknown without data.
func TestSuggestionEffectiveness(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	eff := store.SuggestionEffectiveness()
	if eff.Effective != nil || eff.Total != 0 {
		t.Fatalf("expected unknown effectiveness with no data, got %+v", eff)
	}

	store.RecordDecision(DecisionEvent{DecisionType: DecisionApprove, UserValue: "a"})
	store.RecordDecision(DecisionEvent{DecisionType: DecisionApprove, UserValue: "b"})
	store.RecordDecision(DecisionEvent{DecisionType: DecisionCustomName, UserValue: "c"})
	store.RecordDecision(DecisionEvent{DecisionType: DecisionReject, UserValue: "d"})

	eff = store.SuggestionEffectiveness()
	if eff.Total != 4 {
		t.Fatalf("expected 4 responses, got %d", eff.Total)
	}
	if eff.AcceptanceRate != 0.5 || eff.RejectionRate != 0.25 || eff.CustomizationRate != 0.25 {
		t.Errorf("rates wrong: %+v", eff)
	}
	if eff.Effective == nil || !*eff.Effective {
		t.Error("expected suggestions judged effective")
	}
}
