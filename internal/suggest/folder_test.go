package suggest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestSuggestFolderExtensionMatch verifies an existing folder holding
// the same extension wins.
func TestSuggestFolderExtensionMatch(t *testing.T) {
	engine := defaultEngine()

	baseDir := t.TempDir()
	reportsDir := filepath.Join(baseDir, "Reports")
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(reportsDir, "old.pdf"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	suggestion := engine.SuggestFolder("/downloads/new.pdf", baseDir, nil)
	if suggestion.SuggestedPath != reportsDir {
		t.Errorf("expected %s, got %s", reportsDir, suggestion.SuggestedPath)
	}
	if !suggestion.MovesToExisting || suggestion.CreatesNewFolder {
		t.Errorf("expected move to existing folder: %+v", suggestion)
	}
	if suggestion.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", suggestion.Confidence)
	}
}

// TestSuggestFolderCategoryMatch verifies category-name overlap when no
// extension matches.
func TestSuggestFolderCategoryMatch(t *testing.T) {
	engine := defaultEngine()

	baseDir := t.TempDir()
	financeDir := filepath.Join(baseDir, "finance")
	if err := os.MkdirAll(financeDir, 0755); err != nil {
		t.Fatal(err)
	}

	info := &ContentInfo{Topics: []string{"invoice"}}
	suggestion := engine.SuggestFolder("/downloads/march.pdf", baseDir, info)
	if suggestion.SuggestedPath != financeDir {
		t.Errorf("expected %s, got %s", financeDir, suggestion.SuggestedPath)
	}
	if suggestion.CreatesNewFolder {
		t.Error("expected existing folder match")
	}
}

// TestSuggestFolderNewFolder verifies a new category folder is proposed
// when nothing matches.
func TestSuggestFolderNewFolder(t *testing.T) {
	engine := defaultEngine()

	baseDir := t.TempDir()
	suggestion := engine.SuggestFolder("/downloads/photo.png", baseDir, nil)

	if !suggestion.CreatesNewFolder || suggestion.MovesToExisting {
		t.Errorf("expected new folder proposal: %+v", suggestion)
	}
	if suggestion.SuggestedPath != filepath.Join(baseDir, "Images") {
		t.Errorf("expected Images folder, got %s", suggestion.SuggestedPath)
	}
	if suggestion.Confidence != 0.6 {
		t.Errorf("expected confidence 0.6 for new folder, got %v", suggestion.Confidence)
	}
}

// TestSuggestFolderDotDirsIgnored verifies hidden folders never match.
func TestSuggestFolderDotDirsIgnored(t *testing.T) {
	engine := defaultEngine()

	baseDir := t.TempDir()
	hidden := filepath.Join(baseDir, ".cache")
	if err := os.MkdirAll(hidden, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(hidden, "f.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	suggestion := engine.SuggestFolder("/downloads/photo.png", baseDir, nil)
	if suggestion.SuggestedPath == hidden {
		t.Error("hidden folder must not be suggested")
	}
	if !suggestion.CreatesNewFolder {
		t.Errorf("expected new folder, got %+v", suggestion)
	}
}

// TestSuggestConvention verifies type-driven convention selection.
func TestSuggestConvention(t *testing.T) {
	engine := defaultEngine()

	tests := []struct {
		types []string
		want  Convention
	}{
		{[]string{"py", "md"}, ConventionSemantic},
		{[]string{"docx", "pdf"}, ConventionDatePrefix},
		{[]string{"xlsx", "csv"}, ConventionCategoryFirst},
		{[]string{"zip"}, ConventionCategoryFirst},
	}
	for _, tt := range tests {
		got := engine.SuggestConvention(tt.types)
		if got.ConventionName != tt.want {
			t.Errorf("SuggestConvention(%v) = %q, want %q", tt.types, got.ConventionName, tt.want)
		}
		if got.Description == "" || len(got.Examples) == 0 {
			t.Errorf("SuggestConvention(%v) missing description or examples", tt.types)
		}
	}
}

// TestConventionsCatalog verifies the built-in catalog is complete and
// ordered.
func TestConventionsCatalog(t *testing.T) {
	catalog := Conventions()
	if len(catalog) != len(conventionOrder) {
		t.Fatalf("expected %d conventions, got %d", len(conventionOrder), len(catalog))
	}
	for i, info := range catalog {
		if info.Name != conventionOrder[i] {
			t.Errorf("catalog out of order at %d: %q", i, info.Name)
		}
		if info.Pattern == "" || info.Description == "" || len(info.Examples) == 0 {
			t.Errorf("%s: incomplete catalog entry: %+v", info.Name, info)
		}
	}
}

// TestSuggestFolderStructure verifies files group by category.
func TestSuggestFolderStructure(t *testing.T) {
	engine := defaultEngine()

	files := []string{
		"a.md", "b.pdf",
		"script.py",
		"photo.png",
		"unknown.xyz",
	}
	structure := engine.SuggestFolderStructure(files)

	if len(structure["Documents"]) != 2 {
		t.Errorf("expected 2 documents, got %v", structure["Documents"])
	}
	if len(structure["Code"]) != 1 {
		t.Errorf("expected 1 code file, got %v", structure["Code"])
	}
	if len(structure["Images"]) != 1 {
		t.Errorf("expected 1 image, got %v", structure["Images"])
	}
	if len(structure["Misc"]) != 1 {
		t.Errorf("expected unknown type in Misc, got %v", structure["Misc"])
	}
}

// TestSuggestFolderDeterministic verifies repeated calls agree when
// several folders could match.
func TestSuggestFolderDeterministic(t *testing.T) {
	engine := defaultEngine()

	baseDir := t.TempDir()
	for _, name := range []string{"alpha", "beta", "gamma"} {
		dir := filepath.Join(baseDir, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "f.pdf"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	first := engine.SuggestFolder("/downloads/new.pdf", baseDir, nil)
	for i := 0; i < 5; i++ {
		again := engine.SuggestFolder("/downloads/new.pdf", baseDir, nil)
		if again.SuggestedPath != first.SuggestedPath {
			t.Fatalf("nondeterministic choice: %s vs %s", again.SuggestedPath, first.SuggestedPath)
		}
	}
	if !strings.HasSuffix(first.SuggestedPath, "alpha") {
		t.Errorf("expected alphabetically first folder, got %s", first.SuggestedPath)
	}
}
