package suggest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FolderSuggestion is a proposed folder location for a file.
type FolderSuggestion struct {
	SuggestedPath string  `json:"suggested_path"`
	OriginalPath  string  `json:"original_path"`
	Reasoning     string  `json:"reasoning"`
	Confidence    float64 `json:"confidence"`

	CreatesNewFolder bool `json:"creates_new_folder"`
	MovesToExisting  bool `json:"moves_to_existing"`
}

// ConventionSuggestion proposes a naming convention to adopt.
type ConventionSuggestion struct {
	ConventionName Convention `json:"convention_name"`
	Description    string     `json:"description"`
	Examples       []string   `json:"examples"`

	// AppliesTo lists the file globs the convention targets.
	AppliesTo []string `json:"applies_to"`

	Priority int `json:"priority"`
}

// SuggestFolder proposes where under baseDir the file at path belongs.
//
// Existing first-level subfolders are matched by file extension first,
// then by category-name overlap; otherwise a new folder named after the
// detected category is proposed.
func (e *Engine) SuggestFolder(path, baseDir string, info *ContentInfo) FolderSuggestion {
	originalPath := filepath.Dir(path)
	extension := strings.ToLower(filepath.Ext(path))

	fileType := inferTypeFromExtension(extension)
	var topics []string
	if info != nil {
		if info.Type != "" {
			fileType = info.Type
		}
		topics = info.Topics
	}
	category := detectCategory(fileType, topics)

	existing := listExistingFolders(baseDir)

	suggestedPath, reasoning, createsNew := findBestFolder(baseDir, category, extension, existing)

	confidence := 0.8
	if createsNew {
		confidence = 0.6
	}

	return FolderSuggestion{
		SuggestedPath:    suggestedPath,
		OriginalPath:     originalPath,
		Reasoning:        reasoning,
		Confidence:       confidence,
		CreatesNewFolder: createsNew,
		MovesToExisting:  !createsNew,
	}
}

// SuggestConvention picks a convention family for the given file types
// (extensions without dots), based on the dominant mix.
func (e *Engine) SuggestConvention(fileTypes []string) ConventionSuggestion {
	has := func(exts ...string) bool {
		for _, t := range fileTypes {
			t = strings.TrimPrefix(strings.ToLower(t), ".")
			for _, ext := range exts {
				if t == ext {
					return true
				}
			}
		}
		return false
	}

	switch {
	case has("py", "js", "ts", "java", "cpp"):
		// Developers prefer semantic naming.
		return ConventionSuggestion{
			ConventionName: ConventionSemantic,
			Description: "Descriptive names that explain what the file contains. " +
				"Use lowercase with underscores. Include version if needed.",
			Examples: []string{
				"api_client_v2.py",
				"user_authentication_tests.py",
				"database_schema_migrations.sql",
			},
			AppliesTo: []string{"*.py", "*.js", "*.ts", "*.java"},
			Priority:  1,
		}
	case has("docx", "pdf", "txt", "md"):
		// Document workers benefit from chronological sorting.
		return ConventionSuggestion{
			ConventionName: ConventionDatePrefix,
			Description: "Start with date (YYYYMMDD) for easy chronological sorting. " +
				"Follow with category and description.",
			Examples: []string{
				"20260209_meeting_standup_notes.docx",
				"20260115_report_quarterly_sales.pdf",
				"20261231_plan_2027_roadmap.md",
			},
			AppliesTo: []string{"*.docx", "*.pdf", "*.txt", "*.md"},
			Priority:  1,
		}
	case has("xlsx", "csv", "json"):
		return ConventionSuggestion{
			ConventionName: ConventionCategoryFirst,
			Description: "Start with data source or category. Include date if " +
				"time-sensitive. End with description.",
			Examples: []string{
				"SALES_2026Q1_northeast_region.xlsx",
				"CUSTOMERS_export_20260209.csv",
				"INVENTORY_warehouse_a_current.xlsx",
			},
			AppliesTo: []string{"*.xlsx", "*.csv", "*.json"},
			Priority:  1,
		}
	default:
		// Category first is a versatile general-purpose default.
		return ConventionSuggestion{
			ConventionName: ConventionCategoryFirst,
			Description: "Start with a category prefix (DOCS, CODE, DATA, etc.) " +
				"for easy grouping when sorted alphabetically.",
			Examples: []string{
				"DOCS_project_proposal.pdf",
				"IMG_product_screenshot.png",
				"NOTES_brainstorm_session.md",
			},
			AppliesTo: []string{"*"},
			Priority:  1,
		}
	}
}

// SuggestFolderStructure groups a file list into a category → files
// folder-structure proposal.
func (e *Engine) SuggestFolderStructure(files []string) map[string][]string {
	structure := make(map[string][]string)
	for _, path := range files {
		extension := strings.ToLower(filepath.Ext(path))
		fileType := inferTypeFromExtension(extension)
		folder := titleCase(detectCategory(fileType, nil))
		structure[folder] = append(structure[folder], path)
	}
	return structure
}

// listExistingFolders maps first-level subfolder names of baseDir to the
// lowercased file extensions found directly inside each.
func listExistingFolders(baseDir string) map[string][]string {
	contents := make(map[string][]string)

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return contents
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		extSet := make(map[string]bool)
		files, err := os.ReadDir(filepath.Join(baseDir, entry.Name()))
		if err == nil {
			for _, f := range files {
				if !f.IsDir() {
					extSet[strings.ToLower(filepath.Ext(f.Name()))] = true
				}
			}
		}

		exts := make([]string, 0, len(extSet))
		for ext := range extSet {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		contents[entry.Name()] = exts
	}

	return contents
}

// findBestFolder picks an existing folder or proposes a new one.
func findBestFolder(baseDir, category, extension string, existing map[string][]string) (string, string, bool) {
	names := make([]string, 0, len(existing))
	for name := range existing {
		names = append(names, name)
	}
	sort.Strings(names)

	// Extension match wins.
	for _, name := range names {
		for _, ext := range existing[name] {
			if ext == extension && ext != "" {
				return filepath.Join(baseDir, name),
					fmt.Sprintf("Matches existing folder for %s files", extension),
					false
			}
		}
	}

	// Then category-name overlap.
	lowerCategory := strings.ToLower(category)
	for _, name := range names {
		lowerName := strings.ToLower(name)
		if strings.Contains(lowerName, lowerCategory) || strings.Contains(lowerCategory, lowerName) {
			return filepath.Join(baseDir, name),
				fmt.Sprintf("Matches category %q", category),
				false
		}
	}

	newFolder := titleCase(category)
	return filepath.Join(baseDir, newFolder),
		fmt.Sprintf("New folder for %s files", category),
		true
}
