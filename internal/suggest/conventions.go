/*
Package suggest generates naming and organization suggestions.

Suggestions are built from four fixed naming conventions, adjusted by
conventions learned from the user's own historical renames (separator,
case style, date usage, common prefixes, typical name length).
*/
package suggest

import (
	"regexp"
	"strings"
	"unicode"
)

// Convention names one of the built-in naming templates.
type Convention string

const (
	ConventionDatePrefix    Convention = "date_prefix"
	ConventionCategoryFirst Convention = "category_first"
	ConventionProjectBased  Convention = "project_based"
	ConventionSemantic      Convention = "semantic"
)

// conventionOrder fixes iteration order for alternatives.
var conventionOrder = []Convention{
	ConventionDatePrefix,
	ConventionCategoryFirst,
	ConventionProjectBased,
	ConventionSemantic,
}

// conventionMeta describes a built-in naming convention.
type conventionMeta struct {
	pattern     string
	description string
	examples    []string
	bestFor     []string
}

var conventions = map[Convention]conventionMeta{
	ConventionDatePrefix: {
		pattern:     "{YYYYMMDD}_{name}",
		description: "Date first, then descriptive name",
		examples:    []string{"20260209_meeting_notes", "20260115_budget_review"},
		bestFor:     []string{"notes", "reports", "meetings", "logs"},
	},
	ConventionCategoryFirst: {
		pattern:     "{CATEGORY}_{topic}_{detail}",
		description: "Category prefix for easy sorting",
		examples:    []string{"DOCS_project_requirements", "CODE_utils_helpers"},
		bestFor:     []string{"code", "documents", "mixed"},
	},
	ConventionProjectBased: {
		pattern:     "{project}_{type}_{name}",
		description: "Project name first for project-centric work",
		examples:    []string{"wayfinder_design_mockups", "clientx_invoice_march"},
		bestFor:     []string{"project files", "client work", "deliverables"},
	},
	ConventionSemantic: {
		pattern:     "{what}_{context}_{version}",
		description: "Descriptive naming based on content",
		examples:    []string{"budget_2026_v2", "api_documentation_final"},
		bestFor:     []string{"versioned documents", "drafts", "evolving files"},
	},
}

// ConventionInfo describes a built-in convention for display.
type ConventionInfo struct {
	Name        Convention `json:"name"`
	Pattern     string     `json:"pattern"`
	Description string     `json:"description"`
	Examples    []string   `json:"examples"`
	BestFor     []string   `json:"best_for"`
}

// Conventions lists the built-in conventions in canonical order.
func Conventions() []ConventionInfo {
	infos := make([]ConventionInfo, 0, len(conventionOrder))
	for _, name := range conventionOrder {
		meta := conventions[name]
		infos = append(infos, ConventionInfo{
			Name:        name,
			Pattern:     meta.pattern,
			Description: meta.description,
			Examples:    meta.examples,
			BestFor:     meta.bestFor,
		})
	}
	return infos
}

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	separatorRuns        = regexp.MustCompile(`[\s\-.]+`)
)

// extensionTypes maps file extensions (without dot) to coarse file types.
var extensionTypes = map[string]string{
	"docx": "document", "doc": "document", "pdf": "document",
	"txt": "document", "md": "document", "rtf": "document", "odt": "document",
	"xlsx": "spreadsheet", "xls": "spreadsheet", "csv": "spreadsheet", "ods": "spreadsheet",
	"pptx": "presentation", "ppt": "presentation", "odp": "presentation",
	"py": "code", "js": "code", "ts": "code", "java": "code",
	"cpp": "code", "c": "code", "go": "code", "rs": "code",
	"jpg": "image", "jpeg": "image", "png": "image",
	"gif": "image", "svg": "image", "webp": "image",
}

// topicKeyword pairs a keyword with the category it signals.
type topicKeyword struct {
	keyword  string
	category string
}

// topicKeywords is checked in order against lowercased topics.
var topicKeywords = []topicKeyword{
	{"meeting", "meetings"},
	{"notes", "notes"},
	{"report", "reports"},
	{"budget", "finance"},
	{"invoice", "finance"},
	{"design", "design"},
	{"test", "tests"},
	{"readme", "documentation"},
	{"config", "config"},
}

// typeCategories maps coarse file types to fallback categories.
var typeCategories = map[string]string{
	"document":     "documents",
	"spreadsheet":  "data",
	"presentation": "presentations",
	"code":         "code",
	"image":        "images",
}

// categoryPrefixes maps categories to short uppercase prefixes.
var categoryPrefixes = map[string]string{
	"documents":     "DOCS",
	"data":          "DATA",
	"presentations": "PRES",
	"code":          "CODE",
	"images":        "IMG",
	"meetings":      "MTG",
	"notes":         "NOTES",
	"reports":       "RPT",
	"finance":       "FIN",
	"design":        "DSGN",
	"tests":         "TEST",
	"documentation": "DOCS",
	"config":        "CFG",
}

// inferTypeFromExtension maps an extension (with or without dot) to a
// coarse file type, "file" when unknown.
func inferTypeFromExtension(extension string) string {
	ext := strings.TrimPrefix(strings.ToLower(extension), ".")
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return "file"
}

// detectCategory finds a category from topic hints, falling back to the
// file type mapping, then "misc".
func detectCategory(fileType string, topics []string) string {
	for _, topic := range topics {
		lower := strings.ToLower(topic)
		for _, tk := range topicKeywords {
			if strings.Contains(lower, tk.keyword) {
				return tk.category
			}
		}
	}
	if category, ok := typeCategories[fileType]; ok {
		return category
	}
	return "misc"
}

// categoryPrefix generates a short prefix like DOCS or CODE.
func categoryPrefix(fileType string, topics []string) string {
	if prefix, ok := categoryPrefixes[detectCategory(fileType, topics)]; ok {
		return prefix
	}
	return "MISC"
}

// titleCase upper-cases the first letter of a category name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
