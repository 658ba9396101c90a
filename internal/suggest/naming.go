package suggest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NamingSuggestion is a proposed name for a file.
type NamingSuggestion struct {
	SuggestedName string `json:"suggested_name"`
	OriginalName  string `json:"original_name"`

	// Confidence is how good a fit the name looks, in [0.1, 1.0].
	Confidence float64 `json:"confidence"`

	Reasoning string `json:"reasoning"`

	// Alternatives are up to 3 names from the other conventions.
	Alternatives []string `json:"alternatives"`

	ConventionUsed Convention `json:"convention_used"`

	// Category is the detected content category.
	Category string `json:"category,omitempty"`
}

// SuggestFilename generates a filename suggestion for the file at path.
//
// info may be nil; missing fields fall back to the current name and the
// extension-derived type. force overrides convention selection.
func (e *Engine) SuggestFilename(path string, info *ContentInfo, force Convention) NamingSuggestion {
	extension := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), extension)

	title := stem
	var topics []string
	fileType := inferTypeFromExtension(extension)
	date := e.now().Format("20060102")

	if info != nil {
		if info.Title != "" {
			title = info.Title
		}
		topics = info.Topics
		if info.Type != "" {
			fileType = info.Type
		}
		if info.Date != "" {
			date = info.Date
		}
	}

	convention := force
	if convention == "" {
		convention = e.chooseConvention(fileType, topics)
	}

	suggested := e.applyConvention(convention, title, topics, fileType, date)

	var alternatives []string
	for _, alt := range conventionOrder {
		if alt == convention || len(alternatives) >= 3 {
			continue
		}
		name := e.applyConvention(alt, title, topics, fileType, date)
		if name != suggested {
			alternatives = append(alternatives, name+extension)
		}
	}

	category := detectCategory(fileType, topics)

	return NamingSuggestion{
		SuggestedName:  suggested + extension,
		OriginalName:   stem + extension,
		Confidence:     namingConfidence(stem, suggested, info),
		Reasoning:      namingReasoning(convention, title, category),
		Alternatives:   alternatives,
		ConventionUsed: convention,
		Category:       category,
	}
}

// SuggestBatchRename applies one convention across a file list. When no
// convention is given, the first file's type picks one.
func (e *Engine) SuggestBatchRename(files []string, convention Convention) []NamingSuggestion {
	if convention == "" {
		fileType := "file"
		if len(files) > 0 {
			fileType = inferTypeFromExtension(filepath.Ext(files[0]))
		}
		convention = e.chooseConvention(fileType, nil)
	}

	suggestions := make([]NamingSuggestion, 0, len(files))
	for _, path := range files {
		suggestions = append(suggestions, e.SuggestFilename(path, nil, convention))
	}
	return suggestions
}

// namingConfidence scores a suggestion: base 0.5, plus content signals,
// minus a penalty for very short results; clamped to [0.1, 1.0].
func namingConfidence(original, suggested string, info *ContentInfo) float64 {
	confidence := 0.5

	if info != nil {
		if info.Title != "" {
			confidence += 0.2
		}
		if len(info.Topics) > 0 {
			confidence += 0.1
		}
	}
	if !strings.EqualFold(original, suggested) {
		confidence += 0.1
	}
	if len(suggested) < 5 {
		confidence -= 0.2
	}

	if confidence < 0.1 {
		return 0.1
	}
	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}

func namingReasoning(convention Convention, title, category string) string {
	switch convention {
	case ConventionDatePrefix:
		return fmt.Sprintf("Date prefix for chronological sorting. Category: %s", category)
	case ConventionCategoryFirst:
		return fmt.Sprintf("Category prefix (%s) for easy grouping", strings.ToUpper(category))
	case ConventionProjectBased:
		return "Project-based naming for related files"
	case ConventionSemantic:
		title = truncateRunes(title, 30)
		return fmt.Sprintf("Descriptive name based on content: %s...", title)
	default:
		return fmt.Sprintf("Based on detected content and category: %s", category)
	}
}
