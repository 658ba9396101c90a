package behavior

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultWindowDays is the trailing window applied to pattern queries.
const DefaultWindowDays = 30

// keptTail is how many failures, refinements, and renames queries retain.
const keptTail = 10

// topTerms is how many common query terms SearchPatterns reports.
const topTerms = 20

// maxPrefixLen is the longest leading token counted as a naming prefix.
const maxPrefixLen = 14

// TermCount is a query term with its frequency.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Refinement pairs an original query with its rephrased form.
type Refinement struct {
	Original string `json:"original"`
	Refined  string `json:"refined"`
}

// SearchPatterns summarizes recent search behavior.
type SearchPatterns struct {
	Total         int          `json:"total_searches"`
	CommonTerms   []TermCount  `json:"common_terms"`
	FailedQueries []string     `json:"failed_queries"`
	Refinements   []Refinement `json:"search_refinements"`
	SuccessRate   float64      `json:"success_rate"`
}

// SearchPatternQuery analyzes search behavior over the trailing window.
// windowDays <= 0 means DefaultWindowDays.
func (s *Store) SearchPatternQuery(windowDays int) SearchPatterns {
	recent := s.recentSearches(windowDays)

	termCounts := make(map[string]int)
	var failed []string
	var refinements []Refinement
	successful := 0

	for _, search := range recent {
		for _, word := range strings.Fields(strings.ToLower(search.Query)) {
			termCounts[word]++
		}
		if search.ClickedResult == "" {
			failed = append(failed, search.Query)
		} else {
			successful++
		}
		if search.RefinedQuery != "" {
			refinements = append(refinements, Refinement{
				Original: search.Query,
				Refined:  search.RefinedQuery,
			})
		}
	}

	terms := make([]TermCount, 0, len(termCounts))
	for term, count := range termCounts {
		terms = append(terms, TermCount{Term: term, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if len(terms) > topTerms {
		terms = terms[:topTerms]
	}

	successRate := 0.0
	if len(recent) > 0 {
		successRate = float64(successful) / float64(len(recent))
	}

	return SearchPatterns{
		Total:         len(recent),
		CommonTerms:   terms,
		FailedQueries: tailStrings(failed, keptTail),
		Refinements:   tailRefinements(refinements, keptTail),
		SuccessRate:   successRate,
	}
}

// Rename describes one recorded rename.
type Rename struct {
	From string `json:"from"`
	To   string `json:"to"`
	File string `json:"file"`
}

// FilePatterns summarizes recent file access behavior.
type FilePatterns struct {
	Total         int            `json:"total_accesses"`
	ByType        map[string]int `json:"by_file_type"`
	ByAccessType  map[string]int `json:"by_access_type"`
	RecentRenames []Rename       `json:"recent_renames"`
}

// FilePatternQuery analyzes file access behavior over the trailing window.
func (s *Store) FilePatternQuery(windowDays int) FilePatterns {
	cutoff := s.windowCutoff(windowDays)

	byType := make(map[string]int)
	byAccess := make(map[string]int)
	var renames []Rename
	total := 0

	for _, access := range s.fileAccesses {
		if !access.Timestamp.After(cutoff) {
			continue
		}
		total++
		byType[access.FileType]++
		byAccess[access.AccessType]++

		if access.AccessType == AccessRename {
			renames = append(renames, Rename{
				From: access.PreviousName,
				To:   access.NewName,
				File: access.FilePath,
			})
		}
	}

	if len(renames) > keptTail {
		renames = renames[len(renames)-keptTail:]
	}

	return FilePatterns{
		Total:         total,
		ByType:        byType,
		ByAccessType:  byAccess,
		RecentRenames: renames,
	}
}

// PrefixCount is a naming prefix with its frequency.
type PrefixCount struct {
	Prefix string `json:"prefix"`
	Count  int    `json:"count"`
}

// NamingPatterns are the style frequencies observed across renames.
type NamingPatterns struct {
	UsesDates       int           `json:"uses_dates"`
	UsesUnderscores int           `json:"uses_underscores"`
	UsesHyphens     int           `json:"uses_hyphens"`
	UsesCamelCase   int           `json:"uses_camelCase"`
	UsesLowercase   int           `json:"uses_lowercase"`
	Prefixes        []PrefixCount `json:"uses_prefixes"`
	AverageLength   float64       `json:"average_length"`

	// PrimarySeparator is "underscore" or "hyphen", whichever dominates.
	PrimarySeparator string `json:"primary_separator"`

	// DateFrequency is the share of renames with a date-like name.
	DateFrequency float64 `json:"date_frequency"`
}

// NamingPreferences is the learned-naming query result. Patterns is nil
// when no renames have been observed.
type NamingPreferences struct {
	Patterns   *NamingPatterns `json:"learned_patterns,omitempty"`
	SampleSize int             `json:"sample_size"`
}

// NamingPreferences learns the user's naming style from historical renames.
//
// Each final name is classified by: presence of four or more digits
// (date-like), underscore/hyphen separators, all-lowercase vs. any
// uppercase past the first character (the camelCase heuristic — it also
// fires on capitalized acronyms, kept as-is), and a leading prefix token.
func (s *Store) NamingPreferences() NamingPreferences {
	var renames []FileAccessEvent
	for _, access := range s.fileAccesses {
		if access.AccessType == AccessRename && access.NewName != "" {
			renames = append(renames, access)
		}
	}
	if len(renames) == 0 {
		return NamingPreferences{}
	}

	var p NamingPatterns
	prefixes := make(map[string]int)
	totalLength := 0

	for _, rename := range renames {
		name := rename.NewName

		if digitCount(name) >= 4 {
			p.UsesDates++
		}
		if strings.Contains(name, "_") {
			p.UsesUnderscores++
		}
		if strings.Contains(name, "-") {
			p.UsesHyphens++
		}
		if name == strings.ToLower(name) {
			p.UsesLowercase++
		}
		if hasUpperPastFirst(name) {
			p.UsesCamelCase++
		}

		for _, sep := range []string{"_", "-", " "} {
			if strings.Contains(name, sep) {
				prefix := strings.SplitN(name, sep, 2)[0]
				if len(prefix) <= maxPrefixLen {
					prefixes[prefix]++
				}
				break
			}
		}

		totalLength += len(name)
	}

	p.AverageLength = float64(totalLength) / float64(len(renames))

	counts := make([]PrefixCount, 0, len(prefixes))
	for prefix, count := range prefixes {
		counts = append(counts, PrefixCount{Prefix: prefix, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Prefix < counts[j].Prefix
	})
	if len(counts) > 5 {
		counts = counts[:5]
	}
	p.Prefixes = counts

	if p.UsesUnderscores > p.UsesHyphens {
		p.PrimarySeparator = "underscore"
	} else {
		p.PrimarySeparator = "hyphen"
	}
	p.DateFrequency = float64(p.UsesDates) / float64(len(renames))

	return NamingPreferences{
		Patterns:   &p,
		SampleSize: len(renames),
	}
}

// SuggestionEffectiveness reports how suggestions are being received.
// Effective is nil until at least one response has been recorded.
type SuggestionEffectiveness struct {
	Total             int     `json:"total_suggestions"`
	AcceptanceRate    float64 `json:"acceptance_rate"`
	RejectionRate     float64 `json:"rejection_rate"`
	CustomizationRate float64 `json:"customization_rate"`
	Effective         *bool   `json:"effective"`
}

// SuggestionEffectiveness summarizes recorded suggestion responses.
func (s *Store) SuggestionEffectiveness() SuggestionEffectiveness {
	accepted := s.counters.SuggestionsAccepted
	rejected := s.counters.SuggestionsRejected
	customized := s.counters.SuggestionsCustomized
	total := accepted + rejected + customized

	if total == 0 {
		return SuggestionEffectiveness{}
	}

	effective := float64(accepted+customized)/float64(total) > 0.5
	return SuggestionEffectiveness{
		Total:             total,
		AcceptanceRate:    float64(accepted) / float64(total),
		RejectionRate:     float64(rejected) / float64(total),
		CustomizationRate: float64(customized) / float64(total),
		Effective:         &effective,
	}
}

// recentSearches filters the search log by the trailing window.
func (s *Store) recentSearches(windowDays int) []SearchEvent {
	cutoff := s.windowCutoff(windowDays)
	var recent []SearchEvent
	for _, search := range s.searches {
		if search.Timestamp.After(cutoff) {
			recent = append(recent, search)
		}
	}
	return recent
}

func (s *Store) windowCutoff(windowDays int) time.Time {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return s.now().AddDate(0, 0, -windowDays)
}

// fileTypeOf derives the stored file type from a path.
func fileTypeOf(path string) string {
	if path == "" {
		return "unknown"
	}
	return strings.ToLower(filepath.Ext(path))
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// hasUpperPastFirst reports any uppercase letter after the first character.
func hasUpperPastFirst(s string) bool {
	for i, r := range s {
		if i == 0 {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

func tailStrings(items []string, n int) []string {
	if len(items) > n {
		return items[len(items)-n:]
	}
	return items
}

func tailRefinements(items []Refinement, n int) []Refinement {
	if len(items) > n {
		return items[len(items)-n:]
	}
	return items
}
