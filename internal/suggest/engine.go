package suggest

import (
	"strings"
	"time"

	"github.com/wayfinderhq/wayfinder-coach/internal/behavior"
)

// defaultMaxNameLen caps generated names when no length was learned.
const defaultMaxNameLen = 50

// learnedConventions is the snapshot of the user's naming style derived
// from behavior-store naming preferences at construction.
type learnedConventions struct {
	separator      string
	usesDates      bool
	caseStyle      string // "lowercase" or "camelCase"
	commonPrefixes []string
	avgLength      int
}

// ContentInfo carries what is known about a file's content.
// Empty fields fall back to values derived from the path.
type ContentInfo struct {
	Title  string   `json:"title,omitempty"`
	Topics []string `json:"topics,omitempty"`
	Type   string   `json:"type,omitempty"`
	Date   string   `json:"date,omitempty"` // YYYYMMDD
}

// ParseContent derives a ContentInfo from a free-text content summary:
// the first non-empty line becomes the title and any category keywords
// found in the text become topics.
func ParseContent(content string) *ContentInfo {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	title := content
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			title = line
			break
		}
	}
	title = truncateRunes(title, 80)

	var topics []string
	lower := strings.ToLower(content)
	for _, tk := range topicKeywords {
		if strings.Contains(lower, tk.keyword) {
			topics = append(topics, tk.keyword)
		}
	}

	return &ContentInfo{Title: title, Topics: topics}
}

// Engine generates naming and organization suggestions from content
// analysis and the user's learned conventions.
type Engine struct {
	learned learnedConventions
	now     func() time.Time
}

// NewEngine builds an engine with conventions learned from the user's
// naming preferences. now defaults to time.Now when nil.
func NewEngine(prefs behavior.NamingPreferences, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}

	learned := learnedConventions{
		separator: "_",
		caseStyle: "lowercase",
		avgLength: defaultMaxNameLen,
	}

	// Ties between competing styles fall to hyphen and camelCase.
	if p := prefs.Patterns; p != nil {
		if p.UsesUnderscores <= p.UsesHyphens {
			learned.separator = "-"
		}
		learned.usesDates = p.DateFrequency > 0.3
		if p.UsesLowercase <= p.UsesCamelCase {
			learned.caseStyle = "camelCase"
		}
		for _, prefix := range p.Prefixes {
			learned.commonPrefixes = append(learned.commonPrefixes, prefix.Prefix)
		}
		if p.AverageLength > 0 {
			learned.avgLength = int(p.AverageLength)
		}
	}

	return &Engine{learned: learned, now: now}
}

// chooseConvention picks the best convention for a file, preferring the
// user's learned habits over type-based defaults.
func (e *Engine) chooseConvention(fileType string, topics []string) Convention {
	if e.learned.usesDates {
		return ConventionDatePrefix
	}
	if len(e.learned.commonPrefixes) > 0 {
		return ConventionCategoryFirst
	}

	switch fileType {
	case "document":
		return ConventionDatePrefix
	case "code", "image":
		return ConventionSemantic
	case "spreadsheet":
		return ConventionCategoryFirst
	case "presentation":
		return ConventionProjectBased
	default:
		return ConventionCategoryFirst
	}
}

// applyConvention renders a candidate name (without extension).
func (e *Engine) applyConvention(convention Convention, title string, topics []string, fileType, date string) string {
	clean := e.cleanForFilename(title)
	sep := e.learned.separator

	switch convention {
	case ConventionDatePrefix:
		return date + sep + clean
	case ConventionCategoryFirst:
		topic := "general"
		if len(topics) > 0 {
			topic = e.cleanForFilename(topics[0])
		}
		return categoryPrefix(fileType, topics) + sep + topic + sep + clean
	case ConventionProjectBased:
		project := "misc"
		if len(topics) > 0 {
			project = e.cleanForFilename(topics[0])
		}
		return project + sep + fileType + sep + clean
	default: // semantic
		return clean
	}
}

// cleanForFilename sanitizes text into a filename fragment: strips
// filesystem-illegal characters, collapses whitespace and separator runs
// into the learned separator, applies the learned case style, and
// truncates to the learned length at a separator boundary.
func (e *Engine) cleanForFilename(text string) string {
	if text == "" {
		return "untitled"
	}

	sep := e.learned.separator
	text = invalidFilenameChars.ReplaceAllString(text, "")
	text = separatorRuns.ReplaceAllString(text, sep)

	if e.learned.caseStyle == "lowercase" {
		text = strings.ToLower(text)
	}

	maxLen := e.learned.avgLength
	if maxLen > 100 {
		maxLen = 100
	}
	if maxLen > 0 {
		if cut := truncateRunes(text, maxLen); cut != text {
			if idx := strings.LastIndex(cut, sep); idx > 0 {
				cut = cut[:idx]
			}
			text = cut
		}
	}

	text = strings.Trim(text, sep)
	if text == "" {
		return "untitled"
	}
	return text
}

// truncateRunes cuts s to at most n runes, never splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
