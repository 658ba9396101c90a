/*
Package assess scores the user's file-handling skills from tracked behavior.

Four skill areas are assessed independently; each scoring function is a
fixed weighted sum over behavior-store aggregates with hand-tuned
thresholds. Scores feed the coach's fade-out logic.
*/
package assess

import "time"

// Skill area names.
const (
	SkillSearch  = "search_ability"
	SkillNaming  = "naming_consistency"
	SkillFolders = "folder_organization"
	SkillFiles   = "file_management"
)

// AllSkills lists the tracked skill areas in reporting order.
var AllSkills = []string{SkillSearch, SkillNaming, SkillFolders, SkillFiles}

// Trend classifies the direction of a skill over recent assessments.
type Trend string

const (
	TrendNew        Trend = "new"
	TrendImproving  Trend = "improving"
	TrendStable     Trend = "stable"
	TrendRegressing Trend = "regressing"
)

// SkillAssessment is the scored state of one skill area.
type SkillAssessment struct {
	SkillName string `json:"skill_name"`

	// Score runs 0.0 (struggling) to 1.0 (mastered).
	Score float64 `json:"score"`

	// Confidence grows with sample count, capped at 1.0.
	Confidence float64 `json:"confidence"`

	Trend Trend `json:"trend"`

	// Evidence is the human-readable basis for the score.
	Evidence []string `json:"evidence"`

	LastUpdated  time.Time `json:"last_updated"`
	SamplesCount int       `json:"samples_count"`
}

// Struggle flags a skill scoring below the struggling threshold.
type Struggle struct {
	Skill    string   `json:"skill"`
	Score    float64  `json:"score"`
	Evidence []string `json:"evidence"`

	// Severity is "high" below 0.25, else "medium".
	Severity string `json:"severity"`
}

// Improvement flags a skill with an improving trend.
type Improvement struct {
	Skill        string  `json:"skill"`
	CurrentScore float64 `json:"current_score"`
	Message      string  `json:"message"`
}

// Regression flags a skill getting worse, warranting re-engagement.
type Regression struct {
	Skill                     string  `json:"skill"`
	CurrentScore              float64 `json:"current_score"`
	Message                   string  `json:"message"`
	ShouldIncreaseSuggestions bool    `json:"should_increase_suggestions"`
}

// Report is the full difficulty report across all skill areas.
type Report struct {
	// OverallSkill is the confidence-weighted mean of valid assessments.
	OverallSkill float64 `json:"overall_skill"`

	Skills map[string]SkillAssessment `json:"skills"`

	Struggles    []Struggle    `json:"struggles"`
	Improvements []Improvement `json:"improvements"`
	Regressions  []Regression  `json:"regressions"`

	// Recommendations are up to two actionable lines plus encouragement.
	Recommendations []string `json:"recommendations"`
}
