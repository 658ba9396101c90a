package coach

import (
	"github.com/wayfinderhq/wayfinder-coach/internal/assess"
)

// Suggestion intensity bands. Intensity is the probability that a
// suggestion is actually shown.
const (
	IntensityFull       = 1.0
	IntensityRegular    = 0.7
	IntensityOccasional = 0.3
	IntensityMinimal    = 0.1
	IntensityNone       = 0.0
)

// Skill level labels reported alongside intensity.
const (
	LevelNew        = "new"
	LevelStruggling = "struggling"
	LevelLearning   = "learning"
	LevelProficient = "proficient"
	LevelMastered   = "mastered"
)

// intensityFor maps a skill assessment onto a display intensity and a
// level label.
//
// The base band comes from the score; a regressing trend re-engages
// (and demotes a mastered label), an improving trend backs off, and a
// low-confidence assessment keeps guidance at regular intensity until
// enough evidence accumulates.
func intensityFor(a assess.SkillAssessment) (float64, string) {
	var intensity float64
	var level string

	switch {
	case a.Score < assess.ThresholdStruggling:
		intensity, level = IntensityFull, LevelStruggling
	case a.Score < assess.ThresholdLearning:
		intensity, level = IntensityRegular, LevelLearning
	case a.Score < assess.ThresholdProficient:
		intensity, level = IntensityOccasional, LevelProficient
	default:
		intensity, level = IntensityMinimal, LevelMastered
	}

	switch a.Trend {
	case assess.TrendRegressing:
		intensity += 0.2
		if intensity > 1.0 {
			intensity = 1.0
		}
		if level == LevelMastered {
			level = LevelProficient
		}
	case assess.TrendImproving:
		intensity -= 0.1
		if intensity < 0 {
			intensity = 0
		}
	}

	if a.Confidence < 0.5 && intensity < IntensityRegular {
		intensity = IntensityRegular
	}

	return intensity, level
}
