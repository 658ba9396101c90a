package assess

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/wayfinderhq/wayfinder-coach/internal/behavior"
)

// Minimum samples before a skill is scored; below these the assessment is
// neutral (score 0.5, confidence 0.1, trend "new").
const (
	minSearchSamples     = 3
	minNamingSamples     = 5
	minNavigationSamples = 5
	minFileSamples       = 5
)

// Score thresholds shared with the coach's display bands.
const (
	ThresholdStruggling = 0.4
	ThresholdLearning   = 0.7
	ThresholdProficient = 0.85
)

// severityCutoff marks a struggle as "high" severity.
const severityCutoff = 0.25

// Assessor analyzes tracked behavior to detect struggles and skill levels.
type Assessor struct {
	store *behavior.Store
	now   func() time.Time

	// history keeps the last 10 computed scores per skill for trend.
	history map[string][]float64
}

// NewAssessor creates an assessor over the given store.
func NewAssessor(store *behavior.Store, now func() time.Time) *Assessor {
	if now == nil {
		now = time.Now
	}
	return &Assessor{
		store:   store,
		now:     now,
		history: make(map[string][]float64),
	}
}

// AssessAll runs a full skill assessment across all areas.
func (a *Assessor) AssessAll() *Report {
	skills := map[string]SkillAssessment{
		SkillSearch:  a.assessSearchAbility(),
		SkillNaming:  a.assessNamingConsistency(),
		SkillFolders: a.assessFolderOrganization(),
		SkillFiles:   a.assessFileManagement(),
	}

	weightedSum := 0.0
	weightTotal := 0.0
	for _, s := range skills {
		if s.Confidence > 0.3 {
			weightedSum += s.Score * s.Confidence
			weightTotal += s.Confidence
		}
	}
	overall := 0.5
	if weightTotal > 0 {
		overall = weightedSum / weightTotal
	}

	struggles := identifyStruggles(skills)

	return &Report{
		OverallSkill:    overall,
		Skills:          skills,
		Struggles:       struggles,
		Improvements:    identifyImprovements(skills),
		Regressions:     identifyRegressions(skills),
		Recommendations: recommendations(skills, struggles),
	}
}

// ResetHistory clears the trend history for one skill, or all when
// skillName is empty.
func (a *Assessor) ResetHistory(skillName string) {
	if skillName == "" {
		a.history = make(map[string][]float64)
		return
	}
	delete(a.history, skillName)
}

// newAssessment is the neutral result for skills without enough data.
func (a *Assessor) newAssessment(skill, reason string, samples int) SkillAssessment {
	return SkillAssessment{
		SkillName:    skill,
		Score:        0.5,
		Confidence:   0.1,
		Trend:        TrendNew,
		Evidence:     []string{reason},
		LastUpdated:  a.now(),
		SamplesCount: samples,
	}
}

// assessSearchAbility scores the user's ability to find files via search.
// score = 0.5*success + 0.25*(1-refinement) + 0.25*(1-failure)
func (a *Assessor) assessSearchAbility() SkillAssessment {
	patterns := a.store.SearchPatternQuery(behavior.DefaultWindowDays)

	total := patterns.Total
	if total < minSearchSamples {
		return a.newAssessment(SkillSearch, "Not enough search data", total)
	}

	successRate := patterns.SuccessRate
	refinementRate := float64(len(patterns.Refinements)) / float64(total)
	failureRate := float64(len(patterns.FailedQueries)) / float64(total)

	evidence := []string{
		fmt.Sprintf("Search success rate: %.0f%%", successRate*100),
		fmt.Sprintf("Search refinement rate: %.0f%%", refinementRate*100),
		fmt.Sprintf("Abandoned searches: %.0f%%", failureRate*100),
	}

	score := clamp01(successRate*0.5 + (1-refinementRate)*0.25 + (1-failureRate)*0.25)

	return SkillAssessment{
		SkillName:    SkillSearch,
		Score:        score,
		Confidence:   math.Min(float64(total)/20, 1.0),
		Trend:        a.trend(SkillSearch, score),
		Evidence:     evidence,
		LastUpdated:  a.now(),
		SamplesCount: total,
	}
}

// assessNamingConsistency scores how consistently the user names files.
// score = 0.4*separator + 0.3*case + prefix bonus (0.3 or 0.15)
func (a *Assessor) assessNamingConsistency() SkillAssessment {
	prefs := a.store.NamingPreferences()

	sampleSize := prefs.SampleSize
	if sampleSize < minNamingSamples || prefs.Patterns == nil {
		return a.newAssessment(SkillNaming, "Not enough naming data", sampleSize)
	}
	patterns := prefs.Patterns

	n := float64(sampleSize)
	underscorePct := float64(patterns.UsesUnderscores) / n
	hyphenPct := float64(patterns.UsesHyphens) / n
	separatorConsistency := math.Max(underscorePct,
		math.Max(hyphenPct, 1-underscorePct-hyphenPct))

	lowercasePct := float64(patterns.UsesLowercase) / n
	caseConsistency := math.Max(lowercasePct, 1-lowercasePct)

	hasPrefixes := len(patterns.Prefixes) > 0 && patterns.Prefixes[0].Count >= 3
	prefixBonus := 0.15
	prefixLabel := "No"
	if hasPrefixes {
		prefixBonus = 0.3
		prefixLabel = "Yes"
	}

	evidence := []string{
		fmt.Sprintf("Separator consistency: %.0f%%", separatorConsistency*100),
		fmt.Sprintf("Case consistency: %.0f%%", caseConsistency*100),
		fmt.Sprintf("Uses category prefixes: %s", prefixLabel),
	}

	score := clamp01(separatorConsistency*0.4 + caseConsistency*0.3 + prefixBonus)

	return SkillAssessment{
		SkillName:    SkillNaming,
		Score:        score,
		Confidence:   math.Min(n/15, 1.0),
		Trend:        a.trend(SkillNaming, score),
		Evidence:     evidence,
		LastUpdated:  a.now(),
		SamplesCount: sampleSize,
	}
}

// assessFolderOrganization scores how logically files are organized.
// score = 0.3*time + 0.35*depth + 0.35*scatter
func (a *Assessor) assessFolderOrganization() SkillAssessment {
	navigations := a.store.NavigationEvents()
	accesses := a.store.FileAccessEvents()

	if len(navigations) < minNavigationSamples {
		return a.newAssessment(SkillFolders, "Not enough navigation data", len(navigations))
	}

	var evidence []string

	// Long navigation times suggest wandering; over 60s is concerning.
	recent := lastNavigations(navigations, 20)
	totalTime := 0.0
	for _, nav := range recent {
		totalTime += nav.TimeSpentSeconds
	}
	avgNavTime := totalTime / float64(len(recent))
	timeScore := clamp01(1.0 - math.Min(avgNavTime/60, 1.0))
	evidence = append(evidence, fmt.Sprintf("Avg navigation time: %.1fs", avgNavTime))

	// Deep paths suggest over-nesting; 3 levels is normal, 10+ is bad.
	depthScore := 0.5
	var depths []int
	for _, access := range lastAccesses(accesses, 50) {
		if access.FilePath != "" {
			depths = append(depths, pathDepth(access.FilePath))
		}
	}
	if len(depths) > 0 {
		sum := 0
		for _, d := range depths {
			sum += d
		}
		avgDepth := float64(sum) / float64(len(depths))
		depthScore = clamp01(1.0 - math.Min((avgDepth-3)/7, 1.0))
		evidence = append(evidence, fmt.Sprintf("Avg folder depth: %.1f", avgDepth))
	}

	// One file type spread over many folders means scattered files;
	// up to 3 folders per type is fine.
	scatterScore := 0.5
	folderTypes := make(map[string]map[string]bool)
	for _, access := range lastAccesses(accesses, 100) {
		if access.FilePath == "" {
			continue
		}
		folder := filepath.Dir(access.FilePath)
		if folderTypes[folder] == nil {
			folderTypes[folder] = make(map[string]bool)
		}
		folderTypes[folder][access.FileType] = true
	}
	if len(folderTypes) > 0 {
		typeFolders := make(map[string]int)
		for _, types := range folderTypes {
			for t := range types {
				typeFolders[t]++
			}
		}
		maxScatter := 1
		for _, count := range typeFolders {
			if count > maxScatter {
				maxScatter = count
			}
		}
		scatterScore = clamp01(1.0 - math.Min(float64(maxScatter-3)/10, 1.0))
		evidence = append(evidence, fmt.Sprintf("Max file type scatter: %d folders", maxScatter))
	}

	score := clamp01(timeScore*0.3 + depthScore*0.35 + scatterScore*0.35)

	return SkillAssessment{
		SkillName:    SkillFolders,
		Score:        score,
		Confidence:   math.Min(float64(len(navigations))/20, 1.0),
		Trend:        a.trend(SkillFolders, score),
		Evidence:     evidence,
		LastUpdated:  a.now(),
		SamplesCount: len(navigations),
	}
}

// assessFileManagement scores overall file handling.
// score = 0.4*rename + 0.35*suggestion + 0.25*variety
func (a *Assessor) assessFileManagement() SkillAssessment {
	filePatterns := a.store.FilePatternQuery(behavior.DefaultWindowDays)
	effectiveness := a.store.SuggestionEffectiveness()

	total := filePatterns.Total
	if total < minFileSamples {
		return a.newAssessment(SkillFiles, "Not enough file access data", total)
	}

	var evidence []string

	// Frequent renames mean files were poorly named to begin with;
	// a 30% rename/open ratio is very high.
	renames := filePatterns.ByAccessType[behavior.AccessRename]
	opens := filePatterns.ByAccessType[behavior.AccessOpen]
	if opens < 1 {
		opens = 1
	}
	renameRatio := float64(renames) / float64(opens)
	renameScore := clamp01(1.0 - math.Min(renameRatio/0.3, 1.0))
	evidence = append(evidence, fmt.Sprintf("Rename ratio: %.0f%%", renameRatio*100))

	suggestionScore := 0.5
	if effectiveness.Total > 0 {
		suggestionScore = effectiveness.AcceptanceRate*0.7 + effectiveness.CustomizationRate*0.3
		evidence = append(evidence,
			fmt.Sprintf("Suggestion acceptance: %.0f%%", effectiveness.AcceptanceRate*100),
			fmt.Sprintf("Suggestion customization: %.0f%%", effectiveness.CustomizationRate*100))
	}

	// Experienced users exercise more operation types; 4+ is experienced.
	operationTypes := 0
	for _, count := range filePatterns.ByAccessType {
		if count > 0 {
			operationTypes++
		}
	}
	varietyScore := math.Min(float64(operationTypes)/4, 1.0)
	evidence = append(evidence, fmt.Sprintf("Operation variety: %d types", operationTypes))

	score := clamp01(renameScore*0.4 + suggestionScore*0.35 + varietyScore*0.25)

	return SkillAssessment{
		SkillName:    SkillFiles,
		Score:        score,
		Confidence:   math.Min(float64(total)/30, 1.0),
		Trend:        a.trend(SkillFiles, score),
		Evidence:     evidence,
		LastUpdated:  a.now(),
		SamplesCount: total,
	}
}

// trend records the current score and classifies the direction by
// comparing the mean of the last 3 scores against the mean of the
// earlier ones, over a ring of at most 10.
func (a *Assessor) trend(skillName string, currentScore float64) Trend {
	history := append(a.history[skillName], currentScore)
	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	a.history[skillName] = history

	if len(history) < 3 {
		return TrendNew
	}

	recent := history[len(history)-3:]
	older := history[:len(history)-3]
	if len(older) == 0 {
		older = recent
	}

	diff := mean(recent) - mean(older)
	switch {
	case diff > 0.1:
		return TrendImproving
	case diff < -0.1:
		return TrendRegressing
	default:
		return TrendStable
	}
}

func identifyStruggles(skills map[string]SkillAssessment) []Struggle {
	var struggles []Struggle
	for name, assessment := range skills {
		if assessment.Score < ThresholdStruggling && assessment.Confidence > 0.3 {
			severity := "medium"
			if assessment.Score < severityCutoff {
				severity = "high"
			}
			struggles = append(struggles, Struggle{
				Skill:    name,
				Score:    assessment.Score,
				Evidence: assessment.Evidence,
				Severity: severity,
			})
		}
	}
	sort.Slice(struggles, func(i, j int) bool {
		return struggles[i].Score < struggles[j].Score
	})
	return struggles
}

func identifyImprovements(skills map[string]SkillAssessment) []Improvement {
	var improvements []Improvement
	for _, name := range AllSkills {
		assessment := skills[name]
		if assessment.Trend == TrendImproving {
			improvements = append(improvements, Improvement{
				Skill:        name,
				CurrentScore: assessment.Score,
				Message:      fmt.Sprintf("Great progress on %s!", humanSkill(name)),
			})
		}
	}
	return improvements
}

func identifyRegressions(skills map[string]SkillAssessment) []Regression {
	var regressions []Regression
	for _, name := range AllSkills {
		assessment := skills[name]
		if assessment.Trend == TrendRegressing && assessment.Confidence > 0.4 {
			regressions = append(regressions, Regression{
				Skill:        name,
				CurrentScore: assessment.Score,
				Message: fmt.Sprintf("Noticed some regression in %s. Let me help!",
					humanSkill(name)),
				ShouldIncreaseSuggestions: true,
			})
		}
	}
	return regressions
}

// recommendations turns the top struggles into at most two actionable
// lines, plus an encouragement line when anything is improving.
func recommendations(skills map[string]SkillAssessment, struggles []Struggle) []string {
	var recs []string

	for i, struggle := range struggles {
		if i >= 2 {
			break
		}
		switch struggle.Skill {
		case SkillSearch:
			recs = append(recs, "Try using more specific keywords when searching. "+
				"I'll show preview snippets to help you identify the right files.")
		case SkillNaming:
			recs = append(recs, "I noticed varying naming patterns. Consider using a "+
				"consistent format like: CATEGORY_topic_YYYYMMDD (e.g., NOTES_meeting_20260209)")
		case SkillFolders:
			recs = append(recs, "Some files seem scattered. Would you like me to suggest "+
				"a folder structure based on your file types and topics?")
		case SkillFiles:
			recs = append(recs, "You're renaming files frequently. I can suggest better "+
				"names upfront to save you time.")
		}
	}

	for _, name := range AllSkills {
		if skills[name].Trend == TrendImproving {
			recs = append(recs, fmt.Sprintf("You're getting better at %s! Keep it up.",
				humanSkill(name)))
			break
		}
	}

	return recs
}

func humanSkill(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// pathDepth counts path components, including the root for absolute paths.
func pathDepth(path string) int {
	clean := filepath.ToSlash(path)
	depth := 0
	if strings.HasPrefix(clean, "/") {
		depth++
	}
	for _, part := range strings.Split(clean, "/") {
		if part != "" {
			depth++
		}
	}
	return depth
}

func lastNavigations(events []behavior.NavigationEvent, n int) []behavior.NavigationEvent {
	if len(events) > n {
		return events[len(events)-n:]
	}
	return events
}

func lastAccesses(events []behavior.FileAccessEvent, n int) []behavior.FileAccessEvent {
	if len(events) > n {
		return events[len(events)-n:]
	}
	return events
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}
