/*
Package coach orchestrates adaptive guidance.

The coach ties the behavior store, skill assessor, and suggestion engine
together: every suggestion request is gated by the user's assessed skill
in the relevant area, so guidance fades out as the user improves and
re-engages when they regress. User overrides always win.
*/
package coach

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/wayfinderhq/wayfinder-coach/internal/assess"
	"github.com/wayfinderhq/wayfinder-coach/internal/behavior"
	"github.com/wayfinderhq/wayfinder-coach/internal/storage"
	"github.com/wayfinderhq/wayfinder-coach/internal/suggest"
)

// DefaultDataDir is the coach data directory under the user's home.
var DefaultDataDir = filepath.Join(".wayfinder", "learning")

// Options configures a Coach. The zero value uses the default data
// directory, the wall clock, and a time-seeded random source.
type Options struct {
	// DataDir holds behavior.db and coaching_state.json.
	DataDir string

	// Now supplies the current time; nil means time.Now.
	Now func() time.Time

	// Rand drives probabilistic suggestion display; nil means a
	// time-seeded source. Inject a seeded source for deterministic tests.
	Rand *rand.Rand
}

// Coach is the adaptive coaching orchestrator.
//
// Not safe for concurrent use; callers serialize access.
type Coach struct {
	dataDir string
	now     func() time.Time
	rng     *rand.Rand

	backend  storage.Backend
	store    *behavior.Store
	assessor *assess.Assessor

	state     *State
	statePath string
	cache     reportCache

	session *activeSession
}

// activeSession tracks per-session suggestion counters.
type activeSession struct {
	id        string
	startTime time.Time

	offered  int
	accepted int

	// startSkill snapshots overall skill for end-of-session delta.
	startSkill float64
}

// New creates a coach rooted at the configured data directory.
func New(opts Options) (*Coach, error) {
	dataDir := opts.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, DefaultDataDir)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	backend := storage.NewBackend(dataDir)
	store := behavior.NewStore(backend, now)
	statePath := filepath.Join(dataDir, stateFileName)

	return &Coach{
		dataDir:   dataDir,
		now:       now,
		rng:       rng,
		backend:   backend,
		store:     store,
		assessor:  assess.NewAssessor(store, now),
		state:     loadState(statePath),
		statePath: statePath,
	}, nil
}

// Store exposes the underlying behavior store for direct event tracking.
func (c *Coach) Store() *behavior.Store {
	return c.store
}

// DataDir returns the coach's data directory.
func (c *Coach) DataDir() string {
	return c.dataDir
}

// Close releases the underlying storage.
func (c *Coach) Close() error {
	return c.backend.Close()
}

// StartSession begins a coaching session and returns its ID.
func (c *Coach) StartSession() string {
	id := c.store.StartSession()
	report := c.report()
	c.session = &activeSession{
		id:         id,
		startTime:  c.now(),
		startSkill: report.OverallSkill,
	}
	return id
}

// ResumeSession adopts a session left open by a previous process, so a
// short-lived CLI invocation can end it. Returns false when no session
// is open anywhere.
func (c *Coach) ResumeSession() bool {
	if c.session != nil {
		return true
	}
	open := c.store.CurrentSession()
	if open == nil {
		return false
	}
	report := c.report()
	c.session = &activeSession{
		id:         open.SessionID,
		startTime:  open.StartTime,
		startSkill: report.OverallSkill,
	}
	return true
}

// SessionSummary describes a finished coaching session.
type SessionSummary struct {
	SessionID           string  `json:"session_id"`
	Duration            string  `json:"duration"`
	SuggestionsOffered  int     `json:"suggestions_offered"`
	SuggestionsAccepted int     `json:"suggestions_accepted"`
	SkillChange         float64 `json:"skill_change"`
}

// EndSession closes the active session and summarizes it. Without an
// active session it returns behavior.ErrNoActiveSession.
func (c *Coach) EndSession() (*SessionSummary, error) {
	if c.session == nil {
		return nil, behavior.ErrNoActiveSession
	}

	if _, err := c.store.EndSession(); err != nil {
		log.Printf("Warning: failed to end tracking session: %v", err)
	}

	c.cache.invalidate()
	report := c.report()

	summary := &SessionSummary{
		SessionID:           c.session.id,
		Duration:            humanDuration(c.now().Sub(c.session.startTime)),
		SuggestionsOffered:  c.session.offered,
		SuggestionsAccepted: c.session.accepted,
		SkillChange:         report.OverallSkill - c.session.startSkill,
	}
	c.session = nil
	return summary, nil
}

// SuggestionResult is the coach's answer to a suggestion request: the
// display decision plus the suggestion payload when one is shown.
type SuggestionResult struct {
	ShouldShow     bool    `json:"should_show"`
	SuggestionType string  `json:"suggestion_type"` // "naming", "folder", or "none"
	Intensity      float64 `json:"intensity"`
	SkillLevel     string  `json:"skill_level"`
	Reason         string  `json:"reason"`

	Naming *suggest.NamingSuggestion `json:"naming,omitempty"`
	Folder *suggest.FolderSuggestion `json:"folder,omitempty"`
}

// GetNamingSuggestion proposes a name for the file at path, gated by
// the user's naming skill. content is an optional free-text summary of
// the file's contents.
func (c *Coach) GetNamingSuggestion(path, content string) SuggestionResult {
	report := c.report()
	assessment := report.Skills[assess.SkillNaming]

	result, show := c.gate("naming", assess.SkillNaming, assessment)
	if !show {
		return result
	}

	engine := suggest.NewEngine(c.store.NamingPreferences(), c.now)
	naming := engine.SuggestFilename(path, suggest.ParseContent(content), "")
	result.Naming = &naming

	c.noteOffered()
	return result
}

// GetFolderSuggestion proposes a folder under baseDir for the file at
// path, gated by the user's folder organization skill. An empty baseDir
// defaults to the file's current directory.
func (c *Coach) GetFolderSuggestion(path, baseDir, content string) SuggestionResult {
	if baseDir == "" {
		baseDir = filepath.Dir(path)
	}

	report := c.report()
	assessment := report.Skills[assess.SkillFolders]

	result, show := c.gate("folder", assess.SkillFolders, assessment)
	if !show {
		return result
	}

	engine := suggest.NewEngine(c.store.NamingPreferences(), c.now)
	folder := engine.SuggestFolder(path, baseDir, suggest.ParseContent(content))
	result.Folder = &folder

	c.noteOffered()
	return result
}

// gate makes the display decision for one suggestion request.
//
// A user override always wins. A skill with no assessment history is
// coached at full intensity with no coin flip. Otherwise the assessed
// intensity is the probability the suggestion is shown.
func (c *Coach) gate(suggestionType, skill string, a assess.SkillAssessment) (SuggestionResult, bool) {
	if c.state.FadeOutOverrides[skill] {
		return SuggestionResult{
			ShouldShow:     false,
			SuggestionType: "none",
			Intensity:      IntensityNone,
			SkillLevel:     c.displayLevel(skill, a),
			Reason:         "Suggestions disabled for this skill",
		}, false
	}

	if a.Trend == assess.TrendNew {
		return SuggestionResult{
			ShouldShow:     true,
			SuggestionType: suggestionType,
			Intensity:      IntensityFull,
			SkillLevel:     LevelNew,
			Reason:         "No history yet, providing full guidance",
		}, true
	}

	intensity, level := intensityFor(a)
	if c.rng.Float64() >= intensity {
		return SuggestionResult{
			ShouldShow:     false,
			SuggestionType: suggestionType,
			Intensity:      intensity,
			SkillLevel:     level,
			Reason:         "Guidance faded at current skill level",
		}, false
	}

	return SuggestionResult{
		ShouldShow:     true,
		SuggestionType: suggestionType,
		Intensity:      intensity,
		SkillLevel:     level,
		Reason:         fmt.Sprintf("Skill at %.0f%%, trend %s", a.Score*100, a.Trend),
	}, true
}

// noteOffered bumps the offered counters and persists state.
func (c *Coach) noteOffered() {
	c.state.TotalSuggestionsOffered++
	if c.session != nil {
		c.session.offered++
	}
	c.saveState()
}

// SearchTip is contextual search help.
type SearchTip struct {
	Tip       string  `json:"tip"`
	Type      string  `json:"type"` // "no_results" or "general"
	Intensity float64 `json:"intensity"`
}

// generalSearchTips rotate for users still building search skill.
var generalSearchTips = []string{
	"Try using specific words from the file content, not just the name.",
	"Shorter queries often work better. Start broad, then narrow down.",
	"You can search by topic. Try words like 'budget' or 'meeting'.",
	"Recently accessed files rank higher. Check the top results first.",
}

// GetSearchTip returns a search tip when the user's search skill
// warrants one, or nil when guidance has faded out.
func (c *Coach) GetSearchTip(query string, resultsCount int) *SearchTip {
	report := c.report()
	assessment := report.Skills[assess.SkillSearch]

	if c.state.FadeOutOverrides[assess.SkillSearch] {
		return nil
	}

	intensity := IntensityFull
	if assessment.Trend != assess.TrendNew {
		intensity, _ = intensityFor(assessment)
		if intensity < IntensityOccasional {
			return nil
		}
	}

	if resultsCount == 0 {
		return &SearchTip{
			Tip: "No results? Try broader terms or check spelling. " +
				"Content words often work better than filename guesses.",
			Type:      "no_results",
			Intensity: intensity,
		}
	}

	if assessment.Score < assess.ThresholdLearning {
		return &SearchTip{
			Tip:       generalSearchTips[c.rng.Intn(len(generalSearchTips))],
			Type:      "general",
			Intensity: intensity,
		}
	}

	return nil
}

// RecordSuggestionResponse records the user's reaction to a suggestion.
//
// An accepted naming suggestion records approve_suggestion, an accepted
// folder suggestion records folder_choice, and an accepted value edited
// by the user counts as a customization either way. The cached report
// is invalidated so the response affects the next assessment.
func (c *Coach) RecordSuggestionResponse(suggestionType string, accepted bool, original, suggested, final string) error {
	decisionType := behavior.DecisionReject
	userValue := final
	if accepted {
		decisionType = behavior.DecisionApprove
		if suggestionType == "folder" {
			decisionType = behavior.DecisionFolderChoice
		}
		if userValue == "" {
			userValue = suggested
		}
		if userValue != suggested {
			decisionType = behavior.DecisionCustomName
		}
	}

	c.store.RecordDecision(behavior.DecisionEvent{
		DecisionType:   decisionType,
		SuggestedValue: suggested,
		UserValue:      userValue,
		Context: map[string]string{
			"suggestion_type": suggestionType,
			"original":        original,
		},
	})

	if accepted {
		c.state.TotalSuggestionsAccepted++
		if c.session != nil {
			c.session.accepted++
		}
	} else {
		c.state.TotalSuggestionsDismissed++
	}

	c.cache.invalidate()
	return c.state.save(c.statePath)
}

// SkillStatus is the reported state of one skill area.
type SkillStatus struct {
	Score        float64 `json:"score"`
	Confidence   float64 `json:"confidence"`
	Trend        string  `json:"trend"`
	Level        string  `json:"level"`
	Intensity    float64 `json:"intensity"`
	SamplesCount int     `json:"samples_count"`
}

// Status is the full coaching status report.
type Status struct {
	OverallSkill float64                `json:"overall_skill"`
	Skills       map[string]SkillStatus `json:"skills"`

	Struggles       []string `json:"struggles"`
	Improvements    []string `json:"improvements"`
	Regressions     []string `json:"regressions"`
	Recommendations []string `json:"recommendations"`

	// GuidanceActive reports whether any skill still gets real guidance.
	GuidanceActive bool `json:"guidance_active"`

	// SessionActive reports whether a session is open, here or in
	// another process.
	SessionActive bool `json:"session_active"`

	TotalSuggestionsOffered   int     `json:"total_suggestions_offered"`
	TotalSuggestionsAccepted  int     `json:"total_suggestions_accepted"`
	TotalSuggestionsDismissed int     `json:"total_suggestions_dismissed"`
	AcceptanceRate            float64 `json:"acceptance_rate"`
}

// Status reports the current skill levels and coaching activity.
func (c *Coach) Status() Status {
	report := c.report()

	skills := make(map[string]SkillStatus, len(report.Skills))
	guidanceActive := false
	for name, a := range report.Skills {
		intensity, level := c.displayIntensity(name, a)
		skills[name] = SkillStatus{
			Score:        a.Score,
			Confidence:   a.Confidence,
			Trend:        string(a.Trend),
			Level:        level,
			Intensity:    intensity,
			SamplesCount: a.SamplesCount,
		}
		if intensity > IntensityMinimal {
			guidanceActive = true
		}
	}

	var struggles []string
	for _, s := range report.Struggles {
		struggles = append(struggles, s.Skill)
	}
	var improvements []string
	for _, imp := range report.Improvements {
		improvements = append(improvements, imp.Skill)
	}
	var regressions []string
	for _, r := range report.Regressions {
		regressions = append(regressions, r.Skill)
	}

	acceptanceRate := 0.0
	if c.state.TotalSuggestionsOffered > 0 {
		acceptanceRate = float64(c.state.TotalSuggestionsAccepted) /
			float64(c.state.TotalSuggestionsOffered)
	}

	return Status{
		OverallSkill:              report.OverallSkill,
		Skills:                    skills,
		Struggles:                 struggles,
		Improvements:              improvements,
		Regressions:               regressions,
		Recommendations:           report.Recommendations,
		GuidanceActive:            guidanceActive,
		SessionActive:             c.session != nil || c.store.CurrentSession() != nil,
		TotalSuggestionsOffered:   c.state.TotalSuggestionsOffered,
		TotalSuggestionsAccepted:  c.state.TotalSuggestionsAccepted,
		TotalSuggestionsDismissed: c.state.TotalSuggestionsDismissed,
		AcceptanceRate:            acceptanceRate,
	}
}

// SkillFade describes the fade-out state of one skill.
type SkillFade struct {
	Level            string  `json:"level"`
	Intensity        float64 `json:"intensity"`
	FadedOut         bool    `json:"faded_out"`
	OverrideDisabled bool    `json:"override_disabled"`
	WillReEngage     bool    `json:"will_re_engage"`
}

// FadeStatus reports per-skill fade-out state.
func (c *Coach) FadeStatus() map[string]SkillFade {
	report := c.report()

	fades := make(map[string]SkillFade, len(report.Skills))
	for name, a := range report.Skills {
		intensity, level := c.displayIntensity(name, a)
		fades[name] = SkillFade{
			Level:            level,
			Intensity:        intensity,
			FadedOut:         intensity <= IntensityMinimal,
			OverrideDisabled: c.state.FadeOutOverrides[name],
			WillReEngage:     a.Trend == assess.TrendRegressing,
		}
	}
	return fades
}

// SkillHistory returns the persisted score points for a skill within
// the last days days; days <= 0 means all history.
func (c *Coach) SkillHistory(skill string, days int) []ScorePoint {
	points := c.state.SkillHistory[skill]
	if days <= 0 {
		return points
	}

	cutoff := c.now().AddDate(0, 0, -days)
	var recent []ScorePoint
	for _, p := range points {
		if !p.Date.Before(cutoff) {
			recent = append(recent, p)
		}
	}
	return recent
}

// SetFadeOutOverride disables (or re-enables) suggestions for a skill,
// regardless of assessed level.
func (c *Coach) SetFadeOutOverride(skill string, disabled bool) error {
	if !knownSkill(skill) {
		return fmt.Errorf("unknown skill %q", skill)
	}

	if disabled {
		c.state.FadeOutOverrides[skill] = true
	} else {
		delete(c.state.FadeOutOverrides, skill)
	}
	return c.state.save(c.statePath)
}

// ResetSkillTracking wipes trend and score history for one skill, or
// for all skills when skill is empty.
func (c *Coach) ResetSkillTracking(skill string) error {
	if skill == "" {
		c.state.SkillHistory = make(map[string][]ScorePoint)
		c.assessor.ResetHistory("")
	} else {
		if !knownSkill(skill) {
			return fmt.Errorf("unknown skill %q", skill)
		}
		delete(c.state.SkillHistory, skill)
		c.assessor.ResetHistory(skill)
	}

	c.cache.invalidate()
	return c.state.save(c.statePath)
}

// ForceReEngagement restarts full coaching for a skill: the override is
// cleared and its history reset so it assesses as new again.
func (c *Coach) ForceReEngagement(skill string) error {
	if !knownSkill(skill) {
		return fmt.Errorf("unknown skill %q", skill)
	}

	delete(c.state.FadeOutOverrides, skill)
	delete(c.state.SkillHistory, skill)
	c.assessor.ResetHistory(skill)

	c.cache.invalidate()
	return c.state.save(c.statePath)
}

// report returns the cached skill report, recomputing on expiry. Each
// recompute appends to the persisted skill history.
func (c *Coach) report() *assess.Report {
	if report, ok := c.cache.get(c.now()); ok {
		return report
	}

	report := c.assessor.AssessAll()
	now := c.now()
	c.cache.set(report, now)

	for name, a := range report.Skills {
		points := append(c.state.SkillHistory[name], ScorePoint{
			Date:  now,
			Score: a.Score,
			Trend: string(a.Trend),
		})
		if len(points) > maxHistoryEntries {
			points = points[len(points)-maxHistoryEntries:]
		}
		c.state.SkillHistory[name] = points
	}
	last := now
	c.state.LastAssessment = &last
	c.saveState()

	return report
}

// displayIntensity is the intensity/level pair as surfaced to the user:
// overrides show as none, unassessed skills as new at full intensity.
func (c *Coach) displayIntensity(skill string, a assess.SkillAssessment) (float64, string) {
	if c.state.FadeOutOverrides[skill] {
		return IntensityNone, c.displayLevel(skill, a)
	}
	if a.Trend == assess.TrendNew {
		return IntensityFull, LevelNew
	}
	return intensityFor(a)
}

// displayLevel labels a skill without the override applied.
func (c *Coach) displayLevel(skill string, a assess.SkillAssessment) string {
	if a.Trend == assess.TrendNew {
		return LevelNew
	}
	_, level := intensityFor(a)
	return level
}

func (c *Coach) saveState() {
	if err := c.state.save(c.statePath); err != nil {
		log.Printf("Warning: failed to save coaching state: %v", err)
	}
}

func knownSkill(skill string) bool {
	for _, name := range assess.AllSkills {
		if name == skill {
			return true
		}
	}
	return false
}

// humanDuration renders a session duration like "45s", "12m" or "1h 5m".
func humanDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	minutes := int(d.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
