/*
Package behavior implements the behavior store: an append-only log of typed
user events grouped into sessions, with derived aggregate statistics.

Events form a closed set of four kinds (search, file access, navigation,
organization decision). Everything is local to the user's data directory
and can be wiped at any time.
*/
package behavior

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind identifies one of the four event variants.
type Kind string

const (
	KindSearch     Kind = "search"
	KindFileAccess Kind = "file_access"
	KindNavigation Kind = "navigation"
	KindDecision   Kind = "decision"
)

// File access types.
const (
	AccessOpen    = "open"
	AccessPreview = "preview"
	AccessEdit    = "edit"
	AccessRename  = "rename"
	AccessMove    = "move"
	AccessDelete  = "delete"
)

// Organization decision types. Approve and folder_choice both count as
// accepted suggestions; folder_choice marks an accepted folder placement.
const (
	DecisionApprove      = "approve_suggestion"
	DecisionReject       = "reject_suggestion"
	DecisionCustomName   = "custom_name"
	DecisionFolderChoice = "folder_choice"
)

// Event is the closed union of the four event kinds.
//
// The unexported marker keeps the set closed: only the types in this
// package satisfy the interface, so persistence and the assessor can
// switch over kinds exhaustively.
type Event interface {
	EventKind() Kind
	When() time.Time
	Session() string
	isEvent()
}

// SearchEvent records a single search attempt.
type SearchEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Query     string    `json:"query"`

	// ResultsCount is how many results the search returned.
	ResultsCount int `json:"results_count"`

	// ClickedResult is the result the user opened, empty if abandoned.
	ClickedResult string `json:"clicked_result,omitempty"`

	// TimeToClickMS is how long the user took to pick a result.
	TimeToClickMS int `json:"time_to_click_ms,omitempty"`

	// RefinedQuery is set when the user rephrased this search.
	RefinedQuery string `json:"refined_query,omitempty"`

	SessionID string `json:"session_id"`
}

func (e SearchEvent) EventKind() Kind  { return KindSearch }
func (e SearchEvent) When() time.Time  { return e.Timestamp }
func (e SearchEvent) Session() string  { return e.SessionID }
func (e SearchEvent) isEvent()         {}

// FileAccessEvent records a file being opened, edited, renamed, moved,
// or deleted.
type FileAccessEvent struct {
	Timestamp time.Time `json:"timestamp"`
	FilePath  string    `json:"file_path"`
	FileType  string    `json:"file_type"`

	// AccessType is one of the Access* constants.
	AccessType string `json:"access_type"`

	// PreviousName and NewName are set for renames.
	PreviousName string `json:"previous_name,omitempty"`
	NewName      string `json:"new_name,omitempty"`

	// SourcePath and DestPath are set for moves.
	SourcePath string `json:"source_path,omitempty"`
	DestPath   string `json:"dest_path,omitempty"`

	SessionID string `json:"session_id"`
}

func (e FileAccessEvent) EventKind() Kind { return KindFileAccess }
func (e FileAccessEvent) When() time.Time { return e.Timestamp }
func (e FileAccessEvent) Session() string { return e.SessionID }
func (e FileAccessEvent) isEvent()        {}

// NavigationEvent records folder navigation and browsing.
type NavigationEvent struct {
	Timestamp        time.Time `json:"timestamp"`
	Path             string    `json:"path"`
	TimeSpentSeconds float64   `json:"time_spent_seconds"`
	FilesViewed      int       `json:"files_viewed"`

	// ActionTaken is what ended the visit, e.g. "opened_file",
	// "searched", "navigated_away", "created_file".
	ActionTaken string `json:"action_taken"`

	SessionID string `json:"session_id"`
}

func (e NavigationEvent) EventKind() Kind { return KindNavigation }
func (e NavigationEvent) When() time.Time { return e.Timestamp }
func (e NavigationEvent) Session() string { return e.SessionID }
func (e NavigationEvent) isEvent()        {}

// DecisionEvent records the user's response to an organizational choice.
type DecisionEvent struct {
	Timestamp time.Time `json:"timestamp"`

	// DecisionType is one of the Decision* constants.
	DecisionType string `json:"decision_type"`

	// SuggestedValue is what the engine proposed, if anything.
	SuggestedValue string `json:"suggested_value,omitempty"`

	// UserValue is what the user actually went with.
	UserValue string `json:"user_value"`

	FilePath string `json:"file_path"`

	// Context carries additional info about the decision.
	Context map[string]string `json:"context,omitempty"`

	SessionID string `json:"session_id"`
}

func (e DecisionEvent) EventKind() Kind { return KindDecision }
func (e DecisionEvent) When() time.Time { return e.Timestamp }
func (e DecisionEvent) Session() string { return e.SessionID }
func (e DecisionEvent) isEvent()        {}

// decodeEvent rebuilds a concrete event from its stored kind and payload.
func decodeEvent(kind Kind, payload []byte) (Event, error) {
	switch kind {
	case KindSearch:
		var e SearchEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, err
		}
		return e, nil
	case KindFileAccess:
		var e FileAccessEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, err
		}
		return e, nil
	case KindNavigation:
		var e NavigationEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, err
		}
		return e, nil
	case KindDecision:
		var e DecisionEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown event kind %q", kind)
	}
}
