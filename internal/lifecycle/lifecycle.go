// Package lifecycle holds the pure predicates and transition rules governing
// a subscription's status. Everything here is side-effect free; persisting a
// transition is the service layer's job.
package lifecycle

import (
	"time"

	"fitflow-box/internal/model"
)

// Action is a closed set of lifecycle actions. Using a typed constant set
// (rather than raw request strings) keeps the switch in Apply exhaustive.
type Action string

const (
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
	ActionCancel Action = "cancel"
	ActionExpire Action = "expire"
)

// ParseAction converts a request-level action string into an Action.
// Unknown values yield model.ErrInvalidAction.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionPause, ActionResume, ActionCancel, ActionExpire:
		return Action(s), nil
	default:
		return "", model.ErrInvalidAction
	}
}

// transition is one allowed (from, to) status pair.
type transition struct {
	from model.SubscriptionStatus
	to   model.SubscriptionStatus
}

// validTransitions defines all allowed status transitions. Expire is an
// operator action representing external lapse and is allowed from any
// non-expired state.
var validTransitions = map[transition]bool{
	{model.StatusActive, model.StatusPaused}:       true,
	{model.StatusPaused, model.StatusActive}:       true,
	{model.StatusActive, model.StatusCancelled}:    true,
	{model.StatusPaused, model.StatusCancelled}:    true,
	{model.StatusActive, model.StatusExpired}:      true,
	{model.StatusPaused, model.StatusExpired}:      true,
	{model.StatusCancelled, model.StatusExpired}:   true,
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to model.SubscriptionStatus) bool {
	return validTransitions[transition{from, to}]
}

// CanPause reports whether the subscription can be paused right now.
func CanPause(sub *model.Subscription) bool {
	return sub.Status == model.StatusActive
}

// CanResume reports whether the subscription can be resumed right now.
func CanResume(sub *model.Subscription) bool {
	return sub.Status == model.StatusPaused
}

// CanCancel reports whether the subscription can be cancelled right now.
func CanCancel(sub *model.Subscription) bool {
	return sub.Status == model.StatusActive || sub.Status == model.StatusPaused
}

// DerivedState is the full set of UI-facing capability flags for a
// subscription. All flags are false for an unrecognised status.
type DerivedState struct {
	CanPause           bool `json:"canPause"`
	CanResume          bool `json:"canResume"`
	CanCancel          bool `json:"canCancel"`
	CanEditPreferences bool `json:"canEditPreferences"`
	CanEditAddress     bool `json:"canEditAddress"`
	CanChangeFrequency bool `json:"canChangeFrequency"`
	IsActive           bool `json:"isActive"`
	IsPaused           bool `json:"isPaused"`
	IsCancelled        bool `json:"isCancelled"`
}

// ComputeDerivedState evaluates every lifecycle predicate for the
// subscription's current status.
func ComputeDerivedState(sub *model.Subscription) DerivedState {
	editable := sub.Status == model.StatusActive || sub.Status == model.StatusPaused
	return DerivedState{
		CanPause:           CanPause(sub),
		CanResume:          CanResume(sub),
		CanCancel:          CanCancel(sub),
		CanEditPreferences: editable,
		CanEditAddress:     editable,
		CanChangeFrequency: sub.Status == model.StatusActive,
		IsActive:           sub.Status == model.StatusActive,
		IsPaused:           sub.Status == model.StatusPaused,
		IsCancelled:        sub.Status == model.StatusCancelled,
	}
}

// Result describes the outcome of applying an action: the status to persist
// and which timestamp to stamp alongside it.
type Result struct {
	Status      model.SubscriptionStatus
	PausedAt    *time.Time
	CancelledAt *time.Time
}

// Apply validates an action against the subscription's current status and
// returns the resulting status. It never mutates the subscription; a
// disallowed action yields a specific conflict error so the UI can explain
// exactly why the button did nothing.
func Apply(sub *model.Subscription, action Action, now time.Time) (Result, error) {
	switch action {
	case ActionPause:
		if !CanPause(sub) {
			return Result{}, model.ErrCannotPause
		}
		return Result{Status: model.StatusPaused, PausedAt: &now}, nil
	case ActionResume:
		if !CanResume(sub) {
			return Result{}, model.ErrCannotResume
		}
		return Result{Status: model.StatusActive}, nil
	case ActionCancel:
		if !CanCancel(sub) {
			return Result{}, model.ErrCannotCancel
		}
		return Result{Status: model.StatusCancelled, CancelledAt: &now}, nil
	case ActionExpire:
		if sub.Status == model.StatusExpired {
			return Result{}, model.ErrAlreadyExpired
		}
		return Result{Status: model.StatusExpired}, nil
	default:
		return Result{}, model.ErrInvalidAction
	}
}
