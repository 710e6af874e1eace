package model

// ErrorKind classifies a domain error so handlers can map it to an HTTP
// status without inspecting individual error values.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeMissingField         = "MISSING_FIELD"
	ErrCodeInvalidAction        = "INVALID_ACTION"
	ErrCodeInvalidFrequency     = "INVALID_FREQUENCY"
	ErrCodeInvalidDiscount      = "INVALID_DISCOUNT"
	ErrCodeSubscriptionNotFound = "SUBSCRIPTION_NOT_FOUND"
	ErrCodeCycleNotFound        = "CYCLE_NOT_FOUND"
	ErrCodeBoxTypeNotFound      = "BOX_TYPE_NOT_FOUND"
	ErrCodePreorderNotFound     = "PREORDER_NOT_FOUND"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeCannotPause          = "CANNOT_PAUSE"
	ErrCodeCannotResume         = "CANNOT_RESUME"
	ErrCodeCannotCancel         = "CANNOT_CANCEL"
	ErrCodeAlreadyExpired       = "ALREADY_EXPIRED"
	ErrCodeSubscriptionLocked   = "SUBSCRIPTION_LOCKED"
	ErrCodeStateChanged         = "STATE_CHANGED"
	ErrCodeCycleStateChanged    = "CYCLE_STATE_CHANGED"
	ErrCodeAlreadyConverted     = "ALREADY_CONVERTED"
	ErrCodeLinkExpired          = "LINK_EXPIRED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError is a business-rule error with a stable code. The Kind decides
// the HTTP status; the Code lets the UI show a specific message, so a
// "resume an active subscription" conflict is distinguishable from an
// "already converted preorder" conflict.
type DomainError struct {
	Code    string
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewValidationError creates a domain error for malformed or out-of-range input.
func NewValidationError(code, message string) *DomainError {
	return &DomainError{Code: code, Kind: KindValidation, Message: message}
}

// NewNotFoundError creates a domain error for a missing id or token.
func NewNotFoundError(code, message string) *DomainError {
	return &DomainError{Code: code, Kind: KindNotFound, Message: message}
}

// NewConflictError creates a domain error for an action that is not valid in
// the entity's current lifecycle state.
func NewConflictError(code, message string) *DomainError {
	return &DomainError{Code: code, Kind: KindConflict, Message: message}
}

// Common domain errors
var (
	ErrInvalidAction    = NewValidationError(ErrCodeInvalidAction, "Action must be one of pause, resume, cancel, expire")
	ErrInvalidFrequency = NewValidationError(ErrCodeInvalidFrequency, "Frequency must be monthly or seasonal")
	ErrInvalidDiscount  = NewValidationError(ErrCodeInvalidDiscount, "Discount percent must be greater than 0 and at most 100")

	ErrSubscriptionNotFound = NewNotFoundError(ErrCodeSubscriptionNotFound, "Subscription not found")
	ErrCycleNotFound        = NewNotFoundError(ErrCodeCycleNotFound, "Delivery cycle not found")
	ErrBoxTypeNotFound      = NewNotFoundError(ErrCodeBoxTypeNotFound, "Box type not found")
	ErrPreorderNotFound     = NewNotFoundError(ErrCodePreorderNotFound, "Preorder not found")

	ErrCannotPause        = NewConflictError(ErrCodeCannotPause, "Only an active subscription can be paused")
	ErrCannotResume       = NewConflictError(ErrCodeCannotResume, "Only a paused subscription can be resumed")
	ErrCannotCancel       = NewConflictError(ErrCodeCannotCancel, "Only an active or paused subscription can be cancelled")
	ErrAlreadyExpired     = NewConflictError(ErrCodeAlreadyExpired, "Subscription is already expired")
	ErrSubscriptionLocked = NewConflictError(ErrCodeSubscriptionLocked, "Subscription cannot be edited in its current state")
	ErrStateChanged       = NewConflictError(ErrCodeStateChanged, "Subscription state changed, retry the action")
	ErrCycleStateChanged  = NewConflictError(ErrCodeCycleStateChanged, "Cycle is not in the required state for this transition")

	ErrPreorderAlreadyConverted = NewConflictError(ErrCodeAlreadyConverted, "Preorder has already been converted to an order")
	ErrPreorderLinkExpired      = NewConflictError(ErrCodeLinkExpired, "Preorder conversion link has expired")
)
