package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Scenario errors
	ErrScenarioNotFound = errors.New("scenario not found")

	// Reservation errors
	ErrReservationNotFound    = errors.New("reservation not found")
	ErrReservationConflict    = errors.New("reservation conflict")
	ErrInvalidWindow          = errors.New("invalid reservation window")
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// Recurrence errors
	ErrDefinitionNotFound = errors.New("recurrence definition not found")
	ErrInvalidDefinition  = errors.New("invalid recurrence definition")

	// Alert errors
	ErrAlertNotFound    = errors.New("alert not found")
	ErrAlertNotFailed   = errors.New("alert is not in failed state")
	ErrAlertAlreadySent = errors.New("alert already sent")
	ErrDispatchFailed   = errors.New("alert dispatch failed")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
