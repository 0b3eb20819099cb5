package services

import "fmt"

// Service errors
var (
	ErrNoActionStaged     = &ServiceError{Message: "no action is staged"}
	ErrInvalidPlayerCount = &ServiceError{Message: "player count must be between 2 and 100"}
	ErrInvalidWeights     = &ServiceError{Message: "payout weights must be positive integers"}
	ErrBaseURLNotSet      = &ServiceError{Message: "base URL is not configured"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// UnknownPlayerError represents a reference to a player id outside
// the current roster.
type UnknownPlayerError struct {
	PlayerID int
}

func (e *UnknownPlayerError) Error() string {
	return fmt.Sprintf("unknown player id: %d", e.PlayerID)
}

// UnknownIntentError is returned by Dispatch for an intent type it
// does not recognize.
type UnknownIntentError struct {
	Intent interface{}
}

func (e *UnknownIntentError) Error() string {
	return fmt.Sprintf("unknown intent type: %T", e.Intent)
}
