// Package escalation contains the pure business logic for the escalation
// state machine. This is part of the Functional Core - no I/O, only pure
// functions over statuses.
package escalation

import "errors"

// Status represents the lifecycle state of an escalation record.
type Status string

const (
	// StatusPending means the question is waiting for a supervisor answer.
	StatusPending Status = "pending"
	// StatusResolved means a supervisor has answered but the caller has not
	// heard the answer yet.
	StatusResolved Status = "resolved"
	// StatusDelivered means the answer was spoken back into the call.
	// Terminal.
	StatusDelivered Status = "delivered"
)

// Sentinel errors for the escalation domain.
var (
	// ErrNotFound is returned when no escalation exists for an id.
	ErrNotFound = errors.New("escalation not found")
	// ErrInvalidTransition is returned when an operation would move an
	// escalation backwards or skip a state.
	ErrInvalidTransition = errors.New("invalid escalation status transition")
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusResolved, StatusDelivered:
		return true
	}
	return false
}

// CanTransition reports whether the state machine permits moving from one
// status directly to another. Transitions only run forward and never skip
// a state: pending -> resolved -> delivered.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusResolved
	case StatusResolved:
		return to == StatusDelivered
	}
	return false
}

// InitialStatus returns the status assigned to a newly created escalation.
func InitialStatus() Status {
	return StatusPending
}
