// Package scherr defines the typed error kinds the scheduler core raises.
// This core has no HTTP surface, so an Error carries a Kind instead of a
// status code and leaves transport mapping to the caller.
package scherr

import (
	"errors"
	"fmt"
)

// Kind enumerates the error kinds the scheduler core can raise.
type Kind string

// Error kinds.
const (
	// KindMalformedInput means a record failed its stated constraints
	// (non-positive capacity, unknown subject type, duplicate id). The
	// whole build is aborted.
	KindMalformedInput Kind = "MalformedInput"
	// KindUnschedulableSession means no qualified instructor or no
	// sufficiently large room was available. This is not returned as an
	// error: sessions are silently dropped and counted in
	// ProblemInstance.Diagnostics. The kind exists so callers constructing
	// their own diagnostics can refer to it.
	KindUnschedulableSession Kind = "UnschedulableSession"
	// KindInfeasibleRepair means a substitution could not be applied
	// without creating a conflict. No mutation is applied.
	KindInfeasibleRepair Kind = "InfeasibleRepair"
	// KindCancelled means the engine was cancelled before any generation
	// completed.
	KindCancelled Kind = "Cancelled"
	// KindInternalInvariantViolated means a post-condition of repair
	// (schedule feasibility) failed. Fatal.
	KindInternalInvariantViolated Kind = "InternalInvariantViolated"
)

// Slot is a minimal (day, hour) pair, duplicated from the scheduler
// package's TimeSlot to avoid an import cycle (scheduler imports scherr).
type Slot struct {
	Day  int
	Hour int
}

func (s Slot) String() string {
	return fmt.Sprintf("day=%d hour=%d", s.Day, s.Hour)
}

// Error is a typed domain error raised by the scheduler core.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	// ConflictingSlots is populated for KindInfeasibleRepair: the slots at
	// which the proposed substitute was already occupied.
	ConflictingSlots []Slot
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an existing error.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Cancelled is the sentinel returned by RunOnce when cancellation is
// observed before generation 0 completes.
var Cancelled = New(KindCancelled, "engine cancelled before first generation completed")
