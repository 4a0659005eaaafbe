// Package errs implements the placement core's error taxonomy (§7):
// InvalidInput, DeviceCapacity, ClusterCapacity, NoRouteHint, Cancelled,
// TimedOut, Internal. Every phase returns these through the standard
// error interface so callers can branch with errors.As.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a placement error.
type Kind int

const (
	// InvalidInput: malformed netlist, unknown port, missing embedding.
	InvalidInput Kind = iota
	// DeviceCapacity: more blocks of some type than legal cells.
	DeviceCapacity
	// ClusterCapacity: GP could not find legal anchors for the current k.
	ClusterCapacity
	// NoRouteHint: only surfaced for routability-aware placement requests.
	NoRouteHint
	// Cancelled: a caller-issued cancellation aborted a phase.
	Cancelled
	// TimedOut: a phase's wall-clock budget expired.
	TimedOut
	// Internal: an invariant was violated; must not occur.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case DeviceCapacity:
		return "DeviceCapacity"
	case ClusterCapacity:
		return "ClusterCapacity"
	case NoRouteHint:
		return "NoRouteHint"
	case Cancelled:
		return "Cancelled"
	case TimedOut:
		return "TimedOut"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type every phase returns.
type Error struct {
	Kind Kind
	Msg  string

	// NumClusters carries the cluster count that failed, for
	// ClusterCapacity errors, so the orchestrator can retry with k±1.
	NumClusters int

	// Wrapped is the underlying error, if any.
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// New builds an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind wrapping another error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Wrapped: err}
}

// ClusterCapacityErr builds a ClusterCapacity error carrying the cluster
// count that failed, for the top-level orchestrator's k±1 retry.
func ClusterCapacityErr(n int) *Error {
	return &Error{Kind: ClusterCapacity, Msg: fmt.Sprintf("no legal anchor found for %d clusters", n), NumClusters: n}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
