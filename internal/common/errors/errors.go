// Package errors provides the structured error type used for the matching
// engine's "programming error" channel: invariant violations that must never
// be observed in a correctly-driven engine (see §7 of the engine design).
// Domain rejections (OrderRejected, OrderCancelRejected, OrderModifyRejected)
// are never represented here - those are typed events, not errors.
package errors

import (
	"fmt"
	"runtime"
)

// ErrorCode identifies a class of engine-internal fault.
type ErrorCode string

const (
	// ErrInvalidTransition marks an inadmissible order state transition.
	ErrInvalidTransition ErrorCode = "INVALID_TRANSITION"
	// ErrInstrumentMismatch marks a delta/trade routed to the wrong engine.
	ErrInstrumentMismatch ErrorCode = "INSTRUMENT_MISMATCH"
	// ErrDuplicateOrder marks an order admitted twice.
	ErrDuplicateOrder ErrorCode = "DUPLICATE_ORDER"
	// ErrInvariantViolation marks a book or registry invariant break.
	ErrInvariantViolation ErrorCode = "INVARIANT_VIOLATION"
)

// EngineFault is the hard failure the engine panics with on a programming
// error, such as an inadmissible order state transition or a book delta or
// trade tick routed to the wrong instrument's book.
type EngineFault struct {
	Code    ErrorCode
	Message string
	File    string
	Line    int
}

func (e *EngineFault) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New creates an EngineFault, capturing the caller's location for diagnosis.
func New(code ErrorCode, message string) *EngineFault {
	_, file, line, _ := runtime.Caller(1)
	return &EngineFault{Code: code, Message: message, File: file, Line: line}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *EngineFault {
	_, file, line, _ := runtime.Caller(1)
	return &EngineFault{Code: code, Message: fmt.Sprintf(format, args...), File: file, Line: line}
}
