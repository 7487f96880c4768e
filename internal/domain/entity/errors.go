package entity

import "errors"

// Standard domain errors
var (
	ErrTokenBudgetExceeded = errors.New("token budget exceeded for this caller")
	ErrInvalidRequest      = errors.New("invalid request parameters")
)

// RetrievalError marks a knowledge-store failure. Callers treat it as
// non-fatal and continue with a degraded (partial or empty) context.
type RetrievalError struct {
	Collection string
	Err        error
}

func (e *RetrievalError) Error() string {
	return "retrieval failed for " + e.Collection + ": " + e.Err.Error()
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// GenerationError marks a model-backend failure. The orchestrator
// reports it to the caller as a descriptive string, never as a fault.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "generation failed: " + e.Err.Error() }

func (e *GenerationError) Unwrap() error { return e.Err }

// ExecutionError marks a SQL failure. These are expected and
// domain-meaningful; the underlying database message is surfaced
// verbatim to the caller.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string { return e.Err.Error() }

func (e *ExecutionError) Unwrap() error { return e.Err }

// LogWriteError marks an audit persistence failure. It is logged and
// swallowed; auditing never fails a user-facing request.
type LogWriteError struct {
	Err error
}

func (e *LogWriteError) Error() string { return "audit log write failed: " + e.Err.Error() }

func (e *LogWriteError) Unwrap() error { return e.Err }
