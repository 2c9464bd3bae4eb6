// Package domainerrors defines the error taxonomy shared by services, stores
// and transport adapters.
//
// Services return *Error values built with New or Wrap. Handlers translate the
// Code into a status via pkg/platform/httputil. Reason carries a stable,
// machine-readable reason code (for example "OUT_OF_SCOPE") that survives into
// audit metadata and API responses.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code is a stable, client-safe identifier for an error class.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeValidation         Code = "validation_error"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
	CodeInvariantViolation Code = "invariant_violation"

	// Hierarchy and verification taxonomy.
	CodeNodeNotFound           Code = "node_not_found"
	CodeAuthorizationDenied    Code = "authorization_denied"
	CodeInvalidTransition      Code = "invalid_transition"
	CodeHierarchyDepthExceeded Code = "hierarchy_depth_exceeded"
	CodeCorruptionDetected     Code = "corruption_detected"
	CodeConcurrentModification Code = "concurrent_modification"
)

// Error is a domain error with a code, a client-safe message and an optional
// machine reason code.
type Error struct {
	Code    Code
	Message string
	Reason  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a domain error.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// WithReason sets the machine reason code and returns the same error.
func (e *Error) WithReason(reason string) *Error {
	e.Reason = reason
	return e
}

// As returns the outermost *Error in the chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether any *Error in the chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// CodeOf returns the outermost code, or CodeInternal for foreign errors.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}

// ReasonOf returns the first non-empty reason code in the chain.
func ReasonOf(err error) string {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return ""
		}
		if de.Reason != "" {
			return de.Reason
		}
		err = de.Err
	}
	return ""
}

// Is reports whether err is a domain error with the given code.
// Alias of HasCode kept for call sites that read better with errors.Is style.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}
