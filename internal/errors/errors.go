// Package errors provides centralized error definitions and error handling utilities
// for mathmaster. It defines sentinel errors, semantic error types, error
// constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - SessionError: a drill session could not be created
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found (e.g. a theme)
//   - ValidationError: invalid input or configuration
//   - UsageError: a command line the user mistyped
//
// Gameplay itself never produces errors. Invalid actions during a session are
// absorbed as no-ops; only setup (flags, config, session parameters) can fail.
//
// # Usage
//
//	err := errors.NewValidationError("table must be between 1 and 12").
//		WithField("table").WithValue(13).WithCause(errors.ErrInvalidTable)
//
//	if errors.Is(err, errors.ErrInvalidTable) { ... }
//
//	var verr *errors.ValidationError
//	if errors.As(err, &verr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Session setup sentinel errors
var (
	// ErrInvalidMode indicates an unknown game mode.
	ErrInvalidMode = New("invalid mode")
	// ErrInvalidTable indicates a practice table outside 1-12.
	ErrInvalidTable = New("invalid table")
	// ErrInvalidTime indicates a non-positive pro-mode duration.
	ErrInvalidTime = New("invalid time limit")
	// ErrNoScheduler indicates a session was created without a scheduler.
	ErrNoScheduler = New("no scheduler")
)

// Environment sentinel errors
var (
	// ErrThemeNotFound indicates that a theme name or file could not be resolved.
	ErrThemeNotFound = New("theme not found")
	// ErrNotTerminal indicates that stdin/stdout is not an interactive terminal.
	ErrNotTerminal = New("not a terminal")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates a mistyped command line or config value.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// SessionError represents a failure to set up a drill session.
//
// Example:
//
//	err := errors.NewSessionError("cannot start practice", verr).WithMode("practice")
//	fmt.Println(err) // "session error [mode=practice]: cannot start practice: ..."
type SessionError struct {
	baseError
	SessionID string
	Mode      string
}

// NewSessionError creates a new SessionError.
func NewSessionError(message string, cause error) *SessionError {
	return &SessionError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithSessionID adds a session ID to the error context.
func (e *SessionError) WithSessionID(id string) *SessionError {
	e.SessionID = id
	return e
}

// WithMode adds the game mode to the error context.
func (e *SessionError) WithMode(mode string) *SessionError {
	e.Mode = mode
	return e
}

// Error returns the formatted error message.
func (e *SessionError) Error() string {
	var parts []string
	if e.SessionID != "" {
		parts = append(parts, fmt.Sprintf("session=%s", e.SessionID))
	}
	if e.Mode != "" {
		parts = append(parts, fmt.Sprintf("mode=%s", e.Mode))
	}

	prefix := "session error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("session error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *SessionError) Is(target error) bool {
	if _, ok := target.(*SessionError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("theme", "solarized")
//	fmt.Println(err) // "theme 'solarized' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("table must be between 1 and 12")
//	err = err.WithField("table").WithValue(0)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// UsageError represents a command line the user got wrong: an unknown
// command, a bad flag, or an invalid argument. Its message is shown as is.
//
// Example:
//
//	err := errors.NewUsageError("unknown configuration key: %s", key)
type UsageError struct {
	baseError
}

// NewUsageError creates a new UsageError with a formatted message.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{
		baseError: baseError{
			message:    fmt.Sprintf(format, args...),
			severity:   SeverityInfo,
			userFacing: true,
		},
	}
}

// WithCause adds a cause to the error without changing its message.
func (e *UsageError) WithCause(cause error) *UsageError {
	e.cause = cause
	return e
}

// Error returns the message.
func (e *UsageError) Error() string {
	return e.message
}

// Is checks if this error matches the target.
func (e *UsageError) Is(target error) bool {
	if _, ok := target.(*UsageError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// userFacing is implemented by errors that know whether their message is fit
// for end users, including types outside this package.
type userFacing interface {
	IsUserFacing() bool
}

// severer is implemented by errors that carry a severity.
type severer interface {
	Severity() Severity
}

// userFacingSentinels are setup failures whose message explains itself.
var userFacingSentinels = []error{
	ErrInvalidMode,
	ErrInvalidTable,
	ErrInvalidTime,
	ErrThemeNotFound,
	ErrNotTerminal,
	ErrInvalidInput,
}

// IsUserFacing returns true if the error message is safe to display to end users.
// This checks for:
//   - Errors in the chain implementing IsUserFacing() bool
//   - Errors wrapping one of the setup sentinels (e.g. ErrNotTerminal)
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var uf userFacing
	if As(err, &uf) {
		return uf.IsUserFacing()
	}

	for _, sentinel := range userFacingSentinels {
		if Is(err, sentinel) {
			return true
		}
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Wrapped sentinels are warnings; anything else without a severity is an error.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var s severer
	if As(err, &s) {
		return s.Severity()
	}

	if IsUserFacing(err) {
		return SeverityWarning
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to load theme")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
