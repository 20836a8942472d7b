// Package domain defines core types, interfaces, and errors for the
// proxy-token custody core.
package domain

import "fmt"

// NotFoundError indicates a resource was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AuthorizationError indicates a failed capability check: the caller is not
// the owner, not a role member, or is the owner attempting a member-only
// action.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// StateError indicates an operation that conflicts with current state, such
// as transitioning a request that is no longer new or authorizing an account
// that already holds the capability.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

// ValidationError indicates invalid input: a zero amount, a zero-sentinel
// account, an out-of-range request id, or a duplicate name.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ResourceError indicates an insufficient balance or allowance. The caller
// is expected to remediate out of band and retry; the core never retries.
type ResourceError struct {
	Message string
}

func (e *ResourceError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrAuthorization creates an AuthorizationError with a formatted message.
func ErrAuthorization(format string, args ...interface{}) *AuthorizationError {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

// ErrState creates a StateError with a formatted message.
func ErrState(format string, args ...interface{}) *StateError {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrResource creates a ResourceError with a formatted message.
func ErrResource(format string, args ...interface{}) *ResourceError {
	return &ResourceError{Message: fmt.Sprintf(format, args...)}
}
