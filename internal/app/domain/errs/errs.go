// Package errs defines the error kinds surfaced by the core services.
// The HTTP adapter maps each kind onto a distinct response class.
package errs

import "fmt"

// ValidationError reports client input that violates a business rule.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation builds a ValidationError with the given reason.
func Validation(reason string) error { return &ValidationError{Reason: reason} }

// AuthError reports credentials that did not match any account. It is a
// distinct kind from ValidationError so the adapter can answer 401.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

// Auth builds an AuthError with the given reason.
func Auth(reason string) error { return &AuthError{Reason: reason} }

// StorageError wraps a failure originating in the persistence layer.
// It always propagates to the adapter boundary, never silently handled.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err with the name of the failed operation.
func Storage(op string, err error) error { return &StorageError{Op: op, Err: err} }
