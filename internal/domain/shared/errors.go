package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError for the transport layer
type ErrorKind string

const (
	KindNotFound        ErrorKind = "not_found"
	KindValidation      ErrorKind = "validation"
	KindConversion      ErrorKind = "conversion"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindForbidden       ErrorKind = "forbidden"
	KindAlreadyExists   ErrorKind = "already_exists"
	KindSecurity        ErrorKind = "security"
	KindService         ErrorKind = "service"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Cause returns the underlying cause, for github.com/pkg/errors
func (e *DomainError) Cause() error {
	return e.cause
}

// Is reports whether target is a DomainError with the same code. The generic
// sentinels (ErrNotFound, ErrAlreadyExists, ...) also match any error of
// their kind.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	if t.Code == e.Code {
		return true
	}
	return isKindSentinel(t) && t.Kind == e.Kind
}

func isKindSentinel(e *DomainError) bool {
	switch e {
	case ErrNotFound, ErrAlreadyExists, ErrInvalidArgument, ErrUnauthorized, ErrForbidden:
		return true
	}
	return false
}

// Detail returns "message: root cause", or just the message when there is no cause.
func (e *DomainError) Detail() string {
	if e.cause == nil {
		return e.Message
	}
	root := RootCause(e.cause)
	if de, ok := root.(*DomainError); ok {
		return e.Message + ": " + de.Message
	}
	return e.Message + ": " + root.Error()
}

// RootCause follows Cause() links down to the innermost error. Unlike
// pkgerrors.Cause it stops at an error whose Cause() is nil.
func RootCause(err error) error {
	for err != nil {
		c, ok := err.(interface{ Cause() error })
		if !ok {
			return err
		}
		next := c.Cause()
		if next == nil {
			return err
		}
		err = next
	}
	return err
}

// WithCause returns a copy of the error carrying cause
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{Kind: e.Kind, Code: e.Code, Message: e.Message, cause: cause}
}

// WithMessage returns a copy of the error with a different message
func (e *DomainError) WithMessage(format string, args ...any) *DomainError {
	return &DomainError{Kind: e.Kind, Code: e.Code, Message: fmt.Sprintf(format, args...), cause: e.cause}
}

func newKindError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

// NewNotFoundError creates a not-found error
func NewNotFoundError(code, message string) *DomainError {
	return newKindError(KindNotFound, code, message)
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *DomainError {
	return newKindError(KindValidation, code, message)
}

// NewUnauthorizedError creates an authentication failure
func NewUnauthorizedError(code, message string) *DomainError {
	return newKindError(KindUnauthorized, code, message)
}

// NewInvalidArgumentError creates an invalid argument error
func NewInvalidArgumentError(message string) *DomainError {
	return newKindError(KindInvalidArgument, "INVALID_ARGUMENT", message)
}

// NewConversionError wraps cause into a conversion error
func NewConversionError(message string, cause error) *DomainError {
	return &DomainError{Kind: KindConversion, Code: "CONVERSION_ERROR", Message: message, cause: cause}
}

// NewSecurityError wraps cause into an authentication service error
func NewSecurityError(message string, cause error) *DomainError {
	return &DomainError{Kind: KindSecurity, Code: "AUTHENTICATION_SERVICE_ERROR", Message: message, cause: cause}
}

// NewServiceError wraps cause into a generic service error
func NewServiceError(message string, cause error) *DomainError {
	return &DomainError{Kind: KindService, Code: "SERVICE_ERROR", Message: message, cause: cause}
}

// KindOf returns the kind of the first DomainError in err's chain, or KindService.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindService
}

// Common domain errors
var (
	ErrNotFound        = newKindError(KindNotFound, "NOT_FOUND", "Resource not found")
	ErrAlreadyExists   = newKindError(KindAlreadyExists, "ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput    = newKindError(KindValidation, "INVALID_INPUT", "Invalid input provided")
	ErrInvalidArgument = newKindError(KindInvalidArgument, "INVALID_ARGUMENT", "Invalid argument")
	ErrUnauthorized    = newKindError(KindUnauthorized, "UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden       = newKindError(KindForbidden, "FORBIDDEN", "Access to this resource is forbidden")
	ErrDataIntegrity   = newKindError(KindService, "DATA_INTEGRITY", "Stored data violates a uniqueness constraint")
)
