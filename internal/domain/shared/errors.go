package shared

import "errors"

// ErrorKind groups domain errors by how a caller is expected to react.
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindConflict   ErrorKind = "CONFLICT"
	KindUpstream   ErrorKind = "UPSTREAM"
	KindForbidden  ErrorKind = "FORBIDDEN"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Kind    ErrorKind `json:"kind"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new validation-kind domain error
func NewDomainError(code, message string) *DomainError {
	return NewDomainErrorOfKind(KindValidation, code, message)
}

// NewDomainErrorOfKind creates a domain error with an explicit kind
func NewDomainErrorOfKind(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Kind:    kind,
	}
}

// AsDomainError unwraps err to the first *DomainError in its chain.
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrNotFound            = NewDomainErrorOfKind(KindNotFound, "NOT_FOUND", "Resource not found")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainErrorOfKind(KindConflict, "CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrForbidden           = NewDomainErrorOfKind(KindForbidden, "FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainErrorOfKind(KindConflict, "INVALID_STATE", "Operation not allowed in current state")
	ErrDuplicateRequest    = NewDomainErrorOfKind(KindConflict, "DUPLICATE_REQUEST", "Request with this idempotency key was already submitted")
)
