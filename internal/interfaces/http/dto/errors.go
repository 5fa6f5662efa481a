package dto

import (
	"net/http"

	"github.com/dressshop/backend/internal/domain/shared"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeInvalidState        = "ERR_INVALID_STATE"
	ErrCodeDuplicateRequest    = "ERR_DUPLICATE_REQUEST"
)

// Checkout error codes
const (
	ErrCodeAmountMismatch      = "ERR_AMOUNT_MISMATCH"
	ErrCodeItemNotFound        = "ERR_ITEM_NOT_FOUND"
	ErrCodeUserNotFound        = "ERR_USER_NOT_FOUND"
	ErrCodeOrderNotFound       = "ERR_ORDER_NOT_FOUND"
	ErrCodeOrderNotPayable     = "ERR_ORDER_NOT_PAYABLE"
	ErrCodeUnsupportedCurrency = "ERR_UNSUPPORTED_CURRENCY"
	ErrCodeEmptyCart           = "ERR_EMPTY_CART"
)

// Upstream error codes
const (
	// ErrCodeGatewayUnavailable is used when the payment provider cannot be reached
	ErrCodeGatewayUnavailable = "ERR_GATEWAY_UNAVAILABLE"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidState:        http.StatusConflict,
	ErrCodeDuplicateRequest:    http.StatusConflict,

	// Checkout errors
	ErrCodeAmountMismatch:      http.StatusBadRequest,
	ErrCodeItemNotFound:        http.StatusNotFound,
	ErrCodeUserNotFound:        http.StatusNotFound,
	ErrCodeOrderNotFound:       http.StatusNotFound,
	ErrCodeOrderNotPayable:     http.StatusConflict,
	ErrCodeUnsupportedCurrency: http.StatusBadRequest,
	ErrCodeEmptyCart:           http.StatusBadRequest,

	// Upstream errors -> 502 Bad Gateway
	ErrCodeGatewayUnavailable: http.StatusBadGateway,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"DUPLICATE_REQUEST":    ErrCodeDuplicateRequest,
	"AMOUNT_MISMATCH":      ErrCodeAmountMismatch,
	"ITEM_NOT_FOUND":       ErrCodeItemNotFound,
	"USER_NOT_FOUND":       ErrCodeUserNotFound,
	"ORDER_NOT_FOUND":      ErrCodeOrderNotFound,
	"ORDER_NOT_PAYABLE":    ErrCodeOrderNotPayable,
	"UNSUPPORTED_CURRENCY": ErrCodeUnsupportedCurrency,
	"EMPTY_CART":           ErrCodeEmptyCart,
	"GATEWAY_UNAVAILABLE":  ErrCodeGatewayUnavailable,
}

// kindErrorCode is the fallback code for domain errors without an explicit mapping
var kindErrorCode = map[shared.ErrorKind]string{
	shared.KindValidation: ErrCodeValidation,
	shared.KindNotFound:   ErrCodeNotFound,
	shared.KindConflict:   ErrCodeConflict,
	shared.KindUpstream:   ErrCodeGatewayUnavailable,
	shared.KindForbidden:  ErrCodeForbidden,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes that are already in the API format or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}

// CodeForDomainError returns the API error code and HTTP status for a domain error
func CodeForDomainError(err *shared.DomainError) (string, int) {
	if code, ok := DomainErrorCodeMapping[err.Code]; ok {
		return code, GetHTTPStatus(code)
	}
	if code, ok := kindErrorCode[err.Kind]; ok {
		return code, GetHTTPStatus(code)
	}
	return ErrCodeValidation, http.StatusBadRequest
}
