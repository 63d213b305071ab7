package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Constructors ---

// PermissionDenied creates a new AppError for an operation the authorization
// policy rejected. The reason is the policy's machine code and is carried in
// the details so callers can distinguish "not your duo" from "inactive
// challenge" without parsing the message.
func PermissionDenied(reason, message string) *AppError {
	if message == "" {
		message = "You don't have permission to perform this action."
	}
	return &AppError{
		Code: ErrCodePermissionDenied, Message: message,
		HTTPStatus: http.StatusForbidden, Retryable: false,
		Details: map[string]any{"reason": reason},
	}
}

// Unauthorized creates a new AppError for a request with no usable credential.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// InvalidToken creates a new AppError for an invalid authentication token.
func InvalidToken() *AppError {
	return &AppError{
		Code: ErrCodeInvalidToken, Message: "Invalid authentication token.",
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// NotFound creates a new AppError for a document that was not found.
func NotFound(path string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: "The requested document was not found.",
		HTTPStatus: http.StatusNotFound, Retryable: false,
		Details: map[string]any{"path": path},
	}
}

// AlreadyExists creates a new AppError for a document that already exists.
func AlreadyExists(path string) *AppError {
	return &AppError{
		Code: ErrCodeAlreadyExists, Message: "A document already exists at this path.",
		HTTPStatus: http.StatusConflict, Retryable: false,
		Details: map[string]any{"path": path},
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// InvalidDocument creates a new AppError for a document payload the policy
// could not interpret (missing participants, wrong field types).
func InvalidDocument(message string) *AppError {
	if message == "" {
		message = "The document payload is malformed."
	}
	return &AppError{
		Code: ErrCodeInvalidDocument, Message: message,
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// Store creates a new AppError for a document store failure.
func Store(cause error) *AppError {
	return &AppError{
		Code: ErrCodeStoreError, Message: "The document store is unavailable.",
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true, Cause: cause,
	}
}
