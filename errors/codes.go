package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resource errors
const (
	// ErrCodeNotFound indicates the requested document was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the document already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidDocument indicates a document payload is malformed or
	// missing fields the policy depends on.
	ErrCodeInvalidDocument ErrorCode = "INVALID_DOCUMENT"
)

// Authentication/Authorization errors
const (
	// ErrCodeUnauthorized indicates the request carries no usable credential.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodePermissionDenied indicates the authorization policy denied the
	// operation. Terminal: retrying the same request yields the same decision.
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	// ErrCodeInvalidToken indicates the authentication token is invalid.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Infrastructure errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeStoreError indicates a document store failure.
	ErrCodeStoreError ErrorCode = "STORE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeStoreError: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Policy outcomes are never retryable: an identical request against unchanged
// state always yields the identical decision.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
