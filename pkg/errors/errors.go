package errors

import (
	"errors"
	"fmt"
)

// Common application errors
var (
	// Validation errors
	ErrInvalidProfile    = errors.New("invalid dataset profile")
	ErrInvalidColumnType = errors.New("invalid column type")
	ErrInvalidInputData  = errors.New("invalid input data")
	ErrInvalidFormat     = errors.New("invalid data format")
	ErrEmptyDataset      = errors.New("dataset contains no rows")

	// Ingest errors
	ErrSourceNotFound   = errors.New("data source not found")
	ErrSourceReadFailed = errors.New("data source read failed")
	ErrDecodeFailed     = errors.New("failed to decode input data")

	// Storage errors
	ErrStorageConnectionFailed = errors.New("storage connection failed")
	ErrStorageWriteFailed      = errors.New("storage write failed")
	ErrStorageReadFailed       = errors.New("storage read failed")
	ErrStorageTimeout          = errors.New("storage operation timeout")
	ErrCacheMiss               = errors.New("cache miss")

	// Network errors
	ErrConnectionFailed = errors.New("connection failed")
	ErrNetworkTimeout   = errors.New("network timeout")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrMissingConfiguration = errors.New("missing configuration")
	ErrConfigurationLoad    = errors.New("failed to load configuration")

	// Internal errors
	ErrInternal       = errors.New("internal error")
	ErrNotImplemented = errors.New("not implemented")
	ErrUnavailable    = errors.New("service unavailable")
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeIngest        ErrorType = "ingest"
	ErrorTypeExport        ErrorType = "export"
	ErrorTypeStorage       ErrorType = "storage"
	ErrorTypeNetwork       ErrorType = "network"
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeInternal      ErrorType = "internal"
)

// AppError represents an application-specific error with additional context
type AppError struct {
	Type       ErrorType              `json:"type"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	Context    map[string]interface{} `json:"context,omitempty"`
	Retryable  bool                   `json:"retryable"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:       errType,
		Code:       code,
		Message:    message,
		Retryable:  false,
		HTTPStatus: getDefaultHTTPStatus(errType),
	}
}

// WrapError wraps an existing error with application context
func WrapError(err error, errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:       errType,
		Code:       code,
		Message:    message,
		Cause:      err,
		Retryable:  isRetryable(err),
		HTTPStatus: getDefaultHTTPStatus(errType),
	}
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *AppError {
	return NewAppError(ErrorTypeValidation, code, message)
}

// NewIngestError creates an ingest error
func NewIngestError(code, message string) *AppError {
	return NewAppError(ErrorTypeIngest, code, message)
}

// NewExportError creates an export error
func NewExportError(code, message string) *AppError {
	return NewAppError(ErrorTypeExport, code, message)
}

// NewStorageError creates a storage error
func NewStorageError(code, message string) *AppError {
	return NewAppError(ErrorTypeStorage, code, message)
}

// NewNetworkError creates a network error
func NewNetworkError(code, message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Code:       code,
		Message:    message,
		Retryable:  true,
		HTTPStatus: 503,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		Retryable:  false,
		HTTPStatus: 500,
	}
}

// getDefaultHTTPStatus returns the default HTTP status for an error type
func getDefaultHTTPStatus(errType ErrorType) int {
	switch errType {
	case ErrorTypeValidation:
		return 400
	case ErrorTypeIngest, ErrorTypeExport:
		return 422
	case ErrorTypeStorage:
		return 404
	case ErrorTypeInternal:
		return 500
	case ErrorTypeNetwork, ErrorTypeConfiguration:
		return 503
	default:
		return 500
	}
}

// isRetryable determines if an error is retryable
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, ErrNetworkTimeout):
		return true
	case errors.Is(err, ErrConnectionFailed):
		return true
	case errors.Is(err, ErrStorageTimeout):
		return true
	case errors.Is(err, ErrUnavailable):
		return true
	default:
		return false
	}
}

// ErrorResponse represents an error response for APIs
type ErrorResponse struct {
	Error     *AppError `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp string    `json:"timestamp"`
	Path      string    `json:"path,omitempty"`
}

// Error codes for different error scenarios
const (
	// Validation error codes
	CodeInvalidInput  = "INVALID_INPUT"
	CodeMissingField  = "MISSING_FIELD"
	CodeInvalidFormat = "INVALID_FORMAT"

	// Ingest error codes
	CodeSourceNotFound = "SOURCE_NOT_FOUND"
	CodeReadFailed     = "READ_FAILED"
	CodeDecodeFailed   = "DECODE_FAILED"

	// Storage error codes
	CodeStorageError     = "STORAGE_ERROR"
	CodeConnectionFailed = "CONNECTION_FAILED"
	CodeWriteFailed      = "WRITE_FAILED"
	CodeStorageTimeout   = "STORAGE_TIMEOUT"

	// Internal error codes
	CodeInternalError      = "INTERNAL_ERROR"
	CodeNotImplemented     = "NOT_IMPLEMENTED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
