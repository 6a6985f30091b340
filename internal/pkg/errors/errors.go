package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code for each error type
type ErrorCode string

const (
	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeConflict     ErrorCode = "CONFLICT"

	// File processing errors
	ErrCodeInvalidFile       ErrorCode = "INVALID_FILE"
	ErrCodeFileTooLarge      ErrorCode = "FILE_TOO_LARGE"
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrCodeFileParseError    ErrorCode = "FILE_PARSE_ERROR"

	// Cleaning errors
	ErrCodeInvalidConfig     ErrorCode = "INVALID_CONFIG"
	ErrCodeContainerNotFound ErrorCode = "CONTAINER_NOT_FOUND"
	ErrCodeUnknownProfile    ErrorCode = "UNKNOWN_PROFILE"

	// Storage errors
	ErrCodeDatabaseError  ErrorCode = "DATABASE_ERROR"
	ErrCodeRecordNotFound ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeCacheError     ErrorCode = "CACHE_ERROR"
	ErrCodeStorageError   ErrorCode = "STORAGE_ERROR"

	// Queue errors
	ErrCodeQueueError  ErrorCode = "QUEUE_ERROR"
	ErrCodeJobNotFound ErrorCode = "JOB_NOT_FOUND"
)

// AppError represents a structured application error
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"-"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Err        error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails adds additional context to the error
func (e *AppError) WithDetails(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an existing error with AppError context
func Wrap(err error, code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// Common error constructors

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message, http.StatusInternalServerError)
}

func InternalWrap(err error, message string) *AppError {
	return Wrap(err, ErrCodeInternal, message, http.StatusInternalServerError)
}

func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message, http.StatusNotFound)
}

func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func Unauthorized(message string) *AppError {
	return New(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func Forbidden(message string) *AppError {
	return New(ErrCodeForbidden, message, http.StatusForbidden)
}

func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message, http.StatusConflict)
}

// File processing errors

func InvalidFile(message string) *AppError {
	return New(ErrCodeInvalidFile, message, http.StatusBadRequest)
}

func FileTooLarge(maxSize int64) *AppError {
	return New(ErrCodeFileTooLarge,
		fmt.Sprintf("file size exceeds maximum allowed size of %d MB", maxSize),
		http.StatusBadRequest)
}

func UnsupportedFormat(format string) *AppError {
	return New(ErrCodeUnsupportedFormat,
		fmt.Sprintf("unsupported file format: %s", format),
		http.StatusBadRequest)
}

func FileParseError(err error, format string) *AppError {
	return Wrap(err, ErrCodeFileParseError,
		fmt.Sprintf("failed to parse %s input", format),
		http.StatusBadRequest).WithDetails("format", format)
}

// Cleaning errors

// InvalidConfig reports a cleaner option of the wrong shape
func InvalidConfig(key, expected string, got interface{}) *AppError {
	return New(ErrCodeInvalidConfig,
		fmt.Sprintf("invalid value for %q: expected %s, got %T", key, expected, got),
		http.StatusBadRequest).
		WithDetails("key", key).
		WithDetails("expected", expected)
}

func ContainerNotFound(selector string) *AppError {
	return New(ErrCodeContainerNotFound,
		fmt.Sprintf("no element matches selector %q", selector),
		http.StatusUnprocessableEntity).WithDetails("selector", selector)
}

func UnknownProfile(profile string, available []string) *AppError {
	return New(ErrCodeUnknownProfile,
		fmt.Sprintf("cleaner profile '%s' not found. Available: %v", profile, available),
		http.StatusBadRequest).WithDetails("profile", profile)
}

// Database errors

func DatabaseError(err error) *AppError {
	return Wrap(err, ErrCodeDatabaseError, "database operation failed", http.StatusInternalServerError)
}

func RecordNotFound(resource string) *AppError {
	return New(ErrCodeRecordNotFound,
		fmt.Sprintf("%s not found", resource),
		http.StatusNotFound)
}

func CacheError(err error) *AppError {
	return Wrap(err, ErrCodeCacheError, "cache operation failed", http.StatusInternalServerError)
}

func StorageError(err error, path string) *AppError {
	return Wrap(err, ErrCodeStorageError, "storage operation failed", http.StatusInternalServerError).
		WithDetails("path", path)
}

// Queue errors

func QueueError(err error) *AppError {
	return Wrap(err, ErrCodeQueueError, "queue operation failed", http.StatusInternalServerError)
}

func JobNotFound(id string) *AppError {
	return New(ErrCodeJobNotFound,
		fmt.Sprintf("cleaning job %s not found", id),
		http.StatusNotFound).WithDetails("job_id", id)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error chain
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// IsCode reports whether any AppError in err's chain carries code
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := GetAppError(err)
	return ok && appErr.Code == code
}
