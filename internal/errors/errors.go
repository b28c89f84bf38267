package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound               = "NOT_FOUND"
	ErrCodeValidation             = "VALIDATION_ERROR"
	ErrCodeInvalidInput           = "INVALID_INPUT"
	ErrCodeInternal               = "INTERNAL_ERROR"
	ErrCodeBadRequest             = "BAD_REQUEST"
	ErrCodeUnauthorized           = "UNAUTHORIZED"
	ErrCodeEmailExists            = "EMAIL_EXISTS"
	ErrCodeInvalidCredentials     = "INVALID_CREDENTIALS"
	ErrCodeSessionInvalid         = "SESSION_INVALID"
	ErrCodePersistenceUnavailable = "PERSISTENCE_UNAVAILABLE"
)

// Sentinels for errors.Is. Any AppError with the same Code matches.
var (
	ErrInvalidInput           = &AppError{Code: ErrCodeInvalidInput, Status: http.StatusBadRequest}
	ErrUnauthorized           = &AppError{Code: ErrCodeUnauthorized, Status: http.StatusUnauthorized}
	ErrSessionInvalid         = &AppError{Code: ErrCodeSessionInvalid, Status: http.StatusUnauthorized}
	ErrPersistenceUnavailable = &AppError{Code: ErrCodePersistenceUnavailable, Status: http.StatusServiceUnavailable}
	ErrNotFound               = &AppError{Code: ErrCodeNotFound, Status: http.StatusNotFound}
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "INVALID_INPUT")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
	// Fields maps request field names to messages for validation failures.
	Fields map[string]string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// As is errors.As from the standard library, re-exported so callers that
// import this package under the name errors keep access to it.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is is errors.Is from the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// New is errors.New from the standard library.
func New(text string) error {
	return stderrors.New(text)
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// NewFieldsError is a VALIDATION_ERROR listing every rejected request field.
func NewFieldsError(fields map[string]string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "request body is not valid",
		Status:  http.StatusBadRequest,
		Fields:  fields,
	}
}

// NewInvalidInputError reports a lesson result outside its valid domain.
func NewInvalidInputError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("invalid %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewUnauthorizedError creates a new UNAUTHORIZED error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// NewEmailExistsError is returned by signup for an already registered email.
func NewEmailExistsError() *AppError {
	return &AppError{
		Code:    ErrCodeEmailExists,
		Message: "this email is already registered, please login instead",
		Status:  http.StatusUnprocessableEntity,
	}
}

// NewInvalidCredentialsError is returned by login on a bad email/password pair.
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:    ErrCodeInvalidCredentials,
		Message: "invalid email or password",
		Status:  http.StatusUnauthorized,
	}
}

// NewSessionInvalidError marks a stored credential the backend rejected.
func NewSessionInvalidError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeSessionInvalid,
		Message: "session invalid, please log in again",
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

// NewPersistenceUnavailableError wraps a failed store read or write.
func NewPersistenceUnavailableError(err error) *AppError {
	return &AppError{
		Code:    ErrCodePersistenceUnavailable,
		Message: "progress store unavailable",
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}

// StatusOf returns the HTTP status for err, 500 for non-AppErrors.
func StatusOf(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
