package apperror

import (
	"errors"
	"net/http"
)

// Reasons classify errors independently of the HTTP status they map to.
const (
	ReasonMissingField   = "missing_field"
	ReasonInvalidCnic    = "invalid_cnic"
	ReasonNetworkFailure = "network_failure"
	ReasonAuthFailure    = "auth_failure"
	ReasonNotFound       = "not_found"
	ReasonBadRequest     = "bad_request"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Reason  string       `json:"reason,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches errors carrying the same reason, so that a sentinel matches
// any error built from it. Errors without a reason only match themselves.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Reason != "" {
		return e.Reason == t.Reason
	}
	return e == t
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found", Reason: ReasonNotFound}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request", Reason: ReasonBadRequest}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "A request with this Idempotency-Key is already in progress"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password", Reason: ReasonAuthFailure}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}

	ErrMissingField   = &AppError{Code: http.StatusUnprocessableEntity, Message: "Please fill all required fields", Reason: ReasonMissingField}
	ErrInvalidCnic    = &AppError{Code: http.StatusUnprocessableEntity, Message: "CNIC must be exactly 13 digits", Reason: ReasonInvalidCnic}
	ErrNetworkFailure = &AppError{Code: http.StatusServiceUnavailable, Message: "Server error", Reason: ReasonNetworkFailure}
	ErrAuthFailure    = ErrInvalidCredentials
)

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewMissingFieldError reports the required fields that were left empty.
func NewMissingFieldError(fields ...string) *AppError {
	fieldErrors := make([]FieldError, 0, len(fields))
	for _, f := range fields {
		fieldErrors = append(fieldErrors, FieldError{Field: f, Message: f + " is required"})
	}
	return &AppError{
		Code:    ErrMissingField.Code,
		Message: ErrMissingField.Message,
		Reason:  ReasonMissingField,
		Errors:  fieldErrors,
	}
}

// NewNetworkError wraps a store call failure.
func NewNetworkError(err error) *AppError {
	return &AppError{
		Code:    ErrNetworkFailure.Code,
		Message: ErrNetworkFailure.Message,
		Reason:  ReasonNetworkFailure,
		Err:     err,
	}
}

// NewAuthError wraps a rejected login.
func NewAuthError(err error) *AppError {
	return &AppError{
		Code:    ErrInvalidCredentials.Code,
		Message: ErrInvalidCredentials.Message,
		Reason:  ReasonAuthFailure,
		Err:     err,
	}
}

// NewNotFoundError names the missing resource. It matches ErrNotFound.
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    ErrNotFound.Code,
		Message: resource + " not found",
		Reason:  ReasonNotFound,
	}
}

// NewBadRequestError carries a custom message. It matches ErrBadRequest.
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrBadRequest.Code,
		Message: message,
		Reason:  ReasonBadRequest,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
