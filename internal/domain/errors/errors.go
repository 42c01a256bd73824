package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrForbidden      = errors.New("forbidden")
	ErrLinkNotFound   = errors.New("link not found")
	ErrThreadNotFound = errors.New("thread not found")
	ErrNotOwner       = errors.New("sender is not the link owner")
	ErrStaleWizard    = errors.New("wizard data not found")
)

// Wire error codes. The browser widget matches on these strings, so they are
// part of the HTTP contract.
const (
	CodeLinkNotFound  = "link_not_found"
	CodeMissingFields = "missing_fields"
	CodeInvalidInput  = "invalid_input"
	CodeForbidden     = "forbidden"
	CodeInternalError = "internal_error"
)

// AppError represents an application error with HTTP status and wire code
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(code, message string) *AppError {
	return NewAppError(http.StatusNotFound, code, message, ErrNotFound)
}

func BadRequest(code, message string) *AppError {
	return NewAppError(http.StatusBadRequest, code, message, ErrInvalidInput)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}
