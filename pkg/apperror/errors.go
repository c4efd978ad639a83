package apperror

import (
	"errors"
	"net/http"
)

// AppError is an error the client caused, carrying the HTTP status to
// answer with. Anything else reaching a handler is reported as a 500.
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError names the request field a validation message belongs to
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrNotFound       = NewAppError(http.StatusNotFound, "Resource not found")
	ErrUnauthorized   = NewAppError(http.StatusUnauthorized, "Unauthorized")
	ErrForbidden      = NewAppError(http.StatusForbidden, "Forbidden")
	ErrBadRequest     = NewAppError(http.StatusBadRequest, "Bad request")
	ErrConflict       = NewAppError(http.StatusConflict, "Resource already exists")
	ErrInternalServer = NewAppError(http.StatusInternalServerError, "Internal server error")
)

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewValidationError reports one or more invalid fields with 422
func NewValidationError(fieldErrors []FieldError) *AppError {
	e := NewAppError(http.StatusUnprocessableEntity, "Validation failed")
	e.Errors = fieldErrors
	return e
}

// NewNotFoundError reports "<resource> not found"
func NewNotFoundError(resource string) *AppError {
	return NewAppError(http.StatusNotFound, resource+" not found")
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message)
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

// IsAppError reports whether err wraps an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError unwraps the AppError in err. Other errors become a 500
// carrying their message.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewAppError(http.StatusInternalServerError, err.Error())
}
