package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("create document: %w", NewNotFoundError("Customer"))
	assert.True(t, IsAppError(wrapped))

	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Customer not found", appErr.Message)
}

func TestGetAppErrorDefaultsTo500(t *testing.T) {
	err := errors.New("connection refused")
	assert.False(t, IsAppError(err))
	assert.Equal(t, http.StatusInternalServerError, GetAppError(err).Code)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{{Field: "items[0].quantity", Message: "must be greater than 0"}})
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Equal(t, "items[0].quantity", err.Errors[0].Field)
	assert.Equal(t, "Validation failed", err.Error())
}
