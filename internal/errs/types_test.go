package errs

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{{Field: "email", Message: "is required"}})

	assert.Equal(t, "Validation failure", err.Message)
	assert.Equal(t, "Validation failure", err.Error())
	require.Len(t, err.Errors, 1)
}

func TestValidationErrorDiscrimination(t *testing.T) {
	err := errors.Wrap(NewValidationError(nil), "handling request")

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.ErrorIs(t, err, &ValidationError{})
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("Route not found")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "Route not found", err.Error())
}

func TestInternalServerError(t *testing.T) {
	err := NewInternalServerError()
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "Internal server error", err.Message)
}

func TestEnvelopeOmitsEmptyErrors(t *testing.T) {
	body, err := json.Marshal(Envelope{Success: false, Message: "Internal server error"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, string(body))
}

func TestEnvelopeWithFieldErrors(t *testing.T) {
	body, err := json.Marshal(Envelope{
		Success: false,
		Message: "Validation failure",
		Errors:  []FieldError{{Field: "avatar", Message: "must be a file"}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"Validation failure","errors":[{"field":"avatar","message":"must be a file"}]}`, string(body))
}
