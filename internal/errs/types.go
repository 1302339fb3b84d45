package errs

import "net/http"

// FieldError represents a single field-level validation violation.
//
// Example:
//
//	{ "field": "email", "message": "must be a valid email address" }
type FieldError struct {
	// Field is the submitted field name the violation relates to
	// (e.g. "email", "password_confirmation").
	Field string `json:"field"`

	// Message is the human-readable violation message.
	Message string `json:"message"`
}

// ValidationError is the failure produced when request validation finds
// one or more field violations. It always carries the complete list of
// violations; validation never stops at the first failing field.
//
// The global error handler maps it to 422 with the violations attached.
// It is the only error type that produces field-level detail in a
// response.
type ValidationError struct {
	Message string
	Errors  []FieldError
}

// NewValidationError builds a ValidationError from collected field
// violations.
func NewValidationError(fieldErrors []FieldError) *ValidationError {
	return &ValidationError{
		Message: "Validation failure",
		Errors:  fieldErrors,
	}
}

// Error makes *ValidationError satisfy the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports whether target is also a *ValidationError, so that
// errors.Is can discriminate validation failures without comparing
// contents.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// HTTPError is a failure that already knows the status it should be
// served with. Handlers never construct these to signal business
// failures; they exist for boundary cases such as unknown routes.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewNotFoundError creates a 404 HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusNotFound,
		Message: message,
	}
}

// NewInternalServerError creates a 500 HTTPError with the generic
// message. The real underlying error belongs in logs, not in the
// response body.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
	}
}

// Envelope is the JSON body every failure is serialized into.
//
// Success is always false here; successful responses are plain payloads
// and never pass through the error handler.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}
