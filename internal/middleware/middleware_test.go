package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhubapp/userhub/internal/config"
	"github.com/userhubapp/userhub/internal/errs"
	"github.com/userhubapp/userhub/internal/server"
)

func testGlobal() *GlobalMiddlewares {
	return NewGlobalMiddlewares(&server.Server{Config: &config.Config{}})
}

func serveError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	global := testGlobal()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.GET("/boom", func(c echo.Context) error {
		return err
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) errs.Envelope {
	t.Helper()
	var body errs.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGlobalErrorHandlerValidationError(t *testing.T) {
	rec := serveError(t, errs.NewValidationError([]errs.FieldError{
		{Field: "email", Message: "is required"},
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Validation failure", body.Message)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "email", body.Errors[0].Field)
}

func TestGlobalErrorHandlerWrappedValidationError(t *testing.T) {
	wrapped := errors.Wrap(errs.NewValidationError(nil), "handling request")
	rec := serveError(t, wrapped)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGlobalErrorHandlerHTTPError(t *testing.T) {
	rec := serveError(t, errs.NewNotFoundError("User not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeEnvelope(t, rec).Message)
}

func TestGlobalErrorHandlerRouteNotFound(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = testGlobal().GlobalErrorHandler

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeEnvelope(t, rec).Message)
}

func TestGlobalErrorHandlerPlainError(t *testing.T) {
	rec := serveError(t, errors.New("disk exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "disk exploded", body.Message)
	assert.Empty(t, body.Errors)
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusForError(errs.NewValidationError(nil)))
	assert.Equal(t, http.StatusNotFound, statusForError(errs.NewNotFoundError("gone")))
	assert.Equal(t, http.StatusTeapot, statusForError(echo.NewHTTPError(http.StatusTeapot)))
	assert.Equal(t, http.StatusInternalServerError, statusForError(errors.New("boom")))
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())

	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDReusesIncomingHeader(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
