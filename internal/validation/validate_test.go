package validation

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhubapp/userhub/internal/errs"
)

type signupRequest struct {
	Name                 string `mapstructure:"name" validate:"required"`
	Email                string `mapstructure:"email" validate:"required,email"`
	Password             string `mapstructure:"password" validate:"required,min=8,max=32"`
	PasswordConfirmation string `mapstructure:"password_confirmation" validate:"required,eqfield=Password"`
	Avatar               *File  `mapstructure:"avatar"`
}

var signupSchema = Schema{
	Fields: []Field{
		{Name: "name", Kind: "string", Required: true},
		{Name: "email", Kind: "string", Required: true, Format: "email"},
		{Name: "password", Kind: "string", Required: true, Format: "password"},
		{Name: "password_confirmation", Kind: "string", Required: true, Format: "password"},
	},
	Files: []FileRule{
		{Field: "avatar", MIMETypes: []string{"image/jpeg", "image/png"}},
	},
}

func newTestContext(req *http.Request) echo.Context {
	return echo.New().NewContext(req, httptest.NewRecorder())
}

// multipartRequest builds a multipart POST from scalar fields plus an
// optional file part.
func multipartRequest(t *testing.T, fields map[string]string, fileField, fileName, fileType string, fileData []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	if fileField != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+fileField+`"; filename="`+fileName+`"`)
		header.Set("Content-Type", fileType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/users", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

// pngBytes is a minimal PNG signature, enough for type checks.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func validSignupFields() map[string]string {
	return map[string]string{
		"name":                  "Ada",
		"email":                 "ada@example.com",
		"password":              "password123",
		"password_confirmation": "password123",
	}
}

func TestValidateAcceptsValidMultipartPayload(t *testing.T) {
	req := multipartRequest(t, validSignupFields(), "avatar", "me.png", "image/png", pngBytes)
	c := newTestContext(req)

	var out signupRequest
	err := Validate(c, signupSchema, &out)
	require.NoError(t, err)

	assert.Equal(t, "Ada", out.Name)
	assert.Equal(t, "ada@example.com", out.Email)
	require.NotNil(t, out.Avatar)
	assert.Equal(t, "image/png", out.Avatar.MIMEType)
	assert.Equal(t, "me.png", out.Avatar.Name)

	data, err := out.Avatar.Bytes()
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestValidateCollectsEveryFieldError(t *testing.T) {
	req := multipartRequest(t, map[string]string{"name": "Ada"}, "", "", "", nil)
	c := newTestContext(req)

	var out signupRequest
	err := Validate(c, signupSchema, &out)
	require.Error(t, err)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Validation failure", validationErr.Message)

	fields := map[string]string{}
	for _, fieldErr := range validationErr.Errors {
		fields[fieldErr.Field] = fieldErr.Message
	}
	assert.Equal(t, "is required", fields["email"])
	assert.Equal(t, "is required", fields["password"])
	assert.Equal(t, "is required", fields["password_confirmation"])
	assert.Equal(t, "must be a file", fields["avatar"])
	assert.NotContains(t, fields, "name")
}

func TestValidateRejectsShortPassword(t *testing.T) {
	fields := validSignupFields()
	fields["password"] = "short"
	fields["password_confirmation"] = "short"

	req := multipartRequest(t, fields, "avatar", "me.png", "image/png", pngBytes)
	c := newTestContext(req)

	var out signupRequest
	err := Validate(c, signupSchema, &out)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "password", validationErr.Errors[0].Field)
	assert.Equal(t, "must be at least 8 characters", validationErr.Errors[0].Message)
}

func TestValidateRejectsConfirmationMismatch(t *testing.T) {
	fields := validSignupFields()
	fields["password_confirmation"] = "different123"

	req := multipartRequest(t, fields, "avatar", "me.png", "image/png", pngBytes)
	c := newTestContext(req)

	var out signupRequest
	err := Validate(c, signupSchema, &out)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "password_confirmation", validationErr.Errors[0].Field)
	assert.Equal(t, "must match password", validationErr.Errors[0].Message)
}

func TestValidateRejectsDisallowedFileType(t *testing.T) {
	req := multipartRequest(t, validSignupFields(), "avatar", "notes.txt", "text/plain", []byte("hello"))
	c := newTestContext(req)

	var out signupRequest
	err := Validate(c, signupSchema, &out)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "avatar", validationErr.Errors[0].Field)
	assert.Equal(t, "must be a file of type: image/jpeg, image/png", validationErr.Errors[0].Message)
}

func TestValidateInvalidEmail(t *testing.T) {
	fields := validSignupFields()
	fields["email"] = "not-an-email"

	req := multipartRequest(t, fields, "avatar", "me.png", "image/png", pngBytes)
	c := newTestContext(req)

	var out signupRequest
	err := Validate(c, signupSchema, &out)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "email", validationErr.Errors[0].Field)
	assert.Equal(t, "must be a valid email address", validationErr.Errors[0].Message)
}

func TestValidateIsRepeatable(t *testing.T) {
	req := multipartRequest(t, validSignupFields(), "avatar", "me.png", "image/png", pngBytes)
	c := newTestContext(req)

	var first signupRequest
	require.NoError(t, Validate(c, signupSchema, &first))

	// The combined payload is cached on the context, so validating a
	// second time must not re-read the consumed request body.
	var second signupRequest
	require.NoError(t, Validate(c, signupSchema, &second))
	assert.Equal(t, first.Email, second.Email)
	require.NotNil(t, second.Avatar)
}

type coercionRequest struct {
	Page   int  `mapstructure:"page"`
	Active bool `mapstructure:"active"`
}

func TestValidateCoercesScalarStrings(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users?page=3&active=true", nil)
	c := newTestContext(req)

	var out coercionRequest
	require.NoError(t, Validate(c, Schema{}, &out))
	assert.Equal(t, 3, out.Page)
	assert.True(t, out.Active)
}

func TestValidateReportsUndecodableField(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/users?page=abc&active=true", nil)
	c := newTestContext(req)

	var out coercionRequest
	err := Validate(c, Schema{}, &out)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "page", validationErr.Errors[0].Field)
	assert.Equal(t, "is invalid", validationErr.Errors[0].Message)
	assert.True(t, out.Active)
}

func TestPayloadPrecedenceBodyOverQuery(t *testing.T) {
	body := strings.NewReader(`{"name":"FromBody"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users?name=FromQuery&extra=kept", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := newTestContext(req)

	payload, err := Payload(c)
	require.NoError(t, err)

	assert.Equal(t, "FromBody", payload["name"])
	assert.Equal(t, "kept", payload["extra"])
}

func TestPayloadFormOverridesQuery(t *testing.T) {
	req := multipartRequest(t, map[string]string{"name": "FromForm"}, "", "", "", nil)
	req.URL.RawQuery = "name=FromQuery"
	c := newTestContext(req)

	payload, err := Payload(c)
	require.NoError(t, err)
	assert.Equal(t, "FromForm", payload["name"])
}
