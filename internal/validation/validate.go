package validation

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/userhubapp/userhub/internal/errs"
)

// Field declares one scalar payload field of an operation. The Kind,
// Required and Format attributes also feed the generated API document.
type Field struct {
	Name     string
	Kind     string // "string", "integer", "number", "boolean"
	Required bool
	Format   string // e.g. "email", "password"
}

// FileRule declares the constraints for one file field.
type FileRule struct {
	Field    string
	Optional bool

	// MIMETypes is the allow-list of accepted media types. A file
	// whose type is absent from the list fails with a file-specific
	// violation.
	MIMETypes []string
}

// Schema describes one operation's expected payload. It is immutable
// after construction and shared read-only across requests. The typed
// rules live as validator tags on the operation's request struct; the
// Fields and Files tables carry the file constraints and the metadata
// the API document generator consumes.
type Schema struct {
	Fields []Field
	Files  []FileRule
}

// validate is the shared validator instance. Field names in violations
// are taken from the mapstructure tag, so they match what the client
// submitted.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate merges the request's payload sources, decodes the combined
// payload into out (a pointer to the operation's request struct) with
// weak coercion, and evaluates every declared rule.
//
// All field failures are collected; the returned *errs.ValidationError
// carries the complete list. Failures that are not field violations
// (unreadable body, malformed multipart) are returned as plain errors.
func Validate(c echo.Context, schema Schema, out any) error {
	payload, err := Payload(c)
	if err != nil {
		return err
	}

	var fieldErrors []errs.FieldError

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return errors.Wrap(err, "constructing payload decoder")
	}

	if err := decoder.Decode(payload); err != nil {
		fieldErrors = append(fieldErrors, decodeFieldErrors(err)...)
	}

	if err := validate.Struct(out); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return errors.Wrap(err, "running payload validation")
		}
		fieldErrors = append(fieldErrors, extractFieldErrors(validationErrors)...)
	}

	fieldErrors = append(fieldErrors, checkFileRules(payload, schema.Files)...)

	if len(fieldErrors) > 0 {
		return errs.NewValidationError(fieldErrors)
	}
	return nil
}

// decodeFieldErrors converts mapstructure decode failures into field
// violations. The decoder joins one error per failing field; each
// element carries the field name it relates to.
func decodeFieldErrors(err error) []errs.FieldError {
	parts := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		parts = joined.Unwrap()
	}

	fieldErrors := make([]errs.FieldError, 0, len(parts))
	for _, part := range parts {
		var decodeErr *mapstructure.DecodeError
		if errors.As(part, &decodeErr) {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field:   strings.ToLower(decodeErr.Name()),
				Message: "is invalid",
			})
			continue
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field:   "payload",
			Message: "could not be decoded",
		})
	}
	return fieldErrors
}

// extractFieldErrors converts validator violations into user-friendly
// field messages.
func extractFieldErrors(validationErrors validator.ValidationErrors) []errs.FieldError {
	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))

	for _, err := range validationErrors {
		field := err.Field()
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		case "eqfield":
			msg = fmt.Sprintf("must match %s", strings.ToLower(err.Param()))

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field:   field,
			Message: msg,
		})
	}

	return fieldErrors
}

// checkFileRules evaluates the file constraints against the combined
// payload.
func checkFileRules(payload map[string]any, rules []FileRule) []errs.FieldError {
	var fieldErrors []errs.FieldError

	for _, rule := range rules {
		value, present := payload[rule.Field]
		if !present || value == nil {
			if !rule.Optional {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field:   rule.Field,
					Message: "must be a file",
				})
			}
			continue
		}

		file, ok := value.(*File)
		if !ok {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field:   rule.Field,
				Message: "must be a file",
			})
			continue
		}

		if len(rule.MIMETypes) > 0 && !slices.Contains(rule.MIMETypes, file.MIMEType) {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field:   rule.Field,
				Message: fmt.Sprintf("must be a file of type: %s", strings.Join(rule.MIMETypes, ", ")),
			})
		}
	}

	return fieldErrors
}
