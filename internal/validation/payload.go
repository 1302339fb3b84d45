package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
)

// payloadKey caches the combined payload on the echo context so the
// request body is parsed at most once, however often validation runs.
const payloadKey = "combined_payload"

// Payload returns the combined payload mapping for the request.
//
// Sources are merged in increasing precedence: query parameters, then
// JSON body fields, then multipart form fields. A form field wins over
// a body field wins over a query parameter of the same name.
// Scalar values are strings; file parts become *File.
func Payload(c echo.Context) (map[string]any, error) {
	if cached, ok := c.Get(payloadKey).(map[string]any); ok {
		return cached, nil
	}

	payload := make(map[string]any)

	for name, values := range c.QueryParams() {
		if len(values) > 0 {
			payload[name] = values[0]
		}
	}

	contentType := c.Request().Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		body := make(map[string]any)
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("parsing JSON body: %w", err)
		}
		for name, value := range body {
			payload[name] = value
		}
	}

	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("parsing multipart form: %w", err)
		}
		for name, values := range form.Value {
			if len(values) > 0 {
				payload[name] = values[0]
			}
		}
		for name, headers := range form.File {
			if len(headers) == 0 {
				continue
			}
			file, err := newFile(headers[0])
			if err != nil {
				return nil, err
			}
			payload[name] = file
		}
	}

	c.Set(payloadKey, payload)
	return payload, nil
}
