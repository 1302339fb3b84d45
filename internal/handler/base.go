package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/userhubapp/userhub/internal/middleware"
	"github.com/userhubapp/userhub/internal/server"
	"github.com/userhubapp/userhub/internal/validation"
)

// Handler is the base handler type that holds shared application
// dependencies. Concrete handlers embed it so they can reach config,
// logger, database and storage via *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returned by value; the struct
// only carries a pointer so copies stay cheap.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint function. It receives the validated
// request payload and returns a response value or an error.
type HandlerFunc[Req any, Res any] func(c echo.Context, req *Req) (Res, error)

// ResponseHandler defines how a successful handler result is written
// to the HTTP response, and which observability attributes get
// attached for that response type.
type ResponseHandler interface {
	// Handle writes the HTTP response for the given result.
	Handle(c echo.Context, result interface{}) error

	// GetOperation returns an operation name used for structured logging.
	GetOperation() string

	// AddAttributes attaches New Relic attributes based on the result.
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is already set by the tracing middleware.
}

// HTMLResponseHandler writes a rendered page. The handler result must
// be a string of HTML.
type HTMLResponseHandler struct {
	status int
}

func (h HTMLResponseHandler) Handle(c echo.Context, result interface{}) error {
	page, _ := result.(string)
	return c.HTML(h.status, page)
}

func (h HTMLResponseHandler) GetOperation() string {
	return "handler_html"
}

func (h HTMLResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn != nil {
		if page, ok := result.(string); ok {
			txn.AddAttribute("response.size_bytes", len(page))
		}
	}
}

// TextResponseHandler writes a plain-text response. The handler result
// must be a string.
type TextResponseHandler struct {
	status int
}

func (h TextResponseHandler) Handle(c echo.Context, result interface{}) error {
	text, _ := result.(string)
	return c.String(h.status, text)
}

func (h TextResponseHandler) GetOperation() string {
	return "handler_text"
}

func (h TextResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
}

// handleRequest is the shared execution pipeline for all typed
// handlers. It centralizes:
//
// - payload merging + validation against the operation schema
// - structured logging (with request context)
// - New Relic tracing attributes and error reporting
// - timing metrics (validation duration, handler duration, total duration)
// - response writing (json / html)
func handleRequest[Req any](
	c echo.Context,
	schema validation.Schema,
	req *Req,
	handler func(c echo.Context, req *Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	method := c.Request().Method
	route := c.Path()

	// The transaction is set by the New Relic Echo middleware.
	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	// Request-scoped logger set by the context enhancer middleware,
	// already carrying request_id and trace correlation fields.
	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", method).
		Str("route", route).
		Logger()

	logger.Info().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()

	if err := validation.Validate(c, schema, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Error().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		// The global error handler formats the response.
		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Msg("request validation successful")

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with validation, error handling,
// logging, metrics, and tracing, and returns an echo.HandlerFunc ready
// for route registration.
func Handle[Req any, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	schema validation.Schema,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(Req)
		return handleRequest(c, schema, req, func(c echo.Context, req *Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleHTML is Handle for endpoints that render a page instead of
// JSON. The wrapped handler returns the HTML string.
func HandleHTML[Req any](
	h Handler,
	handler HandlerFunc[Req, string],
	status int,
	schema validation.Schema,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(Req)
		return handleRequest(c, schema, req, func(c echo.Context, req *Req) (interface{}, error) {
			return handler(c, req)
		}, HTMLResponseHandler{status: status})
	}
}

// HandleText is Handle for endpoints that return plain text.
func HandleText[Req any](
	h Handler,
	handler HandlerFunc[Req, string],
	status int,
	schema validation.Schema,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(Req)
		return handleRequest(c, schema, req, func(c echo.Context, req *Req) (interface{}, error) {
			return handler(c, req)
		}, TextResponseHandler{status: status})
	}
}
