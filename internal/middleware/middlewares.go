package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/userhubapp/userhub/internal/server"
)

// Middlewares is the container for every middleware bundle, built once
// at startup and handed to the router.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
	}
}
