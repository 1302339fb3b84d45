// Package middleware contains the Echo middleware stack: request
// correlation, request-scoped logging, tracing, CORS/security, and the
// global error handler that translates every failure into the API's
// JSON envelope.
package middleware
