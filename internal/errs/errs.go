// Package errs defines the error types understood by the API boundary.
//
// Every failure that reaches the global error handler is serialized into
// a JSON envelope of the shape { success, message, errors }. Validation
// failures carry field-level detail; everything else carries a message
// only.
package errs
