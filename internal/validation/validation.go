// Package validation implements the request payload pipeline.
//
// For an inbound request it merges every payload source (query
// parameters, JSON body, multipart form fields and files) into one
// combined mapping, decodes that mapping into the operation's typed
// request struct with weak coercion, and runs the declared rules,
// collecting every field violation before reporting. The request body
// is parsed at most once; the combined payload is cached on the echo
// context for the rest of the request.
package validation
