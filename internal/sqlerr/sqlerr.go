// Package sqlerr handles database driver errors.
//
// It parses the cryptic error codes surfaced by the PostgreSQL driver
// and converts them into user-safe messages, so the API boundary can
// serve a readable failure without leaking SQL, constraint names, or
// driver internals.
package sqlerr
