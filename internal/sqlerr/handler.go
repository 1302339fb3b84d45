package sqlerr

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Code classifies a database error into the categories the API cares
// about.
type Code string

const (
	UniqueViolation     Code = "unique_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	NotFound            Code = "not_found"
	Other               Code = "other"
)

// PostgreSQL error codes, see
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// Error is a classified database error with the attributes needed to
// build a user-safe message.
type Error struct {
	Code           Code
	ColumnName     string
	ConstraintName string
	TableName      string
	cause          error
}

func (e *Error) Error() string {
	return e.cause.Error()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// ErrCode reports the classified Code for err, or Other when err is
// not a database error this package understands.
func ErrCode(err error) Code {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Code
	}
	return Other
}

// Convert classifies a raw database error. Errors that are not
// recognizably from the driver come back unchanged.
func Convert(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return &Error{Code: NotFound, cause: err}
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	classified := &Error{
		ColumnName:     pgErr.ColumnName,
		ConstraintName: pgErr.ConstraintName,
		TableName:      pgErr.TableName,
		cause:          err,
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		classified.Code = UniqueViolation
	case pgForeignKeyViolation:
		classified.Code = ForeignKeyViolation
	case pgNotNullViolation:
		classified.Code = NotNullViolation
	case pgCheckViolation:
		classified.Code = CheckViolation
	default:
		classified.Code = Other
	}

	return classified
}

// Sanitize produces a user-safe message for a database error, or ""
// when err is not a database error (the caller then falls back to its
// own message handling).
func Sanitize(err error) string {
	converted := Convert(err)

	var classified *Error
	if !errors.As(converted, &classified) {
		return ""
	}

	switch classified.Code {
	case UniqueViolation:
		if column := columnFromConstraint(classified.ConstraintName); column != "" {
			return fmt.Sprintf("%s already exists", humanize(column))
		}
		return "Resource already exists"

	case ForeignKeyViolation:
		return "Referenced resource does not exist"

	case NotNullViolation:
		if classified.ColumnName != "" {
			return fmt.Sprintf("%s is required", humanize(classified.ColumnName))
		}
		return "Missing required value"

	case CheckViolation:
		return "Value violates a data constraint"

	case NotFound:
		return "Resource not found"

	default:
		return "Database operation failed"
	}
}

// columnFromConstraint extracts the column name from conventional
// constraint names such as "users_email_key".
func columnFromConstraint(constraint string) string {
	parts := strings.Split(constraint, "_")
	if len(parts) < 3 {
		return ""
	}
	// <table>_<column...>_<suffix>
	return strings.Join(parts[1:len(parts)-1], "_")
}

func humanize(column string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(column, "_", " "))
}
