package sqlerr

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           pgUniqueViolation,
		Message:        `duplicate key value violates unique constraint "` + constraint + `"`,
		ConstraintName: constraint,
		TableName:      "users",
	}
}

func TestConvertClassifiesPgErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want Code
	}{
		{"unique", pgUniqueViolation, UniqueViolation},
		{"foreign key", pgForeignKeyViolation, ForeignKeyViolation},
		{"not null", pgNotNullViolation, NotNullViolation},
		{"check", pgCheckViolation, CheckViolation},
		{"unclassified", "42601", Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converted := Convert(&pgconn.PgError{Code: tt.code})
			assert.Equal(t, tt.want, ErrCode(converted))
		})
	}
}

func TestConvertNoRows(t *testing.T) {
	assert.Equal(t, NotFound, ErrCode(Convert(pgx.ErrNoRows)))
}

func TestConvertPassesThroughPlainErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.Equal(t, plain, Convert(plain))
	assert.Equal(t, Other, ErrCode(plain))
}

func TestConvertKeepsCause(t *testing.T) {
	pgErr := uniqueViolation("users_email_key")
	converted := Convert(pgErr)

	var classified *Error
	require.ErrorAs(t, converted, &classified)
	assert.Equal(t, "users_email_key", classified.ConstraintName)
	assert.ErrorIs(t, converted, pgErr)
}

func TestSanitizeUniqueViolation(t *testing.T) {
	assert.Equal(t, "Email already exists", Sanitize(uniqueViolation("users_email_key")))
}

func TestSanitizeCompoundColumn(t *testing.T) {
	assert.Equal(t, "User Id already exists", Sanitize(uniqueViolation("posts_user_id_key")))
}

func TestSanitizeUnconventionalConstraint(t *testing.T) {
	assert.Equal(t, "Resource already exists", Sanitize(uniqueViolation("dup")))
}

func TestSanitizeNotNull(t *testing.T) {
	msg := Sanitize(&pgconn.PgError{Code: pgNotNullViolation, ColumnName: "password"})
	assert.Equal(t, "Password is required", msg)
}

func TestSanitizeNonDatabaseError(t *testing.T) {
	assert.Empty(t, Sanitize(errors.New("boom")))
}

func TestSanitizeWrappedError(t *testing.T) {
	wrapped := errors.Wrap(Convert(uniqueViolation("users_email_key")), "creating user")
	assert.Equal(t, "Email already exists", Sanitize(wrapped))
}
