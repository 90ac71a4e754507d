package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrTableNotFound is returned for table keys that are not part of the
// pricing schema.
var ErrTableNotFound = errors.New("table not configured")

// ErrUnsupported is returned when an operation is not offered by the table's
// editor strategy (create on a form table, deactivate without an active
// filter, any write to a custom display).
var ErrUnsupported = errors.New("operation not supported for this table")

// ValidationError carries a message that is shown to the user verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// translateStoreError converts Postgres constraint violations into validation
// errors the frontend can display. The unique constraint naming convention is
// {table}_{column}_key, which yields messages like "Duplicate type_code".
func translateStoreError(tableKey string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		col := strings.TrimSuffix(strings.TrimPrefix(pgErr.ConstraintName, tableKey+"_"), "_key")
		if col == "" || col == pgErr.ConstraintName {
			return &ValidationError{Msg: "Duplicate value"}
		}
		return &ValidationError{Msg: "Duplicate " + col}
	case "23502":
		return &ValidationError{Msg: pgErr.ColumnName + " is required"}
	case "23514":
		return &ValidationError{Msg: "Value violates a table constraint"}
	default:
		return err
	}
}
