package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// codeBySQLState classifies the SQLSTATEs the registry can plausibly hit
var codeBySQLState = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
	"57014": ErrorCodeUnavailable,     // query_canceled, statement_timeout included
}

// PgError returns the *pgconn.PgError at the root of err
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// FromPostgres wraps err with msg and a code derived from its SQLSTATE; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if pgErr, ok := PgError(err); ok {
		if c, known := codeBySQLState[pgErr.Code]; known {
			code = c
		}
	}
	return Wrap(err, code, msg)
}

// FromPostgresWithField is FromPostgres plus the column the server blamed, when it named one
func FromPostgresWithField(err error, msg string) error {
	out := FromPostgres(err, msg)
	pgErr, ok := PgError(err)
	if !ok {
		return out
	}
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		return WithField(out, col)
	}
	// <table>_<column>_check and <table>_<column>_key name their column last
	name := pgErr.ConstraintName
	for _, suffix := range []string{"_check", "_key"} {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			if k := strings.LastIndex(base, "_"); k >= 0 {
				return WithField(out, base[k+1:])
			}
		}
	}
	return out
}
