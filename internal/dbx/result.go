package dbx

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/joggingtracker/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRepr     = "22P02"
	codeCheckViolation      = "23514"
)

// ExpectOneRow checks that an UPDATE or DELETE touched exactly one row.
// Zero rows is reported as common.ErrorNotFound.
func ExpectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// MapError translates driver errors into the common sentinels and wraps
// everything else as a db error. A nil err stays nil.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", common.ErrAlreadyExists, pgErr.ConstraintName)
		case codeForeignKeyViolation, codeInvalidTextRepr:
			// dangling reference or an id that cannot be a uuid
			return common.ErrorNotFound
		case codeCheckViolation:
			return fmt.Errorf("%w: %s", common.ErrValidation, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("db error: %w", err)
}
