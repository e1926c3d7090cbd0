package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateErr maps store-level constraint failures onto the domain error
// taxonomy so unique violations surface as conflicts instead of 500s.
func translateErr(err error, entity string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.NewConflict("%s already exists", entity)
		case pgForeignKeyViolation:
			return domain.NewBadRequest("%s references a missing resource", entity)
		}
	}
	return err
}

// isNoRows reports a row-level miss, which repositories surface as
// (nil, nil) rather than an error.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
