package utils

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsPGUniqueViolation reports whether error is a PostgreSQL unique constraint violation (code 23505).
func IsPGUniqueViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23505"
	}
	return false
}

// IsPGUniqueViolationOn reports a 23505 whose constraint name contains the given fragment.
// Used to tell an email conflict from a username conflict on the same insert.
func IsPGUniqueViolationOn(err error, constraint string) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23505" && strings.Contains(pge.ConstraintName, constraint)
	}
	return false
}

// IsPGForeignKeyViolation reports whether error is a PostgreSQL foreign key violation (code 23503).
func IsPGForeignKeyViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23503"
	}
	return false
}
