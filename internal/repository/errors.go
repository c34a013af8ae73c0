package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsDuplicateKeyError checks if err is a unique constraint violation whose
// constraint (PostgreSQL) or message (SQLite) mentions name. An empty name
// matches any unique violation.
func IsDuplicateKeyError(err error, name string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && mentions(pgErr.ConstraintName, name)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique && sqliteErr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
			return false
		}
		return mentions(sqliteErr.Error(), name)
	}

	return name == "" && errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsForeignKeyError checks if err is a foreign key violation. PostgreSQL
// reports the constraint name so name narrows the match there; SQLite does
// not name the failing constraint, so any foreign key failure matches.
func IsForeignKeyError(err error, name string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation && mentions(pgErr.ConstraintName, name)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}

	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

func mentions(haystack, name string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(name))
}
