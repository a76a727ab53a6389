package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SQLSTATE codes raised by PostgreSQL for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
)

// The embedded SQLite driver used by tests reports violations by message.
const (
	sqliteUniqueViolation     = "unique constraint failed"
	sqliteForeignKeyViolation = "foreign key constraint failed"
	sqliteNotNullViolation    = "not null constraint failed"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// Helper functions for constraint error checking
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	// Check for GORM's duplicate key error
	if errors.Is(err, gorm.ErrDuplicatedKey) || pgErrorCode(err) == pgUniqueViolation {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), sqliteUniqueViolation)
}

func isForeignKeyConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	// Check for GORM's foreign key violation error
	if errors.Is(err, gorm.ErrForeignKeyViolated) || pgErrorCode(err) == pgForeignKeyViolation {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), sqliteForeignKeyViolation)
}

func isNotNullConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if pgErrorCode(err) == pgNotNullViolation {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, sqliteNotNullViolation) ||
		strings.Contains(errMsg, "null value")
}

func isConstraintViolation(err error) bool {
	return isUniqueConstraintViolation(err) || isForeignKeyConstraintViolation(err) || isNotNullConstraintViolation(err)
}
