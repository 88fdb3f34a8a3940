package db

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	apperrors "github.com/garnizeh/staffing/pkg/errors"
)

// PostgreSQL SQLSTATE codes for integrity violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// Classify maps driver constraint failures onto the domain error taxonomy.
// table names the table being written. Errors that are not constraint
// failures are returned unchanged.
func Classify(err error, table string) error {
	if err == nil {
		return nil
	}
	var ae *apperrors.Error
	if errors.As(err, &ae) || errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return sqliteConstraint(apperrors.CodeUniqueViolation, "duplicate value", table, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return sqliteConstraint(apperrors.CodeForeignKeyViolation, "referenced row missing or still referenced", table, err)
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return sqliteConstraint(apperrors.CodeValidation, "is required", table, err)
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return sqliteConstraint(apperrors.CodeValidation, "check constraint failed", table, err)
		}
	}

	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		var code apperrors.Code
		msg := pe.Message
		switch pe.Code {
		case pgUniqueViolation:
			code, msg = apperrors.CodeUniqueViolation, "duplicate value"
		case pgForeignKeyViolation:
			code, msg = apperrors.CodeForeignKeyViolation, "referenced row missing or still referenced"
		case pgNotNullViolation:
			code, msg = apperrors.CodeValidation, "is required"
		case pgCheckViolation:
			code, msg = apperrors.CodeValidation, "check constraint failed"
		default:
			return err
		}
		field := pe.ColumnName
		if field == "" {
			field = pe.ConstraintName
		}
		t := pe.TableName
		if t == "" {
			t = table
		}
		return &apperrors.Error{Code: code, Message: msg, Table: t, Field: field, Cause: err}
	}

	// Drivers wrapped by other layers may only leave the message.
	text := err.Error()
	switch {
	case strings.Contains(text, "UNIQUE constraint failed"):
		return sqliteConstraint(apperrors.CodeUniqueViolation, "duplicate value", table, err)
	case strings.Contains(text, "FOREIGN KEY constraint failed"):
		return sqliteConstraint(apperrors.CodeForeignKeyViolation, "referenced row missing or still referenced", table, err)
	case strings.Contains(text, "NOT NULL constraint failed"):
		return sqliteConstraint(apperrors.CodeValidation, "is required", table, err)
	case strings.Contains(text, "CHECK constraint failed"):
		return sqliteConstraint(apperrors.CodeValidation, "check constraint failed", table, err)
	}
	return err
}

// sqliteConstraint extracts the column list from messages such as
// "UNIQUE constraint failed: individuals.email (2067)".
func sqliteConstraint(code apperrors.Code, msg, table string, cause error) error {
	field := ""
	text := cause.Error()
	if i := strings.LastIndex(text, "failed: "); i >= 0 {
		rest := text[i+len("failed: "):]
		if p := strings.Index(rest, " ("); p >= 0 {
			rest = rest[:p]
		}
		cols := strings.Split(strings.TrimSpace(rest), ",")
		names := make([]string, 0, len(cols))
		for _, c := range cols {
			c = strings.TrimSpace(c)
			if dot := strings.LastIndex(c, "."); dot >= 0 {
				c = c[dot+1:]
			}
			if c != "" {
				names = append(names, c)
			}
		}
		field = strings.Join(names, ",")
	}
	return &apperrors.Error{Code: code, Message: msg, Table: table, Field: field, Cause: cause}
}
