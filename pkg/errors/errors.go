// Package errors defines the error taxonomy shared by the data model and the
// persistence layer.
//
// Validation errors are raised in memory before any database work. Unique,
// foreign key and not-found errors are produced by the store when it
// classifies driver failures or empty lookups.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified error.
	CodeUnknown Code = "UNKNOWN"
	// CodeValidation marks an in-memory invariant violation.
	CodeValidation Code = "VALIDATION"
	// CodeUniqueViolation marks a duplicate value on a unique key.
	CodeUniqueViolation Code = "UNIQUE_VIOLATION"
	// CodeForeignKeyViolation marks a missing parent or a delete blocked by dependents.
	CodeForeignKeyViolation Code = "FOREIGN_KEY_VIOLATION"
	// CodeNotFound marks a lookup that matched no row.
	CodeNotFound Code = "NOT_FOUND"
)

// Sentinels for errors.Is comparisons. Matching is by code only.
var (
	ErrValidation          = New(CodeValidation, "validation failed")
	ErrUniqueViolation     = New(CodeUniqueViolation, "unique constraint violation")
	ErrForeignKeyViolation = New(CodeForeignKeyViolation, "foreign key violation")
	ErrNotFound            = New(CodeNotFound, "not found")
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Table   string // Table involved, when known
	Field   string // Field involved, when known
	Cause   error  // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Table != "" {
		msg = e.Table + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Validation reports an invalid value for field.
func Validation(field, message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Field: field}
}

// Validationf is Validation with a format string.
func Validationf(field, format string, args ...any) *Error {
	return Validation(field, fmt.Sprintf(format, args...))
}

// NotFound reports that no row with id exists in table.
func NotFound(table string, id int64) *Error {
	return &Error{Code: CodeNotFound, Table: table, Message: fmt.Sprintf("no row with id %d", id)}
}

// NotFoundBy reports that no row in table has field equal to value.
func NotFoundBy(table, field string, value any) *Error {
	return &Error{Code: CodeNotFound, Table: table, Field: field, Message: fmt.Sprintf("no row matching %v", value)}
}

// WithTable returns err annotated with table when err is an *Error that does
// not name one yet. Other errors are returned unchanged.
func WithTable(err error, table string) error {
	var e *Error
	if !stderrors.As(err, &e) || e.Table != "" {
		return err
	}
	cp := *e
	cp.Table = table
	return &cp
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

func IsValidation(err error) bool          { return stderrors.Is(err, ErrValidation) }
func IsUniqueViolation(err error) bool     { return stderrors.Is(err, ErrUniqueViolation) }
func IsForeignKeyViolation(err error) bool { return stderrors.Is(err, ErrForeignKeyViolation) }
func IsNotFound(err error) bool            { return stderrors.Is(err, ErrNotFound) }
