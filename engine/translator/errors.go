package translator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/omniql-engine/sqldoc/engine/models"
	"github.com/omniql-engine/sqldoc/mapping"
)

// ============================================================================
// ERRORS
// ============================================================================

var (
	ErrUnresolvedTable    = errors.New("table name not found in statement")
	ErrUnknownTable       = errors.New("table not present in catalog")
	ErrArityMismatch      = errors.New("column and value counts differ")
	ErrMalformedPredicate = errors.New("malformed predicate")
	ErrSyntax             = errors.New("statement failed syntax validation")
)

// UnresolvedTableNameError: no table could be identified in the statement.
type UnresolvedTableNameError struct {
	Statement string
}

func (e *UnresolvedTableNameError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnresolvedTable, e.Statement)
}

func (e *UnresolvedTableNameError) Unwrap() error { return ErrUnresolvedTable }

// UnknownTableError: the table has no catalog entry.
type UnknownTableError struct {
	Table string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownTable, e.Table)
}

func (e *UnknownTableError) Unwrap() error { return ErrUnknownTable }

// ArityMismatchError: an INSERT names a different number of columns than values.
type ArityMismatchError struct {
	Columns int
	Values  int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s in INSERT: %d columns, %d values", ErrArityMismatch, e.Columns, e.Values)
}

func (e *ArityMismatchError) Unwrap() error { return ErrArityMismatch }

// UnsupportedOperationError: the operation kind is not SELECT/INSERT/UPDATE/DELETE.
type UnsupportedOperationError struct {
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: %q", mapping.ErrUnsupportedOperation, e.Operation)
}

func (e *UnsupportedOperationError) Unwrap() error { return mapping.ErrUnsupportedOperation }

// MalformedPredicateError lists the tokens a strict translator refused to skip.
type MalformedPredicateError struct {
	Spans []models.Span
}

func (e *MalformedPredicateError) Error() string {
	parts := make([]string, len(e.Spans))
	for i, s := range e.Spans {
		parts[i] = fmt.Sprintf("'%s'@%d", s.Text, s.Pos)
	}
	return fmt.Sprintf("%s: unrecognized tokens %s", ErrMalformedPredicate, strings.Join(parts, ", "))
}

func (e *MalformedPredicateError) Unwrap() error { return ErrMalformedPredicate }

// SyntaxError wraps a dialect validator failure.
type SyntaxError struct {
	Dialect string
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrSyntax, e.Dialect, e.Err)
}

func (e *SyntaxError) Unwrap() []error { return []error{ErrSyntax, e.Err} }
