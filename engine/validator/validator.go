package validator

import (
	"fmt"

	"github.com/omniql-engine/sqldoc/mapping"
)

// Validator checks a statement's syntax before it is translated
type Validator interface {
	Validate(query string) error
	ValidateWithDetails(query string) (*ValidationResult, error)
}

// ValidationResult contains detailed validation info
type ValidationResult struct {
	Valid   bool
	Dialect string
	Error   string
}

// ValidateSQL validates a statement against the given dialect's grammar
func ValidateSQL(query string, dialect string) error {
	switch dialect {
	case "mysql":
		return ValidateMySQL(query)
	case "postgres":
		return ValidatePostgreSQL(query)
	case "tidb":
		return ValidateTiDB(query)
	default:
		return fmt.Errorf("unsupported dialect: %s (supported: %v)", dialect, mapping.SupportedDialects)
	}
}

// ValidateSQLWithDetails returns detailed validation result
func ValidateSQLWithDetails(query string, dialect string) (*ValidationResult, error) {
	if !mapping.IsSupportedDialect(dialect) {
		return nil, fmt.Errorf("unsupported dialect: %s (supported: %v)", dialect, mapping.SupportedDialects)
	}
	if err := ValidateSQL(query, dialect); err != nil {
		return &ValidationResult{Valid: false, Dialect: dialect, Error: err.Error()}, nil
	}
	return &ValidationResult{Valid: true, Dialect: dialect}, nil
}

// ForDialect returns a Validator bound to one dialect
func ForDialect(dialect string) (Validator, error) {
	if !mapping.IsSupportedDialect(dialect) {
		return nil, fmt.Errorf("unsupported dialect: %s (supported: %v)", dialect, mapping.SupportedDialects)
	}
	return dialectValidator(dialect), nil
}

type dialectValidator string

func (d dialectValidator) Validate(query string) error {
	return ValidateSQL(query, string(d))
}

func (d dialectValidator) ValidateWithDetails(query string) (*ValidationResult, error) {
	return ValidateSQLWithDetails(query, string(d))
}
