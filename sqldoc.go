// Package sqldoc intercepts relational statements and runs them against a
// document store. Statements are translated into descriptors by
// engine/translator and executed by Client; bulk migration of a relational
// schema lives in package migration.
package sqldoc

import (
	"github.com/omniql-engine/sqldoc/engine/models"
	"github.com/omniql-engine/sqldoc/engine/translator"
	"github.com/omniql-engine/sqldoc/mapping"
)

// Translate builds the descriptor for statement with a one-off Translator.
func Translate(statement string, op mapping.Operation, catalog mapping.Catalog) (*models.Descriptor, error) {
	return translator.New(catalog).Translate(statement, op)
}

// TranslateAuto is Translate with the operation kind taken from the
// statement's leading keyword.
func TranslateAuto(statement string, catalog mapping.Catalog) (*models.Descriptor, error) {
	op, err := mapping.InferOperation(statement)
	if err != nil {
		return nil, &translator.UnsupportedOperationError{Operation: firstWord(statement)}
	}
	return Translate(statement, op, catalog)
}
