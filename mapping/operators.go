package mapping

import "strings"

// Operator is a document-store comparison kind produced by the predicate compiler.
type Operator string

const (
	OpEq    Operator = "EQ"
	OpNe    Operator = "NE"
	OpGt    Operator = "GT"
	OpLt    Operator = "LT"
	OpGte   Operator = "GTE"
	OpLte   Operator = "LTE"
	OpMatch Operator = "MATCH"
)

// ComparisonMap - relational comparison token (or keyword) -> Operator
// Keys are upper-case; LookupOperator folds case before reading it.
var ComparisonMap = map[string]Operator{
	"=":    OpEq,
	"!=":   OpNe,
	"<>":   OpNe,
	">":    OpGt,
	"<":    OpLt,
	">=":   OpGte,
	"<=":   OpLte,
	"LIKE": OpMatch,
}

// OperatorMap - Runtime mapping for builders
// Usage: OperatorMap["MongoDB"][OpGt] returns "$gt"
var OperatorMap = map[string]map[Operator]string{
	"MongoDB": {
		OpEq:    "$eq",
		OpNe:    "$ne",
		OpGt:    "$gt",
		OpLt:    "$lt",
		OpGte:   "$gte",
		OpLte:   "$lte",
		OpMatch: "$regex",
	},
}

// LookupOperator maps a comparison token or keyword to its Operator.
func LookupOperator(token string) (Operator, bool) {
	op, ok := ComparisonMap[strings.ToUpper(strings.TrimSpace(token))]
	return op, ok
}

// Mongo returns the MongoDB query operator for o, or "" when o is unknown.
func (o Operator) Mongo() string {
	return OperatorMap["MongoDB"][o]
}
