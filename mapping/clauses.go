package mapping

import "strings"

// ClauseDefinition describes a clause keyword the translator navigates by
type ClauseDefinition struct {
	Keyword    string      // The keyword that opens the clause
	Operations []Operation // Which operation kinds read this clause
	ValueType  string      // TABLE, FIELD_LIST, ASSIGNMENTS, VALUES, CONDITION, NUMERIC, NONE
}

// QueryClauses defines all clauses the lexer groups or the translator reads
var QueryClauses = map[string]ClauseDefinition{
	"FROM": {
		Keyword:    "FROM",
		Operations: []Operation{Select, Delete},
		ValueType:  "TABLE",
	},
	"INTO": {
		Keyword:    "INTO",
		Operations: []Operation{Insert},
		ValueType:  "TABLE",
	},
	"VALUES": {
		Keyword:    "VALUES",
		Operations: []Operation{Insert},
		ValueType:  "VALUES",
	},
	"SET": {
		Keyword:    "SET",
		Operations: []Operation{Update},
		ValueType:  "ASSIGNMENTS",
	},
	"WHERE": {
		Keyword:    "WHERE",
		Operations: []Operation{Select, Update, Delete},
		ValueType:  "CONDITION",
	},
	"GROUP": {
		Keyword:   "GROUP",
		ValueType: "FIELD_LIST",
	},
	"HAVING": {
		Keyword:   "HAVING",
		ValueType: "CONDITION",
	},
	"ORDER": {
		Keyword:   "ORDER",
		ValueType: "FIELD_LIST",
	},
	"LIMIT": {
		Keyword:   "LIMIT",
		ValueType: "NUMERIC",
	},
	"OFFSET": {
		Keyword:   "OFFSET",
		ValueType: "NUMERIC",
	},
	"UNION": {
		Keyword:   "UNION",
		ValueType: "NONE",
	},
	"RETURNING": {
		Keyword:   "RETURNING",
		ValueType: "FIELD_LIST",
	},
}

// Keywords the lexer keeps as keyword tokens. Any other bare word, even one
// the tokenizer treats as reserved (status, date, key...), becomes an identifier.
var Keywords = map[string]bool{
	"SELECT": true, "INSERT": true, "UPDATE": true, "DELETE": true,
	"DISTINCT": true, "AS": true, "BY": true, "ON": true, "JOIN": true,
	"INNER": true, "LEFT": true, "RIGHT": true, "OUTER": true, "CROSS": true,
	"AND": true, "OR": true, "NOT": true, "XOR": true,
	"LIKE": true, "IN": true, "IS": true, "NULL": true, "BETWEEN": true,
	"EXISTS": true, "TRUE": true, "FALSE": true, "ASC": true, "DESC": true,
	"CASE": true, "WHEN": true, "THEN": true, "ELSE": true, "END": true,
	"REGEXP": true, "ALL": true, "ANY": true,
}

// ClausesByOperation - reverse mapping built from QueryClauses
var ClausesByOperation map[Operation][]string

func init() {
	ClausesByOperation = make(map[Operation][]string)

	for name, def := range QueryClauses {
		Keywords[def.Keyword] = true
		for _, op := range def.Operations {
			ClausesByOperation[op] = append(ClausesByOperation[op], name)
		}
	}
}

// IsKeyword reports whether word is kept as a keyword token.
func IsKeyword(word string) bool {
	return Keywords[strings.ToUpper(word)]
}

// IsClause reports whether word opens a clause.
func IsClause(word string) bool {
	_, ok := QueryClauses[strings.ToUpper(word)]
	return ok
}

// EndsCondition reports whether keyword closes a WHERE clause.
func EndsCondition(keyword string) bool {
	kw := strings.ToUpper(keyword)
	return kw != "WHERE" && IsClause(kw)
}
