package models

import "github.com/omniql-engine/sqldoc/mapping"

// ============================================================================
// DESCRIPTOR - normalized document operation
// ============================================================================

// Descriptor is the document-store operation produced for one statement.
// It has no identity beyond the call that built it.
type Descriptor struct {
	Collection string
	Table      string            // relational name the collection was resolved from
	Operation  mapping.Operation // SELECT, INSERT, UPDATE, DELETE

	Filter   *Filter  // SELECT, UPDATE, DELETE (never nil for these)
	Document Document // INSERT payload
	Updates  Document // UPDATE $set payload

	// Unrecognized holds the tokens the predicate compiler (or the SET
	// parser) skipped. Empty for a cleanly compiled statement.
	Unrecognized []Span
}

// Span is a skipped token: its byte offset in the statement and its text.
type Span struct {
	Pos  int
	Text string
}

// ============================================================================
// FILTER
// ============================================================================

// Constraint is one comparison on a field. Value is int64, float64 or string;
// for MATCH it is an anchored regular expression.
type Constraint struct {
	Operator mapping.Operator
	Value    any
}

// Filter maps fields to their constraints. Constraints on the same field
// accumulate in the order they were added; fields keep first-seen order.
// The zero value is not usable, call NewFilter.
type Filter struct {
	fields      []string
	constraints map[string][]Constraint
}

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	return &Filter{constraints: make(map[string][]Constraint)}
}

// Add appends a constraint for field.
func (f *Filter) Add(field string, c Constraint) {
	if _, ok := f.constraints[field]; !ok {
		f.fields = append(f.fields, field)
	}
	f.constraints[field] = append(f.constraints[field], c)
}

// Get returns the constraints on field in insertion order.
func (f *Filter) Get(field string) []Constraint {
	if f == nil {
		return nil
	}
	return f.constraints[field]
}

// Fields returns the constrained fields in first-seen order.
func (f *Filter) Fields() []string {
	if f == nil {
		return nil
	}
	return f.fields
}

// Len returns the number of constrained fields.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.fields)
}

// ============================================================================
// DOCUMENT
// ============================================================================

// Field is one name/value pair of a Document
type Field struct {
	Name  string
	Value any
}

// Document is an ordered field list. Order follows the statement's column
// list or the relational row.
type Document []Field

// Get returns the value stored under name.
func (d Document) Get(name string) (any, bool) {
	for _, f := range d {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under name, or appends a new field.
func (d *Document) Set(name string, value any) {
	for i := range *d {
		if (*d)[i].Name == name {
			(*d)[i].Value = value
			return
		}
	}
	*d = append(*d, Field{Name: name, Value: value})
}

// Names returns the field names in order.
func (d Document) Names() []string {
	names := make([]string, len(d))
	for i, f := range d {
		names[i] = f.Name
	}
	return names
}
