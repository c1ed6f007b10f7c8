package translator

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/omniql-engine/sqldoc/engine/ast"
	"github.com/omniql-engine/sqldoc/engine/lexer"
	"github.com/omniql-engine/sqldoc/engine/models"
	"github.com/omniql-engine/sqldoc/engine/validator"
	"github.com/omniql-engine/sqldoc/mapping"
)

// insertTablePattern finds the target of INSERT INTO independently of the
// token tree, accepting quoted and schema-qualified names.
var insertTablePattern = regexp.MustCompile("(?i)INSERT\\s+INTO\\s+(?:[`\"]?\\w+[`\"]?\\.)?[`\"]?(\\w+)")

// Translator turns relational statements into document operation descriptors.
// It holds only read-only state and performs no I/O, so one Translator can
// serve concurrent callers.
type Translator struct {
	catalog mapping.Catalog
	strict  bool
	dialect string
	logger  *zap.SugaredLogger
}

// Option configures a Translator
type Option func(*Translator)

// WithStrictPredicates makes any skipped predicate token a MalformedPredicateError.
func WithStrictPredicates() Option {
	return func(t *Translator) { t.strict = true }
}

// WithValidator pre-checks statements with the given dialect's parser.
func WithValidator(dialect string) Option {
	return func(t *Translator) { t.dialect = dialect }
}

// WithLogger sets the logger used for skipped-token diagnostics.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(t *Translator) { t.logger = logger }
}

// New creates a Translator resolving collections through catalog.
func New(catalog mapping.Catalog, opts ...Option) *Translator {
	t := &Translator{
		catalog: catalog,
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ============================================================================
// MAIN TRANSLATOR
// ============================================================================

// Translate builds the descriptor for statement under the declared operation kind.
func (t *Translator) Translate(statement string, op mapping.Operation) (*models.Descriptor, error) {
	if !op.Valid() {
		return nil, &UnsupportedOperationError{Operation: string(op)}
	}

	if t.dialect != "" {
		if err := validator.ValidateSQL(statement, t.dialect); err != nil {
			return nil, &SyntaxError{Dialect: t.dialect, Err: err}
		}
	}

	stmt, err := lexer.Tokenize(statement)
	if err != nil {
		return nil, fmt.Errorf("tokenize statement: %w", err)
	}

	table := resolveTable(stmt, op)
	if table == "" {
		return nil, &UnresolvedTableNameError{Statement: statement}
	}

	collection, ok := t.catalog.Collection(table)
	if !ok {
		return nil, &UnknownTableError{Table: table}
	}

	desc := &models.Descriptor{
		Collection: collection,
		Table:      table,
		Operation:  op,
	}

	switch op {
	case mapping.Select, mapping.Delete:
		t.attachFilter(desc, stmt.Where())

	case mapping.Insert:
		doc, err := insertDocument(stmt)
		if err != nil {
			return nil, err
		}
		desc.Document = doc

	case mapping.Update:
		updates, skipped := updateAssignments(stmt)
		desc.Updates = updates
		desc.Unrecognized = append(desc.Unrecognized, skipped...)
		t.attachFilter(desc, stmt.Where())
	}

	if len(desc.Unrecognized) > 0 {
		if t.strict {
			return nil, &MalformedPredicateError{Spans: desc.Unrecognized}
		}
		t.logger.Debugw("skipped unrecognized tokens",
			"table", table,
			"operation", op,
			"tokens", desc.Unrecognized)
	}

	return desc, nil
}

func (t *Translator) attachFilter(desc *models.Descriptor, where *ast.Where) {
	pred := CompilePredicate(where)
	desc.Filter = pred.Filter
	desc.Unrecognized = append(desc.Unrecognized, pred.Unrecognized...)
}

// ============================================================================
// TABLE RESOLUTION
// ============================================================================

// resolveTable takes the first identifier after FROM (SELECT, DELETE) or
// after UPDATE. INSERT is matched on the raw text.
func resolveTable(stmt *ast.Statement, op mapping.Operation) string {
	if op == mapping.Insert {
		if m := insertTablePattern.FindStringSubmatch(stmt.Source); m != nil {
			return m[1]
		}
		return ""
	}

	anchor := "FROM"
	if op == mapping.Update {
		anchor = "UPDATE"
	}

	seen := false
	for _, n := range stmt.Nodes {
		if seen {
			switch n := n.(type) {
			case *ast.Identifier:
				return n.RealName()
			case *ast.IdentifierList:
				return n.Items[0].RealName()
			}
		}
		if kw, ok := n.(*ast.Keyword); ok && kw.Is(anchor) {
			seen = true
		}
	}
	return ""
}

// ============================================================================
// INSERT
// ============================================================================

// insertDocument zips the column list with the literals after VALUES.
func insertDocument(stmt *ast.Statement) (models.Document, error) {
	var columns []string
	var values []any
	columnsSeen, valuesSeen := false, false

	for _, n := range stmt.Nodes {
		switch n := n.(type) {
		case *ast.Keyword:
			if n.Is("VALUES") {
				valuesSeen = true
			}
		case *ast.Parenthesis:
			if valuesSeen {
				values = append(values, literalValues(n)...)
			} else if !columnsSeen {
				columns = identifierNames(n)
				columnsSeen = true
			}
		}
	}

	if len(columns) != len(values) {
		return nil, &ArityMismatchError{Columns: len(columns), Values: len(values)}
	}

	doc := make(models.Document, 0, len(columns))
	for i, col := range columns {
		doc.Set(col, values[i])
	}
	return doc, nil
}

func identifierNames(p *ast.Parenthesis) []string {
	var names []string
	for _, child := range p.Children {
		switch c := child.(type) {
		case *ast.IdentifierList:
			for _, item := range c.Items {
				names = append(names, item.RealName())
			}
		case *ast.Identifier:
			names = append(names, c.RealName())
		}
	}
	return names
}

func literalValues(p *ast.Parenthesis) []any {
	var values []any
	for _, child := range p.Children {
		if lit, ok := child.(*ast.Literal); ok {
			values = append(values, LiteralValue(lit))
		}
	}
	return values
}

// ============================================================================
// UPDATE
// ============================================================================

// updateAssignments reads "field = literal" pairs between SET and WHERE.
func updateAssignments(stmt *ast.Statement) (models.Document, []models.Span) {
	var updates models.Document
	var skipped []models.Span
	skip := func(n ast.Node) {
		skipped = append(skipped, models.Span{Pos: n.Pos(), Text: n.Text()})
	}

	var field *ast.Identifier
	var eq ast.Node
	dangle := func() {
		if field != nil {
			skip(field)
		}
		if eq != nil {
			skip(eq)
		}
		field, eq = nil, nil
	}

	setSeen := false
	for _, n := range stmt.Nodes {
		if !setSeen {
			if kw, ok := n.(*ast.Keyword); ok && kw.Is("SET") {
				setSeen = true
			}
			continue
		}

		switch n := n.(type) {
		case *ast.Where:
			dangle()
			return updates, skipped
		case *ast.Identifier:
			dangle()
			field = n
		case *ast.Comparison:
			if n.Operator != "=" || field == nil || eq != nil {
				skip(n)
				continue
			}
			eq = n
		case *ast.Literal:
			if field == nil || eq == nil {
				skip(n)
				continue
			}
			updates.Set(field.RealName(), LiteralValue(n))
			field, eq = nil, nil
		case *ast.Punct:
			if n.IsComma() {
				dangle()
				continue
			}
			if n.Value != ";" {
				skip(n)
			}
		default:
			skip(n)
		}
	}

	dangle()
	return updates, skipped
}
