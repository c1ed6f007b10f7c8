package translator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/omniql-engine/sqldoc/engine/ast"
	"github.com/omniql-engine/sqldoc/engine/models"
	"github.com/omniql-engine/sqldoc/mapping"
)

// Predicate is a compiled conditional clause. Unrecognized lists every
// token the compiler skipped, so callers can fail strict or log loose.
type Predicate struct {
	Filter       *models.Filter
	Unrecognized []models.Span
}

// CompilePredicate turns a WHERE clause into a Filter. The clause is read as
// repeated field -> comparison -> literal triples joined by AND; anything else
// is skipped and reported. A nil clause yields an empty Filter.
func CompilePredicate(where *ast.Where) Predicate {
	c := &predicateCompiler{filter: models.NewFilter()}
	if where == nil {
		return Predicate{Filter: c.filter}
	}

	children := where.Children
	if len(children) > 0 {
		if kw, ok := children[0].(*ast.Keyword); ok && kw.Is("WHERE") {
			children = children[1:]
		}
	}

	for _, n := range children {
		c.feed(n)
	}
	c.abandon()

	return Predicate{Filter: c.filter, Unrecognized: c.skipped}
}

type predicateCompiler struct {
	filter *models.Filter

	// current triple
	field   *ast.Identifier
	opNode  ast.Node
	op      mapping.Operator
	negated bool

	skipped []models.Span
}

func (c *predicateCompiler) feed(n ast.Node) {
	switch n := n.(type) {
	case *ast.Identifier:
		if c.field != nil {
			c.abandon()
		}
		c.field = n

	case *ast.Comparison:
		op, ok := mapping.LookupOperator(n.Operator)
		if !ok {
			c.skip(n)
			return
		}
		c.setOperator(op, n)

	case *ast.Keyword:
		switch {
		case n.Is("AND"):
			c.abandon()
		case n.Is("NOT"):
			// NOT has no operator of its own; poison the triple it belongs to
			c.negated = true
			c.skip(n)
		default:
			if op, ok := mapping.LookupOperator(n.Value); ok {
				c.setOperator(op, n)
				return
			}
			c.skip(n)
		}

	case *ast.Literal:
		if c.field == nil || c.opNode == nil {
			c.skip(n)
			return
		}
		c.commit(n)

	default:
		c.skip(n)
	}
}

func (c *predicateCompiler) setOperator(op mapping.Operator, n ast.Node) {
	if c.opNode != nil {
		c.skip(c.opNode)
	}
	c.op = op
	c.opNode = n
}

func (c *predicateCompiler) commit(lit *ast.Literal) {
	if c.negated {
		c.skip(c.field)
		c.skip(c.opNode)
		c.skip(lit)
		c.reset()
		return
	}

	value := LiteralValue(lit)
	if c.op == mapping.OpMatch {
		value = LikePattern(fmt.Sprint(value))
	}
	c.filter.Add(c.field.RealName(), models.Constraint{Operator: c.op, Value: value})
	c.reset()
}

// abandon reports a partial triple as skipped and starts over.
func (c *predicateCompiler) abandon() {
	if c.field != nil {
		c.skip(c.field)
	}
	if c.opNode != nil {
		c.skip(c.opNode)
	}
	c.reset()
}

func (c *predicateCompiler) reset() {
	c.field = nil
	c.opNode = nil
	c.op = ""
	c.negated = false
}

func (c *predicateCompiler) skip(n ast.Node) {
	c.skipped = append(c.skipped, models.Span{Pos: n.Pos(), Text: n.Text()})
}

// ============================================================================
// VALUES
// ============================================================================

// LiteralValue types a literal: strings stay strings, numbers with a decimal
// point become float64, other numbers int64 (float64 if they overflow).
func LiteralValue(lit *ast.Literal) any {
	if lit.Kind == ast.LITERAL_STRING {
		return lit.Raw
	}
	if !strings.Contains(lit.Raw, ".") {
		if n, err := strconv.ParseInt(lit.Raw, 10, 64); err == nil {
			return n
		}
	}
	if f, err := strconv.ParseFloat(lit.Raw, 64); err == nil {
		return f
	}
	return lit.Raw
}

// LikePattern converts a LIKE pattern into a regular expression anchored on
// both ends: % matches any run of characters, _ exactly one.
func LikePattern(like string) string {
	var b strings.Builder
	b.WriteByte('^')
	for _, r := range like {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteByte('.')
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteByte('$')
	return b.String()
}
