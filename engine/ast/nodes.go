package ast

import (
	"strings"
)

// Node is the interface all token tree nodes implement
type Node interface {
	node()
	Pos() int
	Text() string
}

// Statement is the root of a token tree. It is immutable once built.
type Statement struct {
	Source string
	Nodes  []Node
}

// Where returns the first top-level conditional clause, or nil.
func (s *Statement) Where() *Where {
	for _, n := range s.Nodes {
		if w, ok := n.(*Where); ok {
			return w
		}
	}
	return nil
}

// ============================================================================
// LEAF NODES
// ============================================================================

// Identifier is a (possibly qualified, possibly aliased) table or column name
type Identifier struct {
	Name      string // real name, without qualifier or quoting
	Qualifier string // users in users.age
	Alias     string // u in "users u" / "users AS u"
	Position  int
}

func (n *Identifier) node()    {}
func (n *Identifier) Pos() int { return n.Position }

// RealName returns the bare name with qualifier and alias dropped.
func (n *Identifier) RealName() string { return n.Name }

func (n *Identifier) Text() string {
	text := n.Name
	if n.Qualifier != "" {
		text = n.Qualifier + "." + text
	}
	if n.Alias != "" {
		text += " " + n.Alias
	}
	return text
}

// Keyword is a reserved word such as FROM, WHERE, LIKE or AND
type Keyword struct {
	Value    string // upper-case
	Position int
}

func (n *Keyword) node()        {}
func (n *Keyword) Pos() int     { return n.Position }
func (n *Keyword) Text() string { return n.Value }

// Is reports whether the keyword equals word, ignoring case.
func (n *Keyword) Is(word string) bool { return strings.EqualFold(n.Value, word) }

// Comparison is one of = != <> > < >= <=
type Comparison struct {
	Operator string
	Position int
}

func (n *Comparison) node()        {}
func (n *Comparison) Pos() int     { return n.Position }
func (n *Comparison) Text() string { return n.Operator }

// Literal is an integer, float or single-quoted string
type Literal struct {
	Kind     LiteralKind
	Raw      string // numeric text, or string contents without quotes
	Position int
}

func (n *Literal) node()    {}
func (n *Literal) Pos() int { return n.Position }

func (n *Literal) Text() string {
	if n.Kind == LITERAL_STRING {
		return "'" + strings.ReplaceAll(n.Raw, "'", "''") + "'"
	}
	return n.Raw
}

// Punct is any other token: , * ; . + and the like
type Punct struct {
	Value    string
	Position int
}

func (n *Punct) node()        {}
func (n *Punct) Pos() int     { return n.Position }
func (n *Punct) Text() string { return n.Value }

// IsComma reports whether the punctuation is a comma.
func (n *Punct) IsComma() bool { return n.Value == "," }

// ============================================================================
// COMPOSITE NODES
// ============================================================================

// IdentifierList is a comma-separated run of identifiers (id, name, age)
type IdentifierList struct {
	Items    []*Identifier
	Position int
}

func (n *IdentifierList) node()    {}
func (n *IdentifierList) Pos() int { return n.Position }

func (n *IdentifierList) Text() string {
	parts := make([]string, len(n.Items))
	for i, item := range n.Items {
		parts[i] = item.Text()
	}
	return strings.Join(parts, ", ")
}

// Parenthesis groups everything between a matching ( and )
type Parenthesis struct {
	Children []Node
	Position int
}

func (n *Parenthesis) node()        {}
func (n *Parenthesis) Pos() int     { return n.Position }
func (n *Parenthesis) Text() string { return "(" + joinText(n.Children) + ")" }

// Where marks a conditional clause. Children starts with the WHERE keyword
// and runs up to the next clause keyword or the end of the statement.
type Where struct {
	Children []Node
	Position int
}

func (n *Where) node()        {}
func (n *Where) Pos() int     { return n.Position }
func (n *Where) Text() string { return joinText(n.Children) }

func joinText(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.Text()
	}
	return strings.Join(parts, " ")
}
