package lexer

import (
	"strings"
	"unicode"

	"github.com/xwb1989/sqlparser"

	"github.com/omniql-engine/sqldoc/engine/ast"
	"github.com/omniql-engine/sqldoc/mapping"
)

// rawToken is one sqlparser.Tokenizer result with its byte offset
type rawToken struct {
	typ int
	val string
	pos int
}

// Tokenize converts a relational statement into a token tree.
func Tokenize(statement string) (*ast.Statement, error) {
	if strings.TrimSpace(statement) == "" {
		return nil, ErrEmptyStatement
	}

	raw, err := scan(statement)
	if err != nil {
		return nil, err
	}

	leaves := buildLeaves(statement, raw)

	b := &builder{leaves: leaves}
	nodes, err := b.sequence(false)
	if err != nil {
		return nil, err
	}

	return &ast.Statement{Source: statement, Nodes: nodes}, nil
}

// ============================================================================
// SCANNING
// ============================================================================

func scan(statement string) ([]rawToken, error) {
	tkn := sqlparser.NewStringTokenizer(statement)

	var tokens []rawToken
	for {
		start := startOffset(statement, tkn.Position)
		typ, val := tkn.Scan()

		switch typ {
		case 0:
			return tokens, nil
		case sqlparser.COMMENT:
			continue
		case sqlparser.LEX_ERROR:
			return nil, NewParseError(start, string(val), "unrecognized input")
		}

		text := string(val)
		if typ < 256 && text == "" {
			text = string(rune(typ))
		}
		tokens = append(tokens, rawToken{typ: typ, val: text, pos: start})
	}
}

// startOffset maps the tokenizer's read position onto the first byte of the
// next token. The tokenizer holds one byte of lookahead, hence the -1.
func startOffset(statement string, position int) int {
	pos := position - 1
	if pos < 0 {
		pos = 0
	}
	for pos < len(statement) && unicode.IsSpace(rune(statement[pos])) {
		pos++
	}
	return pos
}

// ============================================================================
// LEAVES
// ============================================================================

func buildLeaves(statement string, raw []rawToken) []ast.Node {
	var leaves []ast.Node

	for i := 0; i < len(raw); i++ {
		tok := raw[i]

		switch tok.typ {
		case sqlparser.ID:
			id := &ast.Identifier{Name: tok.val, Position: tok.pos}
			// users.age -> Identifier{Qualifier: users, Name: age}
			for i+2 < len(raw) && raw[i+1].val == "." && isName(raw[i+2]) {
				id.Qualifier = joinQualifier(id.Qualifier, id.Name)
				id.Name = raw[i+2].val
				i += 2
			}
			leaves = append(leaves, id)

		case sqlparser.STRING:
			// "name" is a quoted identifier, 'name' is a string literal
			if tok.pos < len(statement) && statement[tok.pos] == '"' {
				leaves = append(leaves, &ast.Identifier{Name: tok.val, Position: tok.pos})
				continue
			}
			leaves = append(leaves, &ast.Literal{Kind: ast.LITERAL_STRING, Raw: tok.val, Position: tok.pos})

		case sqlparser.INTEGRAL:
			leaves = append(leaves, &ast.Literal{Kind: ast.LITERAL_INTEGER, Raw: tok.val, Position: tok.pos})

		case sqlparser.FLOAT:
			leaves = append(leaves, &ast.Literal{Kind: ast.LITERAL_FLOAT, Raw: tok.val, Position: tok.pos})

		case sqlparser.LE, sqlparser.GE, sqlparser.NE:
			// the tokenizer returns no text for two-byte operators
			leaves = append(leaves, &ast.Comparison{Operator: compoundOperators[tok.typ], Position: tok.pos})

		case '=', '<', '>':
			leaves = append(leaves, &ast.Comparison{Operator: tok.val, Position: tok.pos})

		case '-':
			// -5 after an operator, keyword, comma or ( is a negative literal
			if i+1 < len(raw) && isNumber(raw[i+1]) && startsOperand(leaves) {
				next := raw[i+1]
				kind := ast.LITERAL_INTEGER
				if next.typ == sqlparser.FLOAT {
					kind = ast.LITERAL_FLOAT
				}
				leaves = append(leaves, &ast.Literal{Kind: kind, Raw: "-" + next.val, Position: tok.pos})
				i++
				continue
			}
			leaves = append(leaves, &ast.Punct{Value: tok.val, Position: tok.pos})

		default:
			if isWord(tok.val) {
				if mapping.IsKeyword(tok.val) {
					leaves = append(leaves, &ast.Keyword{Value: strings.ToUpper(tok.val), Position: tok.pos})
				} else {
					// Non-reserved for our purposes (status, date, key, ...)
					leaves = append(leaves, &ast.Identifier{Name: tok.val, Position: tok.pos})
				}
				continue
			}
			leaves = append(leaves, &ast.Punct{Value: tok.val, Position: tok.pos})
		}
	}

	return leaves
}

// compoundOperators spells the two-byte comparisons; <> is folded into !=.
var compoundOperators = map[int]string{
	sqlparser.LE: "<=",
	sqlparser.GE: ">=",
	sqlparser.NE: "!=",
}

func joinQualifier(qualifier, name string) string {
	if qualifier == "" {
		return name
	}
	return qualifier + "." + name
}

func isName(tok rawToken) bool {
	return tok.typ == sqlparser.ID || (isWord(tok.val) && !mapping.IsKeyword(tok.val))
}

func isNumber(tok rawToken) bool {
	return tok.typ == sqlparser.INTEGRAL || tok.typ == sqlparser.FLOAT
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

func startsOperand(leaves []ast.Node) bool {
	if len(leaves) == 0 {
		return true
	}
	switch prev := leaves[len(leaves)-1].(type) {
	case *ast.Comparison, *ast.Keyword:
		return true
	case *ast.Punct:
		return prev.Value == "," || prev.Value == "("
	}
	return false
}

// ============================================================================
// GROUPING
// ============================================================================

type builder struct {
	leaves []ast.Node
	pos    int
}

// sequence consumes leaves until EOF, or until the matching ")" when nested.
func (b *builder) sequence(nested bool) ([]ast.Node, error) {
	var seq []ast.Node

	for b.pos < len(b.leaves) {
		leaf := b.leaves[b.pos]
		b.pos++

		p, ok := leaf.(*ast.Punct)
		if !ok {
			seq = append(seq, leaf)
			continue
		}

		switch p.Value {
		case "(":
			children, err := b.sequence(true)
			if err != nil {
				return nil, err
			}
			seq = append(seq, &ast.Parenthesis{Children: children, Position: p.Position})
		case ")":
			if !nested {
				return nil, NewParseError(p.Position, ")", "unbalanced parenthesis")
			}
			return group(seq), nil
		default:
			seq = append(seq, leaf)
		}
	}

	if nested {
		return nil, NewParseError(len(b.leaves), "(", "missing closing parenthesis")
	}
	return group(seq), nil
}

// group folds WHERE clauses, aliases and identifier lists within one level.
func group(seq []ast.Node) []ast.Node {
	var out []ast.Node

	for i := 0; i < len(seq); i++ {
		if kw, ok := seq[i].(*ast.Keyword); ok && kw.Is("WHERE") {
			end := i + 1
			for end < len(seq) && !closesCondition(seq[end]) {
				end++
			}
			children := make([]ast.Node, end-i)
			copy(children, seq[i:end])
			out = append(out, &ast.Where{Children: children, Position: kw.Position})
			i = end - 1
			continue
		}

		id, ok := seq[i].(*ast.Identifier)
		if !ok {
			out = append(out, seq[i])
			continue
		}

		i = absorbAlias(seq, i, id)
		items := []*ast.Identifier{id}
		for i+2 < len(seq) && isComma(seq[i+1]) {
			next, ok := seq[i+2].(*ast.Identifier)
			if !ok {
				break
			}
			i = absorbAlias(seq, i+2, next)
			items = append(items, next)
		}

		if len(items) == 1 {
			out = append(out, id)
		} else {
			out = append(out, &ast.IdentifierList{Items: items, Position: id.Position})
		}
	}

	return out
}

// absorbAlias attaches "AS x" or a bare trailing identifier to id and
// returns the index of the last consumed node.
func absorbAlias(seq []ast.Node, i int, id *ast.Identifier) int {
	if i+2 < len(seq) {
		if kw, ok := seq[i+1].(*ast.Keyword); ok && kw.Is("AS") {
			if alias, ok := seq[i+2].(*ast.Identifier); ok {
				id.Alias = alias.Name
				return i + 2
			}
		}
	}
	if i+1 < len(seq) {
		if alias, ok := seq[i+1].(*ast.Identifier); ok && alias.Qualifier == "" {
			id.Alias = alias.Name
			return i + 1
		}
	}
	return i
}

func closesCondition(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Keyword:
		return mapping.EndsCondition(n.Value)
	case *ast.Punct:
		return n.Value == ";"
	}
	return false
}

func isComma(n ast.Node) bool {
	p, ok := n.(*ast.Punct)
	return ok && p.IsComma()
}
