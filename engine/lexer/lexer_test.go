package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniql-engine/sqldoc/engine/ast"
)

func TestTokenizeEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := Tokenize(input)
		assert.ErrorIs(t, err, ErrEmptyStatement)
	}
}

func TestTokenizeSelect(t *testing.T) {
	stmt, err := Tokenize("SELECT name, age FROM users WHERE age > 25")
	require.NoError(t, err)
	require.Len(t, stmt.Nodes, 4)

	kw, ok := stmt.Nodes[0].(*ast.Keyword)
	require.True(t, ok)
	assert.Equal(t, "SELECT", kw.Value)

	list, ok := stmt.Nodes[1].(*ast.IdentifierList)
	require.True(t, ok)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "name", list.Items[0].RealName())
	assert.Equal(t, "age", list.Items[1].RealName())

	assert.True(t, stmt.Nodes[2].(*ast.Keyword).Is("from"))

	where := stmt.Where()
	require.NotNil(t, where)
	assert.Equal(t, 28, where.Pos())
	require.Len(t, where.Children, 4)
	assert.Equal(t, "WHERE", where.Children[0].Text())
	assert.Equal(t, "age", where.Children[1].(*ast.Identifier).Name)
	assert.Equal(t, ">", where.Children[2].(*ast.Comparison).Operator)

	lit := where.Children[3].(*ast.Literal)
	assert.Equal(t, ast.LITERAL_INTEGER, lit.Kind)
	assert.Equal(t, "25", lit.Raw)
	assert.Equal(t, 40, lit.Pos())
}

func TestTokenizeComparisons(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"SELECT * FROM t WHERE a = 1", "="},
		{"SELECT * FROM t WHERE a != 1", "!="},
		{"SELECT * FROM t WHERE a <> 1", "!="},
		{"SELECT * FROM t WHERE a >= 1", ">="},
		{"SELECT * FROM t WHERE a <= 1", "<="},
		{"SELECT * FROM t WHERE a < 1", "<"},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			stmt, err := Tokenize(tt.sql)
			require.NoError(t, err)
			where := stmt.Where()
			require.NotNil(t, where)
			require.Len(t, where.Children, 4)
			cmp, ok := where.Children[2].(*ast.Comparison)
			require.True(t, ok)
			assert.Equal(t, tt.want, cmp.Operator)
		})
	}
}

func TestTokenizeLiterals(t *testing.T) {
	stmt, err := Tokenize("SELECT * FROM t WHERE a = 'it''s' AND b = 3.5 AND c = -4")
	require.NoError(t, err)
	where := stmt.Where()
	require.NotNil(t, where)

	var lits []*ast.Literal
	for _, n := range where.Children {
		if lit, ok := n.(*ast.Literal); ok {
			lits = append(lits, lit)
		}
	}
	require.Len(t, lits, 3)
	assert.Equal(t, ast.LITERAL_STRING, lits[0].Kind)
	assert.Equal(t, "it's", lits[0].Raw)
	assert.Equal(t, ast.LITERAL_FLOAT, lits[1].Kind)
	assert.Equal(t, "3.5", lits[1].Raw)
	assert.Equal(t, ast.LITERAL_INTEGER, lits[2].Kind)
	assert.Equal(t, "-4", lits[2].Raw)
}

func TestTokenizeQualifiedAndAliased(t *testing.T) {
	stmt, err := Tokenize("SELECT * FROM shop.users AS u WHERE u.age > 1")
	require.NoError(t, err)

	var table *ast.Identifier
	for i, n := range stmt.Nodes {
		if kw, ok := n.(*ast.Keyword); ok && kw.Is("FROM") {
			table = stmt.Nodes[i+1].(*ast.Identifier)
		}
	}
	require.NotNil(t, table)
	assert.Equal(t, "users", table.RealName())
	assert.Equal(t, "shop", table.Qualifier)
	assert.Equal(t, "u", table.Alias)

	field := stmt.Where().Children[1].(*ast.Identifier)
	assert.Equal(t, "age", field.RealName())
	assert.Equal(t, "u", field.Qualifier)
}

func TestTokenizeQuotedIdentifiers(t *testing.T) {
	stmt, err := Tokenize("SELECT * FROM `order` WHERE \"status\" = 'open'")
	require.NoError(t, err)

	table, ok := stmt.Nodes[3].(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "order", table.Name)

	field, ok := stmt.Where().Children[1].(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "status", field.Name)
}

func TestTokenizeNonReservedWordsAreIdentifiers(t *testing.T) {
	stmt, err := Tokenize("SELECT * FROM events WHERE status = 1")
	require.NoError(t, err)
	_, ok := stmt.Where().Children[1].(*ast.Identifier)
	assert.True(t, ok)
}

func TestTokenizeWhereStopsAtClause(t *testing.T) {
	stmt, err := Tokenize("SELECT * FROM users WHERE age > 1 ORDER BY age LIMIT 5")
	require.NoError(t, err)
	where := stmt.Where()
	require.NotNil(t, where)
	assert.Len(t, where.Children, 4)

	last := stmt.Nodes[len(stmt.Nodes)-1].(*ast.Literal)
	assert.Equal(t, "5", last.Raw)
}

func TestTokenizeParentheses(t *testing.T) {
	stmt, err := Tokenize("INSERT INTO users (name, age) VALUES ('Ann', 30)")
	require.NoError(t, err)

	var parens []*ast.Parenthesis
	for _, n := range stmt.Nodes {
		if p, ok := n.(*ast.Parenthesis); ok {
			parens = append(parens, p)
		}
	}
	require.Len(t, parens, 2)

	cols, ok := parens[0].Children[0].(*ast.IdentifierList)
	require.True(t, ok)
	assert.Len(t, cols.Items, 2)
	assert.Len(t, parens[1].Children, 3)
	assert.Equal(t, "('Ann' , 30)", parens[1].Text())
}

func TestTokenizeUnbalanced(t *testing.T) {
	tests := []string{
		"SELECT * FROM users WHERE (age > 1",
		"SELECT * FROM users WHERE age > 1)",
	}
	for _, sql := range tests {
		_, err := Tokenize(sql)
		var perr *ParseError
		require.True(t, errors.As(err, &perr), sql)
		assert.Contains(t, perr.Error(), "parenthesis")
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize("SELECT * FROM users WHERE name = 'abc")
	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestTokenizeDropsComments(t *testing.T) {
	stmt, err := Tokenize("SELECT * /* all */ FROM users -- trailing\n WHERE id = 1")
	require.NoError(t, err)
	for _, n := range stmt.Nodes {
		assert.NotContains(t, n.Text(), "all")
	}
	assert.NotNil(t, stmt.Where())
}
