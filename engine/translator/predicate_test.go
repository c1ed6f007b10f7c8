package translator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniql-engine/sqldoc/engine/ast"
	"github.com/omniql-engine/sqldoc/engine/lexer"
	"github.com/omniql-engine/sqldoc/engine/models"
	"github.com/omniql-engine/sqldoc/mapping"
)

func compileWhere(t *testing.T, sql string) Predicate {
	t.Helper()
	stmt, err := lexer.Tokenize(sql)
	require.NoError(t, err)
	return CompilePredicate(stmt.Where())
}

func TestCompilePredicateSingleTriple(t *testing.T) {
	tests := []struct {
		name  string
		where string
		field string
		want  models.Constraint
	}{
		{"eq string", "name = 'Alice'", "name", models.Constraint{Operator: mapping.OpEq, Value: "Alice"}},
		{"ne", "age != 3", "age", models.Constraint{Operator: mapping.OpNe, Value: int64(3)}},
		{"ne angle", "age <> 3", "age", models.Constraint{Operator: mapping.OpNe, Value: int64(3)}},
		{"gt", "age > 25", "age", models.Constraint{Operator: mapping.OpGt, Value: int64(25)}},
		{"lt", "age < 25", "age", models.Constraint{Operator: mapping.OpLt, Value: int64(25)}},
		{"gte float", "price >= 9.5", "price", models.Constraint{Operator: mapping.OpGte, Value: 9.5}},
		{"lte negative", "balance <= -10", "balance", models.Constraint{Operator: mapping.OpLte, Value: int64(-10)}},
		{"like", "name LIKE 'A%'", "name", models.Constraint{Operator: mapping.OpMatch, Value: "^A.*$"}},
		{"like lower", "name like 'J_n'", "name", models.Constraint{Operator: mapping.OpMatch, Value: "^J.n$"}},
		{"qualified", "u.age = 1", "age", models.Constraint{Operator: mapping.OpEq, Value: int64(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := compileWhere(t, "SELECT * FROM users u WHERE "+tt.where)
			assert.Empty(t, pred.Unrecognized)
			require.Equal(t, 1, pred.Filter.Len())
			assert.Equal(t, []models.Constraint{tt.want}, pred.Filter.Get(tt.field))
		})
	}
}

func TestCompilePredicateConjunction(t *testing.T) {
	pred := compileWhere(t, "SELECT * FROM users WHERE age > 18 AND age < 65 AND name = 'Bo'")
	assert.Empty(t, pred.Unrecognized)
	assert.Equal(t, []string{"age", "name"}, pred.Filter.Fields())
	assert.Equal(t, []models.Constraint{
		{Operator: mapping.OpGt, Value: int64(18)},
		{Operator: mapping.OpLt, Value: int64(65)},
	}, pred.Filter.Get("age"))
}

func TestCompilePredicateNoWhere(t *testing.T) {
	pred := CompilePredicate(nil)
	require.NotNil(t, pred.Filter)
	assert.Equal(t, 0, pred.Filter.Len())
	assert.Empty(t, pred.Unrecognized)
}

func TestCompilePredicateReportsSkippedTokens(t *testing.T) {
	tests := []struct {
		name    string
		where   string
		fields  []string
		skipped []string
	}{
		{
			name:    "or",
			where:   "age > 1 OR age < 0",
			fields:  []string{"age"},
			skipped: []string{"OR"},
		},
		{
			name:    "not poisons its triple",
			where:   "NOT age = 5 AND name = 'x'",
			fields:  []string{"name"},
			skipped: []string{"NOT", "age", "=", "5"},
		},
		{
			name:    "in list",
			where:   "id IN (1, 2)",
			fields:  nil,
			skipped: []string{"IN", "(1 , 2)", "id"},
		},
		{
			name:    "is null",
			where:   "deleted IS NULL",
			fields:  nil,
			skipped: []string{"IS", "NULL", "deleted"},
		},
		{
			name:    "dangling field",
			where:   "age > 1 AND name",
			fields:  []string{"age"},
			skipped: []string{"name"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := compileWhere(t, "SELECT * FROM users WHERE "+tt.where)
			assert.Equal(t, tt.fields, pred.Filter.Fields())

			var texts []string
			for _, s := range pred.Unrecognized {
				texts = append(texts, s.Text)
			}
			assert.ElementsMatch(t, tt.skipped, texts)
		})
	}
}

func TestCompilePredicateSpanPositions(t *testing.T) {
	sql := "SELECT * FROM users WHERE a = 1 OR b = 2"
	pred := compileWhere(t, sql)
	require.Len(t, pred.Unrecognized, 1)
	span := pred.Unrecognized[0]
	assert.Equal(t, "OR", sql[span.Pos:span.Pos+2])
}

func TestLiteralValue(t *testing.T) {
	tests := []struct {
		lit  ast.Literal
		want any
	}{
		{ast.Literal{Kind: ast.LITERAL_STRING, Raw: "25"}, "25"},
		{ast.Literal{Kind: ast.LITERAL_INTEGER, Raw: "25"}, int64(25)},
		{ast.Literal{Kind: ast.LITERAL_FLOAT, Raw: "2.5"}, 2.5},
		{ast.Literal{Kind: ast.LITERAL_FLOAT, Raw: "1e3"}, 1000.0},
		{ast.Literal{Kind: ast.LITERAL_INTEGER, Raw: "99999999999999999999"}, 1e20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LiteralValue(&tt.lit), tt.lit.Raw)
	}
}

func TestLikePatternAnchoring(t *testing.T) {
	tests := []struct {
		like    string
		match   []string
		noMatch []string
	}{
		{"ABC", []string{"ABC"}, []string{"XABC", "ABCX"}},
		{"A%", []string{"A", "Abc"}, []string{"bA"}},
		{"%son", []string{"Jackson", "son"}, []string{"sons"}},
		{"J_n", []string{"Jan", "Jon"}, []string{"Jn", "Joan"}},
		{"a.b", []string{"a.b"}, []string{"axb"}},
		{"50%+", []string{"50%+", "50 and more+"}, []string{"50"}},
	}
	for _, tt := range tests {
		t.Run(tt.like, func(t *testing.T) {
			re := regexp.MustCompile(LikePattern(tt.like))
			for _, s := range tt.match {
				assert.True(t, re.MatchString(s), "%q should match %q", tt.like, s)
			}
			for _, s := range tt.noMatch {
				assert.False(t, re.MatchString(s), "%q should not match %q", tt.like, s)
			}
		})
	}
}
