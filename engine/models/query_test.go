package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omniql-engine/sqldoc/mapping"
)

func TestFilterAccumulates(t *testing.T) {
	f := NewFilter()
	f.Add("age", Constraint{Operator: mapping.OpGt, Value: int64(18)})
	f.Add("name", Constraint{Operator: mapping.OpEq, Value: "x"})
	f.Add("age", Constraint{Operator: mapping.OpLt, Value: int64(65)})

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []string{"age", "name"}, f.Fields())
	assert.Equal(t, []Constraint{
		{Operator: mapping.OpGt, Value: int64(18)},
		{Operator: mapping.OpLt, Value: int64(65)},
	}, f.Get("age"))
	assert.Nil(t, f.Get("missing"))
}

func TestNilFilter(t *testing.T) {
	var f *Filter
	assert.Equal(t, 0, f.Len())
	assert.Nil(t, f.Fields())
	assert.Nil(t, f.Get("age"))
}

func TestDocument(t *testing.T) {
	var d Document
	d.Set("a", 1)
	d.Set("b", 2)
	d.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, d.Names())
	v, ok := d.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = d.Get("c")
	assert.False(t, ok)
}
