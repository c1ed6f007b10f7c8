package migration

import (
	"github.com/omniql-engine/sqldoc/engine/models"
)

// DefaultIdentityColumn is the column left unprefixed when flattening rows.
const DefaultIdentityColumn = "id"

// Flattener renames a table's columns so documents from different tables
// cannot collide on field names: every column except the identity column
// becomes <table>_<column>.
type Flattener struct {
	Identity string
}

func (f Flattener) identity() string {
	if f.Identity == "" {
		return DefaultIdentityColumn
	}
	return f.Identity
}

// RenameColumns returns the document field names for table's columns, in order.
func (f Flattener) RenameColumns(table string, columns []string) []string {
	id := f.identity()
	renamed := make([]string, len(columns))
	for i, col := range columns {
		if col == id {
			renamed[i] = col
			continue
		}
		renamed[i] = table + "_" + col
	}
	return renamed
}

// Flatten pairs renamed columns with row values by position. Extra values or
// columns on either side are dropped.
func (f Flattener) Flatten(table string, columns []string, row []any) models.Document {
	return zip(f.RenameColumns(table, columns), row)
}

func zip(names []string, row []any) models.Document {
	n := min(len(names), len(row))
	doc := make(models.Document, n)
	for i := 0; i < n; i++ {
		doc[i] = models.Field{Name: names[i], Value: row[i]}
	}
	return doc
}
