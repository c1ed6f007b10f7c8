// Package migration moves a relational schema and its rows into document
// collections. Tables are ordered by a breadth-first walk of the foreign-key
// graph, rows are flattened into documents with table-prefixed field names,
// and each table is bulk-inserted into its catalogued collection.
package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/omniql-engine/sqldoc/mapping"
)

// ForeignKey is one declared reference from a column of the owning table.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// MetadataSource lists a relational database's tables, columns and foreign keys.
type MetadataSource interface {
	ListTables(ctx context.Context) ([]string, error)
	ListColumns(ctx context.Context, table string) ([]string, error)
	ListForeignKeys(ctx context.Context, table string) ([]ForeignKey, error)
}

// Source adds row access to MetadataSource. ScanRows calls fn once per row
// with values in ListColumns order; the slice is not reused between calls.
type Source interface {
	MetadataSource
	Name() string
	ScanRows(ctx context.Context, table string, fn func(row []any) error) error
	Close() error
}

// OpenSource opens a Source of the given kind (see mapping.SupportedSources).
func OpenSource(kind, dsn string) (Source, error) {
	switch kind {
	case "sqlite":
		return OpenSQLite(dsn)
	case "mysql":
		return OpenMySQL(dsn)
	default:
		return nil, fmt.Errorf("unsupported source type %q (supported: %v)", kind, mapping.SupportedSources)
	}
}

// ============================================================================
// SHARED SQL HELPERS
// ============================================================================

// queryStrings runs a single-column query and collects the results.
func queryStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// scanAll feeds every row of query to fn. normalize, when set, rewrites each
// value using the column's database type name.
func scanAll(ctx context.Context, db *sql.DB, query string, normalize func(dbType string, v any) any, fn func([]any) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return err
	}

	for rows.Next() {
		values := make([]any, len(types))
		ptrs := make([]any, len(types))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		if normalize != nil {
			for i, v := range values {
				values[i] = normalize(types[i].DatabaseTypeName(), v)
			}
		}
		if err := fn(values); err != nil {
			return err
		}
	}
	return rows.Err()
}
