package migration

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// SQLiteSource reads a SQLite database file in read-only mode.
type SQLiteSource struct {
	db *sql.DB
}

// OpenSQLite opens path (or a file: URI) read-only.
func OpenSQLite(dsn string) (*SQLiteSource, error) {
	uri, err := sqliteReadOnlyURI(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", uri)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &SQLiteSource{db: db}, nil
}

func (s *SQLiteSource) Name() string { return "SQLite" }

func (s *SQLiteSource) Close() error { return s.db.Close() }

// ListTables returns user tables in creation order.
func (s *SQLiteSource) ListTables(ctx context.Context) ([]string, error) {
	tables, err := queryStrings(ctx, s.db,
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (s *SQLiteSource) ListColumns(ctx context.Context, table string) ([]string, error) {
	cols, err := queryStrings(ctx, s.db,
		"SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
	if err != nil {
		return nil, fmt.Errorf("list columns for %s: %w", table, err)
	}
	return cols, nil
}

func (s *SQLiteSource) ListForeignKeys(ctx context.Context, table string) ([]ForeignKey, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT "from", "table", COALESCE("to", '') FROM pragma_foreign_key_list(?) ORDER BY id, seq`, table)
	if err != nil {
		return nil, fmt.Errorf("list foreign keys for %s: %w", table, err)
	}
	defer rows.Close()

	var fks []ForeignKey
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(&fk.Column, &fk.RefTable, &fk.RefColumn); err != nil {
			return nil, err
		}
		fks = append(fks, fk)
	}
	return fks, rows.Err()
}

func (s *SQLiteSource) ScanRows(ctx context.Context, table string, fn func(row []any) error) error {
	query := "SELECT * FROM " + quoteSQLite(table)
	if err := scanAll(ctx, s.db, query, nil, fn); err != nil {
		return fmt.Errorf("scan %s: %w", table, err)
	}
	return nil
}

func quoteSQLite(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// sqliteReadOnlyURI turns a path or file: URI into a mode=ro URI.
func sqliteReadOnlyURI(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("sqlite source requires a file path")
	}
	if dsn == ":memory:" || dsn == "file::memory:" || strings.Contains(dsn, "mode=memory") {
		return "", fmt.Errorf("in-memory SQLite databases are not supported (each sql.Open gets a separate DB)")
	}

	if !strings.HasPrefix(dsn, "file:") {
		return "file:" + dsn + "?mode=ro", nil
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse sqlite URI: %w", err)
	}
	q := u.Query()
	q.Set("mode", "ro")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
