package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQLSource reads tables of the database named in the DSN.
type MySQLSource struct {
	db     *sql.DB
	dbName string
}

// OpenMySQL opens dsn. The DSN must name a database.
func OpenMySQL(dsn string) (*MySQLSource, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("mysql dsn must include a database name")
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return &MySQLSource{db: sql.OpenDB(connector), dbName: cfg.DBName}, nil
}

func (s *MySQLSource) Name() string { return "MySQL" }

func (s *MySQLSource) Close() error { return s.db.Close() }

func (s *MySQLSource) ListTables(ctx context.Context) ([]string, error) {
	tables, err := queryStrings(ctx, s.db, `
		SELECT TABLE_NAME FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`, s.dbName)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (s *MySQLSource) ListColumns(ctx context.Context, table string) ([]string, error) {
	cols, err := queryStrings(ctx, s.db, `
		SELECT COLUMN_NAME FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION`, s.dbName, table)
	if err != nil {
		return nil, fmt.Errorf("list columns for %s: %w", table, err)
	}
	return cols, nil
}

func (s *MySQLSource) ListForeignKeys(ctx context.Context, table string) ([]ForeignKey, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME
		FROM information_schema.KEY_COLUMN_USAGE
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		  AND REFERENCED_TABLE_NAME IS NOT NULL
		ORDER BY CONSTRAINT_NAME, ORDINAL_POSITION`, s.dbName, table)
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

func (s *MySQLSource) ScanRows(ctx context.Context, table string, fn func(row []any) error) error {
	query := "SELECT * FROM " + quoteMySQL(table)
	if err := scanAll(ctx, s.db, query, normalizeMySQLValue, fn); err != nil {
		return fmt.Errorf("scan %s: %w", table, err)
	}
	return nil
}

// normalizeMySQLValue turns the driver's []byte text values into strings.
// Binary column types keep their bytes.
func normalizeMySQLValue(dbType string, v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	if isBinaryType(dbType) {
		return b
	}
	return string(b)
}

func isBinaryType(dbType string) bool {
	switch strings.ToUpper(dbType) {
	case "BINARY", "VARBINARY", "BLOB", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB", "BIT", "GEOMETRY":
		return true
	}
	return false
}

func quoteMySQL(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
