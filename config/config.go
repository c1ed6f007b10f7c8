// Package config loads the TOML configuration shared by the sqldoc commands.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/omniql-engine/sqldoc/mapping"
)

// Config holds the full TOML-driven configuration.
type Config struct {
	Database   string            `toml:"database"` // target document database
	Mongo      MongoConfig       `toml:"mongo"`
	Source     SourceConfig      `toml:"source"`
	Catalog    map[string]string `toml:"catalog"` // table -> collection
	SQL        SQLConfig         `toml:"sql"`
	Migration  MigrationConfig   `toml:"migration"`
	Checkpoint CheckpointConfig  `toml:"checkpoint"`
	Log        LogConfig         `toml:"log"`

	// configDir is the directory containing the TOML file, used to resolve relative paths.
	configDir string
}

type MongoConfig struct {
	URI     string `toml:"uri"`
	Timeout string `toml:"timeout"` // Go duration, e.g. "10s"
}

// SourceConfig identifies the relational database a migration reads from.
type SourceConfig struct {
	Type string `toml:"type"` // "sqlite" or "mysql"
	DSN  string `toml:"dsn"`
}

// SQLConfig controls statement translation.
type SQLConfig struct {
	Dialect  string `toml:"dialect"`  // mysql|postgres|tidb
	Validate bool   `toml:"validate"` // pre-check syntax with the dialect parser
	Strict   bool   `toml:"strict"`   // reject predicates with unrecognized tokens
}

type MigrationConfig struct {
	IdentityColumn       string `toml:"identity_column"`
	BatchSize            int    `toml:"batch_size"`
	PluralizeCollections bool   `toml:"pluralize_collections"`
}

// CheckpointConfig selects where completed tables are recorded.
type CheckpointConfig struct {
	Type      string `toml:"type"` // none|memory|redis
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type LogConfig struct {
	Level       string `toml:"level"` // debug|info|warn|error
	Development bool   `toml:"development"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		Database: "migrated_db",
		Mongo: MongoConfig{
			URI:     "mongodb://localhost:27017/",
			Timeout: "10s",
		},
		Catalog: map[string]string{},
		SQL: SQLConfig{
			Dialect: "mysql",
		},
		Migration: MigrationConfig{
			IdentityColumn: "id",
			BatchSize:      1000,
		},
		Checkpoint: CheckpointConfig{
			Type:      "none",
			Addr:      "localhost:6379",
			KeyPrefix: "sqldoc:migrated",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML config file and returns a Config with defaults applied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Defaults()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	cfg.configDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills empty values with defaults and checks enumerated settings.
func (c *Config) Validate() error {
	c.Database = strings.TrimSpace(c.Database)
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}
	if _, err := c.MongoTimeout(); err != nil {
		return err
	}

	if c.Source.Type != "" && !mapping.IsSupportedSource(c.Source.Type) {
		return fmt.Errorf("source.type must be one of: %s", strings.Join(mapping.SupportedSources, ", "))
	}
	if !mapping.IsSupportedDialect(c.SQL.Dialect) {
		return fmt.Errorf("sql.dialect must be one of: %s", strings.Join(mapping.SupportedDialects, ", "))
	}

	for table, collection := range c.Catalog {
		if strings.TrimSpace(collection) == "" {
			return fmt.Errorf("catalog.%s: collection name is empty", table)
		}
	}

	if c.Migration.IdentityColumn == "" {
		c.Migration.IdentityColumn = "id"
	}
	if c.Migration.BatchSize <= 0 {
		return fmt.Errorf("migration.batch_size must be positive")
	}

	switch c.Checkpoint.Type {
	case "none", "memory":
	case "redis":
		if c.Checkpoint.Addr == "" {
			return fmt.Errorf("checkpoint.addr is required for redis checkpoints")
		}
	default:
		return fmt.Errorf("checkpoint.type must be one of: none, memory, redis")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	return nil
}

// RequireSource checks the settings a migration needs.
func (c *Config) RequireSource() error {
	if c.Source.Type == "" {
		return fmt.Errorf("source.type is required (must be one of: %s)", strings.Join(mapping.SupportedSources, ", "))
	}
	if c.Source.DSN == "" {
		return fmt.Errorf("source.dsn is required")
	}
	return nil
}

// SourceDSN returns source.dsn with a relative SQLite path resolved against
// the config file directory.
func (c *Config) SourceDSN() string {
	if c.Source.Type == "sqlite" && !strings.HasPrefix(c.Source.DSN, "file:") {
		return c.ResolvePath(c.Source.DSN)
	}
	return c.Source.DSN
}

// MongoTimeout parses mongo.timeout. An empty value means no timeout.
func (c *Config) MongoTimeout() (time.Duration, error) {
	if c.Mongo.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Mongo.Timeout)
	if err != nil {
		return 0, fmt.Errorf("mongo.timeout: %w", err)
	}
	return d, nil
}

// TableCatalog returns the [catalog] table as a mapping.Catalog.
func (c *Config) TableCatalog() mapping.Catalog {
	return mapping.NewCatalog(c.Catalog)
}

// ResolvePath resolves a path relative to the config file directory.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.configDir == "" {
		return p
	}
	return filepath.Join(c.configDir, p)
}
