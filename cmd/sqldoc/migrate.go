package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/omniql-engine/sqldoc"
	"github.com/omniql-engine/sqldoc/config"
	"github.com/omniql-engine/sqldoc/migration"
)

var migratePlanOnly bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy every table of the configured source into document collections",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migratePlanOnly, "plan-only", false, "print the migration order and exit")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireSource(); err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	src, err := migration.OpenSource(cfg.Source.Type, cfg.SourceDSN())
	if err != nil {
		return err
	}
	defer src.Close()

	opts := []migration.Option{
		migration.WithCatalog(cfg.TableCatalog()),
		migration.WithPluralizedCollections(cfg.Migration.PluralizeCollections),
		migration.WithIdentityColumn(cfg.Migration.IdentityColumn),
		migration.WithBatchSize(cfg.Migration.BatchSize),
		migration.WithLogger(logger),
	}

	if migratePlanOnly {
		report, err := migration.NewMigrator(src, nil, opts...).PlanOnly(ctx)
		if err != nil {
			return err
		}
		for i, table := range report.Plan {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s -> %s\n", i+1, table, report.Collections[table])
		}
		return nil
	}

	timeout, err := cfg.MongoTimeout()
	if err != nil {
		return err
	}
	store, err := sqldoc.Connect(ctx, cfg.Mongo.URI, cfg.Database, timeout)
	if err != nil {
		return err
	}
	defer store.Disconnect(context.Background())

	checkpoint, closeCheckpoint, err := newCheckpoint(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCheckpoint()
	opts = append(opts, migration.WithCheckpoint(checkpoint))

	logger.Infow("starting migration",
		"source", src.Name(),
		"database", store.Database(),
		"batch_size", cfg.Migration.BatchSize,
		"checkpoint", cfg.Checkpoint.Type)

	report, err := migration.NewMigrator(src, store, opts...).Run(ctx)
	if err != nil {
		return err
	}

	logger.Infow("migration complete",
		"tables", len(report.Plan),
		"skipped", len(report.Skipped),
		"rows", report.Total(),
		"dangling_foreign_keys", report.Dangling,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func newCheckpoint(cfg *config.Config, logger *zap.SugaredLogger) (migration.Checkpoint, func(), error) {
	switch cfg.Checkpoint.Type {
	case "memory":
		return migration.NewMemoryCheckpoint(), func() {}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Checkpoint.Addr,
			Password: cfg.Checkpoint.Password,
			DB:       cfg.Checkpoint.DB,
		})
		cp := migration.NewRedisCheckpoint(rdb, cfg.Checkpoint.KeyPrefix, cfg.Database)
		logger.Infow("using redis checkpoint", "addr", cfg.Checkpoint.Addr, "key", cp.Key())
		return cp, func() { _ = rdb.Close() }, nil
	default:
		return migration.NopCheckpoint{}, func() {}, nil
	}
}
