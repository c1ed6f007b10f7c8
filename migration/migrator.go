package migration

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	mongobuilders "github.com/omniql-engine/sqldoc/engine/builders/mongodb"
	"github.com/omniql-engine/sqldoc/engine/models"
	"github.com/omniql-engine/sqldoc/mapping"
)

// DefaultBatchSize is the number of documents per InsertMany call.
const DefaultBatchSize = 1000

// DocumentSink receives flattened rows. sqldoc.MongoStore implements it.
type DocumentSink interface {
	InsertMany(ctx context.Context, collection string, docs []bson.D) error
}

// Migrator copies every table of a Source into a DocumentSink, one table at
// a time, in Plan order.
type Migrator struct {
	source     Source
	sink       DocumentSink
	catalog    mapping.Catalog
	pluralize  bool
	flattener  Flattener
	batchSize  int
	checkpoint Checkpoint
	logger     *zap.SugaredLogger
}

// Option configures a Migrator
type Option func(*Migrator)

// WithCatalog sets explicit table -> collection entries. Tables without an
// entry fall back to a derived name.
func WithCatalog(c mapping.Catalog) Option {
	return func(m *Migrator) { m.catalog = c }
}

// WithPluralizedCollections derives collection names by pluralizing table names.
func WithPluralizedCollections(enabled bool) Option {
	return func(m *Migrator) { m.pluralize = enabled }
}

// WithIdentityColumn sets the column kept unprefixed in documents.
func WithIdentityColumn(column string) Option {
	return func(m *Migrator) { m.flattener = Flattener{Identity: column} }
}

// WithBatchSize sets the InsertMany batch size. Values below 1 keep the default.
func WithBatchSize(n int) Option {
	return func(m *Migrator) {
		if n > 0 {
			m.batchSize = n
		}
	}
}

// WithCheckpoint sets where completed tables are recorded.
func WithCheckpoint(c Checkpoint) Option {
	return func(m *Migrator) { m.checkpoint = c }
}

// WithLogger sets the migrator logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(m *Migrator) { m.logger = logger }
}

// NewMigrator creates a Migrator reading from source and writing to sink.
func NewMigrator(source Source, sink DocumentSink, opts ...Option) *Migrator {
	m := &Migrator{
		source:     source,
		sink:       sink,
		batchSize:  DefaultBatchSize,
		checkpoint: NopCheckpoint{},
		logger:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Report summarizes one Run.
type Report struct {
	Plan        []string
	Collections map[string]string // table -> collection
	Rows        map[string]int    // rows inserted per migrated table
	Skipped     []string          // tables a checkpoint marked done
	Dangling    int               // foreign keys naming unknown tables
}

// Total returns the number of rows inserted across all tables.
func (r *Report) Total() int {
	total := 0
	for _, n := range r.Rows {
		total += n
	}
	return total
}

// ============================================================================
// PLANNING
// ============================================================================

// PlanOnly loads the dependency graph and returns the migration order
// without reading rows or touching the sink.
func (m *Migrator) PlanOnly(ctx context.Context) (*Report, error) {
	g, err := LoadGraph(ctx, m.source)
	if err != nil {
		return nil, fmt.Errorf("load schema from %s: %w", m.source.Name(), err)
	}

	plan := Plan(g)
	catalog := mapping.DeriveCatalog(plan, m.pluralize).Merge(m.catalog)

	collections := make(map[string]string, len(plan))
	for _, table := range plan {
		collections[table], _ = catalog.Collection(table)
	}

	if g.Dangling() > 0 {
		m.logger.Warnw("dropped foreign keys naming unknown tables", "count", g.Dangling())
	}
	m.logger.Infow("migration order", "tables", plan)

	return &Report{
		Plan:        plan,
		Collections: collections,
		Rows:        make(map[string]int, len(plan)),
		Dangling:    g.Dangling(),
	}, nil
}

// ============================================================================
// MIGRATION
// ============================================================================

// Run plans the order and migrates every table not already checkpointed.
// It stops at the first error; tables finished before it stay checkpointed.
func (m *Migrator) Run(ctx context.Context) (*Report, error) {
	report, err := m.PlanOnly(ctx)
	if err != nil {
		return nil, err
	}

	for _, table := range report.Plan {
		done, err := m.checkpoint.Done(ctx, table)
		if err != nil {
			return report, err
		}
		if done {
			m.logger.Infow("table already migrated, skipping", "table", table)
			report.Skipped = append(report.Skipped, table)
			continue
		}

		collection := report.Collections[table]
		n, err := m.migrateTable(ctx, table, collection)
		if err != nil {
			return report, fmt.Errorf("migrate table %s: %w", table, err)
		}
		report.Rows[table] = n

		if err := m.checkpoint.MarkDone(ctx, table); err != nil {
			return report, err
		}
		m.logger.Infow("table migrated", "table", table, "collection", collection, "rows", n)
	}

	return report, nil
}

func (m *Migrator) migrateTable(ctx context.Context, table, collection string) (int, error) {
	columns, err := m.source.ListColumns(ctx, table)
	if err != nil {
		return 0, err
	}
	names := m.flattener.RenameColumns(table, columns)

	batch := make([]models.Document, 0, m.batchSize)
	total := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := m.sink.InsertMany(ctx, collection, mongobuilders.BuildMongoDocuments(batch)); err != nil {
			return fmt.Errorf("insert into %s: %w", collection, err)
		}
		total += len(batch)
		m.logger.Debugw("batch inserted", "collection", collection, "documents", len(batch))
		batch = batch[:0]
		return nil
	}

	err = m.source.ScanRows(ctx, table, func(row []any) error {
		batch = append(batch, zip(names, row))
		if len(batch) >= m.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return total, err
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}
