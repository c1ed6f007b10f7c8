package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/omniql-engine/sqldoc"
	mongobuilders "github.com/omniql-engine/sqldoc/engine/builders/mongodb"
	"github.com/omniql-engine/sqldoc/engine/models"
	"github.com/omniql-engine/sqldoc/engine/translator"
	"github.com/omniql-engine/sqldoc/mapping"
)

var (
	queryKind   string
	queryDryRun bool
)

var queryCmd = &cobra.Command{
	Use:   "query <statement>",
	Short: "Translate a statement and run it against the document store",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryKind, "kind", "auto", "operation kind: select|insert|update|delete|auto")
	queryCmd.Flags().BoolVar(&queryDryRun, "dry-run", false, "print the translated operation without executing it")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	statement := args[0]
	op, err := resolveKind(queryKind, statement)
	if err != nil {
		return err
	}

	opts := []translator.Option{translator.WithLogger(logger)}
	if cfg.SQL.Validate {
		opts = append(opts, translator.WithValidator(cfg.SQL.Dialect))
	}
	if cfg.SQL.Strict {
		opts = append(opts, translator.WithStrictPredicates())
	}
	tr := translator.New(cfg.TableCatalog(), opts...)

	if queryDryRun {
		desc, err := tr.Translate(statement, op)
		if err != nil {
			return err
		}
		return printDescriptor(cmd.OutOrStdout(), desc)
	}

	timeout, err := cfg.MongoTimeout()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := sqldoc.Connect(ctx, cfg.Mongo.URI, cfg.Database, timeout)
	if err != nil {
		return err
	}
	defer store.Disconnect(context.Background())

	client := sqldoc.NewClient(store, tr, sqldoc.WithLogger(logger))
	table, err := client.Intercept(ctx, statement, op)
	if err != nil {
		return err
	}
	return printTable(cmd.OutOrStdout(), table)
}

func resolveKind(kind, statement string) (mapping.Operation, error) {
	if strings.EqualFold(kind, "auto") {
		return mapping.InferOperation(statement)
	}
	return mapping.ParseOperation(kind)
}

func printDescriptor(w io.Writer, desc *models.Descriptor) error {
	fmt.Fprintf(w, "operation:  %s (%s)\n", desc.Operation, desc.Operation.Mongo())
	fmt.Fprintf(w, "collection: %s\n", desc.Collection)

	var payload any
	switch desc.Operation {
	case mapping.Insert:
		payload = mongobuilders.BuildMongoDocument(desc.Document)
	case mapping.Update:
		payload = mongobuilders.BuildMongoSimpleUpdate(desc.Updates)
	}

	if desc.Operation != mapping.Insert {
		filter, err := bson.MarshalExtJSON(mongobuilders.BuildMongoFilter(desc.Filter), false, false)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "filter:     %s\n", filter)
	}
	if payload != nil {
		doc, err := bson.MarshalExtJSON(payload, false, false)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "document:   %s\n", doc)
	}
	for _, s := range desc.Unrecognized {
		fmt.Fprintf(w, "skipped:    %q at %d\n", s.Text, s.Pos)
	}
	return nil
}

func printTable(w io.Writer, t *sqldoc.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
