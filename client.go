// client.go

package sqldoc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	mongobuilders "github.com/omniql-engine/sqldoc/engine/builders/mongodb"
	"github.com/omniql-engine/sqldoc/engine/models"
	"github.com/omniql-engine/sqldoc/engine/translator"
	"github.com/omniql-engine/sqldoc/mapping"
)

// ErrEmptyUpdate is returned for an UPDATE descriptor with nothing to $set.
var ErrEmptyUpdate = errors.New("update has no field assignments")

// ============================================
// CLIENT STRUCT
// ============================================

// Client intercepts relational statements, translates them and executes
// the resulting descriptors against a Store.
type Client struct {
	store      Store
	translator *translator.Translator
	logger     *zap.SugaredLogger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithLogger sets the client logger
func WithLogger(logger *zap.SugaredLogger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// ============================================
// CONSTRUCTORS
// ============================================

// NewClient binds a translator to a store
func NewClient(store Store, tr *translator.Translator, opts ...ClientOption) *Client {
	c := &Client{
		store:      store,
		translator: tr,
		logger:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ============================================
// QUERY METHODS
// ============================================

// Query translates statement under op and executes it.
func (c *Client) Query(ctx context.Context, statement string, op mapping.Operation) (ResultSet, error) {
	desc, err := c.translator.Translate(statement, op)
	if err != nil {
		return nil, fmt.Errorf("translation error: %w", err)
	}
	c.logger.Debugw("translated statement",
		"operation", desc.Operation,
		"collection", desc.Collection,
		"filter_fields", desc.Filter.Fields())

	return c.Execute(ctx, desc)
}

// Intercept runs Query and reshapes the result into headers and rows.
func (c *Client) Intercept(ctx context.Context, statement string, op mapping.Operation) (*Table, error) {
	c.logger.Infow("statement intercepted", "operation", op)

	rs, err := c.Query(ctx, statement, op)
	if err != nil {
		return nil, err
	}
	return Tabulate(rs), nil
}

// ============================================
// EXECUTION
// ============================================

// Execute issues one store call for desc. Store errors are wrapped but not
// translated or retried.
func (c *Client) Execute(ctx context.Context, desc *models.Descriptor) (ResultSet, error) {
	if desc == nil {
		return nil, errors.New("nil descriptor")
	}

	switch desc.Operation {
	case mapping.Select:
		docs, err := c.store.Find(ctx, desc.Collection, mongobuilders.BuildMongoFilter(desc.Filter))
		if err != nil {
			return nil, fmt.Errorf("find error: %w", err)
		}
		c.logger.Debugw("find completed", "collection", desc.Collection, "documents", len(docs))
		return ResultSet(docs), nil

	case mapping.Insert:
		doc := mongobuilders.BuildMongoDocument(desc.Document)
		if err := c.store.InsertOne(ctx, desc.Collection, doc); err != nil {
			return nil, fmt.Errorf("insert error: %w", err)
		}
		return ack(StatusInserted), nil

	case mapping.Update:
		if len(desc.Updates) == 0 {
			return nil, ErrEmptyUpdate
		}
		filter := mongobuilders.BuildMongoFilter(desc.Filter)
		update := mongobuilders.BuildMongoSimpleUpdate(desc.Updates)
		if err := c.store.UpdateMany(ctx, desc.Collection, filter, update); err != nil {
			return nil, fmt.Errorf("update error: %w", err)
		}
		return ack(StatusUpdated), nil

	case mapping.Delete:
		if err := c.store.DeleteMany(ctx, desc.Collection, mongobuilders.BuildMongoFilter(desc.Filter)); err != nil {
			return nil, fmt.Errorf("delete error: %w", err)
		}
		return ack(StatusDeleted), nil

	default:
		return nil, &translator.UnsupportedOperationError{Operation: string(desc.Operation)}
	}
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
