package sqldoc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultDatabase is the document database every session targets unless configured.
const DefaultDatabase = "migrated_db"

// Store is the document-store boundary. All calls address collections of a
// single database fixed for the lifetime of the Store.
type Store interface {
	Find(ctx context.Context, collection string, filter bson.M) ([]bson.D, error)
	InsertOne(ctx context.Context, collection string, doc bson.D) error
	InsertMany(ctx context.Context, collection string, docs []bson.D) error
	UpdateMany(ctx context.Context, collection string, filter, update bson.M) error
	DeleteMany(ctx context.Context, collection string, filter bson.M) error
}

// ============================================================================
// MONGODB
// ============================================================================

// MongoStore implements Store on a *mongo.Database
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore wraps an already connected database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{client: db.Client(), db: db}
}

// Connect dials uri, pings the deployment and binds the store to database.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*MongoStore, error) {
	opts := options.Client().ApplyURI(uri)
	if timeout > 0 {
		opts.SetConnectTimeout(timeout).SetServerSelectionTimeout(timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	if database == "" {
		database = DefaultDatabase
	}
	return &MongoStore{client: client, db: client.Database(database)}, nil
}

// Database returns the bound database name.
func (s *MongoStore) Database() string {
	return s.db.Name()
}

// Disconnect closes the underlying client.
func (s *MongoStore) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter bson.M) ([]bson.D, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *MongoStore) InsertOne(ctx context.Context, collection string, doc bson.D) error {
	_, err := s.db.Collection(collection).InsertOne(ctx, doc)
	return err
}

func (s *MongoStore) InsertMany(ctx context.Context, collection string, docs []bson.D) error {
	if len(docs) == 0 {
		return nil
	}
	batch := make([]interface{}, len(docs))
	for i, d := range docs {
		batch[i] = d
	}
	_, err := s.db.Collection(collection).InsertMany(ctx, batch)
	return err
}

func (s *MongoStore) UpdateMany(ctx context.Context, collection string, filter, update bson.M) error {
	_, err := s.db.Collection(collection).UpdateMany(ctx, filter, update)
	return err
}

func (s *MongoStore) DeleteMany(ctx context.Context, collection string, filter bson.M) error {
	_, err := s.db.Collection(collection).DeleteMany(ctx, filter)
	return err
}
