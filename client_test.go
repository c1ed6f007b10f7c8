package sqldoc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/omniql-engine/sqldoc/engine/models"
	"github.com/omniql-engine/sqldoc/engine/translator"
	"github.com/omniql-engine/sqldoc/mapping"
)

type storeCall struct {
	method     string
	collection string
	filter     bson.M
	doc        bson.D
	update     bson.M
}

type fakeStore struct {
	calls []storeCall
	found []bson.D
	err   error
}

func (s *fakeStore) Find(_ context.Context, coll string, filter bson.M) ([]bson.D, error) {
	s.calls = append(s.calls, storeCall{method: "Find", collection: coll, filter: filter})
	return s.found, s.err
}

func (s *fakeStore) InsertOne(_ context.Context, coll string, doc bson.D) error {
	s.calls = append(s.calls, storeCall{method: "InsertOne", collection: coll, doc: doc})
	return s.err
}

func (s *fakeStore) InsertMany(_ context.Context, coll string, docs []bson.D) error {
	s.calls = append(s.calls, storeCall{method: "InsertMany", collection: coll})
	return s.err
}

func (s *fakeStore) UpdateMany(_ context.Context, coll string, filter, update bson.M) error {
	s.calls = append(s.calls, storeCall{method: "UpdateMany", collection: coll, filter: filter, update: update})
	return s.err
}

func (s *fakeStore) DeleteMany(_ context.Context, coll string, filter bson.M) error {
	s.calls = append(s.calls, storeCall{method: "DeleteMany", collection: coll, filter: filter})
	return s.err
}

func newTestClient(store Store) *Client {
	catalog := mapping.NewCatalog(map[string]string{"users": "user_docs"})
	return NewClient(store, translator.New(catalog))
}

func TestClientQueryRoutesToStore(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		op     mapping.Operation
		want   storeCall
		result ResultSet
	}{
		{
			name: "select",
			sql:  "SELECT * FROM users WHERE age > 25",
			op:   mapping.Select,
			want: storeCall{method: "Find", collection: "user_docs", filter: bson.M{"age": bson.M{"$gt": int64(25)}}},
		},
		{
			name:   "insert",
			sql:    "INSERT INTO users (name, age) VALUES ('Ann', 30)",
			op:     mapping.Insert,
			want:   storeCall{method: "InsertOne", collection: "user_docs", doc: bson.D{{Key: "name", Value: "Ann"}, {Key: "age", Value: int64(30)}}},
			result: ResultSet{{{Key: "status", Value: "inserted"}}},
		},
		{
			name: "update",
			sql:  "UPDATE users SET name = 'Bob' WHERE id = 7",
			op:   mapping.Update,
			want: storeCall{
				method:     "UpdateMany",
				collection: "user_docs",
				filter:     bson.M{"id": bson.M{"$eq": int64(7)}},
				update:     bson.M{"$set": bson.D{{Key: "name", Value: "Bob"}}},
			},
			result: ResultSet{{{Key: "status", Value: "updated"}}},
		},
		{
			name:   "delete",
			sql:    "DELETE FROM users WHERE name LIKE 'A%'",
			op:     mapping.Delete,
			want:   storeCall{method: "DeleteMany", collection: "user_docs", filter: bson.M{"name": bson.M{"$regex": "^A.*$"}}},
			result: ResultSet{{{Key: "status", Value: "deleted"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			rs, err := newTestClient(store).Query(context.Background(), tt.sql, tt.op)
			require.NoError(t, err)
			require.Len(t, store.calls, 1)
			assert.Equal(t, tt.want, store.calls[0])
			assert.Equal(t, tt.result, rs)
		})
	}
}

func TestClientSelectReturnsDocuments(t *testing.T) {
	store := &fakeStore{found: []bson.D{
		{{Key: "id", Value: 1}, {Key: "name", Value: "Ann"}},
		{{Key: "id", Value: 2}, {Key: "name", Value: "Bob"}},
	}}
	rs, err := newTestClient(store).Query(context.Background(), "SELECT * FROM users", mapping.Select)
	require.NoError(t, err)
	assert.Len(t, rs, 2)
	assert.Equal(t, bson.M{}, store.calls[0].filter)
}

func TestClientIntercept(t *testing.T) {
	store := &fakeStore{found: []bson.D{
		{{Key: "id", Value: 1}, {Key: "name", Value: "Ann"}},
		{{Key: "name", Value: "Bob"}, {Key: "id", Value: 2}},
	}}
	table, err := newTestClient(store).Intercept(context.Background(), "SELECT * FROM users", mapping.Select)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, table.Headers)
	assert.Equal(t, [][]any{{1, "Ann"}, {2, "Bob"}}, table.Rows)
}

func TestClientPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")
	store := &fakeStore{err: boom}
	_, err := newTestClient(store).Query(context.Background(), "DELETE FROM users WHERE id = 1", mapping.Delete)
	assert.ErrorIs(t, err, boom)
}

func TestClientTranslationErrorsSkipStore(t *testing.T) {
	store := &fakeStore{}
	_, err := newTestClient(store).Query(context.Background(), "SELECT * FROM ghosts", mapping.Select)
	assert.ErrorIs(t, err, translator.ErrUnknownTable)
	assert.Empty(t, store.calls)
}

func TestExecuteRejectsBadDescriptors(t *testing.T) {
	c := newTestClient(&fakeStore{})
	ctx := context.Background()

	_, err := c.Execute(ctx, nil)
	assert.Error(t, err)

	_, err = c.Execute(ctx, &models.Descriptor{Collection: "c", Operation: mapping.Update, Filter: models.NewFilter()})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	_, err = c.Execute(ctx, &models.Descriptor{Collection: "c", Operation: "UPSERT"})
	assert.ErrorIs(t, err, mapping.ErrUnsupportedOperation)
}

func TestTranslateAuto(t *testing.T) {
	catalog := mapping.NewCatalog(map[string]string{"users": "user_docs"})

	desc, err := TranslateAuto("delete from users where id = 3", catalog)
	require.NoError(t, err)
	assert.Equal(t, mapping.Delete, desc.Operation)

	_, err = TranslateAuto("TRUNCATE users", catalog)
	var unsupported *translator.UnsupportedOperationError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "TRUNCATE", unsupported.Operation)
}

func TestTabulateEmpty(t *testing.T) {
	table := Tabulate(nil)
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestTabulateMissingKeys(t *testing.T) {
	table := Tabulate(ResultSet{
		{{Key: "a", Value: 1}, {Key: "b", Value: 2}},
		{{Key: "a", Value: 3}},
	})
	assert.Equal(t, [][]any{{1, 2}, {3, nil}}, table.Rows)
}
