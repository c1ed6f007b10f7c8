package migration

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// shopSchema creates orders before users so creation order differs from
// dependency order.
const shopSchema = `
CREATE TABLE orders (
	id INTEGER PRIMARY KEY,
	user_id INTEGER REFERENCES users(id),
	total REAL
);
CREATE TABLE users (
	id INTEGER PRIMARY KEY,
	name TEXT
);
CREATE TABLE order_items (
	id INTEGER PRIMARY KEY,
	order_id INTEGER REFERENCES orders(id),
	product_id INTEGER REFERENCES products(id),
	note_id INTEGER REFERENCES archived_notes(id),
	qty INTEGER
);
CREATE TABLE products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT
);
INSERT INTO users (id, name) VALUES (1, 'Ann'), (2, 'Bob');
INSERT INTO orders (id, user_id, total) VALUES (10, 1, 9.5), (11, 1, 20.0), (12, 2, 3.25);
INSERT INTO products (name) VALUES ('widget');
`

// newShopDB writes the fixture database to a temp file and returns its path.
func newShopDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(shopSchema)
	require.NoError(t, err)
	return path
}
