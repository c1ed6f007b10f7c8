package sqldoc

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ResultSet is the normalized response of one executed descriptor: the
// matching documents for SELECT, a single status document otherwise.
type ResultSet []bson.D

// Acknowledgement statuses for write operations
const (
	StatusInserted = "inserted"
	StatusUpdated  = "updated"
	StatusDeleted  = "deleted"
)

func ack(status string) ResultSet {
	return ResultSet{{{Key: "status", Value: status}}}
}

// Table is a result set reshaped for relational callers
type Table struct {
	Headers []string
	Rows    [][]any
}

// Tabulate takes the headers from the first document's keys, in order, and
// lays every document out under them. Keys a document lacks come back nil.
func Tabulate(rs ResultSet) *Table {
	t := &Table{Headers: []string{}, Rows: [][]any{}}
	if len(rs) == 0 {
		return t
	}

	for _, e := range rs[0] {
		t.Headers = append(t.Headers, e.Key)
	}

	for _, doc := range rs {
		values := make(map[string]any, len(doc))
		for _, e := range doc {
			values[e.Key] = e.Value
		}
		row := make([]any, len(t.Headers))
		for i, h := range t.Headers {
			row[i] = values[h]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
