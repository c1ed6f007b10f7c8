package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/omniql-engine/sqldoc/engine/models"
)

// ============================================================================
// FILTER BUILDING
// ============================================================================

// BuildMongoFilter renders a Filter as a BSON query document.
//
// Distinct operators on one field share a sub-document:
//
//	age > 18 AND age < 65  ->  {age: {$gt: 18, $lt: 65}}
//
// A repeated operator on the same field cannot share a key, so the later
// constraints move into an $and list alongside the merged document.
func BuildMongoFilter(filter *models.Filter) bson.M {
	result := bson.M{}
	var overflow bson.A

	for _, field := range filter.Fields() {
		ops := bson.M{}
		for _, c := range filter.Get(field) {
			key := c.Operator.Mongo()
			if _, dup := ops[key]; dup {
				overflow = append(overflow, bson.M{field: bson.M{key: c.Value}})
				continue
			}
			ops[key] = c.Value
		}
		result[field] = ops
	}

	if len(overflow) > 0 {
		result["$and"] = overflow
	}
	return result
}

// ============================================================================
// DOCUMENT BUILDING
// ============================================================================

// BuildMongoDocument renders a Document as an ordered BSON document.
func BuildMongoDocument(doc models.Document) bson.D {
	d := make(bson.D, 0, len(doc))
	for _, f := range doc {
		d = append(d, bson.E{Key: f.Name, Value: f.Value})
	}
	return d
}

// BuildMongoDocuments renders a batch for InsertMany.
func BuildMongoDocuments(docs []models.Document) []bson.D {
	out := make([]bson.D, len(docs))
	for i, doc := range docs {
		out[i] = BuildMongoDocument(doc)
	}
	return out
}

// ============================================================================
// UPDATE BUILDING
// ============================================================================

// BuildMongoSimpleUpdate wraps field assignments in a $set update document.
func BuildMongoSimpleUpdate(updates models.Document) bson.M {
	return bson.M{"$set": BuildMongoDocument(updates)}
}
