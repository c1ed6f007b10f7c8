package mapping

import (
	"sort"
	"strings"

	"github.com/jinzhu/inflection"
)

// Catalog is the static table -> collection lookup shared by the translator
// and the migrator. The zero value is an empty catalog. A Catalog is never
// mutated after construction, so one value can serve concurrent callers.
type Catalog struct {
	entries map[string]string
}

// NewCatalog copies entries into a new Catalog.
func NewCatalog(entries map[string]string) Catalog {
	c := Catalog{entries: make(map[string]string, len(entries))}
	for table, collection := range entries {
		c.entries[table] = collection
	}
	return c
}

// DeriveCatalog maps every table onto a collection of the same name, or onto
// the lower-cased plural when pluralize is set (order_item -> order_items).
func DeriveCatalog(tables []string, pluralize bool) Catalog {
	c := Catalog{entries: make(map[string]string, len(tables))}
	for _, table := range tables {
		c.entries[table] = collectionName(table, pluralize)
	}
	return c
}

func collectionName(table string, pluralize bool) string {
	if pluralize {
		return inflection.Plural(strings.ToLower(table))
	}
	return table
}

// Collection returns the collection for table.
func (c Catalog) Collection(table string) (string, bool) {
	collection, ok := c.entries[table]
	return collection, ok
}

// Merge returns a catalog holding c's entries overlaid by other's.
func (c Catalog) Merge(other Catalog) Catalog {
	merged := Catalog{entries: make(map[string]string, len(c.entries)+len(other.entries))}
	for table, collection := range c.entries {
		merged.entries[table] = collection
	}
	for table, collection := range other.entries {
		merged.entries[table] = collection
	}
	return merged
}

// Tables returns the catalogued table names, sorted.
func (c Catalog) Tables() []string {
	tables := make([]string, 0, len(c.entries))
	for table := range c.entries {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

// Len returns the number of entries.
func (c Catalog) Len() int {
	return len(c.entries)
}
