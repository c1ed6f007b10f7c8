package migration

import (
	"context"
	"fmt"
)

// ============================================================================
// GRAPH
// ============================================================================

// Graph is a table dependency graph. Edges run from the referencing table to
// the referenced table. Nodes and each adjacency list keep insertion order.
type Graph struct {
	tables   []string
	refs     map[string][]string
	dangling int
}

// NewGraph returns a graph whose nodes are tables, in order. Repeated names
// are kept once.
func NewGraph(tables []string) *Graph {
	g := &Graph{refs: make(map[string][]string, len(tables))}
	for _, t := range tables {
		if _, ok := g.refs[t]; ok {
			continue
		}
		g.tables = append(g.tables, t)
		g.refs[t] = nil
	}
	return g
}

// AddEdge records that from references to. An edge with an endpoint outside
// the node set is dropped and counted as dangling. Repeated edges (one per
// column of a composite key) are kept once.
func (g *Graph) AddEdge(from, to string) bool {
	if !g.Has(from) || !g.Has(to) {
		g.dangling++
		return false
	}
	for _, r := range g.refs[from] {
		if r == to {
			return true
		}
	}
	g.refs[from] = append(g.refs[from], to)
	return true
}

// Has reports whether table is a node.
func (g *Graph) Has(table string) bool {
	_, ok := g.refs[table]
	return ok
}

// Tables returns the nodes in input order.
func (g *Graph) Tables() []string { return g.tables }

// References returns the tables referenced by table, in declaration order.
func (g *Graph) References(table string) []string { return g.refs[table] }

// Dangling returns how many edges were dropped for naming unknown tables.
func (g *Graph) Dangling() int { return g.dangling }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.tables) }

// LoadGraph builds the graph from src's tables and declared foreign keys.
func LoadGraph(ctx context.Context, src MetadataSource) (*Graph, error) {
	tables, err := src.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	g := NewGraph(tables)
	for _, table := range g.Tables() {
		fks, err := src.ListForeignKeys(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("load graph: %w", err)
		}
		for _, fk := range fks {
			g.AddEdge(table, fk.RefTable)
		}
	}
	return g, nil
}

// ============================================================================
// PLANNING
// ============================================================================

// Plan returns every table exactly once. Each not-yet-visited table, in input
// order, seeds a breadth-first walk along its references; the visited set is
// shared by all seeds. A table is therefore emitted before the tables it
// references are reached, and cycles and self-references terminate.
func Plan(g *Graph) []string {
	order := make([]string, 0, g.Len())
	seen := make(map[string]bool, g.Len())

	for _, seed := range g.Tables() {
		if seen[seed] {
			continue
		}
		order = walk(g, seed, seen, order)
	}
	return order
}

// walk runs one breadth-first search from seed, appending to order.
func walk(g *Graph, seed string, seen map[string]bool, order []string) []string {
	queue := []string{seed}

	for len(queue) > 0 {
		table := queue[0]
		queue = queue[1:]
		if seen[table] {
			continue
		}

		seen[table] = true
		order = append(order, table)

		for _, ref := range g.References(table) {
			if !seen[ref] {
				queue = append(queue, ref)
			}
		}
	}
	return order
}
