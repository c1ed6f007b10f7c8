package migration

import (
	"context"
	"sync"
)

// Checkpoint records which tables have been fully migrated so an interrupted
// run can resume without inserting the same rows twice.
type Checkpoint interface {
	Done(ctx context.Context, table string) (bool, error)
	MarkDone(ctx context.Context, table string) error
}

// NopCheckpoint never reports a table as done.
type NopCheckpoint struct{}

func (NopCheckpoint) Done(context.Context, string) (bool, error) { return false, nil }
func (NopCheckpoint) MarkDone(context.Context, string) error     { return nil }

// MemoryCheckpoint keeps completed tables for the life of the process.
type MemoryCheckpoint struct {
	mu   sync.Mutex
	done map[string]struct{}
}

// NewMemoryCheckpoint returns a MemoryCheckpoint with tables already marked done.
func NewMemoryCheckpoint(tables ...string) *MemoryCheckpoint {
	c := &MemoryCheckpoint{done: make(map[string]struct{}, len(tables))}
	for _, t := range tables {
		c.done[t] = struct{}{}
	}
	return c
}

func (c *MemoryCheckpoint) Done(_ context.Context, table string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.done[table]
	return ok, nil
}

func (c *MemoryCheckpoint) MarkDone(_ context.Context, table string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done[table] = struct{}{}
	return nil
}
