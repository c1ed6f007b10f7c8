package migration

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCheckpoint(t *testing.T) {
	ctx := context.Background()
	cp := NewMemoryCheckpoint("users")

	done, err := cp.Done(ctx, "users")
	require.NoError(t, err)
	assert.True(t, done)

	done, _ = cp.Done(ctx, "orders")
	assert.False(t, done)

	require.NoError(t, cp.MarkDone(ctx, "orders"))
	done, _ = cp.Done(ctx, "orders")
	assert.True(t, done)
}

func TestNopCheckpoint(t *testing.T) {
	ctx := context.Background()
	var cp Checkpoint = NopCheckpoint{}
	require.NoError(t, cp.MarkDone(ctx, "users"))
	done, err := cp.Done(ctx, "users")
	require.NoError(t, err)
	assert.False(t, done)
}

func TestRedisCheckpointKey(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	assert.Equal(t, "sqldoc:migrated:migrated_db", NewRedisCheckpoint(client, "", "migrated_db").Key())
	assert.Equal(t, "jobs:shop", NewRedisCheckpoint(client, "jobs", "shop").Key())
}
