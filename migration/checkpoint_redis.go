package migration

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultCheckpointPrefix namespaces checkpoint keys in a shared Redis.
const DefaultCheckpointPrefix = "sqldoc:migrated"

// RedisCheckpoint stores completed tables in one Redis set per target
// database, keyed <prefix>:<database>.
type RedisCheckpoint struct {
	client redis.Cmdable
	key    string
}

// NewRedisCheckpoint binds a checkpoint to database on client.
func NewRedisCheckpoint(client redis.Cmdable, prefix, database string) *RedisCheckpoint {
	if prefix == "" {
		prefix = DefaultCheckpointPrefix
	}
	return &RedisCheckpoint{client: client, key: checkpointKey(prefix, database)}
}

func checkpointKey(prefix, database string) string {
	return fmt.Sprintf("%s:%s", prefix, database)
}

// Key returns the Redis set holding the completed tables.
func (c *RedisCheckpoint) Key() string { return c.key }

func (c *RedisCheckpoint) Done(ctx context.Context, table string) (bool, error) {
	ok, err := c.client.SIsMember(ctx, c.key, table).Result()
	if err != nil {
		return false, fmt.Errorf("checkpoint lookup %s: %w", table, err)
	}
	return ok, nil
}

func (c *RedisCheckpoint) MarkDone(ctx context.Context, table string) error {
	if err := c.client.SAdd(ctx, c.key, table).Err(); err != nil {
		return fmt.Errorf("checkpoint mark %s: %w", table, err)
	}
	return nil
}

// Reset forgets every completed table.
func (c *RedisCheckpoint) Reset(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
