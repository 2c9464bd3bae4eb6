//go:build integration

package containers

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// RedisContainer backs the descendant-cache suites. It is shared through
// Manager, so tests isolate themselves with FlushAll.
type RedisContainer struct {
	Container *tcredis.RedisContainer
	Client    *goredis.Client
}

func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "start redis container")

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "redis connection string")
	opts, err := goredis.ParseURL(uri)
	require.NoError(t, err, "parse redis connection string")

	client := goredis.NewClient(opts)
	require.NoError(t, client.Ping(ctx).Err(), "ping redis")
	return &RedisContainer{Container: container, Client: client}
}

// FlushAll empties the database, including cache generation counters.
func (r *RedisContainer) FlushAll(ctx context.Context) error {
	return r.Client.FlushDB(ctx).Err()
}
