package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := newTestStore(t)
	ports.RunEntryStoreContract(t, store)
}

func TestRedisStoreCustomKey(t *testing.T) {
	mr, store := newTestStore(t, redis.WithKey("custom:entries"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []domain.ConfigEntry{
		{ID: "flow-1", Domain: "hub", Source: domain.SourceUser},
	}))

	assert.True(t, mr.Exists("custom:entries"))
	assert.False(t, mr.Exists("espalier:entries"))
}

func TestRedisStoreMalformedDocument(t *testing.T) {
	mr, store := newTestStore(t)
	require.NoError(t, mr.Set("espalier:entries", "{not json"))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrStoreNotFound)
}
