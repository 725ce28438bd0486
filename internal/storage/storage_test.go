package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sandevgo/haven/internal/core"
	"github.com/sandevgo/haven/internal/storage/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	driver, path, url, user string
}

func (c testConfig) GetStoreDriver() string  { return c.driver }
func (c testConfig) GetDatabasePath() string { return c.path }
func (c testConfig) GetDatabaseURL() string  { return c.url }
func (c testConfig) GetUserID() string       { return c.user }

func TestWithNamespace_PrefixesKeys(t *testing.T) {
	ctx := context.Background()
	inner := inmem.NewKVStore()
	alice := WithNamespace(inner, "alice")
	bob := WithNamespace(inner, "bob")

	require.NoError(t, alice.Set(ctx, core.KeyInsights, "a"))
	require.NoError(t, bob.Set(ctx, core.KeyInsights, "b"))

	v, found, err := alice.Get(ctx, core.KeyInsights)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a", v)

	v, found, err = inner.Get(ctx, "bob:memory_insights")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "b", v)
	_, found, err = inner.Get(ctx, core.KeyInsights)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, alice.RemoveMany(ctx, []string{core.KeyInsights}))
	_, found, err = inner.Get(ctx, "alice:memory_insights")
	require.NoError(t, err)
	assert.False(t, found)
	_, found, err = inner.Get(ctx, "bob:memory_insights")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestWithNamespace_EmptyUserIsPassthrough(t *testing.T) {
	inner := inmem.NewKVStore()
	assert.Same(t, core.PersistentStore(inner), WithNamespace(inner, ""))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, closeFn, err := Open(ctx, testConfig{driver: DriverMemory})
		require.NoError(t, err)
		defer closeFn()
		require.NoError(t, store.Set(ctx, "k", "v"))
	})

	t.Run("sqlite", func(t *testing.T) {
		store, closeFn, err := Open(ctx, testConfig{
			driver: DriverSQLite,
			path:   filepath.Join(t.TempDir(), "nested", "haven.db"),
			user:   "alice",
		})
		require.NoError(t, err)
		defer closeFn()

		require.NoError(t, store.Set(ctx, core.KeySummaries, "[]"))
		v, found, err := store.Get(ctx, core.KeySummaries)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "[]", v)
	})

	t.Run("postgres without url", func(t *testing.T) {
		_, _, err := Open(ctx, testConfig{driver: DriverPostgres})
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := Open(ctx, testConfig{driver: "redis"})
		assert.Error(t, err)
	})
}
