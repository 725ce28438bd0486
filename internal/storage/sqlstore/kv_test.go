package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sandevgo/haven/internal/core"
	"github.com/sandevgo/haven/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *KVRepo {
	t.Helper()
	db, err := sqlite.NewDB(context.Background(), filepath.Join(t.TempDir(), "haven.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteKVRepo(db)
}

var _ core.PersistentStore = (*KVRepo)(nil)

func TestKVRepo_GetMissing(t *testing.T) {
	repo := newTestRepo(t)

	value, found, err := repo.Get(context.Background(), core.KeyInsights)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestKVRepo_SetOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, core.KeySummaries, `[]`))
	require.NoError(t, repo.Set(ctx, core.KeySummaries, `[{"id":"s1"}]`))

	value, found, err := repo.Get(ctx, core.KeySummaries)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"s1"}]`, value)
}

func TestKVRepo_RemoveMany(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, key := range []string{core.KeyInsights, core.KeySummaries, core.KeyExtractionMetadata} {
		require.NoError(t, repo.Set(ctx, key, "{}"))
	}

	require.NoError(t, repo.RemoveMany(ctx, []string{core.KeyInsights, core.KeySummaries}))
	require.NoError(t, repo.RemoveMany(ctx, nil))

	for _, key := range []string{core.KeyInsights, core.KeySummaries} {
		_, found, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, found, key)
	}
	_, found, err := repo.Get(ctx, core.KeyExtractionMetadata)
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, repo.Remove(ctx, core.KeyExtractionMetadata))
	_, found, err = repo.Get(ctx, core.KeyExtractionMetadata)
	require.NoError(t, err)
	assert.False(t, found)
}
