package sqlitekv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bunchesapp/bunches-go/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_GetMissingKey(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), storage.KeyRecipes)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestStore_SetThenGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, storage.KeyRecipes, []byte(`[{"id":"r1"}]`)))

	got, err := s.Get(ctx, storage.KeyRecipes)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"r1"}]`, string(got))
}

func TestStore_UpsertReplacesValue(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, storage.KeyFolders, []byte(`["a"]`)))
	require.NoError(t, s.Set(ctx, storage.KeyFolders, []byte(`["a","b"]`)))

	got, err := s.Get(ctx, storage.KeyFolders)
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, string(got))
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bunches.db")
	ctx := context.Background()

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, storage.KeyGroceries, []byte(`[{"id":"g1"}]`)))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Get(ctx, storage.KeyGroceries)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"g1"}]`, string(got))
}

func TestStore_KeysAreIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, storage.KeyRecipes, []byte(`["recipes"]`)))
	require.NoError(t, s.Set(ctx, storage.KeyFolders, []byte(`["folders"]`)))

	recipes, err := s.Get(ctx, storage.KeyRecipes)
	require.NoError(t, err)
	folders, err := s.Get(ctx, storage.KeyFolders)
	require.NoError(t, err)

	assert.Equal(t, `["recipes"]`, string(recipes))
	assert.Equal(t, `["folders"]`, string(folders))
}

func TestStore_Ping(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
