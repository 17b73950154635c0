package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/storage"
)

// fakeKV is an in-memory KV with injectable failures and write accounting.
type fakeKV struct {
	mu       sync.Mutex
	data     map[string][]byte
	sets     map[string]int
	failKeys map[string]error
}

func newFakeKV() *fakeKV {
	return &fakeKV{
		data:     make(map[string][]byte),
		sets:     make(map[string]int),
		failKeys: make(map[string]error),
	}
}

func (f *fakeKV) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.data[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failKeys[key]; err != nil {
		return err
	}
	f.sets[key]++
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeKV) failKey(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failKeys[key] = err
}

func (f *fakeKV) healKey(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failKeys, key)
}

func (f *fakeKV) setCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets[key]
}

func (f *fakeKV) stored(t *testing.T, key string, out interface{}) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.data[key]
	require.True(t, ok, "expected key %s to be persisted", key)
	require.NoError(t, json.Unmarshal(value, out))
}

func newTestStore(t *testing.T) (Store, *fakeKV) {
	t.Helper()
	kv := newFakeKV()
	return NewStore(kv, nil), kv
}

func TestLoad_EmptyStorage(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Load(ctx))

	recipes, err := store.Recipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes)

	folders, err := store.Folders(ctx)
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestLoad_ExistingData(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()

	seed := []domain.Recipe{{ID: "r1", Title: "Tacos", Folder: domain.FolderAllRecipes}}
	data, err := json.Marshal(seed)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, storage.KeyRecipes, data))
	require.NoError(t, kv.Set(ctx, storage.KeyFolders, []byte(`["Weeknight"]`)))

	store := NewStore(kv, nil)
	require.NoError(t, store.Load(ctx))

	recipes, err := store.Recipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tacos", recipes[0].Title)

	folders, err := store.Folders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Weeknight"}, folders)
}

func TestLoad_CorruptBlobFails(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, storage.KeyRecipes, []byte("not json")))

	store := NewStore(kv, nil)
	assert.Error(t, store.Load(ctx))
}

func TestEnsureLoaded_LazyAndRetries(t *testing.T) {
	kv := newFakeKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, storage.KeyRecipes, []byte("not json")))

	store := NewStore(kv, nil)

	// First operation surfaces the load failure
	_, err := store.Recipes(ctx)
	require.Error(t, err)

	// Heal the blob; the next operation retries the load
	seed, err := json.Marshal([]domain.Recipe{{ID: "r1", Title: "Ramen"}})
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, storage.KeyRecipes, seed))

	recipes, err := store.Recipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Ramen", recipes[0].Title)
}

func TestSave_FailedWriteLeavesMemoryUntouched(t *testing.T) {
	store, kv := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, domain.Recipe{Title: "Keeper"}, "manual")
	require.NoError(t, err)

	kv.failKey(storage.KeyRecipes, errors.New("disk full"))
	_, err = store.Save(ctx, domain.Recipe{Title: "Doomed"}, "manual")
	require.Error(t, err)

	recipes, err := store.Recipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 1, "failed write must not change memory")
	assert.Equal(t, "Keeper", recipes[0].Title)

	// Previously persisted state is also intact
	var persisted []domain.Recipe
	kv.stored(t, storage.KeyRecipes, &persisted)
	require.Len(t, persisted, 1)
	assert.Equal(t, "Keeper", persisted[0].Title)
}

func TestStore_ConcurrentSaves(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := store.Save(ctx, domain.Recipe{Title: fmt.Sprintf("Recipe %d", i)}, "manual")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	recipes, err := store.Recipes(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, n, "every serialized save must survive")

	seen := make(map[string]bool, n)
	for _, r := range recipes {
		seen[r.Title] = true
	}
	assert.Len(t, seen, n, "no save may overwrite another")
}

func TestRecipes_ReturnsIndependentCopies(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, domain.Recipe{
		Title:        "Tacos",
		Instructions: []string{"cook"},
	}, "manual")
	require.NoError(t, err)

	first, err := store.Recipes(ctx)
	require.NoError(t, err)
	first[0].Title = "Mutated"
	first[0].Instructions[0] = "changed"

	second, err := store.Recipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tacos", second[0].Title)
	assert.Equal(t, "cook", second[0].Instructions[0])
}
