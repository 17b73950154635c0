// Package recipe owns the recipe collection and the custom folder registry.
//
// Both live as JSON array blobs behind the storage.KV capability. Every
// mutation is a full read-modify-write of one or both blobs, so a single
// mutex serializes them: no two writes to the same collection are ever in
// flight at once. Persistence is write-through with commit-on-success; a
// failed write leaves the in-memory state and the previously persisted
// state untouched.
package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/logger"
	"github.com/bunchesapp/bunches-go/internal/storage"
)

// Store defines the recipe collection interface
type Store interface {
	Load(ctx context.Context) error

	Recipes(ctx context.Context) ([]domain.Recipe, error)
	Recipe(ctx context.Context, id string) (domain.Recipe, error)
	FilteredRecipes(ctx context.Context, folder string) ([]domain.Recipe, error)
	Save(ctx context.Context, r domain.Recipe, source string) (domain.Recipe, error)
	Update(ctx context.Context, r domain.Recipe) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int, error)
	PermanentlyDelete(ctx context.Context, id string) error
	EmptyTrash(ctx context.Context) (int, error)
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int, error)
	ToggleFavorite(ctx context.Context, id string) (domain.Recipe, error)
	MoveToFolder(ctx context.Context, id, folder string) error

	Folders(ctx context.Context) ([]string, error)
	FolderCounts(ctx context.Context) (map[string]int, error)
	AddFolder(ctx context.Context, name string) error
	RenameFolder(ctx context.Context, oldName, newName string) error
	DeleteFolder(ctx context.Context, name string) (int, error)
}

type store struct {
	kv  storage.KV
	bus event.Bus

	mu      sync.Mutex
	loaded  bool
	recipes []domain.Recipe
	folders []string
}

// NewStore creates a recipe store backed by kv. The bus may be nil; events
// are then skipped.
func NewStore(kv storage.KV, bus event.Bus) Store {
	return &store{
		kv:      kv,
		bus:     bus,
		recipes: []domain.Recipe{},
		folders: []string{},
	}
}

// Load reads both blobs from storage and marks the store loaded. Absent keys
// count as empty collections. On failure the store stays unloaded and the
// next operation retries the load.
func (s *store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *store) loadLocked(ctx context.Context) error {
	recipes, err := s.readRecipes(ctx)
	if err != nil {
		return err
	}
	folders, err := s.readFolders(ctx)
	if err != nil {
		return err
	}

	s.recipes = recipes
	s.folders = folders
	s.loaded = true
	return nil
}

// ensureLoadedLocked lazily loads on first use so mutations that arrive
// before startup finishes wait for the load instead of racing it. Callers
// must hold s.mu.
func (s *store) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.loadLocked(ctx)
}

func (s *store) readRecipes(ctx context.Context) ([]domain.Recipe, error) {
	data, err := s.kv.Get(ctx, storage.KeyRecipes)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []domain.Recipe{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}

	var recipes []domain.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return recipes, nil
}

func (s *store) readFolders(ctx context.Context) ([]string, error) {
	data, err := s.kv.Get(ctx, storage.KeyFolders)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read folders: %w", err)
	}

	var folders []string
	if err := json.Unmarshal(data, &folders); err != nil {
		return nil, fmt.Errorf("decode folders: %w", err)
	}
	if folders == nil {
		folders = []string{}
	}
	return folders, nil
}

// persistRecipes writes the prospective collection. The caller commits to
// memory only after this succeeds.
func (s *store) persistRecipes(ctx context.Context, recipes []domain.Recipe) error {
	data, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("encode recipes: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyRecipes, data); err != nil {
		return fmt.Errorf("persist recipes: %w", err)
	}
	return nil
}

func (s *store) persistFolders(ctx context.Context, folders []string) error {
	data, err := json.Marshal(folders)
	if err != nil {
		return fmt.Errorf("encode folders: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyFolders, data); err != nil {
		return fmt.Errorf("persist folders: %w", err)
	}
	return nil
}

// publish sends an event without letting bus failures reach the caller.
// Mutations have already been persisted by the time events fire.
func (s *store) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
			"event_type", evt.Type,
			"error", err)
	}
}

// indexOf returns the position of the recipe with the given id, or -1.
func indexOf(recipes []domain.Recipe, id string) int {
	for i := range recipes {
		if recipes[i].ID == id {
			return i
		}
	}
	return -1
}

// copyRecipes makes a fresh slice whose elements are struct copies of the
// originals. Scalar field edits on the copy never touch the source; shared
// slice fields are left alone by every mutation that uses this.
func copyRecipes(recipes []domain.Recipe) []domain.Recipe {
	next := make([]domain.Recipe, len(recipes))
	copy(next, recipes)
	return next
}

// cloneRecipes deep-copies every element for handing state out of the store.
func cloneRecipes(recipes []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, len(recipes))
	for i := range recipes {
		out[i] = recipes[i].Clone()
	}
	return out
}

func containsFolder(folders []string, name string) bool {
	for _, f := range folders {
		if f == name {
			return true
		}
	}
	return false
}
