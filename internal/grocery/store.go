// Package grocery owns the grocery list. The list is one JSON blob behind a
// storage.KV key; every mutation is a full read-modify-write serialized by a
// single mutex, and in-memory state only changes after the write succeeds.
//
// The store knows nothing about undo. Callers that want a mutation to be
// undoable snapshot the list before mutating and restore it with Replace.
package grocery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/logger"
	"github.com/bunchesapp/bunches-go/internal/storage"
)

// Store is the grocery list surface exposed to the HTTP layer and the undo
// inverses.
type Store interface {
	// Load reads the persisted list. Mutations arriving before Load has
	// succeeded trigger it themselves, so callers may skip it.
	Load(ctx context.Context) error

	// Items returns a deep copy of the list in insertion order.
	Items(ctx context.Context) ([]domain.GroceryItem, error)

	// Grouped returns the list partitioned for display.
	Grouped(ctx context.Context) ([]Group, error)

	// AddItems appends one item per non-blank text, each snapshotting the
	// recipe's id and title. Returns the created items.
	AddItems(ctx context.Context, texts []string, recipe domain.Recipe, section string) ([]domain.GroceryItem, error)

	// AddManualItems appends items that belong to no recipe.
	AddManualItems(ctx context.Context, texts []string) ([]domain.GroceryItem, error)

	// ToggleItemChecked flips the checked flag and returns the updated item.
	ToggleItemChecked(ctx context.Context, id string) (domain.GroceryItem, error)

	// RemoveItem deletes a single item.
	RemoveItem(ctx context.Context, id string) error

	// ClearCheckedItems removes every checked item and returns how many went.
	ClearCheckedItems(ctx context.Context) (int, error)

	// ClearAllItems empties the list and returns how many items it held.
	ClearAllItems(ctx context.Context) (int, error)

	// Replace swaps in a whole new list. Undo inverses restore snapshots
	// through this.
	Replace(ctx context.Context, items []domain.GroceryItem) error
}

type store struct {
	kv  storage.KV
	bus event.Bus

	mu     sync.Mutex
	loaded bool
	items  []domain.GroceryItem
}

// NewStore builds a grocery list store over the given backend. bus may be nil
// when no one listens for events.
func NewStore(kv storage.KV, bus event.Bus) Store {
	return &store{kv: kv, bus: bus}
}

func (s *store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *store) loadLocked(ctx context.Context) error {
	items, err := s.readItems(ctx)
	if err != nil {
		return err
	}
	s.items = items
	s.loaded = true
	return nil
}

// ensureLoadedLocked gates every operation behind a successful load so a
// mutation can never overwrite the persisted list with an empty default.
func (s *store) ensureLoadedLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.loadLocked(ctx)
}

func (s *store) readItems(ctx context.Context) ([]domain.GroceryItem, error) {
	data, err := s.kv.Get(ctx, storage.KeyGroceries)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []domain.GroceryItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read groceries: %w", err)
	}

	var items []domain.GroceryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode groceries: %w", err)
	}
	if items == nil {
		items = []domain.GroceryItem{}
	}
	return items, nil
}

func (s *store) persistItems(ctx context.Context, items []domain.GroceryItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode groceries: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyGroceries, data); err != nil {
		return fmt.Errorf("persist groceries: %w", err)
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

// indexOf returns the position of the item with the given id, or -1.
func indexOf(items []domain.GroceryItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
