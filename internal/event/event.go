package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}

	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}

	return nil
}

// Common event types
const (
	RecipeSaved    Type = "recipe.saved"
	RecipeDeleted  Type = "recipe.deleted"
	RecipeRestored Type = "recipe.restored"
	RecipePurged   Type = "recipe.purged"

	FolderCreated Type = "folder.created"
	FolderRenamed Type = "folder.renamed"
	FolderDeleted Type = "folder.deleted"

	GroceryItemsAdded Type = "grocery.items_added"
	GroceryCleared    Type = "grocery.cleared"

	UndoPerformed  Type = "undo.performed"
	UndoVisibility Type = "undo.visibility"
)

// Values carried in event payloads and reused as metric label values
const (
	DeleteModeSoft      = "soft"
	DeleteModePermanent = "permanent"

	ClearScopeChecked = "checked"
	ClearScopeAll     = "all"

	RecipeSourceManual    = "manual"
	RecipeSourceExtracted = "extracted"
	RecipeSourceImported  = "imported"
)

// Typed event payloads for type safety

// RecipeSavedPayloadV1 is the typed payload for recipe.saved events
type RecipeSavedPayloadV1 struct {
	RecipeID  string `json:"recipe_id"`
	Title     string `json:"title"`
	Folder    string `json:"folder"`
	Source    string `json:"source"` // "manual", "extracted" or "imported"
	Timestamp int64  `json:"timestamp"`
}

// RecipeDeletedPayloadV1 is the typed payload for recipe.deleted and
// recipe.purged events
type RecipeDeletedPayloadV1 struct {
	RecipeIDs []string `json:"recipe_ids"`
	Mode      string   `json:"mode"` // "soft" or "permanent"
	Count     int      `json:"count"`
	Timestamp int64    `json:"timestamp"`
}

// RecipeRestoredPayloadV1 is the typed payload for recipe.restored events
type RecipeRestoredPayloadV1 struct {
	RecipeID  string `json:"recipe_id"`
	Timestamp int64  `json:"timestamp"`
}

// FolderPayloadV1 is the typed payload for folder lifecycle events
type FolderPayloadV1 struct {
	Name           string `json:"name"`
	PreviousName   string `json:"previous_name,omitempty"` // folder.renamed only
	RecipesTouched int    `json:"recipes_touched"`
	Timestamp      int64  `json:"timestamp"`
}

// GroceryItemsAddedPayloadV1 is the typed payload for grocery.items_added events
type GroceryItemsAddedPayloadV1 struct {
	RecipeID  string `json:"recipe_id,omitempty"` // empty for manually typed items
	Count     int    `json:"count"`
	Timestamp int64  `json:"timestamp"`
}

// GroceryClearedPayloadV1 is the typed payload for grocery.cleared events
type GroceryClearedPayloadV1 struct {
	Scope     string `json:"scope"` // "checked" or "all"
	Count     int    `json:"count"`
	Timestamp int64  `json:"timestamp"`
}

// UndoPayloadV1 is the typed payload for undo.performed and undo.visibility events
type UndoPayloadV1 struct {
	Action    string `json:"action,omitempty"` // label of the undone action
	Depth     int    `json:"depth"`            // stack depth after the change
	Visible   bool   `json:"visible"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewRecipeSavedEvent creates a new recipe saved event with type-safe payload
func NewRecipeSavedEvent(recipeID, title, folder, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RecipeSaved,
		Payload: RecipeSavedPayloadV1{
			RecipeID:  recipeID,
			Title:     title,
			Folder:    folder,
			Source:    source,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewRecipeDeletedEvent creates a new recipe deleted event. Mode is "soft"
// for trash moves and "permanent" for purges.
func NewRecipeDeletedEvent(recipeIDs []string, mode string) Event {
	eventType := RecipeDeleted
	if mode == DeleteModePermanent {
		eventType = RecipePurged
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: RecipeDeletedPayloadV1{
			RecipeIDs: recipeIDs,
			Mode:      mode,
			Count:     len(recipeIDs),
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewRecipeRestoredEvent creates a new recipe restored event
func NewRecipeRestoredEvent(recipeID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RecipeRestored,
		Payload: RecipeRestoredPayloadV1{
			RecipeID:  recipeID,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewFolderCreatedEvent creates a new folder created event
func NewFolderCreatedEvent(name string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    FolderCreated,
		Payload: FolderPayloadV1{
			Name:      name,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewFolderRenamedEvent creates a new folder renamed event
func NewFolderRenamedEvent(oldName, newName string, recipesTouched int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    FolderRenamed,
		Payload: FolderPayloadV1{
			Name:           newName,
			PreviousName:   oldName,
			RecipesTouched: recipesTouched,
			Timestamp:      time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewFolderDeletedEvent creates a new folder deleted event
func NewFolderDeletedEvent(name string, recipesTouched int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    FolderDeleted,
		Payload: FolderPayloadV1{
			Name:           name,
			RecipesTouched: recipesTouched,
			Timestamp:      time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewGroceryItemsAddedEvent creates a new grocery items added event.
// recipeID is empty when the items were typed in by hand.
func NewGroceryItemsAddedEvent(recipeID string, count int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GroceryItemsAdded,
		Payload: GroceryItemsAddedPayloadV1{
			RecipeID:  recipeID,
			Count:     count,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewGroceryClearedEvent creates a new grocery cleared event
func NewGroceryClearedEvent(scope string, count int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    GroceryCleared,
		Payload: GroceryClearedPayloadV1{
			Scope:     scope,
			Count:     count,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewUndoPerformedEvent creates a new undo performed event
func NewUndoPerformedEvent(action string, depth int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    UndoPerformed,
		Payload: UndoPayloadV1{
			Action:    action,
			Depth:     depth,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewUndoVisibilityEvent creates a new undo visibility event
func NewUndoVisibilityEvent(visible bool, depth int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    UndoVisibility,
		Payload: UndoPayloadV1{
			Visible:   visible,
			Depth:     depth,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously. With configuration these could be
	// dispatched to a worker pool instead.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
