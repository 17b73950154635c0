package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/grocery"
	"github.com/bunchesapp/bunches-go/internal/recipe"
	"github.com/bunchesapp/bunches-go/internal/undo"
)

// GroceryHandler handles grocery list HTTP endpoints. Every mutation snapshots
// the list first and pushes a restore action, so the newest change is always
// undoable. The store itself stays undo-agnostic.
type GroceryHandler struct {
	store   grocery.Store
	recipes recipe.Store
	undo    *undo.Stack
}

// NewGroceryHandler creates a new grocery handler
func NewGroceryHandler(store grocery.Store, recipes recipe.Store, undoStack *undo.Stack) *GroceryHandler {
	return &GroceryHandler{
		store:   store,
		recipes: recipes,
		undo:    undoStack,
	}
}

// AddGroceryItemsRequest is the request body for adding items. When recipeId
// is set the items snapshot that recipe's id and title; otherwise they land
// in the Manually Added group.
type AddGroceryItemsRequest struct {
	Items    []string `json:"items" validate:"required,min=1"`
	RecipeID string   `json:"recipeId"`
	Section  string   `json:"section"`
}

// GroceryListResponse is the grouped view of the grocery list
type GroceryListResponse struct {
	Groups []grocery.Group `json:"groups"`
	Total  int             `json:"total"`
}

// GroceryItemsResponse is the response for adding items
type GroceryItemsResponse struct {
	Message string               `json:"message"`
	Items   []domain.GroceryItem `json:"items"`
}

// GroceryItemResponse is the response wrapping a single item
type GroceryItemResponse struct {
	Message string             `json:"message"`
	Item    domain.GroceryItem `json:"item"`
}

// HandleGetGrocery returns the grocery list grouped for display
func (h *GroceryHandler) HandleGetGrocery(w http.ResponseWriter, r *http.Request) {
	groups, err := h.store.Grouped(r.Context())
	if err != nil {
		respondServiceError(w, r, "Get grocery list", err)
		return
	}

	total := 0
	for _, g := range groups {
		total += len(g.Items)
	}

	respondJSON(w, http.StatusOK, GroceryListResponse{
		Groups: groups,
		Total:  total,
	})
}

// HandleAddItems adds items from a recipe or typed in by hand
func (h *GroceryHandler) HandleAddItems(w http.ResponseWriter, r *http.Request) {
	var req AddGroceryItemsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add grocery items"); err != nil {
		return
	}

	before, ok := h.snapshot(w, r, "Add grocery items")
	if !ok {
		return
	}

	var created []domain.GroceryItem
	var err error
	if req.RecipeID != "" {
		var rec domain.Recipe
		rec, err = h.recipes.Recipe(r.Context(), req.RecipeID)
		if err != nil {
			respondServiceError(w, r, "Add grocery items", err)
			return
		}
		created, err = h.store.AddItems(r.Context(), req.Items, rec, req.Section)
	} else {
		created, err = h.store.AddManualItems(r.Context(), req.Items)
	}
	if err != nil {
		respondServiceError(w, r, "Add grocery items", err)
		return
	}

	h.pushRestore(r, UndoKindGroceryAdd,
		fmt.Sprintf("Added %d %s", len(created), itemWord(len(created))), before)

	respondJSON(w, http.StatusCreated, GroceryItemsResponse{
		Message: MsgGroceryItemsAddedSuccess,
		Items:   created,
	})
}

// HandleToggleItem flips an item's checked state
func (h *GroceryHandler) HandleToggleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w, ErrMsgMissingGroceryItemID)
	if !ok {
		return
	}

	before, ok := h.snapshot(w, r, "Toggle grocery item")
	if !ok {
		return
	}

	item, err := h.store.ToggleItemChecked(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Toggle grocery item", err)
		return
	}

	desc := fmt.Sprintf("Unchecked %q", item.Text)
	if item.Checked {
		desc = fmt.Sprintf("Checked off %q", item.Text)
	}
	h.pushRestore(r, UndoKindGroceryToggle, desc, before)

	respondJSON(w, http.StatusOK, GroceryItemResponse{
		Message: desc,
		Item:    item,
	})
}

// HandleRemoveItem deletes a single item from the list
func (h *GroceryHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathID(r, w, ErrMsgMissingGroceryItemID)
	if !ok {
		return
	}

	before, ok := h.snapshot(w, r, "Remove grocery item")
	if !ok {
		return
	}

	if err := h.store.RemoveItem(r.Context(), id); err != nil {
		respondServiceError(w, r, "Remove grocery item", err)
		return
	}

	desc := "Removed an item"
	for _, it := range before {
		if it.ID == id {
			desc = fmt.Sprintf("Removed %q", it.Text)
			break
		}
	}
	h.pushRestore(r, UndoKindGroceryRemove, desc, before)

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGroceryItemRemoved})
}

// HandleClearChecked removes every checked item. Clearing nothing pushes no
// undo action.
func (h *GroceryHandler) HandleClearChecked(w http.ResponseWriter, r *http.Request) {
	before, ok := h.snapshot(w, r, "Clear checked items")
	if !ok {
		return
	}

	removed, err := h.store.ClearCheckedItems(r.Context())
	if err != nil {
		respondServiceError(w, r, "Clear checked items", err)
		return
	}

	if removed > 0 {
		h.pushRestore(r, UndoKindGroceryClearChecked,
			fmt.Sprintf("Cleared %d checked %s", removed, itemWord(removed)), before)
	}

	respondJSON(w, http.StatusOK, CountResponse{
		Message: fmt.Sprintf("Cleared %d checked %s", removed, itemWord(removed)),
		Count:   removed,
	})
}

// HandleClearAll empties the grocery list
func (h *GroceryHandler) HandleClearAll(w http.ResponseWriter, r *http.Request) {
	before, ok := h.snapshot(w, r, "Clear grocery list")
	if !ok {
		return
	}

	removed, err := h.store.ClearAllItems(r.Context())
	if err != nil {
		respondServiceError(w, r, "Clear grocery list", err)
		return
	}

	if removed > 0 {
		h.pushRestore(r, UndoKindGroceryClearAll,
			fmt.Sprintf("Cleared the list (%d %s)", removed, itemWord(removed)), before)
	}

	respondJSON(w, http.StatusOK, CountResponse{
		Message: fmt.Sprintf("Cleared %d %s", removed, itemWord(removed)),
		Count:   removed,
	})
}

// snapshot deep-copies the current list for an undo inverse. A failed read
// aborts the request; mutating without a restorable snapshot would break the
// undo guarantee.
func (h *GroceryHandler) snapshot(w http.ResponseWriter, r *http.Request, opName string) ([]domain.GroceryItem, bool) {
	before, err := h.store.Items(r.Context())
	if err != nil {
		respondServiceError(w, r, opName, err)
		return nil, false
	}
	return before, true
}

// pushRestore records a whole-list restore as the undo inverse of the
// mutation that just committed
func (h *GroceryHandler) pushRestore(r *http.Request, kind, description string, before []domain.GroceryItem) {
	h.undo.Push(r.Context(), undo.Action{
		Kind:        kind,
		Description: description,
		Inverse: func(ctx context.Context) error {
			return h.store.Replace(ctx, before)
		},
	})
}

func itemWord(n int) string {
	if n == 1 {
		return "item"
	}
	return "items"
}
