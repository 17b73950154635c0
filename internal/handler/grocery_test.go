package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/grocery"
	"github.com/bunchesapp/bunches-go/internal/recipe"
	"github.com/bunchesapp/bunches-go/internal/storage/memory"
	"github.com/bunchesapp/bunches-go/internal/undo"
)

// groceryEnv wires the grocery and undo handlers the way the server does so
// tests can drive mutations and undos through HTTP alone.
type groceryEnv struct {
	store   grocery.Store
	recipes recipe.Store
	stack   *undo.Stack
	router  http.Handler
}

func newGroceryEnv(t *testing.T) *groceryEnv {
	t.Helper()

	kv := memory.New()
	env := &groceryEnv{
		store:   grocery.NewStore(kv, nil),
		recipes: recipe.NewStore(kv, nil),
		stack:   undo.NewStack(time.Minute, nil),
	}

	gh := NewGroceryHandler(env.store, env.recipes, env.stack)
	uh := NewUndoHandler(env.stack)

	r := chi.NewRouter()
	r.Get("/grocery", gh.HandleGetGrocery)
	r.Post("/grocery/items", gh.HandleAddItems)
	r.Post("/grocery/items/{id}/toggle", gh.HandleToggleItem)
	r.Delete("/grocery/items/{id}", gh.HandleRemoveItem)
	r.Post("/grocery/clear-checked", gh.HandleClearChecked)
	r.Post("/grocery/clear", gh.HandleClearAll)
	r.Get("/undo", uh.HandleGetState)
	r.Post("/undo", uh.HandlePerformUndo)
	env.router = r
	return env
}

func (e *groceryEnv) items(t *testing.T) []domain.GroceryItem {
	t.Helper()
	items, err := e.store.Items(context.Background())
	require.NoError(t, err)
	return items
}

func TestHandleAddGroceryItems(t *testing.T) {
	t.Run("manual items land in the manual group", func(t *testing.T) {
		env := newGroceryEnv(t)

		rec := doJSON(t, env.router, "POST", "/grocery/items", AddGroceryItemsRequest{
			Items: []string{"milk", "   ", "eggs"},
		})

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp GroceryItemsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Items, 2, "blank lines are dropped")
		assert.Empty(t, resp.Items[0].RecipeID)

		list := doJSON(t, env.router, "GET", "/grocery", nil)
		var grouped GroceryListResponse
		require.NoError(t, json.Unmarshal(list.Body.Bytes(), &grouped))
		assert.Equal(t, 2, grouped.Total)
		require.Len(t, grouped.Groups, 1)
		assert.Equal(t, grocery.GroupManuallyAdded, grouped.Groups[0].Title)

		assert.Equal(t, 1, env.stack.Len())
		desc, ok := env.stack.Peek()
		require.True(t, ok)
		assert.Equal(t, "Added 2 items", desc)
	})

	t.Run("recipe items carry the recipe title", func(t *testing.T) {
		env := newGroceryEnv(t)
		saved := seedRecipe(t, env.recipes, domain.Recipe{Title: "Curry"})

		rec := doJSON(t, env.router, "POST", "/grocery/items", AddGroceryItemsRequest{
			Items:    []string{"coconut milk"},
			RecipeID: saved.ID,
			Section:  "Sauce",
		})

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp GroceryItemsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Items, 1)
		assert.Equal(t, saved.ID, resp.Items[0].RecipeID)
		assert.Equal(t, "Curry", resp.Items[0].RecipeTitle)
		assert.Equal(t, "Sauce", resp.Items[0].Section)
	})

	t.Run("unknown recipe id", func(t *testing.T) {
		env := newGroceryEnv(t)

		rec := doJSON(t, env.router, "POST", "/grocery/items", AddGroceryItemsRequest{
			Items:    []string{"flour"},
			RecipeID: "ghost",
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgRecipeNotFoundError)
		assert.Empty(t, env.items(t))
		assert.Zero(t, env.stack.Len())
	})

	t.Run("all blank items", func(t *testing.T) {
		env := newGroceryEnv(t)

		rec := doJSON(t, env.router, "POST", "/grocery/items", AddGroceryItemsRequest{
			Items: []string{"   ", "\t"},
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgEmptySelectionError)
		assert.Zero(t, env.stack.Len())
	})

	t.Run("no items fails validation", func(t *testing.T) {
		env := newGroceryEnv(t)

		rec := doJSON(t, env.router, "POST", "/grocery/items", AddGroceryItemsRequest{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleToggleGroceryItem(t *testing.T) {
	env := newGroceryEnv(t)
	created, err := env.store.AddManualItems(context.Background(), []string{"milk"})
	require.NoError(t, err)

	rec := doJSON(t, env.router, "POST", "/grocery/items/"+created[0].ID+"/toggle", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp GroceryItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Item.Checked)
	assert.Equal(t, `Checked off "milk"`, resp.Message)

	rec = doJSON(t, env.router, "POST", "/grocery/items/"+created[0].ID+"/toggle", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Item.Checked)
	assert.Equal(t, `Unchecked "milk"`, resp.Message)

	rec = doJSON(t, env.router, "POST", "/grocery/items/ghost/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgGroceryItemNotFoundError)
}

func TestHandleRemoveGroceryItem(t *testing.T) {
	env := newGroceryEnv(t)
	created, err := env.store.AddManualItems(context.Background(), []string{"milk", "eggs"})
	require.NoError(t, err)

	rec := doJSON(t, env.router, "DELETE", "/grocery/items/"+created[0].ID, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgGroceryItemRemoved)

	remaining := env.items(t)
	require.Len(t, remaining, 1)
	assert.Equal(t, "eggs", remaining[0].Text)

	desc, ok := env.stack.Peek()
	require.True(t, ok)
	assert.Equal(t, `Removed "milk"`, desc)

	rec = doJSON(t, env.router, "DELETE", "/grocery/items/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleClearChecked(t *testing.T) {
	t.Run("nothing checked pushes no undo", func(t *testing.T) {
		env := newGroceryEnv(t)
		_, err := env.store.AddManualItems(context.Background(), []string{"milk"})
		require.NoError(t, err)

		rec := doJSON(t, env.router, "POST", "/grocery/clear-checked", nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp CountResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Zero(t, resp.Count)
		assert.Zero(t, env.stack.Len())
	})

	t.Run("removes only checked items", func(t *testing.T) {
		env := newGroceryEnv(t)
		created, err := env.store.AddManualItems(context.Background(), []string{"milk", "eggs"})
		require.NoError(t, err)
		_, err = env.store.ToggleItemChecked(context.Background(), created[0].ID)
		require.NoError(t, err)

		rec := doJSON(t, env.router, "POST", "/grocery/clear-checked", nil)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp CountResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)

		remaining := env.items(t)
		require.Len(t, remaining, 1)
		assert.Equal(t, "eggs", remaining[0].Text)
		assert.Equal(t, 1, env.stack.Len())
	})
}

func TestHandleClearAll(t *testing.T) {
	env := newGroceryEnv(t)
	_, err := env.store.AddManualItems(context.Background(), []string{"milk", "eggs"})
	require.NoError(t, err)

	rec := doJSON(t, env.router, "POST", "/grocery/clear", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp CountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Empty(t, env.items(t))
}

// TestGroceryUndoRoundTrip walks a realistic session entirely over HTTP: three
// mutations, then undo all the way back to an empty list.
func TestGroceryUndoRoundTrip(t *testing.T) {
	env := newGroceryEnv(t)

	rec := doJSON(t, env.router, "POST", "/grocery/items", AddGroceryItemsRequest{
		Items: []string{"milk", "eggs", "butter"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var added GroceryItemsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	require.Len(t, added.Items, 3)

	rec = doJSON(t, env.router, "POST", "/grocery/items/"+added.Items[0].ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, env.router, "POST", "/grocery/clear-checked", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.items(t), 2)

	rec = doJSON(t, env.router, "GET", "/undo", nil)
	var state UndoStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.True(t, state.Visible)
	assert.Equal(t, 3, state.Depth)
	assert.Equal(t, "Cleared 1 checked item", state.Description)

	// Undo the clear: the checked milk comes back.
	rec = doJSON(t, env.router, "POST", "/undo", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var performed UndoPerformedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &performed))
	assert.Equal(t, "Undid: Cleared 1 checked item", performed.Message)
	assert.Equal(t, 2, performed.Depth)
	assert.True(t, performed.Visible)

	items := env.items(t)
	require.Len(t, items, 3)
	assert.True(t, items[0].Checked)

	// Undo the toggle: milk is unchecked again.
	rec = doJSON(t, env.router, "POST", "/undo", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	items = env.items(t)
	require.Len(t, items, 3)
	assert.False(t, items[0].Checked)

	// Undo the add: back to an empty list, affordance gone.
	rec = doJSON(t, env.router, "POST", "/undo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &performed))
	assert.Zero(t, performed.Depth)
	assert.False(t, performed.Visible)
	assert.Empty(t, env.items(t))

	rec = doJSON(t, env.router, "POST", "/undo", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgNothingToUndoError)
}

func TestHandleGetUndoStateEmpty(t *testing.T) {
	env := newGroceryEnv(t)

	rec := doJSON(t, env.router, "GET", "/undo", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var state UndoStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.False(t, state.Visible)
	assert.Zero(t, state.Depth)
	assert.Empty(t, state.Description)
}
