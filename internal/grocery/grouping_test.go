package grocery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bunchesapp/bunches-go/internal/domain"
)

func TestGrouped(t *testing.T) {
	store := NewStore(newFakeKV(), nil)
	ctx := context.Background()

	_, err := store.AddItems(ctx, []string{"2 tortillas", "1 lb beef", "salsa"}, tacos(), "main")
	require.NoError(t, err)
	_, err = store.AddManualItems(ctx, []string{"paper towels"})
	require.NoError(t, err)
	_, err = store.AddItems(ctx, []string{"flour"}, domain.Recipe{ID: "r-bread", Title: "Bread"}, "")
	require.NoError(t, err)

	groups, err := store.Grouped(ctx)
	require.NoError(t, err)

	require.Len(t, groups, 3)
	assert.Equal(t, "Tacos", groups[0].Title, "groups follow first appearance")
	assert.Equal(t, GroupManuallyAdded, groups[1].Title)
	assert.Equal(t, "Bread", groups[2].Title)

	assert.Len(t, groups[0].Items, 3)
	assert.Len(t, groups[1].Items, 1)
	assert.Len(t, groups[2].Items, 1)
}

func TestGrouped_UncheckedBeforeChecked(t *testing.T) {
	store := NewStore(newFakeKV(), nil)
	ctx := context.Background()

	created, err := store.AddItems(ctx, []string{"first", "second", "third"}, tacos(), "")
	require.NoError(t, err)
	_, err = store.ToggleItemChecked(ctx, created[0].ID)
	require.NoError(t, err)

	groups, err := store.Grouped(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	texts := make([]string, 0, 3)
	for _, item := range groups[0].Items {
		texts = append(texts, item.Text)
	}
	assert.Equal(t, []string{"second", "third", "first"}, texts)
	assert.False(t, groups[0].Items[0].Checked)
	assert.True(t, groups[0].Items[2].Checked)
}

func TestGrouped_EmptyList(t *testing.T) {
	store := NewStore(newFakeKV(), nil)
	ctx := context.Background()

	groups, err := store.Grouped(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGroupItems_StableWithinCheckState(t *testing.T) {
	items := []domain.GroceryItem{
		{ID: "1", Text: "a", RecipeTitle: "Soup", Checked: true},
		{ID: "2", Text: "b", RecipeTitle: "Soup"},
		{ID: "3", Text: "c", RecipeTitle: "Soup", Checked: true},
		{ID: "4", Text: "d", RecipeTitle: "Soup"},
	}

	groups := groupItems(items)
	require.Len(t, groups, 1)

	texts := make([]string, 0, 4)
	for _, item := range groups[0].Items {
		texts = append(texts, item.Text)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, texts)
}
