package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bunchesapp/bunches-go/internal/domain"
)

func testRecipes() []domain.Recipe {
	deletedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Recipe{
		{ID: "r1", Title: "Tacos", Folder: domain.FolderAllRecipes, IsFavorite: true},
		{ID: "r2", Title: "Ramen", Folder: "Weeknight"},
		{ID: "r3", Title: "Old Stew", Folder: "Weeknight", DeletedAt: &deletedAt},
		{ID: "r4", Title: "Pancakes", Folder: "Breakfast", IsFavorite: true},
		{ID: "r5", Title: "Deleted Favorite", Folder: domain.FolderAllRecipes, IsFavorite: true, DeletedAt: &deletedAt},
	}
}

func ids(recipes []domain.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	recipes := testRecipes()

	tests := []struct {
		name   string
		folder string
		want   []string
	}{
		{name: "AllRecipesExcludesDeleted", folder: domain.FolderAllRecipes, want: []string{"r1", "r2", "r4"}},
		{name: "FavoritesExcludesDeleted", folder: domain.FolderFavorites, want: []string{"r1", "r4"}},
		{name: "RecentlyDeletedOnlyDeleted", folder: domain.FolderRecentlyDeleted, want: []string{"r3", "r5"}},
		{name: "CustomFolder", folder: "Weeknight", want: []string{"r2"}},
		{name: "EmptyCustomFolder", folder: "Desserts", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(recipes, tt.folder)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_PreservesOrder(t *testing.T) {
	recipes := []domain.Recipe{
		{ID: "newest"},
		{ID: "middle"},
		{ID: "oldest"},
	}

	got := Apply(recipes, domain.FolderAllRecipes)
	assert.Equal(t, []string{"newest", "middle", "oldest"}, ids(got))
}

func TestCounts(t *testing.T) {
	recipes := testRecipes()
	counts := Counts(recipes, []string{"Weeknight", "Breakfast", "Desserts"})

	assert.Equal(t, 3, counts[domain.FolderAllRecipes])
	assert.Equal(t, 2, counts[domain.FolderFavorites])
	assert.Equal(t, 2, counts[domain.FolderRecentlyDeleted])
	assert.Equal(t, 1, counts["Weeknight"])
	assert.Equal(t, 1, counts["Breakfast"])
	assert.Equal(t, 0, counts["Desserts"])
}

func TestCounts_IgnoresUnregisteredFolder(t *testing.T) {
	recipes := []domain.Recipe{
		{ID: "r1", Folder: "Ghost"},
	}

	counts := Counts(recipes, nil)

	assert.Equal(t, 1, counts[domain.FolderAllRecipes])
	_, ok := counts["Ghost"]
	assert.False(t, ok, "unregistered folder should not gain a count entry")
}

func TestCounts_EmptyCollection(t *testing.T) {
	counts := Counts(nil, []string{"Weeknight"})

	assert.Equal(t, 0, counts[domain.FolderAllRecipes])
	assert.Equal(t, 0, counts[domain.FolderFavorites])
	assert.Equal(t, 0, counts[domain.FolderRecentlyDeleted])
	assert.Equal(t, 0, counts["Weeknight"])
}
