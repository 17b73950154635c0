// Package filter implements folder visibility rules for recipe lists.
//
// The three reserved folders are views over the whole collection rather
// than containers: "All Recipes" shows every live recipe, "Favorites"
// shows live favorites, and "Recently Deleted" shows tombstoned recipes.
// A custom folder shows the live recipes assigned to it.
package filter

import (
	"github.com/bunchesapp/bunches-go/internal/domain"
)

// Apply returns the recipes visible in the given folder, preserving the
// input order. Deleted recipes are only visible in "Recently Deleted";
// every other view excludes them.
func Apply(recipes []domain.Recipe, folder string) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if Visible(r, folder) {
			out = append(out, r)
		}
	}
	return out
}

// Visible reports whether a single recipe belongs to the given folder view.
func Visible(r domain.Recipe, folder string) bool {
	switch folder {
	case domain.FolderRecentlyDeleted:
		return r.IsDeleted()
	case domain.FolderAllRecipes:
		return !r.IsDeleted()
	case domain.FolderFavorites:
		return !r.IsDeleted() && r.IsFavorite
	default:
		return !r.IsDeleted() && r.Folder == folder
	}
}

// Counts returns the number of visible recipes per folder for the three
// reserved folders plus every name in folders. Custom folders with no
// recipes still appear with a zero count so the sidebar can render them.
func Counts(recipes []domain.Recipe, folders []string) map[string]int {
	counts := make(map[string]int, len(folders)+3)
	for _, name := range domain.ReservedFolders() {
		counts[name] = 0
	}
	for _, name := range folders {
		counts[name] = 0
	}

	for _, r := range recipes {
		if r.IsDeleted() {
			counts[domain.FolderRecentlyDeleted]++
			continue
		}
		counts[domain.FolderAllRecipes]++
		if r.IsFavorite {
			counts[domain.FolderFavorites]++
		}
		if r.Folder != "" && !domain.IsReservedFolder(r.Folder) {
			if _, ok := counts[r.Folder]; ok {
				counts[r.Folder]++
			}
		}
	}
	return counts
}
