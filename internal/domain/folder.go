package domain

// Reserved folder names. These never appear in the custom folder registry;
// their contents are derived from recipe state.
const (
	FolderAllRecipes      = "All Recipes"
	FolderFavorites       = "Favorites"
	FolderRecentlyDeleted = "Recently Deleted"
)

// ReservedFolders returns the reserved folder names in sidebar order.
func ReservedFolders() []string {
	return []string{FolderAllRecipes, FolderFavorites, FolderRecentlyDeleted}
}

// IsReservedFolder reports whether name is one of the reserved folders.
// Matching is exact: reserved names are fixed strings, not patterns.
func IsReservedFolder(name string) bool {
	switch name {
	case FolderAllRecipes, FolderFavorites, FolderRecentlyDeleted:
		return true
	}
	return false
}
