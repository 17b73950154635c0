package domain

import "time"

// GroceryItem is a single line on the grocery list.
// RecipeID and RecipeTitle are snapshots captured when the item is added.
// They are weak references: deleting the recipe later leaves them dangling
// on purpose, so the list keeps working standalone.
type GroceryItem struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	RecipeID    string    `json:"recipeId,omitempty"`
	RecipeTitle string    `json:"recipeTitle,omitempty"`
	Section     string    `json:"section,omitempty"`
	Checked     bool      `json:"checked"`
	AddedAt     time.Time `json:"addedAt"`
}

// Clone returns a copy of the item.
func (g GroceryItem) Clone() GroceryItem {
	return g
}

// CloneGroceryItems returns a deep copy of a grocery list snapshot.
func CloneGroceryItems(items []GroceryItem) []GroceryItem {
	if items == nil {
		return nil
	}
	out := make([]GroceryItem, len(items))
	copy(out, items)
	return out
}
