package grocery

import (
	"context"

	"github.com/bunchesapp/bunches-go/internal/domain"
)

// Group is one display section of the grocery list, keyed by the recipe the
// items came from.
type Group struct {
	Title string               `json:"title"`
	Items []domain.GroceryItem `json:"items"`
}

func (s *store) Grouped(ctx context.Context) ([]Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return groupItems(s.items), nil
}

// groupItems partitions by recipe title in order of first appearance. Items
// without a recipe land in the "Manually Added" bucket. Within a group every
// unchecked item comes before every checked one; insertion order is otherwise
// kept.
func groupItems(items []domain.GroceryItem) []Group {
	order := make([]string, 0)
	byTitle := make(map[string][]domain.GroceryItem)

	for _, item := range items {
		title := item.RecipeTitle
		if title == "" {
			title = GroupManuallyAdded
		}
		if _, seen := byTitle[title]; !seen {
			order = append(order, title)
		}
		byTitle[title] = append(byTitle[title], item.Clone())
	}

	groups := make([]Group, 0, len(order))
	for _, title := range order {
		members := byTitle[title]
		sorted := make([]domain.GroceryItem, 0, len(members))
		for _, item := range members {
			if !item.Checked {
				sorted = append(sorted, item)
			}
		}
		for _, item := range members {
			if item.Checked {
				sorted = append(sorted, item)
			}
		}
		groups = append(groups, Group{Title: title, Items: sorted})
	}
	return groups
}
