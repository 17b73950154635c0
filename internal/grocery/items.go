package grocery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/event"
)

func (s *store) Items(ctx context.Context) ([]domain.GroceryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return domain.CloneGroceryItems(s.items), nil
}

func (s *store) AddItems(ctx context.Context, texts []string, recipe domain.Recipe, section string) ([]domain.GroceryItem, error) {
	return s.addItems(ctx, texts, recipe.ID, recipe.Title, section)
}

func (s *store) AddManualItems(ctx context.Context, texts []string) ([]domain.GroceryItem, error) {
	return s.addItems(ctx, texts, "", "", "")
}

func (s *store) addItems(ctx context.Context, texts []string, recipeID, recipeTitle, section string) ([]domain.GroceryItem, error) {
	now := time.Now().UTC()

	created := make([]domain.GroceryItem, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		created = append(created, domain.GroceryItem{
			ID:          uuid.NewString(),
			Text:        text,
			RecipeID:    recipeID,
			RecipeTitle: recipeTitle,
			Section:     section,
			AddedAt:     now,
		})
	}
	if len(created) == 0 {
		return nil, domain.ErrEmptySelection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}

	next := append(domain.CloneGroceryItems(s.items), created...)
	if err := s.persistItems(ctx, next); err != nil {
		return nil, err
	}
	s.items = next

	s.publish(ctx, event.NewGroceryItemsAddedEvent(recipeID, len(created)))
	return domain.CloneGroceryItems(created), nil
}

func (s *store) ToggleItemChecked(ctx context.Context, id string) (domain.GroceryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return domain.GroceryItem{}, err
	}

	idx := indexOf(s.items, id)
	if idx < 0 {
		return domain.GroceryItem{}, fmt.Errorf("%w: %s", domain.ErrGroceryItemNotFound, id)
	}

	next := domain.CloneGroceryItems(s.items)
	next[idx].Checked = !next[idx].Checked
	if err := s.persistItems(ctx, next); err != nil {
		return domain.GroceryItem{}, err
	}
	s.items = next

	return next[idx].Clone(), nil
}

func (s *store) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	idx := indexOf(s.items, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrGroceryItemNotFound, id)
	}

	next := make([]domain.GroceryItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	if err := s.persistItems(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *store) ClearCheckedItems(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}

	next := make([]domain.GroceryItem, 0, len(s.items))
	for _, item := range s.items {
		if !item.Checked {
			next = append(next, item)
		}
	}
	removed := len(s.items) - len(next)
	if removed == 0 {
		return 0, nil
	}

	if err := s.persistItems(ctx, next); err != nil {
		return 0, err
	}
	s.items = next

	s.publish(ctx, event.NewGroceryClearedEvent(event.ClearScopeChecked, removed))
	return removed, nil
}

func (s *store) ClearAllItems(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}

	removed := len(s.items)
	if removed == 0 {
		return 0, nil
	}

	next := []domain.GroceryItem{}
	if err := s.persistItems(ctx, next); err != nil {
		return 0, err
	}
	s.items = next

	s.publish(ctx, event.NewGroceryClearedEvent(event.ClearScopeAll, removed))
	return removed, nil
}

func (s *store) Replace(ctx context.Context, items []domain.GroceryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	next := domain.CloneGroceryItems(items)
	if next == nil {
		next = []domain.GroceryItem{}
	}
	if err := s.persistItems(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}
