package recipe

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/filter"
)

// Recipes returns a copy of the full collection, newest first.
func (s *store) Recipes(ctx context.Context) ([]domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return cloneRecipes(s.recipes), nil
}

// Recipe returns the recipe with the given id.
func (s *store) Recipe(ctx context.Context, id string) (domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return domain.Recipe{}, err
	}

	idx := indexOf(s.recipes, id)
	if idx < 0 {
		return domain.Recipe{}, fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, id)
	}
	return s.recipes[idx].Clone(), nil
}

// FilteredRecipes returns the recipes visible in the given folder view.
func (s *store) FilteredRecipes(ctx context.Context, folder string) ([]domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return cloneRecipes(filter.Apply(s.recipes, folder)), nil
}

// Save stores a new recipe at the head of the collection. Missing fields are
// normalized: a blank ID gets a fresh UUID, a zero ExtractedAt is stamped
// now, and a blank folder defaults to "All Recipes". Returns the stored
// recipe. Source tags the origin for events ("manual", "extracted",
// "imported").
func (s *store) Save(ctx context.Context, r domain.Recipe, source string) (domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return domain.Recipe{}, err
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.ExtractedAt.IsZero() {
		r.ExtractedAt = time.Now().UTC()
	}
	if r.Folder == "" {
		r.Folder = domain.FolderAllRecipes
	}

	next := make([]domain.Recipe, 0, len(s.recipes)+1)
	next = append(next, r.Clone())
	next = append(next, s.recipes...)

	if err := s.persistRecipes(ctx, next); err != nil {
		return domain.Recipe{}, err
	}
	s.recipes = next

	s.publish(ctx, event.NewRecipeSavedEvent(r.ID, r.Title, r.Folder, source))
	return r, nil
}

// Update replaces the recipe with the matching ID. A missing ID is a silent
// no-op: no error, no write.
func (s *store) Update(ctx context.Context, r domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	idx := indexOf(s.recipes, r.ID)
	if idx < 0 {
		return nil
	}

	next := copyRecipes(s.recipes)
	next[idx] = r.Clone()

	if err := s.persistRecipes(ctx, next); err != nil {
		return err
	}
	s.recipes = next
	return nil
}

// SoftDelete tombstones a recipe so it appears only in "Recently Deleted".
func (s *store) SoftDelete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	idx := indexOf(s.recipes, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, id)
	}

	now := time.Now().UTC()
	next := copyRecipes(s.recipes)
	next[idx].DeletedAt = &now

	if err := s.persistRecipes(ctx, next); err != nil {
		return err
	}
	s.recipes = next

	s.publish(ctx, event.NewRecipeDeletedEvent([]string{id}, event.DeleteModeSoft))
	return nil
}

// Restore clears a recipe's tombstone, returning it to its folder exactly as
// it was before deletion.
func (s *store) Restore(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	idx := indexOf(s.recipes, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, id)
	}

	next := copyRecipes(s.recipes)
	next[idx].DeletedAt = nil

	if err := s.persistRecipes(ctx, next); err != nil {
		return err
	}
	s.recipes = next

	s.publish(ctx, event.NewRecipeRestoredEvent(id))
	return nil
}

// BulkDelete tombstones every listed recipe in one persisted write and
// returns how many were actually modified. Recipes already in the trash and
// unknown ids are skipped.
func (s *store) BulkDelete(ctx context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ids) == 0 {
		return 0, domain.ErrEmptySelection
	}

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}

	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}

	now := time.Now().UTC()
	next := copyRecipes(s.recipes)
	modified := make([]string, 0, len(ids))
	for i := range next {
		if _, ok := selected[next[i].ID]; !ok {
			continue
		}
		if next[i].DeletedAt != nil {
			continue
		}
		next[i].DeletedAt = &now
		modified = append(modified, next[i].ID)
	}

	if len(modified) == 0 {
		return 0, nil
	}

	if err := s.persistRecipes(ctx, next); err != nil {
		return 0, err
	}
	s.recipes = next

	s.publish(ctx, event.NewRecipeDeletedEvent(modified, event.DeleteModeSoft))
	return len(modified), nil
}

// PermanentlyDelete hard-removes a tombstoned recipe. Only trash contents
// may be permanently removed; a live recipe yields ErrRecipeNotDeleted.
func (s *store) PermanentlyDelete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	idx := indexOf(s.recipes, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, id)
	}
	if s.recipes[idx].DeletedAt == nil {
		return fmt.Errorf("%w: %s", domain.ErrRecipeNotDeleted, id)
	}

	next := make([]domain.Recipe, 0, len(s.recipes)-1)
	next = append(next, s.recipes[:idx]...)
	next = append(next, s.recipes[idx+1:]...)

	if err := s.persistRecipes(ctx, next); err != nil {
		return err
	}
	s.recipes = next

	s.publish(ctx, event.NewRecipeDeletedEvent([]string{id}, event.DeleteModePermanent))
	return nil
}

// EmptyTrash hard-removes every tombstoned recipe and returns the count.
func (s *store) EmptyTrash(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}

	next := make([]domain.Recipe, 0, len(s.recipes))
	removed := make([]string, 0)
	for i := range s.recipes {
		if s.recipes[i].DeletedAt != nil {
			removed = append(removed, s.recipes[i].ID)
			continue
		}
		next = append(next, s.recipes[i])
	}

	if len(removed) == 0 {
		return 0, nil
	}

	if err := s.persistRecipes(ctx, next); err != nil {
		return 0, err
	}
	s.recipes = next

	s.publish(ctx, event.NewRecipeDeletedEvent(removed, event.DeleteModePermanent))
	return len(removed), nil
}

// PurgeDeletedBefore hard-removes tombstoned recipes whose deletion is older
// than cutoff. Used by the trash retention worker.
func (s *store) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}

	next := make([]domain.Recipe, 0, len(s.recipes))
	removed := make([]string, 0)
	for i := range s.recipes {
		if s.recipes[i].DeletedAt != nil && s.recipes[i].DeletedAt.Before(cutoff) {
			removed = append(removed, s.recipes[i].ID)
			continue
		}
		next = append(next, s.recipes[i])
	}

	if len(removed) == 0 {
		return 0, nil
	}

	if err := s.persistRecipes(ctx, next); err != nil {
		return 0, err
	}
	s.recipes = next

	s.publish(ctx, event.NewRecipeDeletedEvent(removed, event.DeleteModePermanent))
	return len(removed), nil
}

// ToggleFavorite flips the favorite flag and returns the updated recipe.
func (s *store) ToggleFavorite(ctx context.Context, id string) (domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return domain.Recipe{}, err
	}

	idx := indexOf(s.recipes, id)
	if idx < 0 {
		return domain.Recipe{}, fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, id)
	}

	next := copyRecipes(s.recipes)
	next[idx].IsFavorite = !next[idx].IsFavorite

	if err := s.persistRecipes(ctx, next); err != nil {
		return domain.Recipe{}, err
	}
	s.recipes = next

	return next[idx].Clone(), nil
}

// MoveToFolder reassigns a recipe to a reserved or registered folder.
// "Recently Deleted" is rejected; tombstones are never set via move.
func (s *store) MoveToFolder(ctx context.Context, id, folder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	if folder == domain.FolderRecentlyDeleted {
		return fmt.Errorf("%w: %s", domain.ErrFolderReserved, folder)
	}
	if !domain.IsReservedFolder(folder) && !containsFolder(s.folders, folder) {
		return fmt.Errorf("%w: %s", domain.ErrFolderNotFound, folder)
	}

	idx := indexOf(s.recipes, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrRecipeNotFound, id)
	}

	next := copyRecipes(s.recipes)
	next[idx].Folder = folder

	if err := s.persistRecipes(ctx, next); err != nil {
		return err
	}
	s.recipes = next
	return nil
}
