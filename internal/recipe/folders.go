package recipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/filter"
)

// Folders returns a copy of the custom folder registry in creation order.
func (s *store) Folders(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return append([]string{}, s.folders...), nil
}

// FolderCounts returns visible-recipe counts for the reserved folders and
// every registered custom folder.
func (s *store) FolderCounts(ctx context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	return filter.Counts(s.recipes, s.folders), nil
}

// AddFolder registers a new custom folder. Names are trimmed; blank names
// and names colliding with reserved or existing folders are rejected.
func (s *store) AddFolder(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrFolderNameEmpty
	}
	if domain.IsReservedFolder(name) || containsFolder(s.folders, name) {
		return fmt.Errorf("%w: %s", domain.ErrFolderExists, name)
	}

	next := append(append([]string{}, s.folders...), name)

	if err := s.persistFolders(ctx, next); err != nil {
		return err
	}
	s.folders = next

	s.publish(ctx, event.NewFolderCreatedEvent(name))
	return nil
}

// RenameFolder renames a custom folder and rewrites every recipe that
// references it. The recipe collection is written first in one batch, the
// registry second; if the second write fails, re-running the rename
// converges because the recipe batch is idempotent.
func (s *store) RenameFolder(ctx context.Context, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return err
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.ErrFolderNameEmpty
	}
	if oldName == newName {
		return nil
	}
	if domain.IsReservedFolder(oldName) {
		return fmt.Errorf("%w: %s", domain.ErrFolderReserved, oldName)
	}
	if !containsFolder(s.folders, oldName) {
		return fmt.Errorf("%w: %s", domain.ErrFolderNotFound, oldName)
	}
	if domain.IsReservedFolder(newName) || containsFolder(s.folders, newName) {
		return fmt.Errorf("%w: %s", domain.ErrFolderExists, newName)
	}

	nextRecipes := copyRecipes(s.recipes)
	touched := 0
	for i := range nextRecipes {
		if nextRecipes[i].Folder == oldName {
			nextRecipes[i].Folder = newName
			touched++
		}
	}

	if touched > 0 {
		if err := s.persistRecipes(ctx, nextRecipes); err != nil {
			return err
		}
		s.recipes = nextRecipes
	}

	nextFolders := append([]string{}, s.folders...)
	for i, f := range nextFolders {
		if f == oldName {
			nextFolders[i] = newName
			break
		}
	}

	if err := s.persistFolders(ctx, nextFolders); err != nil {
		return err
	}
	s.folders = nextFolders

	s.publish(ctx, event.NewFolderRenamedEvent(oldName, newName, touched))
	return nil
}

// DeleteFolder removes a custom folder, reassigning its recipes to
// "All Recipes" in one batched write before the registry shrinks. Returns
// how many recipes were reassigned.
func (s *store) DeleteFolder(ctx context.Context, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(ctx); err != nil {
		return 0, err
	}

	if domain.IsReservedFolder(name) {
		return 0, fmt.Errorf("%w: %s", domain.ErrFolderReserved, name)
	}
	if !containsFolder(s.folders, name) {
		return 0, fmt.Errorf("%w: %s", domain.ErrFolderNotFound, name)
	}

	nextRecipes := copyRecipes(s.recipes)
	touched := 0
	for i := range nextRecipes {
		if nextRecipes[i].Folder == name {
			nextRecipes[i].Folder = domain.FolderAllRecipes
			touched++
		}
	}

	if touched > 0 {
		if err := s.persistRecipes(ctx, nextRecipes); err != nil {
			return 0, err
		}
		s.recipes = nextRecipes
	}

	nextFolders := make([]string, 0, len(s.folders)-1)
	for _, f := range s.folders {
		if f != name {
			nextFolders = append(nextFolders, f)
		}
	}

	if err := s.persistFolders(ctx, nextFolders); err != nil {
		return 0, err
	}
	s.folders = nextFolders

	s.publish(ctx, event.NewFolderDeletedEvent(name, touched))
	return touched, nil
}
