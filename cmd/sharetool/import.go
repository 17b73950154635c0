package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/bunchesapp/bunches-go/internal/config"
	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/event"
	"github.com/bunchesapp/bunches-go/internal/exchange"
	"github.com/bunchesapp/bunches-go/internal/recipe"
	"github.com/bunchesapp/bunches-go/internal/storage/file"
)

type ImportCommand struct{}

func (c *ImportCommand) Name() string {
	return "import"
}

func (c *ImportCommand) Description() string {
	return "Decode a share code and save its recipes into a data dir"
}

func (c *ImportCommand) Run(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	in := fs.String("in", "", "file containing the share code")
	dataDir := fs.String("data", config.DefaultDataDir, "data directory (file backend)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("import: -in is required")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read %s: %w", *in, err)
	}

	decoded, err := exchange.Decode(string(data))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	kv, err := file.New(*dataDir)
	if err != nil {
		return fmt.Errorf("open data dir %s: %w", *dataDir, err)
	}
	store := recipe.NewStore(kv, nil)
	ctx := context.Background()

	switch decoded.Type {
	case exchange.TypeRecipe:
		return c.importRecipe(ctx, store, decoded.Recipe)
	case exchange.TypeCookbook:
		return c.importCookbook(ctx, store, decoded.Name, decoded.Recipes)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownPayloadType, decoded.Type)
	}
}

// importRecipe files the recipe under its shared folder when that folder is
// registered here, and under All Recipes otherwise.
func (c *ImportCommand) importRecipe(ctx context.Context, store recipe.Store, rec domain.Recipe) error {
	target := domain.FolderAllRecipes
	if rec.Folder != "" && rec.Folder != domain.FolderAllRecipes {
		registered, err := store.Folders(ctx)
		if err != nil {
			return err
		}
		for _, name := range registered {
			if name == rec.Folder {
				target = rec.Folder
				break
			}
		}
	}
	rec.Folder = target

	saved, err := store.Save(ctx, rec, event.RecipeSourceImported)
	if err != nil {
		return err
	}
	PrintSuccess("Imported %q into %s", saved.Title, saved.Folder)
	return nil
}

// importCookbook recreates the cookbook's folder (unless the name is reserved
// or blank) and files every shared recipe under it.
func (c *ImportCommand) importCookbook(ctx context.Context, store recipe.Store, name string, recipes []domain.Recipe) error {
	target := domain.FolderAllRecipes
	if name != "" && !domain.IsReservedFolder(name) {
		if err := store.AddFolder(ctx, name); err != nil && !errors.Is(err, domain.ErrFolderExists) {
			return err
		}
		target = name
	}

	for _, rec := range recipes {
		rec.Folder = target
		if _, err := store.Save(ctx, rec, event.RecipeSourceImported); err != nil {
			return err
		}
	}
	PrintSuccess("Imported %d recipes into %s", len(recipes), target)
	return nil
}
