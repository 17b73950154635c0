package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/bunchesapp/bunches-go/internal/config"
	"github.com/bunchesapp/bunches-go/internal/exchange"
	"github.com/bunchesapp/bunches-go/internal/recipe"
	"github.com/bunchesapp/bunches-go/internal/storage/file"
)

type ExportCommand struct{}

func (c *ExportCommand) Name() string {
	return "export"
}

func (c *ExportCommand) Description() string {
	return "Export a recipe (-id) or folder (-folder) from a data dir as a share code"
}

func (c *ExportCommand) Run(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	id := fs.String("id", "", "recipe id to export")
	folder := fs.String("folder", "", "folder to export as a cookbook")
	dataDir := fs.String("data", config.DefaultDataDir, "data directory (file backend)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*id == "") == (*folder == "") {
		return fmt.Errorf("export: exactly one of -id or -folder is required")
	}

	kv, err := file.New(*dataDir)
	if err != nil {
		return fmt.Errorf("open data dir %s: %w", *dataDir, err)
	}
	store := recipe.NewStore(kv, nil)
	ctx := context.Background()

	var code string
	if *id != "" {
		r, err := store.Recipe(ctx, *id)
		if err != nil {
			return err
		}
		code, err = exchange.EncodeRecipe(r)
		if err != nil {
			return fmt.Errorf("encode recipe: %w", err)
		}
		PrintSuccess("Exported %q", r.Title)
	} else {
		recipes, err := store.FilteredRecipes(ctx, *folder)
		if err != nil {
			return err
		}
		if len(recipes) == 0 {
			return fmt.Errorf("folder %q has no recipes", *folder)
		}
		code, err = exchange.EncodeCookbook(*folder, recipes)
		if err != nil {
			return fmt.Errorf("encode cookbook: %w", err)
		}
		PrintSuccess("Exported %d recipes from %q", len(recipes), *folder)
	}

	fmt.Println(code)
	return nil
}
