package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/exchange"
)

type EncodeCommand struct{}

func (c *EncodeCommand) Name() string {
	return "encode"
}

func (c *EncodeCommand) Description() string {
	return "Encode a recipe JSON file (or array with -cookbook) into a share code"
}

func (c *EncodeCommand) Run(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	in := fs.String("in", "", "input JSON file (a recipe, or an array with -cookbook)")
	cookbook := fs.Bool("cookbook", false, "encode an array of recipes as a cookbook")
	name := fs.String("name", "", "cookbook name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("encode: -in is required")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read %s: %w", *in, err)
	}

	var code string
	if *cookbook {
		var recipes []domain.Recipe
		if err := json.Unmarshal(data, &recipes); err != nil {
			return fmt.Errorf("parse %s as recipe array: %w", *in, err)
		}
		code, err = exchange.EncodeCookbook(*name, recipes)
		if err != nil {
			return fmt.Errorf("encode cookbook: %w", err)
		}
		PrintSuccess("Encoded %d recipes", len(recipes))
	} else {
		var r domain.Recipe
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("parse %s as recipe: %w", *in, err)
		}
		code, err = exchange.EncodeRecipe(r)
		if err != nil {
			return fmt.Errorf("encode recipe: %w", err)
		}
		PrintSuccess("Encoded %q", r.Title)
	}

	fmt.Println(code)
	return nil
}
