package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/exchange"
)

type DecodeCommand struct{}

func (c *DecodeCommand) Name() string {
	return "decode"
}

func (c *DecodeCommand) Description() string {
	return "Decode a share code and print its contents"
}

func (c *DecodeCommand) Run(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	in := fs.String("in", "", "file containing the share code")
	asJSON := fs.Bool("json", false, "print the decoded payload as pretty JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("decode: -in is required")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read %s: %w", *in, err)
	}

	decoded, err := exchange.Decode(string(data))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if *asJSON {
		return printJSON(decoded)
	}
	printSummary(decoded)
	return nil
}

func printJSON(decoded exchange.Decoded) error {
	var payload interface{}
	switch decoded.Type {
	case exchange.TypeRecipe:
		payload = decoded.Recipe
	case exchange.TypeCookbook:
		payload = struct {
			Name    string          `json:"name"`
			Recipes []domain.Recipe `json:"recipes"`
		}{decoded.Name, decoded.Recipes}
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal decoded payload: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func printSummary(decoded exchange.Decoded) {
	switch decoded.Type {
	case exchange.TypeRecipe:
		r := decoded.Recipe
		fmt.Printf("Type:         recipe\n")
		fmt.Printf("Title:        %s\n", r.Title)
		fmt.Printf("Folder:       %s\n", r.Folder)
		fmt.Printf("Ingredients:  %d sections\n", len(r.Ingredients))
		fmt.Printf("Instructions: %d steps\n", len(r.Instructions))
		if r.SourceURL != "" {
			fmt.Printf("Source:       %s\n", r.SourceURL)
		}
	case exchange.TypeCookbook:
		fmt.Printf("Type:    cookbook\n")
		fmt.Printf("Name:    %s\n", decoded.Name)
		fmt.Printf("Recipes: %d\n", len(decoded.Recipes))
		for _, r := range decoded.Recipes {
			fmt.Printf("  - %s\n", r.Title)
		}
	}
}
