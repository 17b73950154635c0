package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists, so DATA_DIR works the same as the server
	_ = godotenv.Load()

	registry := NewRegistry()
	registry.Register(&EncodeCommand{})
	registry.Register(&DecodeCommand{})
	registry.Register(&ExportCommand{})
	registry.Register(&ImportCommand{})

	if len(os.Args) < 2 {
		registry.PrintHelp()
		os.Exit(1)
	}

	name := os.Args[1]
	if name == "help" || name == "-h" || name == "--help" {
		registry.PrintHelp()
		return
	}

	cmd, ok := registry.Get(name)
	if !ok {
		PrintError("unknown command: %s", name)
		registry.PrintHelp()
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		PrintError("%v", err)
		os.Exit(1)
	}
}
