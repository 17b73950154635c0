package main

import "fmt"

// Command is one sharetool subcommand.
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry holds the subcommands in registration order, which is also the
// order the usage text lists them in.
type Registry struct {
	order  []Command
	byName map[string]Command
}

// NewRegistry creates an empty command registry
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds a command. Registering the same name twice keeps the latest.
func (r *Registry) Register(cmd Command) {
	if _, exists := r.byName[cmd.Name()]; !exists {
		r.order = append(r.order, cmd)
	}
	r.byName[cmd.Name()] = cmd
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// PrintHelp prints the usage information
func (r *Registry) PrintHelp() {
	fmt.Println("Usage: sharetool <command> [args...]")
	fmt.Println("\nWork with Bunches share codes without a running server.")
	fmt.Println("\nAvailable Commands:")

	width := 0
	for _, cmd := range r.order {
		if len(cmd.Name()) > width {
			width = len(cmd.Name())
		}
	}
	for _, cmd := range r.order {
		fmt.Printf("  %-*s  %s\n", width, cmd.Name(), cmd.Description())
	}
}
