// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todotour/internal/config"
	"todotour/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, idle period).
	// svcs opens the task backend on first call; commands that never
	// export never call it and so never need credentials.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svcs service.Provider, args []string, out, errOut io.Writer) int
}
