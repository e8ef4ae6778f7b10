// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"

	"todo/internal/config"
	"todo/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the command word.
	Name() string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Accepts reports whether args (everything after the command word) is a
	// valid argument list. The dispatcher reports a rejected list the same
	// way as an unknown command.
	Accepts(args []string) bool

	// NeedsStore returns true if the command reads or writes tasks.
	// Commands like help and version return false and never touch the file.
	NeedsStore() bool

	// Run executes the command.
	// svc is nil if NeedsStore() returns false.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
