package commands

import (
	"context"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct{}

func (c *VersionCmd) Name() string               { return "version" }
func (c *VersionCmd) Synopsis() string           { return "Print version" }
func (c *VersionCmd) Usage() string              { return "todo version" }
func (c *VersionCmd) NeedsStore() bool           { return false }
func (c *VersionCmd) Accepts(args []string) bool { return true }

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "%s %s\n", config.AppName, Version)
	return exitcode.Success
}
