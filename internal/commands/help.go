package commands

import (
	"context"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{registry: DefaultRegistry})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	registry *Registry
}

// NewHelpCmd returns a help command listing the commands in r.
func NewHelpCmd(r *Registry) *HelpCmd {
	return &HelpCmd{registry: r}
}

func (c *HelpCmd) Name() string               { return "help" }
func (c *HelpCmd) Synopsis() string           { return "Print usage" }
func (c *HelpCmd) Usage() string              { return "todo help" }
func (c *HelpCmd) NeedsStore() bool           { return false }
func (c *HelpCmd) Accepts(args []string) bool { return true }

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage: todo [common flags] <command> [args...]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	if c.registry != nil {
		for _, cmd := range c.registry.All() {
			fmt.Fprintf(out, "  %-24s %s\n", cmd.Usage(), cmd.Synopsis())
		}
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, output.CommonFlags)
	return exitcode.Success
}
