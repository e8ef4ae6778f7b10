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
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Extra arguments are ignored.
type ListCmd struct{}

func (c *ListCmd) Name() string               { return "list" }
func (c *ListCmd) Synopsis() string           { return "List all tasks" }
func (c *ListCmd) Usage() string              { return "todo list" }
func (c *ListCmd) NeedsStore() bool           { return true }
func (c *ListCmd) Accepts(args []string) bool { return true }

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: list tasks: %v\n", err)
		return exitcode.StoreError
	}

	// Quiet mode should suppress "no tasks found"
	if len(tasks) == 0 && cfg.Quiet {
		return exitcode.Success
	}

	output.NewPrinter(out, cfg.Color).Tasks(tasks)
	return exitcode.Success
}
