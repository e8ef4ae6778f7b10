package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string               { return "add" }
func (c *AddCmd) Synopsis() string           { return "Add a new task" }
func (c *AddCmd) Usage() string              { return "todo add <title...>" }
func (c *AddCmd) NeedsStore() bool           { return true }
func (c *AddCmd) Accepts(args []string) bool { return len(args) >= 1 }

// Run joins args with single spaces to form the title. Any title is
// accepted, including an empty or whitespace-only one.
func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")

	if _, err := svc.CreateTask(ctx, title); err != nil {
		fmt.Fprintf(errOut, "error: save tasks: %v\n", err)
		return exitcode.StoreError
	}

	if !cfg.Quiet {
		output.NewPrinter(out, cfg.Color).Notice(output.NoticeAdded)
	}
	return exitcode.Success
}
