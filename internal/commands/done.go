package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string               { return "done" }
func (c *DoneCmd) Synopsis() string           { return "Mark a task as done" }
func (c *DoneCmd) Usage() string              { return "todo done <task_id>" }
func (c *DoneCmd) NeedsStore() bool           { return true }
func (c *DoneCmd) Accepts(args []string) bool { return len(args) == 1 }

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runByID(ctx, cfg, args, out, errOut, svc.CompleteTask, output.NoticeMarkedDone)
}

// runByID is the shared implementation for commands that act on one task ID.
// An unparseable ID never reaches the store; a lookup miss is a notice, not
// an error.
func runByID(ctx context.Context, cfg *config.Config, args []string, out, errOut io.Writer, op func(context.Context, uint64) error, successNotice string) int {
	p := output.NewPrinter(out, cfg.Color)

	id, err := ParseTaskID(args[0])
	if err != nil {
		p.Notice(output.NoticeInvalidID)
		return exitcode.Success
	}

	if err := op(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			p.Notice(output.NoticeNotFound)
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: save tasks: %v\n", err)
		return exitcode.StoreError
	}

	if !cfg.Quiet {
		p.Notice(successNotice)
	}
	return exitcode.Success
}
