package commands

import (
	"context"
	"io"

	"todo/internal/config"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&RemoveCmd{})
}

// RemoveCmd implements the remove command.
type RemoveCmd struct{}

func (c *RemoveCmd) Name() string               { return "remove" }
func (c *RemoveCmd) Synopsis() string           { return "Remove a task" }
func (c *RemoveCmd) Usage() string              { return "todo remove <task_id>" }
func (c *RemoveCmd) NeedsStore() bool           { return true }
func (c *RemoveCmd) Accepts(args []string) bool { return len(args) == 1 }

func (c *RemoveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runByID(ctx, cfg, args, out, errOut, svc.DeleteTask, output.NoticeRemoved)
}
