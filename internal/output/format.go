// Package output provides the notices and list formatting for CLI output.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"todo/internal/config"
	"todo/internal/service"
)

// Notices printed to stdout. None of them change the exit code.
const (
	NoticeAdded          = "✅ Task added successfully!"
	NoticeMarkedDone     = "✅ Task marked as done!"
	NoticeRemoved        = "🗑️ Task removed successfully!"
	NoticeNotFound       = "⚠️ Task not found!"
	NoticeInvalidID      = "⚠️ Invalid task ID"
	NoticeNoTasks        = "📭 No tasks found!"
	NoticeUnknownCommand = "❌ Unknown command. Use 'list', 'add', 'done <id>', or 'remove <id>'"

	ListHeader = "📌 To-Do List:"

	StatusDone    = "✔️ Done"
	StatusPending = "❌ Pending"
)

// Usage is printed when no command is given.
const Usage = `❌ Invalid usage. Available commands:
  add "Task Description"   - Add a new task
  list                     - List all tasks
  done <task_id>           - Mark a task as done
  remove <task_id>         - Remove a task

` + CommonFlags

// CommonFlags documents the flags accepted before the command word.
const CommonFlags = `Common flags (before the command):
  --config <file>          Settings file (default .todo.toml)
  --quiet                  Suppress success notices
  --debug                  Print debug logs to stderr
`

// Printer writes notices and task lists to a single writer.
type Printer struct {
	w       io.Writer
	done    lipgloss.Style
	pending lipgloss.Style
}

// NewPrinter returns a Printer for w. color is one of the config.Color*
// modes; in auto mode styling is applied only when w is a color terminal.
func NewPrinter(w io.Writer, color string) *Printer {
	r := lipgloss.NewRenderer(w)
	switch color {
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:       w,
		done:    r.NewStyle().Foreground(lipgloss.Color("2")),
		pending: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Notice prints a single status line.
func (p *Printer) Notice(msg string) {
	fmt.Fprintln(p.w, msg)
}

// Usage prints the usage text.
func (p *Printer) Usage() {
	fmt.Fprint(p.w, Usage)
}

// Tasks prints the task list, or NoticeNoTasks when it is empty.
// Format: "<id>. [<status>] <title>\n"
func (p *Printer) Tasks(tasks []service.Task) {
	if len(tasks) == 0 {
		p.Notice(NoticeNoTasks)
		return
	}
	fmt.Fprintln(p.w, ListHeader)
	for _, task := range tasks {
		fmt.Fprintf(p.w, "%d. [%s] %s\n", task.ID, p.status(task), task.Title)
	}
}

func (p *Printer) status(task service.Task) string {
	if task.Done {
		return p.done.Render(StatusDone)
	}
	return p.pending.Render(StatusPending)
}
