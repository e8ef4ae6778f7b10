package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"todo/internal/backend/jsonfile"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		return svc, nil
	}
}

// fileStores opens real file-backed stores on fsys and remembers each one.
type fileStores struct {
	fsys   afero.Fs
	opened []*jsonfile.Store
}

func (f *fileStores) factory(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
	s := jsonfile.Load(f.fsys, cfg.DataPath, logger)
	f.opened = append(f.opened, s)
	return s, nil
}

func (f *fileStores) last() *jsonfile.Store {
	return f.opened[len(f.opened)-1]
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_NoArgsPrintsUsage(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, afero.NewMemMapFs(), testFactory(svc))

	stdout, stderr, code := run(t, dispatcher)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.HasPrefix(stdout, "❌ Invalid usage. Available commands:\n") {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if svc.Calls() != 0 {
		t.Errorf("usage must not touch the store, got %d calls", svc.Calls())
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown verb", []string{"unknowncmd"}},
		{"add without title", []string{"add"}},
		{"done without id", []string{"done"}},
		{"done with two ids", []string{"done", "1", "2"}},
		{"remove without id", []string{"remove"}},
		{"remove with two ids", []string{"remove", "1", "2"}},
		{"verb is case sensitive", []string{"LIST"}},
		{"single dash word", []string{"-x"}},
		{"double dash word", []string{"--list"}},
		{"negative number", []string{"-1"}},
		{"unknown word before command", []string{"--unknown", "list"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			dispatcher := cli.NewDispatcher(commands.DefaultRegistry, afero.NewMemMapFs(), testFactory(svc))

			stdout, stderr, code := run(t, dispatcher, tt.args...)

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
			}
			if stderr != "" {
				t.Errorf("expected no stderr, got %q", stderr)
			}
			expected := "❌ Unknown command. Use 'list', 'add', 'done <id>', or 'remove <id>'\n"
			if stdout != expected {
				t.Errorf("expected %q, got %q", expected, stdout)
			}
			if svc.Calls() != 0 {
				t.Errorf("store must not be called, got %d calls", svc.Calls())
			}
		})
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, afero.NewMemMapFs(), testFactory(svc))

	stdout, stderr, code := run(t, dispatcher, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, afero.NewMemMapFs(), nil)

	stdout, _, code := run(t, dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_ConfigNeedsValue(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, afero.NewMemMapFs(), nil)

	_, stderr, code := run(t, dispatcher, "--config")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -config\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagsAfterCommandPassThrough(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, afero.NewMemMapFs(), testFactory(svc))

	_, stderr, code := run(t, dispatcher, "add", "--quiet", "-x", "fix", "bug")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "--quiet -x fix bug" {
		t.Errorf("expected title passed through verbatim, got %v", tasks)
	}
}

func TestDispatcher_QuietFlag(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, afero.NewMemMapFs(), testFactory(svc))

	stdout, _, code := run(t, dispatcher, "--quiet", "add", "Buy milk")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout with --quiet, got %q", stdout)
	}
	if len(svc.Tasks()) != 1 {
		t.Error("expected the task to be added")
	}
}

func TestDispatcher_SettingsFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "custom.toml", []byte("quiet = true\ncolor = \"never\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, fsys, testFactory(svc))

	stdout, stderr, code := run(t, dispatcher, "--config", "custom.toml", "add", "x")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("expected quiet from settings file, got stdout %q stderr %q", stdout, stderr)
	}
}

func TestDispatcher_BadExplicitSettingsFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "quiet = "},
		{"unknown key", "colour = \"never\"\n"},
		{"bad color", "color = \"pink\"\n"},
		{"missing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			if tt.content != "" {
				if err := afero.WriteFile(fsys, "custom.toml", []byte(tt.content), 0644); err != nil {
					t.Fatal(err)
				}
			}
			svc := testutil.NewFakeService()
			dispatcher := cli.NewDispatcher(commands.DefaultRegistry, fsys, testFactory(svc))

			stdout, stderr, code := run(t, dispatcher, "--config", "custom.toml", "list")

			if code != exitcode.ConfigError {
				t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
			}
			if stdout != "" {
				t.Errorf("expected no stdout, got %q", stdout)
			}
			if !strings.HasPrefix(stderr, "error: ") {
				t.Errorf("expected error on stderr, got %q", stderr)
			}
			if svc.Calls() != 0 {
				t.Errorf("store must not be called, got %d calls", svc.Calls())
			}
		})
	}
}

func TestDispatcher_BadDefaultSettingsFileIsIgnored(t *testing.T) {
	for _, content := range []string{"garbage =", "colour = \"never\"\n", "log_level = \"loud\"\n"} {
		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, config.DefaultSettingsFile, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		svc := testutil.NewFakeService()
		dispatcher := cli.NewDispatcher(commands.DefaultRegistry, fsys, testFactory(svc))

		stdout, stderr, code := run(t, dispatcher, "add", "Buy milk")

		if code != exitcode.Success {
			t.Errorf("%q: expected exit code %d, got %d", content, exitcode.Success, code)
		}
		if stderr != "" {
			t.Errorf("%q: expected no stderr, got %q", content, stderr)
		}
		if stdout != "✅ Task added successfully!\n" {
			t.Errorf("%q: unexpected stdout %q", content, stdout)
		}
		if len(svc.Tasks()) != 1 {
			t.Errorf("%q: expected the task to be added, got %v", content, svc.Tasks())
		}
	}
}

func TestDispatcher_BadDefaultSettingsFileLoggedWithDebug(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, config.DefaultSettingsFile, []byte("garbage ="), 0644); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, fsys, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "--debug", "list")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "ignoring settings file") {
		t.Errorf("expected settings problem in debug log, got %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, afero.NewMemMapFs(), testFactory(svc))

	stdout, stderr, code := run(t, dispatcher, "--debug", "list")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "📭 No tasks found!\n" {
		t.Errorf("debug logs must not reach stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "msg=dispatch") || !strings.Contains(stderr, "command=list") {
		t.Errorf("expected dispatch log on stderr, got %q", stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		return nil, errors.New("boom")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, afero.NewMemMapFs(), factory)

	_, stderr, code := run(t, dispatcher, "list")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stderr != "error: open tasks: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_WriteFailure(t *testing.T) {
	stores := &fileStores{fsys: afero.NewReadOnlyFs(afero.NewMemMapFs())}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, stores.fsys, stores.factory)

	stdout, stderr, code := run(t, dispatcher, "add", "Buy milk")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stdout != "" {
		t.Errorf("expected no success notice, got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "error: save tasks: write task file:") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// End-to-end runs against the JSON file store, one process per command.
func TestDispatcher_EndToEnd(t *testing.T) {
	stores := &fileStores{fsys: afero.NewMemMapFs()}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, stores.fsys, stores.factory)

	readFile := func() string {
		t.Helper()
		data, err := afero.ReadFile(stores.fsys, config.DataFile)
		if err != nil {
			t.Fatalf("read task file: %v", err)
		}
		return string(data)
	}

	steps := []struct {
		name   string
		args   []string
		stdout string
		file   string
	}{
		{
			name:   "add to fresh store",
			args:   []string{"add", "Buy milk"},
			stdout: "✅ Task added successfully!\n",
			file:   "{\n  \"tasks\": [\n    {\n      \"id\": 1,\n      \"title\": \"Buy milk\",\n      \"done\": false\n    }\n  ]\n}\n",
		},
		{
			name:   "list shows pending",
			args:   []string{"list"},
			stdout: "📌 To-Do List:\n1. [❌ Pending] Buy milk\n",
		},
		{
			name:   "mark done",
			args:   []string{"done", "1"},
			stdout: "✅ Task marked as done!\n",
			file:   "{\n  \"tasks\": [\n    {\n      \"id\": 1,\n      \"title\": \"Buy milk\",\n      \"done\": true\n    }\n  ]\n}\n",
		},
		{
			name:   "list shows done",
			args:   []string{"list"},
			stdout: "📌 To-Do List:\n1. [✔️ Done] Buy milk\n",
		},
		{
			name:   "remove",
			args:   []string{"remove", "1"},
			stdout: "🗑️ Task removed successfully!\n",
			file:   "{\n  \"tasks\": []\n}\n",
		},
		{
			name:   "list empty",
			args:   []string{"list"},
			stdout: "📭 No tasks found!\n",
		},
		{
			name:   "done on empty store",
			args:   []string{"done", "99"},
			stdout: "⚠️ Task not found!\n",
		},
		{
			name:   "done with invalid id",
			args:   []string{"done", "abc"},
			stdout: "⚠️ Invalid task ID\n",
		},
	}

	for _, step := range steps {
		before := readFileOrEmpty(stores.fsys)

		stdout, stderr, code := run(t, dispatcher, step.args...)

		if code != exitcode.Success {
			t.Fatalf("%s: expected exit code %d, got %d (stderr %q)", step.name, exitcode.Success, code, stderr)
		}
		if stderr != "" {
			t.Errorf("%s: expected no stderr, got %q", step.name, stderr)
		}
		if stdout != step.stdout {
			t.Errorf("%s: expected stdout %q, got %q", step.name, step.stdout, stdout)
		}

		if step.file != "" {
			if got := readFile(); got != step.file {
				t.Errorf("%s: expected file %q, got %q", step.name, step.file, got)
			}
			continue
		}
		// Read-only and rejected operations leave the file alone.
		if got := readFileOrEmpty(stores.fsys); got != before {
			t.Errorf("%s: file changed from %q to %q", step.name, before, got)
		}
		if saves := stores.last().Saves(); saves != 0 {
			t.Errorf("%s: expected no save, got %d", step.name, saves)
		}
	}
}

func TestDispatcher_DuplicateIDsAfterRemove(t *testing.T) {
	stores := &fileStores{fsys: afero.NewMemMapFs()}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, stores.fsys, stores.factory)

	for _, args := range [][]string{
		{"add", "a"}, {"add", "b"}, {"add", "c"},
		{"remove", "2"},
		{"add", "d"},
		{"done", "3"},
	} {
		if _, stderr, code := run(t, dispatcher, args...); code != exitcode.Success {
			t.Fatalf("%v: exit code %d (stderr %q)", args, code, stderr)
		}
	}

	stdout, _, _ := run(t, dispatcher, "list")
	expected := "📌 To-Do List:\n1. [❌ Pending] a\n3. [✔️ Done] c\n3. [❌ Pending] d\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestDispatcher_CorruptFileStartsEmpty(t *testing.T) {
	stores := &fileStores{fsys: afero.NewMemMapFs()}
	if err := afero.WriteFile(stores.fsys, config.DataFile, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, stores.fsys, stores.factory)

	stdout, _, _ := run(t, dispatcher, "list")
	if stdout != "📭 No tasks found!\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}

	run(t, dispatcher, "add", "fresh")
	data, err := afero.ReadFile(stores.fsys, config.DataFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\"title\": \"fresh\"") || strings.Contains(string(data), "not json") {
		t.Errorf("expected corrupt file to be replaced, got %q", data)
	}
}

func readFileOrEmpty(fsys afero.Fs) string {
	data, err := afero.ReadFile(fsys, config.DataFile)
	if err != nil {
		return ""
	}
	return string(data)
}
