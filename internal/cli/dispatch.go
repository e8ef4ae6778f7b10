package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/output"
	"todo/internal/service"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	fs       afero.Fs
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher. fsys is where the settings file is
// read from; factory opens the task store for commands that need it.
func NewDispatcher(registry *commands.Registry, fsys afero.Fs, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		fs:       fsys,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// Common flags are only recognised before the command word.
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var configPath string
	var quiet bool
	var debug bool

	fs.StringVar(&configPath, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(out, output.Usage)
			return exitcode.Success
		}
		// An unrecognised leading word is an unknown command, not a usage error.
		if isUndefinedFlag(err) {
			output.NewPrinter(out, config.ColorAuto).Notice(output.NoticeUnknownCommand)
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	cfg, settingsErr := config.Load(d.fs, configPath)
	if settingsErr != nil {
		// Only a file named with --config is fatal; a broken default file is skipped.
		if configPath != "" {
			fmt.Fprintf(errOut, "error: %s\n", settingsErr)
			return exitcode.ConfigError
		}
		cfg = config.New()
	}
	cfg.Quiet = cfg.Quiet || quiet
	cfg.Debug = debug

	logger := logging.New(errOut, cfg.EffectiveLogLevel())
	switch {
	case settingsErr != nil:
		logger.Debug("ignoring settings file", "path", config.DefaultSettingsFile, "err", settingsErr)
	case cfg.SettingsPath != "":
		logger.Debug("read settings file", "path", cfg.SettingsPath)
	}

	positional := fs.Args()
	if len(positional) == 0 {
		output.NewPrinter(out, cfg.Color).Usage()
		return exitcode.Success
	}

	name, rest := positional[0], positional[1:]
	cmd, ok := d.registry.Find(name)
	if !ok || !cmd.Accepts(rest) {
		logger.Debug("rejected command", "name", name, "args", len(rest))
		output.NewPrinter(out, cfg.Color).Notice(output.NoticeUnknownCommand)
		return exitcode.Success
	}

	var svc service.Service
	if cmd.NeedsStore() {
		if d.factory == nil {
			fmt.Fprintf(errOut, "error: no task store configured\n")
			return exitcode.StoreError
		}
		var err error
		svc, err = d.factory(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: open tasks: %s\n", err)
			return exitcode.StoreError
		}
	}

	logger.Debug("dispatch", "command", cmd.Name(), "args", len(rest))
	return cmd.Run(ctx, cfg, svc, rest, out, errOut)
}

// isUndefinedFlag reports whether err is the flag package's error for a flag
// that was never defined.
func isUndefinedFlag(err error) bool {
	return strings.HasPrefix(err.Error(), "flag provided but not defined:")
}
