// Package main is the entry point for the todo CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"todo/internal/backend/jsonfile"
	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Paths are relative to the working directory.
	fsys := afero.NewOsFs()

	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		return jsonfile.Load(fsys, cfg.DataPath, logger), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, fsys, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
