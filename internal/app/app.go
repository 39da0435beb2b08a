// Package app wires configuration, logging, a presentation backend and the
// frame driver into the gorast command.
package app

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/kjkrol/gorast/pkg/config"
	"github.com/kjkrol/gorast/pkg/gfx"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)

// Run executes the command with args (without the program name) and
// returns the process exit status. Diagnostics go to stderr.
func Run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("gorast", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.FileName, "optional YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return ExitFailure
	}

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	resolved, err := cfg.Resolve()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: resolved.LogLevel}))
	gfx.SetLogger(logger)
	defer gfx.SetLogger(nil)

	lifecycle, err := gfx.Open(resolved.Backend, resolved.Window, resolved.Options)
	if err != nil {
		logger.Error("cannot open backend", "err", err)
		return ExitFailure
	}
	defer lifecycle.Teardown()

	driver := gfx.NewDriver(lifecycle,
		gfx.WithClearColor(resolved.ClearColor),
		gfx.WithEventsStrategy(gfx.DrainMax(resolved.EventsPerFrame)),
	)
	if err := driver.Run(); err != nil {
		return ExitFailure
	}
	lifecycle.Teardown()
	return ExitOK
}
