// Command ceramic is the tiling window manager's entrypoint: parse the
// verbosity flag, connect to the display, acquire the root window, build
// the workspaces from the configuration provider, and run the event
// loop until a "quit" command breaks it.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/1broseidon/ceramic/internal/config"
	"github.com/1broseidon/ceramic/internal/manager"
	"github.com/1broseidon/ceramic/internal/xconn"
)

func main() {
	os.Exit(run())
}

// run contains the CLI logic so defers fire before os.Exit, following the
// teacher's main-wrapper pattern of keeping os.Exit at the call site
// rather than scattered through the daemon bring-up.
func run() int {
	verbosity := 0
	fs := flag.NewFlagSet("ceramic", flag.ContinueOnError)
	fs.BoolFunc("v", "increase log verbosity (repeatable: -v, -v -v)", func(string) error {
		verbosity++
		return nil
	})
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: verbosityLevel(verbosity),
	}))

	conn, err := xconn.Connect()
	if err != nil {
		logger.Error("connect to display", "error", err)
		return 1
	}
	defer conn.Close()

	provider, err := config.Load()
	if err != nil {
		logger.Error("load configuration", "error", err)
		return 1
	}

	m := manager.New(conn, provider, logger)
	if err := m.Init(); err != nil {
		logger.Error("initialize workspaces", "error", err)
		return 1
	}

	desktopNames := m.WorkspaceNames()
	if err := xconn.Startup(conn, uint32(len(desktopNames)), desktopNames); err != nil {
		// spec.md §7 kind 1: cannot acquire the root window, almost
		// always because another window manager is already running.
		logger.Error("acquire root window", "error", err)
		return 1
	}

	m.Attach()
	if err := m.AbsorbExisting(); err != nil {
		logger.Error("enumerate existing windows", "error", err)
		return 1
	}
	m.RelayoutCurrent()

	logger.Info("ceramic running")
	conn.EventLoop()
	return 0
}

func verbosityLevel(v int) slog.Level {
	switch {
	case v >= 2:
		return slog.LevelDebug
	case v == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}
