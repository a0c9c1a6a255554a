// ABOUTME: CLI entry point for kiloterm: loads config, enters raw mode, runs the editor loop
// ABOUTME: Every exit goes through exithook so the terminal is restored before the process ends

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mauromedda/kiloterm/internal/config"
	"github.com/mauromedda/kiloterm/internal/editor"
	"github.com/mauromedda/kiloterm/internal/exithook"
	pilog "github.com/mauromedda/kiloterm/internal/log"
	"github.com/mauromedda/kiloterm/pkg/tui/render"
	"github.com/mauromedda/kiloterm/pkg/tui/terminal"
	"golang.org/x/sys/unix"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// exitSignals end the process through the exit hooks. SIGINT is included
// because raw mode only stops Ctrl-C from raising it; kill -INT still does.
var exitSignals = []os.Signal{unix.SIGINT, unix.SIGTERM, unix.SIGHUP, unix.SIGQUIT}

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("kiloterm %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// Never detached: the handler must stay installed until Exit has run
	// the restore hook.
	exithook.HandleSignals(exitSignals...)
	exithook.Exit(run(args))
}

func run(args cliArgs) int {
	cfg, err := loadConfig(args.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return editor.ExitFatal
	}
	if args.logFile != "" {
		cfg.LogFile = args.logFile
	}
	if err := setupLogging(cfg, args.verbose); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return editor.ExitFatal
	}
	pilog.Info("kiloterm %s starting", version)

	pt := terminal.NewProcessTerminal(exithook.Default, terminal.Options{
		ReadTimeout:    cfg.ReadTimeout,
		CursorFallback: cfg.FallbackProbe,
		Diagnostics:    os.Stderr,
	})
	defer terminal.RestoreOnPanic(pt, exithook.Exit)

	screen := render.New(pt,
		render.WithPlaceholder(cfg.Placeholder),
		render.WithBanner(cfg.Banner),
	)
	ed := editor.New(pt, screen,
		editor.WithQuitKey(cfg.QuitByte()),
		editor.WithDiagnostics(os.Stderr),
	)

	code := ed.Run()
	pilog.Info("kiloterm exiting with code %d", code)
	return code
}

func loadConfig(path string) (*config.Settings, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	return config.Load(cwd)
}

// setupLogging sends logs to the configured file. Without one, logs are
// discarded: stderr shares the screen with the raw-mode editor.
func setupLogging(cfg *config.Settings, verbose bool) error {
	level, err := pilog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = pilog.LevelDebug
	}
	pilog.SetLevel(level)

	if cfg.LogFile == "" {
		pilog.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	pilog.SetOutput(f)
	exithook.Register(func() { _ = f.Close() })
	return nil
}
