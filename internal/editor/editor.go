// ABOUTME: Editor is the top-level control loop: refresh, read one key, dispatch.
// ABOUTME: Moves Uninitialized -> Active -> Terminating; fatal errors clear the screen and exit 1.

// Package editor drives a raw-mode terminal session. Text editing sits on
// top of it; this loop only redraws, reads and recognizes the quit key.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mauromedda/kiloterm/internal/log"
	"github.com/mauromedda/kiloterm/pkg/tui/key"
	"github.com/mauromedda/kiloterm/pkg/tui/terminal"
)

// State is a point in the editor lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateTerminating
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateTerminating:
		return "terminating"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitFatal = 1
)

var (
	// ErrNotStarted is returned by Step before Start has succeeded.
	ErrNotStarted = errors.New("editor not started")
	// ErrTerminated is returned by Start and Step once the editor is terminating.
	ErrTerminated = errors.New("editor terminated")
)

// Screen redraws the terminal. render.Renderer implements it.
type Screen interface {
	Refresh(g terminal.Geometry) error
	Clear() error
}

// Editor owns the loop over a Terminal and a Screen.
type Editor struct {
	term   terminal.Terminal
	screen Screen
	diag   io.Writer
	quit   byte

	state    State
	geometry terminal.Geometry
	exitCode int
	err      error
}

// Option configures an Editor.
type Option func(*Editor)

// WithQuitKey sets the byte that ends the loop. The default is Ctrl-Q.
func WithQuitKey(b byte) Option {
	return func(e *Editor) { e.quit = b }
}

// WithDiagnostics sets where fatal errors are reported. The default is
// os.Stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(e *Editor) {
		if w != nil {
			e.diag = w
		}
	}
}

// New returns an Editor in StateUninitialized.
func New(t terminal.Terminal, screen Screen, opts ...Option) *Editor {
	e := &Editor{
		term:   t,
		screen: screen,
		diag:   os.Stderr,
		quit:   key.Ctrl('q'),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current lifecycle state.
func (e *Editor) State() State { return e.state }

// Geometry returns the size probed at startup.
func (e *Editor) Geometry() terminal.Geometry { return e.geometry }

// ExitCode returns the process exit status chosen on termination.
func (e *Editor) ExitCode() int { return e.exitCode }

// Err returns the fatal error that terminated the editor, if any.
func (e *Editor) Err() error { return e.err }

// Start enters raw mode and probes the terminal size. Either failure takes
// the fatal path and leaves the editor terminating.
func (e *Editor) Start() error {
	switch e.state {
	case StateActive:
		return nil
	case StateTerminating:
		return ErrTerminated
	}

	if err := e.term.Activate(); err != nil {
		return e.fail(err)
	}
	g, err := e.term.Probe()
	if err != nil {
		return e.fail(err)
	}

	e.geometry = g
	e.state = StateActive
	log.Debug("editor active on %s terminal, quit key %s", g, key.Parse(e.quit))
	return nil
}

// Step runs one loop iteration: redraw, wait for one byte, dispatch it.
func (e *Editor) Step() error {
	switch e.state {
	case StateUninitialized:
		return ErrNotStarted
	case StateTerminating:
		return ErrTerminated
	}

	if err := e.screen.Refresh(e.geometry); err != nil {
		return e.fail(err)
	}
	b, err := e.term.ReadKey()
	if err != nil {
		return e.fail(err)
	}
	return e.dispatch(b)
}

func (e *Editor) dispatch(b byte) error {
	if b != e.quit {
		log.Debug("key %s", key.Parse(b))
		return nil
	}

	e.state = StateTerminating
	e.exitCode = ExitOK
	if err := e.screen.Clear(); err != nil {
		log.Warn("final clear: %v", err)
	}
	log.Debug("quit key received")
	return nil
}

// fail clears the screen, reports err and moves to StateTerminating with
// ExitFatal. It returns err unchanged.
func (e *Editor) fail(err error) error {
	e.state = StateTerminating
	e.exitCode = ExitFatal
	e.err = err

	_ = e.screen.Clear()
	fmt.Fprintf(e.diag, "%v\r\n", err)
	log.Debug("fatal: %v", err)
	return err
}

// Run starts the editor and loops until it terminates. It returns the exit
// code; restoring the terminal is left to the registered exit hooks.
func (e *Editor) Run() int {
	if err := e.Start(); err != nil {
		return e.exitCode
	}
	for e.state == StateActive {
		if err := e.Step(); err != nil {
			break
		}
	}
	return e.exitCode
}
