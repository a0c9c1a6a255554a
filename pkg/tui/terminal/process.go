// ABOUTME: ProcessTerminal implements Terminal on the process's stdin and stdout.
// ABOUTME: Composes Session, Prober and KeyReader over the same terminal device.

package terminal

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Options configures a ProcessTerminal. Zero values select stdin, stdout,
// stderr and DefaultReadTimeout.
type Options struct {
	In  *os.File
	Out *os.File

	// ReadTimeout bounds each raw-mode read.
	ReadTimeout time.Duration

	// CursorFallback enables the cursor-position-report probe when the
	// window-size ioctl is unavailable.
	CursorFallback bool

	// Diagnostics receives restoration failures at termination.
	Diagnostics io.Writer
}

// ProcessTerminal is a real terminal backed by file descriptors.
type ProcessTerminal struct {
	out     *os.File
	session *Session
	keys    *KeyReader
	prober  *Prober
}

// NewProcessTerminal returns a ProcessTerminal whose restoration runs from
// hooks at termination.
func NewProcessTerminal(hooks HookRegistrar, opts Options) *ProcessTerminal {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = os.Stderr
	}

	keys := NewKeyReader(opts.In)
	var fallback *KeyReader
	if opts.CursorFallback {
		fallback = keys
	}

	session := NewSession(opts.In, hooks,
		WithReadTimeout(opts.ReadTimeout),
		WithDiagnostics(opts.Diagnostics),
	)

	return &ProcessTerminal{
		out:     opts.Out,
		session: session,
		keys:    keys,
		prober:  NewProber(opts.Out, fallback),
	}
}

// Activate switches the terminal into raw mode.
func (t *ProcessTerminal) Activate() error {
	return t.session.Activate()
}

// Restore puts back the attributes captured by Activate.
func (t *ProcessTerminal) Restore() error {
	return t.session.Restore()
}

// Probe returns the current window size.
func (t *ProcessTerminal) Probe() (Geometry, error) {
	return t.prober.Probe()
}

// ReadKey blocks, one bounded poll at a time, until a byte arrives.
func (t *ProcessTerminal) ReadKey() (byte, error) {
	return t.keys.ReadKey()
}

// Write sends bytes straight to the output file, bypassing any buffering.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to terminal: %w", err)
	}
	return n, nil
}

// Session returns the underlying raw-mode session.
func (t *ProcessTerminal) Session() *Session {
	return t.session
}
