// ABOUTME: Session owns the terminal's original attributes and switches it into raw mode.
// ABOUTME: Restoration is registered once with a termination hook registry at activation.

package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

// HookRegistrar queues zero-argument callbacks to run at process termination.
type HookRegistrar interface {
	Register(fn func())
}

// attrDevice is the attribute get/set surface of a terminal device.
type attrDevice interface {
	getAttr() (*unix.Termios, error)
	setAttr(t *unix.Termios) error
}

// fdDevice talks to a terminal through its file descriptor. setAttr applies
// with flush semantics: pending output is drained and unread input discarded.
type fdDevice int

func (fd fdDevice) getAttr() (*unix.Termios, error) {
	return unix.IoctlGetTermios(int(fd), ioctlGetTermios)
}

func (fd fdDevice) setAttr(t *unix.Termios) error {
	return unix.IoctlSetTermios(int(fd), ioctlSetTermiosFlush, t)
}

// activeSession is the one Session allowed to own the terminal.
var activeSession atomic.Pointer[Session]

// Session switches a terminal into raw mode and guarantees the original
// attributes can be put back. At most one Session is active per process.
type Session struct {
	mu    sync.Mutex
	dev   attrDevice
	hooks HookRegistrar
	diag  io.Writer
	vtime uint8

	original       Attributes
	raw            Attributes
	captured       bool
	hookRegistered bool
	active         bool
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithReadTimeout sets how long a raw-mode read waits for input. The value
// is rounded to tenths of a second and clamped to 100ms..25.5s.
func WithReadTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.vtime = timeoutTenths(d)
	}
}

// WithDiagnostics sets where restoration failures are reported.
func WithDiagnostics(w io.Writer) SessionOption {
	return func(s *Session) {
		s.diag = w
	}
}

// NewSession returns a Session for the terminal behind in. Restoration is
// registered with hooks the first time Activate runs.
func NewSession(in *os.File, hooks HookRegistrar, opts ...SessionOption) *Session {
	return newSession(fdDevice(in.Fd()), hooks, opts...)
}

func newSession(dev attrDevice, hooks HookRegistrar, opts ...SessionOption) *Session {
	s := &Session{
		dev:   dev,
		hooks: hooks,
		diag:  os.Stderr,
		vtime: timeoutTenths(DefaultReadTimeout),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Activate captures the terminal's current attributes, registers the
// restoration hook and applies the raw configuration.
//
// Calling Activate again on an active Session does nothing. If a previous
// call captured the attributes but failed to apply them, the snapshot and
// hook are kept and only the apply step is retried.
func (s *Session) Activate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return nil
	}
	if !activeSession.CompareAndSwap(nil, s) && activeSession.Load() != s {
		return &OpError{Op: "activate", Kind: ErrSessionActive}
	}

	if !s.captured {
		t, err := s.dev.getAttr()
		if err != nil {
			activeSession.CompareAndSwap(s, nil)
			return &OpError{Op: "tcgetattr", Kind: ErrTerminalQuery, Err: err}
		}
		s.original = Attributes{termios: *t}
		s.raw = s.original.Raw(s.vtime)
		s.captured = true
	}

	if !s.hookRegistered {
		s.hooks.Register(s.restoreOnExit)
		s.hookRegistered = true
	}

	if err := s.dev.setAttr(&s.raw.termios); err != nil {
		return &OpError{Op: "tcsetattr", Kind: ErrTerminalConfigure, Err: err}
	}
	s.active = true
	return nil
}

// Restore reapplies the attributes captured by Activate. It is a no-op when
// nothing was captured and may be called more than once.
func (s *Session) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.captured {
		return nil
	}
	if err := s.dev.setAttr(&s.original.termios); err != nil {
		return &OpError{Op: "tcsetattr", Kind: ErrTerminalConfigure, Err: err}
	}
	s.active = false
	activeSession.CompareAndSwap(s, nil)
	return nil
}

// restoreOnExit is the termination hook. Failures are reported, never raised.
func (s *Session) restoreOnExit() {
	if err := s.Restore(); err != nil {
		fmt.Fprintf(s.diag, "%v\r\n", err)
	}
}

// Active reports whether raw mode is currently applied.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active
}

// Original returns the captured pre-activation snapshot.
func (s *Session) Original() (Attributes, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.original, s.captured
}

// Raw returns the raw configuration derived from the original snapshot.
func (s *Session) Raw() (Attributes, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.raw, s.captured
}
