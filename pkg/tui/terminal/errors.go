// ABOUTME: Error taxonomy for terminal session, geometry and input failures.
// ABOUTME: OpError pairs the failing system operation with its kind and OS error.

package terminal

import "errors"

var (
	// ErrTerminalQuery means the device rejected an attribute query,
	// usually because it is not a terminal.
	ErrTerminalQuery = errors.New("terminal attribute query failed")

	// ErrTerminalConfigure means the device rejected new attributes.
	ErrTerminalConfigure = errors.New("terminal attribute update failed")

	// ErrGeometry means the window size is unavailable or has a zero dimension.
	ErrGeometry = errors.New("window size unavailable")

	// ErrFatalIO means a terminal read failed with a non-transient error.
	ErrFatalIO = errors.New("terminal read failed")

	// ErrSessionActive means another Session already owns the terminal.
	ErrSessionActive = errors.New("another terminal session is active")
)

// OpError records a failed terminal operation. Op names the underlying
// system call, Kind is one of the sentinel errors above and Err is the
// OS error, if any.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

// Error renders "<op>: <os error>", falling back to the kind when the
// operation carries no OS error.
func (e *OpError) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Kind.Error()
}

// Unwrap exposes both the kind and the OS error to errors.Is and errors.As.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
