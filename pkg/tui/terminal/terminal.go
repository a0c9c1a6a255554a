// ABOUTME: Defines the Terminal interface the editing layer drives each loop iteration.
// ABOUTME: Implemented by ProcessTerminal for a real TTY and VirtualTerminal for tests.

// Package terminal takes exclusive control of a POSIX terminal: it switches
// the line discipline into raw mode, probes the window size, reads input one
// byte at a time and restores the original attributes at termination.
package terminal

// Terminal is the surface an editor needs from the terminal device: raw-mode
// session control, geometry, single-byte input and direct output.
type Terminal interface {
	Activate() error
	Restore() error
	Probe() (Geometry, error)
	ReadKey() (byte, error)
	Write(p []byte) (n int, err error)
}
