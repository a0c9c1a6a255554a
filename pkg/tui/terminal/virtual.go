// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY.
// ABOUTME: Replays scripted input, captures output, and tracks raw-mode activation.

package terminal

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// VirtualTerminal is a fake Terminal for unit tests. It records written
// output, replays scripted input bytes and can be told to fail.
type VirtualTerminal struct {
	mu          sync.Mutex
	buf         bytes.Buffer
	input       []byte
	geometry    Geometry
	rawMode     bool
	activateErr error
	probeErr    error
	activateCnt int
	restoreCnt  int
	readCnt     int
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions.
func NewVirtualTerminal(rows, cols int) *VirtualTerminal {
	return &VirtualTerminal{
		geometry: Geometry{Rows: rows, Cols: cols},
	}
}

// Activate records a raw-mode entry, or returns the configured failure.
func (v *VirtualTerminal) Activate() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.activateCnt++
	if v.activateErr != nil {
		return v.activateErr
	}
	v.rawMode = true
	return nil
}

// Restore records a raw-mode exit.
func (v *VirtualTerminal) Restore() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rawMode = false
	v.restoreCnt++
	return nil
}

// Probe returns the configured geometry, applying the same validity rule
// as Prober.
func (v *VirtualTerminal) Probe() (Geometry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.probeErr != nil {
		return Geometry{}, v.probeErr
	}
	if !v.geometry.Valid() {
		return Geometry{}, &OpError{
			Op:   "ioctl TIOCGWINSZ",
			Kind: ErrGeometry,
			Err:  fmt.Errorf("reported %s", v.geometry),
		}
	}
	return v.geometry, nil
}

// ReadKey returns the next scripted byte. Once the script is exhausted it
// fails with ErrFatalIO so loops under test cannot spin forever.
func (v *VirtualTerminal) ReadKey() (byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.readCnt++
	if len(v.input) == 0 {
		return 0, &OpError{Op: "read", Kind: ErrFatalIO, Err: io.EOF}
	}
	b := v.input[0]
	v.input = v.input[1:]
	return b, nil
}

// Write appends data to the internal buffer.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// --- Test helpers (not part of Terminal interface) ---

// Feed queues bytes for ReadKey.
func (v *VirtualTerminal) Feed(p ...byte) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.input = append(v.input, p...)
}

// FailActivate makes subsequent Activate calls return err.
func (v *VirtualTerminal) FailActivate(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.activateErr = err
}

// FailProbe makes subsequent Probe calls return err.
func (v *VirtualTerminal) FailProbe(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.probeErr = err
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the output buffer.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// ActivateCount returns how many times Activate was called.
func (v *VirtualTerminal) ActivateCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.activateCnt
}

// RestoreCount returns how many times Restore was called.
func (v *VirtualTerminal) RestoreCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.restoreCnt
}

// ReadCount returns how many times ReadKey was called.
func (v *VirtualTerminal) ReadCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.readCnt
}

// SetSize changes the geometry reported by Probe.
func (v *VirtualTerminal) SetSize(rows, cols int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.geometry = Geometry{Rows: rows, Cols: cols}
}
