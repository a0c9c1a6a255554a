// ABOUTME: Attributes is an immutable snapshot of a terminal's line-discipline settings.
// ABOUTME: Raw derives the byte-at-a-time, unechoed, unprocessed variant as a copy.

package terminal

import (
	"time"

	"golang.org/x/sys/unix"
)

// DefaultReadTimeout is the longest a raw-mode read waits when no input arrives.
const DefaultReadTimeout = 100 * time.Millisecond

// Attributes is a snapshot of a terminal's input, output, control and local
// flags plus its control-character table. The zero value is an empty snapshot.
// Attributes values are comparable; two snapshots are equal only when every
// byte of the underlying termios matches.
type Attributes struct {
	termios unix.Termios
}

// Raw returns a copy of a configured for raw input: no flow control, no
// CR-to-NL translation, no break signaling, no parity checking, no high-bit
// stripping, no output post-processing, no echo, no canonical mode, no
// signal keys, no extended input processing, and 8-bit characters.
//
// Reads return as soon as any byte is available and otherwise give up after
// vtime tenths of a second.
func (a Attributes) Raw(vtime uint8) Attributes {
	t := a.termios
	t.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Cflag |= unix.CS8
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = vtime
	return Attributes{termios: t}
}

// Equal reports whether a and b are byte-for-byte identical.
func (a Attributes) Equal(b Attributes) bool {
	return a.termios == b.termios
}

// InputFlags returns the c_iflag word.
func (a Attributes) InputFlags() uint64 { return uint64(a.termios.Iflag) }

// OutputFlags returns the c_oflag word.
func (a Attributes) OutputFlags() uint64 { return uint64(a.termios.Oflag) }

// ControlFlags returns the c_cflag word.
func (a Attributes) ControlFlags() uint64 { return uint64(a.termios.Cflag) }

// LocalFlags returns the c_lflag word.
func (a Attributes) LocalFlags() uint64 { return uint64(a.termios.Lflag) }

// MinBytes returns the VMIN slot: bytes a read waits for before returning.
func (a Attributes) MinBytes() uint8 { return a.termios.Cc[unix.VMIN] }

// ReadTimeout returns the VTIME slot converted to a duration.
func (a Attributes) ReadTimeout() time.Duration {
	return time.Duration(a.termios.Cc[unix.VTIME]) * 100 * time.Millisecond
}

// Termios returns a copy of the underlying termios structure.
func (a Attributes) Termios() unix.Termios { return a.termios }

// timeoutTenths converts d to a VTIME value, rounding to the nearest tenth
// of a second and clamping to 1..255.
func timeoutTenths(d time.Duration) uint8 {
	tenths := (d + 50*time.Millisecond) / (100 * time.Millisecond)
	switch {
	case tenths < 1:
		return 1
	case tenths > 255:
		return 255
	}
	return uint8(tenths)
}
