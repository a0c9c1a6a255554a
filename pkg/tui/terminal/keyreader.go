// ABOUTME: KeyReader polls the raw-mode terminal for one byte at a time.
// ABOUTME: Empty reads and EINTR/EAGAIN are retried; any other read failure is fatal.

package terminal

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// KeyEvent is the outcome of one bounded poll. OK is false when no byte
// arrived before the read timeout expired.
type KeyEvent struct {
	Byte byte
	OK   bool
}

// KeyReader reads single bytes from a terminal in raw mode. Each poll is
// bounded by the session's read timeout.
type KeyReader struct {
	read func(p []byte) (int, error)
	buf  [1]byte
}

// NewKeyReader returns a KeyReader on the file descriptor behind in.
func NewKeyReader(in *os.File) *KeyReader {
	fd := int(in.Fd())
	return &KeyReader{
		read: func(p []byte) (int, error) { return unix.Read(fd, p) },
	}
}

// ReadOnce performs a single read of at most one byte. A timeout, an
// interrupted call or a would-block result is reported as an empty event
// with a nil error.
func (r *KeyReader) ReadOnce() (KeyEvent, error) {
	n, err := r.read(r.buf[:])
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return KeyEvent{}, nil
		}
		return KeyEvent{}, &OpError{Op: "read", Kind: ErrFatalIO, Err: err}
	}
	if n != 1 {
		return KeyEvent{}, nil
	}
	return KeyEvent{Byte: r.buf[0], OK: true}, nil
}

// ReadKey polls until a byte arrives or a fatal read error occurs.
func (r *KeyReader) ReadKey() (byte, error) {
	for {
		ev, err := r.ReadOnce()
		if err != nil {
			return 0, err
		}
		if ev.OK {
			return ev.Byte, nil
		}
	}
}
