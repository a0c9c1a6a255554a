// ABOUTME: BSD and macOS ioctl request codes for reading and writing terminal attributes.
// ABOUTME: TIOCSETAF drains pending output and discards unread input before applying.

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios      = unix.TIOCGETA
	ioctlSetTermiosFlush = unix.TIOCSETAF
)
