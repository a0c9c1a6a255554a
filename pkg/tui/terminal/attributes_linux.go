// ABOUTME: Linux ioctl request codes for reading and writing terminal attributes.
// ABOUTME: TCSETSF drains pending output and discards unread input before applying.

//go:build linux

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios      = unix.TCGETS
	ioctlSetTermiosFlush = unix.TCSETSF
)
