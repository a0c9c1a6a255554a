// ABOUTME: RestoreOnPanic recovers from panics, restores the terminal, and prints the stack trace.
// ABOUTME: Intended for use as a deferred call in the goroutine that runs the editor loop.

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// RestoreOnPanic should be deferred at the top of the function that owns
// the terminal. On panic it clears the screen, restores the original
// attributes, prints the panic value and stack trace, then calls exit with
// code 1. A nil exit means os.Exit; pass a hook registry's Exit so its
// remaining hooks run too.
func RestoreOnPanic(t Terminal, exit func(code int)) {
	r := recover()
	if r == nil {
		return
	}
	restoreAfterPanic(t, os.Stderr, r, debug.Stack())
	if exit == nil {
		exit = os.Exit
	}
	exit(1)
}

// restoreAfterPanic does the best-effort cleanup shared by panic handlers.
func restoreAfterPanic(t Terminal, diag io.Writer, r any, stack []byte) {
	_, _ = t.Write([]byte("\x1b[2J\x1b[H"))
	_ = t.Restore()

	fmt.Fprintf(diag, "\npanic: %v\n\n%s\n", r, stack)
}
