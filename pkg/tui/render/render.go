// ABOUTME: Renderer redraws the whole screen each cycle: clear, home, placeholder rows, home.
// ABOUTME: Frames are assembled in memory and sent to the terminal in a single write.

// Package render draws full-screen frames for the editor loop using
// VT100 escape sequences.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/mauromedda/kiloterm/pkg/tui/terminal"
	"github.com/mauromedda/kiloterm/pkg/tui/width"
)

// Escape sequences understood by every VT100-compatible terminal.
const (
	ClearScreen = "\x1b[2J"
	CursorHome  = "\x1b[H"
)

// DefaultPlaceholder marks rows past the end of the buffer.
const DefaultPlaceholder = "~"

// Renderer writes frames to the terminal output.
type Renderer struct {
	out         io.Writer
	placeholder string
	banner      string

	// frame is reused across refreshes.
	frame bytes.Buffer
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithPlaceholder sets the glyph drawn at the start of every row.
func WithPlaceholder(s string) Option {
	return func(r *Renderer) {
		if s != "" {
			r.placeholder = s
		}
	}
}

// WithBanner sets a line of text centered on the row a third of the way
// down the screen. An empty banner is not drawn.
func WithBanner(s string) Option {
	return func(r *Renderer) {
		r.banner = s
	}
}

// New returns a Renderer writing to out, which should be the unbuffered
// terminal device.
func New(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out:         out,
		placeholder: DefaultPlaceholder,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh redraws the screen for g: clear, home, one placeholder row per
// terminal row each ending in CR LF, then home again.
func (r *Renderer) Refresh(g terminal.Geometry) error {
	buf := &r.frame
	buf.Reset()
	buf.Grow(len(ClearScreen) + 2*len(CursorHome) + g.Rows*(len(r.placeholder)+2))

	buf.WriteString(ClearScreen)
	buf.WriteString(CursorHome)
	for y := 0; y < g.Rows; y++ {
		r.drawRow(buf, y, g)
		buf.WriteString("\r\n")
	}
	buf.WriteString(CursorHome)

	if _, err := r.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Clear blanks the screen and homes the cursor.
func (r *Renderer) Clear() error {
	if _, err := io.WriteString(r.out, ClearScreen+CursorHome); err != nil {
		return fmt.Errorf("clearing screen: %w", err)
	}
	return nil
}

// drawRow writes row y without its line terminator.
func (r *Renderer) drawRow(buf *bytes.Buffer, y int, g terminal.Geometry) {
	placeholder := width.Truncate(r.placeholder, g.Cols)
	if r.banner == "" || y != g.Rows/3 {
		buf.WriteString(placeholder)
		return
	}

	banner := width.Truncate(r.banner, g.Cols)
	padding := (g.Cols - width.VisibleWidth(banner)) / 2
	if padding > 0 {
		buf.WriteString(placeholder)
		padding--
	}
	buf.WriteString(strings.Repeat(" ", padding))
	buf.WriteString(banner)
}
