// ABOUTME: Prober discovers the terminal's visible rows and columns.
// ABOUTME: Uses the window-size ioctl, with an optional cursor-position-report fallback.

package terminal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	// cursorFarCorner pushes the cursor to the bottom-right; the terminal
	// clamps it to the last cell.
	cursorFarCorner = "\x1b[999C\x1b[999B"
	// cursorReportRequest asks for ESC [ rows ; cols R.
	cursorReportRequest = "\x1b[6n"

	maxReportLen   = 32
	maxReportPolls = 10
)

// Geometry is the visible size of the terminal in character cells.
type Geometry struct {
	Rows int
	Cols int
}

// Valid reports whether both dimensions are positive.
func (g Geometry) Valid() bool {
	return g.Rows > 0 && g.Cols > 0
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Cols, g.Rows)
}

// Prober queries a terminal for its Geometry.
type Prober struct {
	fd   int
	out  io.Writer
	keys *KeyReader
	size func(fd int) (width, height int, err error)
}

// NewProber returns a Prober for the terminal behind out. When keys is not
// nil, a failed window-size query falls back to asking the terminal where
// the cursor lands after moving it to the far corner. The fallback needs
// raw mode to be active.
func NewProber(out *os.File, keys *KeyReader) *Prober {
	return &Prober{
		fd:   int(out.Fd()),
		out:  out,
		keys: keys,
		size: term.GetSize,
	}
}

// Probe returns the current Geometry. A result with zero rows or columns
// is reported as ErrGeometry.
func (p *Prober) Probe() (Geometry, error) {
	w, h, err := p.size(p.fd)
	g := Geometry{Rows: h, Cols: w}
	if err == nil && g.Valid() {
		return g, nil
	}
	if err == nil {
		err = fmt.Errorf("reported %s", g)
	}
	if p.keys != nil {
		cg, cerr := p.probeCursor()
		if cerr == nil {
			return cg, nil
		}
		err = fmt.Errorf("%w; fallback: %w", err, cerr)
	}
	return Geometry{}, &OpError{Op: "ioctl TIOCGWINSZ", Kind: ErrGeometry, Err: err}
}

// probeCursor moves the cursor to the far corner and parses the terminal's
// cursor position report.
func (p *Prober) probeCursor() (Geometry, error) {
	if _, err := io.WriteString(p.out, cursorFarCorner+cursorReportRequest); err != nil {
		return Geometry{}, &OpError{Op: "write", Kind: ErrGeometry, Err: err}
	}

	var report []byte
	for polls := 0; polls < maxReportPolls && len(report) < maxReportLen; {
		ev, err := p.keys.ReadOnce()
		if err != nil {
			return Geometry{}, &OpError{Op: "cursor position report", Kind: ErrGeometry, Err: err}
		}
		if !ev.OK {
			polls++
			continue
		}
		report = append(report, ev.Byte)
		if ev.Byte == 'R' {
			break
		}
	}

	g, err := parseCursorReport(report)
	if err != nil {
		return Geometry{}, &OpError{Op: "cursor position report", Kind: ErrGeometry, Err: err}
	}
	return g, nil
}

// parseCursorReport decodes ESC [ rows ; cols R.
func parseCursorReport(b []byte) (Geometry, error) {
	if len(b) < 6 || b[0] != 0x1b || b[1] != '[' || b[len(b)-1] != 'R' {
		return Geometry{}, fmt.Errorf("malformed report %q", b)
	}
	rowsPart, colsPart, ok := bytes.Cut(b[2:len(b)-1], []byte{';'})
	if !ok {
		return Geometry{}, fmt.Errorf("malformed report %q", b)
	}
	rows, err := strconv.Atoi(string(rowsPart))
	if err != nil {
		return Geometry{}, fmt.Errorf("parsing rows: %w", err)
	}
	cols, err := strconv.Atoi(string(colsPart))
	if err != nil {
		return Geometry{}, fmt.Errorf("parsing columns: %w", err)
	}

	g := Geometry{Rows: rows, Cols: cols}
	if !g.Valid() {
		return Geometry{}, fmt.Errorf("reported %s", g)
	}
	return g, nil
}
