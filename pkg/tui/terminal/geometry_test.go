// ABOUTME: Tests for Prober window-size validation and the cursor-report fallback.
// ABOUTME: Replaces the ioctl with a stub and scripts the terminal's reply bytes.

package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"golang.org/x/sys/unix"
)

func stubSize(w, h int, err error) func(int) (int, int, error) {
	return func(int) (int, int, error) { return w, h, err }
}

// replyReader returns a KeyReader that yields reply one byte per read,
// then reports timeouts.
func replyReader(reply string) *KeyReader {
	pos := 0
	return &KeyReader{
		read: func(p []byte) (int, error) {
			if pos >= len(reply) {
				return 0, nil
			}
			p[0] = reply[pos]
			pos++
			return 1, nil
		},
	}
}

func TestProber_Probe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		w, h    int
		err     error
		want    Geometry
		wantErr bool
	}{
		{name: "standard 80x24", w: 80, h: 24, want: Geometry{Rows: 24, Cols: 80}},
		{name: "wide 200x50", w: 200, h: 50, want: Geometry{Rows: 50, Cols: 200}},
		{name: "single cell", w: 1, h: 1, want: Geometry{Rows: 1, Cols: 1}},
		{name: "zero columns", w: 0, h: 24, wantErr: true},
		{name: "zero rows", w: 80, h: 0, wantErr: true},
		{name: "ioctl unsupported", err: unix.ENOTTY, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &Prober{size: stubSize(tt.w, tt.h, tt.err)}

			got, err := p.Probe()
			if tt.wantErr {
				if !errors.Is(err, ErrGeometry) {
					t.Fatalf("Probe() error = %v, want ErrGeometry", err)
				}
				if got.Valid() {
					t.Errorf("Probe() returned valid geometry %v alongside an error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Probe() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Probe() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProber_CursorFallback(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := &Prober{
		out:  &out,
		keys: replyReader("\x1b[48;132R"),
		size: stubSize(0, 0, unix.ENOTTY),
	}

	got, err := p.Probe()
	if err != nil {
		t.Fatalf("Probe() unexpected error: %v", err)
	}
	if got != (Geometry{Rows: 48, Cols: 132}) {
		t.Errorf("Probe() = %+v, want 48 rows x 132 cols", got)
	}
	if out.String() != cursorFarCorner+cursorReportRequest {
		t.Errorf("probe wrote %q, want corner move plus report request", out.String())
	}
}

func TestProber_CursorFallbackNoReply(t *testing.T) {
	t.Parallel()

	p := &Prober{
		out:  &bytes.Buffer{},
		keys: replyReader(""),
		size: stubSize(0, 24, nil),
	}

	if _, err := p.Probe(); !errors.Is(err, ErrGeometry) {
		t.Fatalf("Probe() error = %v, want ErrGeometry", err)
	}
}

func TestProber_FallbackFailureKeepsIoctlError(t *testing.T) {
	t.Parallel()

	p := &Prober{
		out:  &bytes.Buffer{},
		keys: replyReader("garbage"),
		size: stubSize(0, 0, unix.ENOTTY),
	}

	_, err := p.Probe()
	if !errors.Is(err, ErrGeometry) {
		t.Fatalf("Probe() error = %v, want ErrGeometry", err)
	}
	if !errors.Is(err, unix.ENOTTY) {
		t.Errorf("Probe() error = %v, want the window-size ioctl error kept", err)
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "ioctl TIOCGWINSZ: ") || !strings.Contains(msg, "cursor position report") {
		t.Errorf("error text %q should name both the ioctl and the fallback", msg)
	}
}

func TestParseCursorReport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    Geometry
		wantErr bool
	}{
		{name: "valid", in: "\x1b[24;80R", want: Geometry{Rows: 24, Cols: 80}},
		{name: "minimal", in: "\x1b[1;1R", want: Geometry{Rows: 1, Cols: 1}},
		{name: "missing escape", in: "[24;80R", wantErr: true},
		{name: "missing terminator", in: "\x1b[24;80", wantErr: true},
		{name: "missing separator", in: "\x1b[2480R", wantErr: true},
		{name: "non-numeric", in: "\x1b[a;bR", wantErr: true},
		{name: "zero columns", in: "\x1b[24;0R", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseCursorReport([]byte(tt.in))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseCursorReport(%q) = %+v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCursorReport(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseCursorReport(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
