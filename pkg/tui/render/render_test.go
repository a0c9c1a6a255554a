// ABOUTME: Tests for Renderer frame layout, row counts, banner placement and write errors.
// ABOUTME: Captures frames through VirtualTerminal and a failing writer.

package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/mauromedda/kiloterm/pkg/tui/terminal"
)

// splitFrame checks the clear/home prefix and home suffix and returns the
// rows between them.
func splitFrame(t *testing.T, frame string) []string {
	t.Helper()
	prefix := ClearScreen + CursorHome
	if !strings.HasPrefix(frame, prefix) {
		t.Fatalf("frame %q does not start with clear and home", frame)
	}
	if !strings.HasSuffix(frame, CursorHome) {
		t.Fatalf("frame %q does not end with home", frame)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(frame, prefix), CursorHome)
	if !strings.HasSuffix(body, "\r\n") {
		t.Fatalf("last row of %q is not CR LF terminated", body)
	}
	return strings.Split(strings.TrimSuffix(body, "\r\n"), "\r\n")
}

func TestRefresh_ExactFrame(t *testing.T) {
	t.Parallel()

	vt := terminal.NewVirtualTerminal(24, 80)
	r := New(vt)

	if err := r.Refresh(terminal.Geometry{Rows: 24, Cols: 80}); err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}

	want := "\x1b[2J\x1b[H" + strings.Repeat("~\r\n", 24) + "\x1b[H"
	if got := vt.Output(); got != want {
		t.Errorf("Refresh() wrote %q, want %q", got, want)
	}
}

func TestRefresh_RowCountMatchesGeometry(t *testing.T) {
	t.Parallel()

	for rows := 1; rows <= 60; rows++ {
		vt := terminal.NewVirtualTerminal(rows, 80)
		r := New(vt)
		if err := r.Refresh(terminal.Geometry{Rows: rows, Cols: 80}); err != nil {
			t.Fatal(err)
		}
		got := splitFrame(t, vt.Output())
		if len(got) != rows {
			t.Fatalf("rows=%d: drew %d rows", rows, len(got))
		}
		for i, row := range got {
			if row != DefaultPlaceholder {
				t.Fatalf("rows=%d: row %d = %q, want placeholder", rows, i, row)
			}
		}
	}
}

func TestRefresh_NoStateBetweenCalls(t *testing.T) {
	t.Parallel()

	vt := terminal.NewVirtualTerminal(24, 80)
	r := New(vt)
	g := terminal.Geometry{Rows: 5, Cols: 10}

	if err := r.Refresh(g); err != nil {
		t.Fatal(err)
	}
	first := vt.Output()
	vt.Reset()
	if err := r.Refresh(g); err != nil {
		t.Fatal(err)
	}
	if vt.Output() != first {
		t.Errorf("second frame %q differs from first %q", vt.Output(), first)
	}
}

func TestRefresh_Banner(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		banner string
		geom   terminal.Geometry
		row    int
		want   string
	}{
		{name: "centered", banner: "hi", geom: terminal.Geometry{Rows: 9, Cols: 20}, row: 3, want: "~        hi"},
		{name: "truncated to width", banner: "kiloterm editor", geom: terminal.Geometry{Rows: 3, Cols: 8}, row: 1, want: "kiloterm"},
		{name: "one column short", banner: "abcd", geom: terminal.Geometry{Rows: 1, Cols: 5}, row: 0, want: "abcd"},
		{name: "wide runes", banner: "你好", geom: terminal.Geometry{Rows: 3, Cols: 10}, row: 1, want: "~  你好"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vt := terminal.NewVirtualTerminal(tt.geom.Rows, tt.geom.Cols)
			r := New(vt, WithBanner(tt.banner))

			if err := r.Refresh(tt.geom); err != nil {
				t.Fatal(err)
			}
			rows := splitFrame(t, vt.Output())
			if len(rows) != tt.geom.Rows {
				t.Fatalf("drew %d rows, want %d", len(rows), tt.geom.Rows)
			}
			if rows[tt.row] != tt.want {
				t.Errorf("banner row = %q, want %q", rows[tt.row], tt.want)
			}
			for i, row := range rows {
				if i != tt.row && row != DefaultPlaceholder {
					t.Errorf("row %d = %q, want placeholder", i, row)
				}
			}
		})
	}
}

func TestRefresh_CustomPlaceholder(t *testing.T) {
	t.Parallel()

	vt := terminal.NewVirtualTerminal(3, 10)
	r := New(vt, WithPlaceholder("."), WithBanner(""))

	if err := r.Refresh(terminal.Geometry{Rows: 3, Cols: 10}); err != nil {
		t.Fatal(err)
	}
	for i, row := range splitFrame(t, vt.Output()) {
		if row != "." {
			t.Errorf("row %d = %q, want %q", i, row, ".")
		}
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	vt := terminal.NewVirtualTerminal(24, 80)
	if err := New(vt).Clear(); err != nil {
		t.Fatal(err)
	}
	if got := vt.Output(); got != "\x1b[2J\x1b[H" {
		t.Errorf("Clear() wrote %q, want clear and home", got)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestRefresh_WriteError(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken pipe")
	r := New(failingWriter{err: errBroken})

	if err := r.Refresh(terminal.Geometry{Rows: 2, Cols: 2}); !errors.Is(err, errBroken) {
		t.Errorf("Refresh() error = %v, want wrapped write error", err)
	}
	if err := r.Clear(); !errors.Is(err, errBroken) {
		t.Errorf("Clear() error = %v, want wrapped write error", err)
	}
}
