// ABOUTME: Display-width measurement and truncation with grapheme-aware segmentation.
// ABOUTME: Fast path for printable ASCII; East Asian wide runes and emoji count as two cells.

package width

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// VisibleWidth returns the number of terminal cells s occupies.
func VisibleWidth(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += graphemeWidth(cluster)
	}
	return w
}

// Truncate returns the longest prefix of s, cut on grapheme boundaries,
// that fits in cols cells.
func Truncate(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	if isPlainASCII(s) {
		if len(s) > cols {
			return s[:cols]
		}
		return s
	}

	used := 0
	rest := s
	state := -1
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		cw := graphemeWidth(cluster)
		if used+cw > cols {
			break
		}
		used += cw
		rest = next
		state = newState
	}
	return s[:len(s)-len(rest)]
}

// IsSingleCell reports whether s is exactly one grapheme cluster that
// occupies exactly one cell.
func IsSingleCell(s string) bool {
	return uniseg.GraphemeClusterCount(s) == 1 && VisibleWidth(s) == 1
}

// isPlainASCII returns true if s contains only printable ASCII (0x20-0x7E).
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

// graphemeWidth returns the display width of a single grapheme cluster.
func graphemeWidth(cluster string) int {
	if len(cluster) == 0 {
		return 0
	}
	// Decode the first rune without allocating a []rune slice.
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
