// ABOUTME: Keybinding parser for "ctrl+<letter>" and single-character bindings
// ABOUTME: Resolves a binding string to the raw byte a terminal in raw mode delivers

package config

import (
	"fmt"
	"strings"

	"github.com/mauromedda/kiloterm/pkg/tui/key"
)

const ctrlPrefix = "ctrl+"

// ParseBinding resolves a binding such as "ctrl+q" or "x" to the byte the
// terminal sends for it. Ctrl bindings accept ASCII letters only.
func ParseBinding(s string) (byte, error) {
	b := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(strings.ToLower(b), ctrlPrefix); ok {
		if len(rest) != 1 || rest[0] < 'a' || rest[0] > 'z' {
			return 0, fmt.Errorf("invalid ctrl binding %q: want ctrl+<letter>", s)
		}
		return key.Ctrl(rest[0]), nil
	}
	if len(b) == 1 && b[0] > 0x20 && b[0] <= 0x7e {
		return b[0], nil
	}
	return 0, fmt.Errorf("invalid binding %q", s)
}
