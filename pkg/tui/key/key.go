// ABOUTME: Defines the Key type and Parse for classifying single raw input bytes.
// ABOUTME: Ctrl derives the control byte a Ctrl+letter chord produces.

package key

import "fmt"

// Key is a classified raw input byte.
type Key struct {
	Type KeyType
	Byte byte
	Ctrl bool
}

// KeyType enumerates the classes of single-byte input.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable ASCII
	KeyEnter                    // Carriage return (0x0D)
	KeyTab                      // Tab (0x09)
	KeyBackspace                // DEL (0x7F)
	KeyEscape                   // ESC (0x1B), start of a multi-byte sequence
	KeyControl                  // Any other C0 control byte
	KeyHigh                     // 0x80..0xFF, part of a UTF-8 sequence
)

// Ctrl returns the byte produced by holding Ctrl with c: the upper three
// bits of the ASCII code are cleared. Ctrl('q') is 0x11.
func Ctrl(c byte) byte {
	return c & 0x1f
}

// Parse classifies a single raw input byte.
func Parse(b byte) Key {
	switch {
	case b == 0x0d:
		return Key{Type: KeyEnter, Byte: b}
	case b == 0x09:
		return Key{Type: KeyTab, Byte: b}
	case b == 0x7f:
		return Key{Type: KeyBackspace, Byte: b}
	case b == 0x1b:
		return Key{Type: KeyEscape, Byte: b}
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Byte: b}
	case b < 0x20:
		return Key{Type: KeyControl, Byte: b, Ctrl: true}
	}
	return Key{Type: KeyHigh, Byte: b}
}

// keyTypeNames provides human-readable labels for each KeyType.
var keyTypeNames = map[KeyType]string{
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyEscape:    "Escape",
	KeyHigh:      "High",
}

// String renders the byte's decimal value followed by a readable label,
// e.g. "65 ('A')" or "17 (Ctrl+Q)".
func (k Key) String() string {
	switch k.Type {
	case KeyRune:
		return fmt.Sprintf("%d ('%c')", k.Byte, k.Byte)
	case KeyControl:
		return fmt.Sprintf("%d (Ctrl+%c)", k.Byte, k.Byte|0x40)
	}
	return fmt.Sprintf("%d (%s)", k.Byte, keyTypeNames[k.Type])
}
