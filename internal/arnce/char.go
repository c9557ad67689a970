// Package arnce implements the Amateur Radio Numeric Callsign Encoding:
// a 40-symbol character alphabet, a 3-character/16-bit chunk packing,
// and the HamAddr address type built from four such chunks, including
// its EUI-48/EUI-64 bijections, per spec.md §4.3.
//
// Grounded on the teacher's ax25_pad.go address-field handling (the
// closest analogue in the pack to a compact amateur-radio address
// representation), generalized from AX.25's 6-character shift-left
// encoding to ARNCE's 40-symbol chunked encoding.
package arnce

import (
	"errors"
	"strings"
)

// ErrInvalidChar is returned when a byte or rune falls outside the
// 40-symbol ARNCE alphabet.
var ErrInvalidChar = errors.New("arnce: character outside ARNCE alphabet")

// HamChar is a 6-bit index into the 40-symbol ARNCE alphabet:
// NUL, A-Z, 0-9, '/', '-', '^' at indices 0, 1..26, 27..36, 37, 38, 39.
type HamChar uint8

const (
	CharNUL HamChar = 0
	// CharEscape is '^', reserved as an escape character per spec.md §3.
	CharEscape HamChar = 39
)

const alphabet = "\x00ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789/-^"

// AsciiToHamChar maps an ASCII byte, case-insensitively, to its HamChar.
func AsciiToHamChar(b byte) (HamChar, error) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	idx := strings.IndexByte(alphabet, b)
	if idx < 0 {
		return 0, ErrInvalidChar
	}
	return HamChar(idx), nil
}

// Rune returns the display rune for c: upper-case letters/digits/symbols
// as themselves, and NUL as the visible placeholder '␀' per spec.md §4.3.
func (c HamChar) Rune() rune {
	if c == CharNUL {
		return '␀'
	}
	if int(c) >= len(alphabet) {
		return '?'
	}
	return rune(alphabet[c])
}

// Byte returns the raw ASCII byte this HamChar represents (0x00 for
// NUL), used when building callsign text rather than display text.
func (c HamChar) Byte() byte {
	if int(c) >= len(alphabet) {
		return '?'
	}
	return alphabet[c]
}

func (c HamChar) Valid() bool { return c <= CharEscape }
