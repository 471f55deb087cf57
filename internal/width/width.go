// Package width classifies runes into one or two display columns.
//
// A rune is full-width when its UTF-8 form needs three or more bytes,
// except the half-width katakana block U+FF60..U+FF9F. This is a byte-length
// rule, not an East Asian Width table, and the layout depends on it exactly.
package width

import "unicode/utf8"

const (
	halfWidthKatakanaFirst = 0xFF60
	halfWidthKatakanaLast  = 0xFF9F
)

// IsFullWidth reports whether r occupies two display columns.
func IsFullWidth(r rune) bool {
	if r >= halfWidthKatakanaFirst && r <= halfWidthKatakanaLast {
		return false
	}
	n := utf8.RuneLen(r)
	return n >= 3
}

// RuneWidth returns the number of display columns r occupies.
func RuneWidth(r rune) int {
	if IsFullWidth(r) {
		return 2
	}
	return 1
}

// Width returns the display width of line[:n]. n is clamped to the line.
func Width(line []rune, n int) int {
	if n > len(line) {
		n = len(line)
	}
	w := 0
	for i := 0; i < n; i++ {
		w += RuneWidth(line[i])
	}
	return w
}
