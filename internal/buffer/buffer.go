// Package buffer holds the editable document as a list of rune lines.
//
// A Buffer always has at least one line and no line contains a line
// terminator. Every operation builds the replacement slices before it
// publishes them, so a failing or panicking call leaves the previous
// content intact.
//
// Buffer is not safe for concurrent use.
package buffer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange reports a row or column outside the document.
var ErrOutOfRange = errors.New("buffer: position out of range")

type Buffer struct {
	lines [][]rune
}

// New returns a document with a single empty line.
func New() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// FromLines builds a buffer from already split lines. Line terminators
// inside the given lines are not checked; use FromText for raw text.
func FromLines(lines [][]rune) *Buffer {
	if len(lines) == 0 {
		return New()
	}
	b := &Buffer{lines: make([][]rune, len(lines))}
	for i, line := range lines {
		b.lines[i] = append([]rune(nil), line...)
	}
	return b
}

// FromText splits text on LF. CRLF and lone CR count as LF.
func FromText(text string) *Buffer {
	return &Buffer{lines: splitLines(text)}
}

func splitLines(text string) [][]rune {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines
}

// LineCount returns the number of lines; never less than one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the runes of row. The slice aliases buffer storage and must
// not be modified.
func (b *Buffer) Line(row int) []rune {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	return b.lines[row]
}

// Len returns the number of runes in row, or 0 for an invalid row.
func (b *Buffer) Len(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

// Text joins all lines with LF.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Replace swaps the whole content for other's lines. other must not be used
// afterwards.
func (b *Buffer) Replace(other *Buffer) {
	if other == nil || len(other.lines) == 0 {
		b.lines = [][]rune{{}}
		return
	}
	b.lines = other.lines
}

func (b *Buffer) checkRow(row int) error {
	if row < 0 || row >= len(b.lines) {
		return fmt.Errorf("%w: row %d of %d", ErrOutOfRange, row, len(b.lines))
	}
	return nil
}

func (b *Buffer) checkCol(row, col int) error {
	if err := b.checkRow(row); err != nil {
		return err
	}
	if col < 0 || col > len(b.lines[row]) {
		return fmt.Errorf("%w: column %d of row %d (len %d)", ErrOutOfRange, col, row, len(b.lines[row]))
	}
	return nil
}

// SplitLineAt cuts row at col: the prefix stays at row and the suffix
// becomes a new line at row+1.
func (b *Buffer) SplitLineAt(row, col int) error {
	if err := b.checkCol(row, col); err != nil {
		return err
	}
	line := b.lines[row]
	left := append([]rune(nil), line[:col]...)
	right := append([]rune(nil), line[col:]...)

	newLines := make([][]rune, 0, len(b.lines)+1)
	newLines = append(newLines, b.lines[:row]...)
	newLines = append(newLines, left, right)
	newLines = append(newLines, b.lines[row+1:]...)
	b.lines = newLines
	return nil
}

// JoinWithNext appends row+1 to row and removes row+1.
func (b *Buffer) JoinWithNext(row int) error {
	if row < 0 || row+1 >= len(b.lines) {
		return fmt.Errorf("%w: cannot join row %d of %d", ErrOutOfRange, row, len(b.lines))
	}
	left := b.lines[row]
	right := b.lines[row+1]
	merged := make([]rune, 0, len(left)+len(right))
	merged = append(merged, left...)
	merged = append(merged, right...)

	newLines := make([][]rune, 0, len(b.lines)-1)
	newLines = append(newLines, b.lines[:row]...)
	newLines = append(newLines, merged)
	newLines = append(newLines, b.lines[row+2:]...)
	b.lines = newLines
	return nil
}

// InsertAt inserts text into row at col, shifting the tail right. text must
// not contain line terminators.
func (b *Buffer) InsertAt(row, col int, text []rune) error {
	if err := b.checkCol(row, col); err != nil {
		return err
	}
	if len(text) == 0 {
		return nil
	}
	line := b.lines[row]
	newLine := make([]rune, 0, len(line)+len(text))
	newLine = append(newLine, line[:col]...)
	newLine = append(newLine, text...)
	newLine = append(newLine, line[col:]...)
	b.lines[row] = newLine
	return nil
}

// InsertLines splices text into row at col. text[0] joins the head of the
// row, the last element joins its tail and any elements between become new
// lines. The whole splice is built before the buffer changes. It returns
// the position just past the inserted text.
func (b *Buffer) InsertLines(row, col int, text [][]rune) (int, int, error) {
	if err := b.checkCol(row, col); err != nil {
		return row, col, err
	}
	if len(text) == 0 {
		return row, col, nil
	}
	if len(text) == 1 {
		if err := b.InsertAt(row, col, text[0]); err != nil {
			return row, col, err
		}
		return row, col + len(text[0]), nil
	}
	line := b.lines[row]
	last := text[len(text)-1]

	first := make([]rune, 0, col+len(text[0]))
	first = append(first, line[:col]...)
	first = append(first, text[0]...)
	tail := make([]rune, 0, len(last)+len(line)-col)
	tail = append(tail, last...)
	tail = append(tail, line[col:]...)

	newLines := make([][]rune, 0, len(b.lines)+len(text)-1)
	newLines = append(newLines, b.lines[:row]...)
	newLines = append(newLines, first)
	for _, mid := range text[1 : len(text)-1] {
		newLines = append(newLines, append([]rune(nil), mid...))
	}
	newLines = append(newLines, tail)
	newLines = append(newLines, b.lines[row+1:]...)
	b.lines = newLines
	return row + len(text) - 1, len(last), nil
}

// RemoveRange deletes runes [start, end) from row.
func (b *Buffer) RemoveRange(row, start, end int) error {
	if err := b.checkCol(row, start); err != nil {
		return err
	}
	if err := b.checkCol(row, end); err != nil {
		return err
	}
	if start > end {
		return fmt.Errorf("%w: range [%d, %d)", ErrOutOfRange, start, end)
	}
	if start == end {
		return nil
	}
	line := b.lines[row]
	newLine := make([]rune, 0, len(line)-(end-start))
	newLine = append(newLine, line[:start]...)
	newLine = append(newLine, line[end:]...)
	b.lines[row] = newLine
	return nil
}

// RemoveLine deletes row. The only line of a document is cleared instead.
func (b *Buffer) RemoveLine(row int) error {
	if err := b.checkRow(row); err != nil {
		return err
	}
	if len(b.lines) == 1 {
		b.lines[0] = []rune{}
		return nil
	}
	newLines := make([][]rune, 0, len(b.lines)-1)
	newLines = append(newLines, b.lines[:row]...)
	newLines = append(newLines, b.lines[row+1:]...)
	b.lines = newLines
	return nil
}

// SwapLines exchanges the content of rows a and c.
func (b *Buffer) SwapLines(a, c int) error {
	if err := b.checkRow(a); err != nil {
		return err
	}
	if err := b.checkRow(c); err != nil {
		return err
	}
	b.lines[a], b.lines[c] = b.lines[c], b.lines[a]
	return nil
}
