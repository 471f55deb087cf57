// Package render projects a buffer and cursor onto a fixed-size grid of
// character cells: a line-number gutter, soft-wrapped text and a
// highlighted cursor cell.
package render

import (
	"strconv"
	"strings"

	"github.com/kobzarvs/tedit/internal/buffer"
	"github.com/kobzarvs/tedit/internal/cursor"
	"github.com/kobzarvs/tedit/internal/width"
)

// Size is a viewport in cells.
type Size struct {
	Width  int
	Height int
}

// Point is a screen cell, row first.
type Point struct {
	Row int
	Col int
}

// Terminal is the output sink a frame is painted on. Implementations track
// the pen position: WriteText and Fill advance it by the display width of
// what they wrote.
type Terminal interface {
	Clear()
	MoveTo(row, col int)
	WriteText(text string)
	Fill(ch rune, n int)
	SetHighlight()
	ResetHighlight()
	Flush()
}

// Row is one physical screen row.
type Row struct {
	// Line is the buffer row the text belongs to.
	Line int
	// Continuation is set on rows produced by a soft wrap; they get a blank
	// gutter.
	Continuation bool
	Text         []rune
}

// Frame is the laid-out content of one screen.
type Frame struct {
	Rows   []Row
	Gutter int
	// Cursor is the screen cell of the cursor. CursorVisible is false when
	// wrapping pushed it below the last row.
	Cursor        Point
	CursorVisible bool
	// CursorRune is the rune under the cursor, a space at end of line.
	CursorRune rune
}

// GutterWidth is the number of digits of the highest visible line number
// plus one separator column.
func GutterWidth(lineCount, rowOffset, height int) int {
	last := min(lineCount, rowOffset+height)
	if last < 1 {
		last = 1
	}
	return len(strconv.Itoa(last)) + 1
}

// Layout computes the frame for b with pos as the cursor. ok is false for a
// degenerate viewport (no room past the gutter), in which case nothing
// should be drawn.
func Layout(b *buffer.Buffer, pos cursor.Position, rowOffset int, size Size) (f Frame, ok bool) {
	if size.Width <= 0 || size.Height <= 0 {
		return Frame{}, false
	}
	gutter := GutterWidth(b.LineCount(), rowOffset, size.Height)
	if gutter >= size.Width {
		return Frame{}, false
	}
	contentWidth := size.Width - gutter

	f.Gutter = gutter
	f.Rows = make([]Row, 0, size.Height)
	end := min(b.LineCount(), rowOffset+size.Height)
	for lineIdx := rowOffset; lineIdx < end && len(f.Rows) < size.Height; lineIdx++ {
		line := b.Line(lineIdx)
		cursorCol := -1
		if lineIdx == pos.Row {
			cursorCol = pos.Col
		}
		segs, at := wrapLine(line, contentWidth, cursorCol)
		for i, seg := range segs {
			if len(f.Rows) == size.Height {
				break
			}
			if i == at.seg && cursorCol >= 0 {
				f.Cursor = Point{Row: len(f.Rows), Col: gutter + at.x}
				f.CursorVisible = true
				f.CursorRune = ' '
				if cursorCol < len(line) {
					f.CursorRune = line[cursorCol]
				}
			}
			f.Rows = append(f.Rows, Row{
				Line:         lineIdx,
				Continuation: i > 0,
				Text:         line[seg.start:seg.end],
			})
		}
	}
	return f, true
}

type segment struct {
	start int
	end   int
}

type cursorAt struct {
	seg int
	x   int
}

// wrapLine splits line into rows of at most contentWidth cells. A rune that
// does not fit moves whole to the next row. On the cursor's line the end of
// line cell counts as one column so the cursor always has a cell to sit on.
func wrapLine(line []rune, contentWidth, cursorCol int) ([]segment, cursorAt) {
	var (
		segs  []segment
		at    cursorAt
		start int
		x     int
	)
	for i, r := range line {
		w := width.RuneWidth(r)
		if x > 0 && x+w > contentWidth {
			segs = append(segs, segment{start: start, end: i})
			start = i
			x = 0
		}
		if i == cursorCol {
			at = cursorAt{seg: len(segs), x: x}
		}
		x += w
	}
	if cursorCol == len(line) {
		if x > 0 && x+1 > contentWidth {
			segs = append(segs, segment{start: start, end: len(line)})
			start = len(line)
			x = 0
		}
		at = cursorAt{seg: len(segs), x: x}
	}
	segs = append(segs, segment{start: start, end: len(line)})
	return segs, at
}

// Paint issues the frame to t: clear, home, rows, cursor cell, flush.
func (f Frame) Paint(t Terminal) {
	t.Clear()
	t.MoveTo(0, 0)
	digits := f.Gutter - 1
	for y, row := range f.Rows {
		t.MoveTo(y, 0)
		if row.Continuation {
			t.Fill(' ', f.Gutter)
		} else {
			num := strconv.Itoa(row.Line + 1)
			t.WriteText(strings.Repeat(" ", max(digits-len(num), 0)) + num + " ")
		}
		t.WriteText(printable(row.Text))
	}
	if f.CursorVisible {
		t.MoveTo(f.Cursor.Row, f.Cursor.Col)
		t.SetHighlight()
		t.WriteText(printable([]rune{f.CursorRune}))
		t.ResetHighlight()
	}
	t.Flush()
}

// printable replaces control runes, which would move the terminal's own
// cursor, with '?'.
func printable(text []rune) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 0x20 || r == 0x7f {
			r = '?'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Draw lays out and paints one frame. Nothing is drawn for a degenerate
// viewport.
func Draw(t Terminal, b *buffer.Buffer, pos cursor.Position, rowOffset int, size Size) (Frame, bool) {
	f, ok := Layout(b, pos, rowOffset, size)
	if !ok {
		return f, false
	}
	f.Paint(t)
	return f, true
}

// Scroll returns the row offset adjusted by the least amount that keeps
// cursorRow inside [rowOffset, rowOffset+height-1].
func Scroll(rowOffset, cursorRow, height int) int {
	if height <= 0 {
		return rowOffset
	}
	if cursorRow < rowOffset {
		return cursorRow
	}
	if cursorRow >= rowOffset+height {
		return cursorRow - height + 1
	}
	return rowOffset
}

// Fit applies Scroll and then, if soft wraps above the cursor push it below
// the last screen row, advances the offset until the cursor is visible.
func Fit(b *buffer.Buffer, pos cursor.Position, rowOffset int, size Size) int {
	rowOffset = Scroll(rowOffset, pos.Row, size.Height)
	for rowOffset < pos.Row {
		f, ok := Layout(b, pos, rowOffset, size)
		if !ok || f.CursorVisible {
			break
		}
		rowOffset++
	}
	return rowOffset
}
