// Package cursor applies input events to a buffer.
//
// A Cursor is a (row, column) index into a buffer plus a sticky column: the
// column vertical moves try to return to. Columns count runes, never display
// cells. Every event is applied atomically: the buffer operation runs first
// and the cursor fields change only after it succeeded.
//
// A Cursor and the Buffer it edits must be used from one goroutine.
package cursor

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/kobzarvs/tedit/internal/buffer"
	"github.com/kobzarvs/tedit/internal/input"
)

// ErrUnknownEvent is returned for an input event the cursor has no rule for.
var ErrUnknownEvent = errors.New("cursor: unknown input event")

// DefaultTabWidth is the number of spaces Tab inserts.
const DefaultTabWidth = 4

// Outcome tells the caller what an event did.
type Outcome int

const (
	// Moved means the buffer is unchanged; the cursor may have moved.
	Moved Outcome = iota
	// Edited means the buffer content changed.
	Edited
	// Exit asks the event loop to stop.
	Exit
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Edited:
		return "edited"
	case Exit:
		return "exit"
	}
	return "unknown"
}

type Position struct {
	Row int
	Col int
}

type Cursor struct {
	row      int
	col      int
	sticky   int
	tabWidth int
}

func New(tabWidth int) *Cursor {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	return &Cursor{tabWidth: tabWidth}
}

func (c *Cursor) Row() int    { return c.row }
func (c *Cursor) Col() int    { return c.col }
func (c *Cursor) Sticky() int { return c.sticky }

func (c *Cursor) Position() Position {
	return Position{Row: c.row, Col: c.col}
}

// Clamp pulls the cursor back inside b, e.g. after the content was reloaded.
func (c *Cursor) Clamp(b *buffer.Buffer) {
	if c.row >= b.LineCount() {
		c.row = b.LineCount() - 1
	}
	if c.row < 0 {
		c.row = 0
	}
	if n := b.Len(c.row); c.col > n {
		c.col = n
	}
	if c.col < 0 {
		c.col = 0
	}
}

// Handle applies ev to b and the cursor.
func (c *Cursor) Handle(b *buffer.Buffer, ev input.Event) (Outcome, error) {
	switch ev := ev.(type) {
	case input.Insert:
		return c.insert(b, ev.Text)
	case input.Move:
		return c.move(b, ev)
	case input.Home:
		if ev.Mod == input.ModDocument {
			c.row = 0
		}
		c.col = 0
		c.sticky = c.col
		return Moved, nil
	case input.End:
		if ev.Mod == input.ModDocument {
			c.row = b.LineCount() - 1
		}
		c.col = b.Len(c.row)
		c.sticky = c.col
		return Moved, nil
	case input.Enter:
		return c.newline(b)
	case input.Tab:
		spaces := make([]rune, c.tabWidth)
		for i := range spaces {
			spaces[i] = ' '
		}
		return c.insert(b, spaces)
	case input.Backspace:
		if ev.Mod == input.ModWord {
			return c.deleteWordLeft(b)
		}
		return c.backspace(b)
	case input.Delete:
		switch ev.Mod {
		case input.ModWord:
			return c.deleteWordRight(b)
		case input.ModLine:
			return c.deleteLine(b)
		}
		return c.deleteChar(b)
	case input.Escape:
		return Exit, nil
	case input.Save:
		return Moved, nil
	default:
		return Moved, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
}

func (c *Cursor) move(b *buffer.Buffer, ev input.Move) (Outcome, error) {
	switch ev.Mod {
	case input.ModSwap:
		return c.swapLine(b, ev.Dir)
	case input.ModWord:
		switch ev.Dir {
		case input.Left:
			c.wordLeft(b)
		case input.Right:
			c.wordRight(b)
		default:
			c.moveVertical(b, ev.Dir)
		}
		return Moved, nil
	}
	switch ev.Dir {
	case input.Up, input.Down:
		c.moveVertical(b, ev.Dir)
	case input.Left:
		c.moveLeft(b)
	case input.Right:
		c.moveRight(b)
	}
	return Moved, nil
}

// moveVertical reads the sticky column but never updates it.
func (c *Cursor) moveVertical(b *buffer.Buffer, dir input.Dir) {
	if dir == input.Up {
		if c.row == 0 {
			c.col = 0
			return
		}
		c.row--
	} else {
		if c.row >= b.LineCount()-1 {
			c.col = b.Len(c.row)
			return
		}
		c.row++
	}
	c.col = min(c.sticky, b.Len(c.row))
}

func (c *Cursor) moveLeft(b *buffer.Buffer) {
	switch {
	case c.col > 0:
		c.col--
	case c.row > 0:
		c.row--
		c.col = b.Len(c.row)
	}
	c.sticky = c.col
}

func (c *Cursor) moveRight(b *buffer.Buffer) {
	switch {
	case c.col < b.Len(c.row):
		c.col++
	case c.row < b.LineCount()-1:
		c.row++
		c.col = 0
	}
	c.sticky = c.col
}

// wordLeft wraps to the end of the previous line while the scan finds no
// word before the cursor, visiting each line at most once.
func (c *Cursor) wordLeft(b *buffer.Buffer) {
	row, col := c.row, c.col
	for n, i := b.LineCount(), 0; i < n; i++ {
		start, found := scanWordLeft(b.Line(row), col)
		col = start
		if found || row == 0 {
			break
		}
		row--
		col = b.Len(row)
	}
	c.row, c.col = row, col
	c.sticky = c.col
}

func (c *Cursor) wordRight(b *buffer.Buffer) {
	row, col := c.row, c.col
	last := b.LineCount() - 1
	for n, i := b.LineCount(), 0; i < n; i++ {
		end, found := scanWordRight(b.Line(row), col)
		col = end
		if found || row == last {
			break
		}
		row++
		col = 0
	}
	c.row, c.col = row, col
	c.sticky = c.col
}

// scanWordLeft skips the spaces left of col, then the word before them. It
// returns the column where the scan stopped and whether a word was crossed.
func scanWordLeft(line []rune, col int) (int, bool) {
	i := col
	for i > 0 && isSpace(line[i-1]) {
		i--
	}
	wordEnd := i
	for i > 0 && !isSpace(line[i-1]) {
		i--
	}
	return i, i < wordEnd
}

func scanWordRight(line []rune, col int) (int, bool) {
	i := col
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	wordStart := i
	for i < len(line) && !isSpace(line[i]) {
		i++
	}
	return i, i > wordStart
}

// Punctuation is part of a word: "hello.world" is one word.
func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func (c *Cursor) swapLine(b *buffer.Buffer, dir input.Dir) (Outcome, error) {
	target := c.row
	switch dir {
	case input.Up:
		target--
	case input.Down:
		target++
	default:
		return Moved, nil
	}
	if target < 0 || target >= b.LineCount() {
		return Moved, nil
	}
	if err := b.SwapLines(c.row, target); err != nil {
		return Moved, err
	}
	c.row = target
	return Edited, nil
}

// insert types text at the cursor. LF splits the line, CR is dropped.
func (c *Cursor) insert(b *buffer.Buffer, text []rune) (Outcome, error) {
	lines := [][]rune{{}}
	for _, r := range text {
		switch r {
		case '\r':
		case '\n':
			lines = append(lines, []rune{})
		default:
			lines[len(lines)-1] = append(lines[len(lines)-1], r)
		}
	}
	if len(lines) == 1 && len(lines[0]) == 0 {
		c.sticky = c.col
		return Moved, nil
	}
	row, col, err := b.InsertLines(c.row, c.col, lines)
	if err != nil {
		return Moved, err
	}
	c.row, c.col = row, col
	c.sticky = c.col
	return Edited, nil
}

func (c *Cursor) newline(b *buffer.Buffer) (Outcome, error) {
	if err := b.SplitLineAt(c.row, c.col); err != nil {
		return Moved, err
	}
	c.row++
	c.col = 0
	c.sticky = 0
	return Edited, nil
}

func (c *Cursor) backspace(b *buffer.Buffer) (Outcome, error) {
	if c.col > 0 {
		if err := b.RemoveRange(c.row, c.col-1, c.col); err != nil {
			return Moved, err
		}
		c.col--
		c.sticky = c.col
		return Edited, nil
	}
	if c.row == 0 {
		c.sticky = c.col
		return Moved, nil
	}
	prevLen := b.Len(c.row - 1)
	if err := b.JoinWithNext(c.row - 1); err != nil {
		return Moved, err
	}
	c.row--
	c.col = prevLen
	c.sticky = c.col
	return Edited, nil
}

func (c *Cursor) deleteChar(b *buffer.Buffer) (Outcome, error) {
	c.sticky = c.col
	if c.col < b.Len(c.row) {
		if err := b.RemoveRange(c.row, c.col, c.col+1); err != nil {
			return Moved, err
		}
		return Edited, nil
	}
	if c.row >= b.LineCount()-1 {
		return Moved, nil
	}
	if err := b.JoinWithNext(c.row); err != nil {
		return Moved, err
	}
	return Edited, nil
}

// deleteWordLeft never crosses the start of the line.
func (c *Cursor) deleteWordLeft(b *buffer.Buffer) (Outcome, error) {
	c.sticky = c.col
	start, _ := scanWordLeft(b.Line(c.row), c.col)
	if start == c.col {
		return Moved, nil
	}
	if err := b.RemoveRange(c.row, start, c.col); err != nil {
		return Moved, err
	}
	c.col = start
	c.sticky = c.col
	return Edited, nil
}

// deleteWordRight never crosses the end of the line.
func (c *Cursor) deleteWordRight(b *buffer.Buffer) (Outcome, error) {
	c.sticky = c.col
	end, _ := scanWordRight(b.Line(c.row), c.col)
	if end == c.col {
		return Moved, nil
	}
	if err := b.RemoveRange(c.row, c.col, end); err != nil {
		return Moved, err
	}
	return Edited, nil
}

func (c *Cursor) deleteLine(b *buffer.Buffer) (Outcome, error) {
	wasEmpty := b.LineCount() == 1 && b.Len(0) == 0
	if err := b.RemoveLine(c.row); err != nil {
		return Moved, err
	}
	if c.row >= b.LineCount() {
		c.row = b.LineCount() - 1
	}
	c.col = 0
	c.sticky = 0
	if wasEmpty {
		return Moved, nil
	}
	return Edited, nil
}
