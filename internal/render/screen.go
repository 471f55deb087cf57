package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/tedit/internal/width"
)

// Screen is a Terminal backed by a tcell screen.
type Screen struct {
	s         tcell.Screen
	style     tcell.Style
	highlight tcell.Style
	pen       tcell.Style
	x, y      int
}

// NewScreen wraps s. style is used for text and gutter, highlight for the
// cursor cell.
func NewScreen(s tcell.Screen, style, highlight tcell.Style) *Screen {
	return &Screen{s: s, style: style, highlight: highlight, pen: style}
}

// Size returns the viewport of the underlying screen.
func (t *Screen) Size() Size {
	w, h := t.s.Size()
	return Size{Width: w, Height: h}
}

func (t *Screen) Clear() {
	t.s.SetStyle(t.style)
	t.s.Clear()
	t.x, t.y = 0, 0
	t.pen = t.style
}

func (t *Screen) MoveTo(row, col int) {
	t.x, t.y = col, row
}

// WriteText draws text at the pen. Cells are counted with the editor's own
// width policy; when the terminal thinks a rune we count as wide is narrow,
// the second cell is blanked so later text stays aligned.
func (t *Screen) WriteText(text string) {
	w, _ := t.s.Size()
	for _, r := range text {
		cells := width.RuneWidth(r)
		if t.x >= w {
			t.x += cells
			continue
		}
		t.s.SetContent(t.x, t.y, r, nil, t.pen)
		if cells == 2 && runewidth.RuneWidth(r) < 2 && t.x+1 < w {
			t.s.SetContent(t.x+1, t.y, ' ', nil, t.pen)
		}
		t.x += cells
	}
}

func (t *Screen) Fill(ch rune, n int) {
	w, _ := t.s.Size()
	for i := 0; i < n; i++ {
		if t.x < w {
			t.s.SetContent(t.x, t.y, ch, nil, t.pen)
		}
		t.x += width.RuneWidth(ch)
	}
}

func (t *Screen) SetHighlight() {
	t.pen = t.highlight
}

func (t *Screen) ResetHighlight() {
	t.pen = t.style
}

// Flush shows the frame. The terminal cursor stays hidden; the highlighted
// cell is the cursor.
func (t *Screen) Flush() {
	t.s.HideCursor()
	t.s.Show()
}
