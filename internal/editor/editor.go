package editor

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/tedit/internal/buffer"
	"github.com/kobzarvs/tedit/internal/config"
	"github.com/kobzarvs/tedit/internal/cursor"
	"github.com/kobzarvs/tedit/internal/document"
	"github.com/kobzarvs/tedit/internal/input"
	"github.com/kobzarvs/tedit/internal/logger"
	"github.com/kobzarvs/tedit/internal/render"
)

var errNoFileName = errors.New("no file name")

// Editor owns one document: its buffer, the cursor, the row offset and the
// last known viewport. It is not safe for concurrent use.
type Editor struct {
	buf       *buffer.Buffer
	cursor    *cursor.Cursor
	decoder   *input.Decoder
	rowOffset int
	size      render.Size
	path      string
	modified  bool

	styleMain   tcell.Style
	styleCursor tcell.Style
}

// New returns an editor over buf bound to path. A nil buf starts an empty
// document.
func New(cfg config.Config, buf *buffer.Buffer, path string) *Editor {
	if buf == nil {
		buf = buffer.New()
	}
	tabWidth := cfg.Editor.TabWidth
	if tabWidth < 1 {
		tabWidth = cursor.DefaultTabWidth
	}
	mainFg := parseColor(cfg.Theme.Foreground, tcell.ColorDefault)
	mainBg := parseColor(cfg.Theme.Background, tcell.ColorDefault)
	styleMain := tcell.StyleDefault.Foreground(mainFg).Background(mainBg)
	styleCursor := styleMain.Reverse(true)
	if cfg.Theme.CursorForeground != "" || cfg.Theme.CursorBackground != "" {
		cursorFg := parseColor(cfg.Theme.CursorForeground, mainBg)
		cursorBg := parseColor(cfg.Theme.CursorBackground, mainFg)
		styleCursor = tcell.StyleDefault.Foreground(cursorFg).Background(cursorBg)
	}
	return &Editor{
		buf:         buf,
		cursor:      cursor.New(tabWidth),
		decoder:     input.NewDecoder(cfg.Keymap),
		path:        path,
		styleMain:   styleMain,
		styleCursor: styleCursor,
	}
}

func (e *Editor) Path() string            { return e.path }
func (e *Editor) Modified() bool          { return e.modified }
func (e *Editor) Content() string         { return e.buf.Text() }
func (e *Editor) LineCount() int          { return e.buf.LineCount() }
func (e *Editor) RowOffset() int          { return e.rowOffset }
func (e *Editor) Size() render.Size       { return e.size }
func (e *Editor) Cursor() cursor.Position { return e.cursor.Position() }

// HandleKey decodes a terminal key and applies it. Keys with no binding
// are ignored.
func (e *Editor) HandleKey(ev *tcell.EventKey) (quit bool, err error) {
	in, ok := e.decoder.Decode(ev)
	if !ok {
		logger.Debug("unbound key", "key", input.KeyString(ev))
		return false, nil
	}
	return e.HandleInput(in)
}

// HandleInput applies one input event. It reports quit when the event asks
// the loop to stop.
func (e *Editor) HandleInput(ev input.Event) (quit bool, err error) {
	logger.Debug("input", "action", input.Name(ev))
	if _, ok := ev.(input.Save); ok {
		// A failed save keeps the buffer and the session alive.
		if err := e.Save(); err != nil {
			logger.Error("save failed", "path", e.path, "error", err)
		}
		return false, nil
	}
	outcome, err := e.cursor.Handle(e.buf, ev)
	if err != nil {
		return false, fmt.Errorf("handle %s: %w", input.Name(ev), err)
	}
	switch outcome {
	case cursor.Exit:
		return true, nil
	case cursor.Edited:
		e.modified = true
	}
	e.scroll()
	return false, nil
}

func (e *Editor) scroll() {
	e.rowOffset = render.Fit(e.buf, e.cursor.Position(), e.rowOffset, e.size)
}

// Resize caches the viewport used by the next frame.
func (e *Editor) Resize(width, height int) {
	if width == e.size.Width && height == e.size.Height {
		return
	}
	e.size = render.Size{Width: width, Height: height}
	logger.Debug("resize", "width", width, "height", height)
	e.scroll()
}

// Render draws one frame to t using the cached viewport.
func (e *Editor) Render(t render.Terminal) (render.Frame, bool) {
	f, ok := render.Draw(t, e.buf, e.cursor.Position(), e.rowOffset, e.size)
	if !ok {
		logger.Debug("viewport too small", "width", e.size.Width, "height", e.size.Height)
	}
	return f, ok
}

// RenderScreen resizes to s and draws one frame on it.
func (e *Editor) RenderScreen(s tcell.Screen) {
	w, h := s.Size()
	e.Resize(w, h)
	if _, ok := e.Render(render.NewScreen(s, e.styleMain, e.styleCursor)); !ok {
		// Nothing was drawn; leave a blank screen rather than a stale frame.
		s.SetStyle(e.styleMain)
		s.Clear()
		s.HideCursor()
		s.Show()
	}
}

// Save writes the buffer to its file and clears the modified flag.
func (e *Editor) Save() error {
	if e.path == "" {
		return errNoFileName
	}
	if err := document.Save(e.path, e.buf); err != nil {
		return fmt.Errorf("save %s: %w", e.path, err)
	}
	e.modified = false
	logger.Info("saved", "path", e.path, "lines", e.buf.LineCount())
	return nil
}

// Reload replaces the buffer with the file's current content when there
// are no unsaved edits. It reports whether the buffer was replaced.
func (e *Editor) Reload() (bool, error) {
	if e.path == "" {
		return false, nil
	}
	if e.modified {
		logger.Warn("file changed on disk, keeping unsaved edits", "path", e.path)
		return false, nil
	}
	b, err := document.Load(e.path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("file removed on disk, keeping buffer", "path", e.path)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reload %s: %w", e.path, err)
	}
	e.buf.Replace(b)
	e.cursor.Clamp(e.buf)
	e.scroll()
	logger.Info("reloaded", "path", e.path, "lines", e.buf.LineCount())
	return true, nil
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
