package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/kobzarvs/tedit/internal/buffer"
	"github.com/kobzarvs/tedit/internal/config"
	"github.com/kobzarvs/tedit/internal/document"
	"github.com/kobzarvs/tedit/internal/editor"
	"github.com/kobzarvs/tedit/internal/logger"
)

var errNotTerminal = errors.New("stdin is not a terminal")

// App is the top-level runtime for tedit.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := logger.Init(cfg.Log.Debug); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Close() }()

	var path string
	if len(a.args) > 0 {
		path = a.args[0]
	}
	buf, err := openDocument(path)
	if err != nil {
		logger.Error("open failed", "path", path, "error", err)
		return err
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	ed := editor.New(cfg, buf, path)
	err = loop(s, ed, time.Duration(cfg.WatchEvery())*time.Millisecond)
	if err != nil {
		logger.Error("editor stopped", "error", err)
	}
	return err
}

// openDocument loads path, or starts an empty document when there is no
// path or the file does not exist yet.
func openDocument(path string) (*buffer.Buffer, error) {
	if path == "" {
		logger.Info("new document")
		return buffer.New(), nil
	}
	buf, err := document.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("new document", "path", path)
		return buffer.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	logger.Info("opened", "path", path, "lines", buf.LineCount())
	return buf, nil
}

// fileChanged is posted by the watcher when the document's stamp moves.
type fileChanged struct {
	path string
}

// loop draws, then blocks for the next key, resize or watcher interrupt
// until the editor asks to quit.
func loop(s tcell.Screen, ed *editor.Editor, watchEvery time.Duration) error {
	stop := make(chan struct{})
	defer close(stop)
	if watchEvery > 0 && ed.Path() != "" {
		go watch(s, ed.Path(), watchEvery, stop)
	}

	ed.RenderScreen(s)
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			// Screen finalized.
			return nil
		case *tcell.EventKey:
			quit, err := ed.HandleKey(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(fileChanged); ok {
				if _, err := ed.Reload(); err != nil {
					logger.Warn("reload failed", "error", err)
				}
			}
		}
		ed.RenderScreen(s)
	}
}

// watch polls the file stamp and posts fileChanged interrupts. It only
// talks to the screen's event queue, never to the editor.
func watch(s tcell.Screen, path string, every time.Duration, stop <-chan struct{}) {
	last, _ := document.Stat(path)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			st, err := document.Stat(path)
			if err != nil {
				logger.Debug("stat failed", "path", path, "error", err)
				continue
			}
			if st.ModTime.Equal(last.ModTime) && st.Size == last.Size {
				continue
			}
			last = st
			logger.Debug("file changed on disk", "path", path)
			_ = s.PostEvent(tcell.NewEventInterrupt(fileChanged{path: path}))
		}
	}
}
