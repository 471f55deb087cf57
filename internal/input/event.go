// Package input defines the discrete editing events the cursor consumes and
// decodes terminal key events into them.
package input

// Event is one discrete user intent. The set of implementations is closed:
// every variant is declared in this file and handled by cursor.Handle.
type Event interface {
	event()
}

// Dir is the direction of a Move.
type Dir int

const (
	Up Dir = iota
	Down
	Left
	Right
)

func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Mod selects the variant of a movement or deletion.
type Mod int

const (
	ModNone Mod = iota
	// ModWord moves or deletes by runs of non-space runes.
	ModWord
	// ModSwap moves the current line up or down with the cursor.
	ModSwap
	// ModDocument turns Home/End into start/end of document.
	ModDocument
	// ModLine deletes the whole current line.
	ModLine
)

type (
	// Insert types text at the cursor. LF starts a new line; CR is dropped.
	Insert struct{ Text []rune }
	Move   struct {
		Dir Dir
		Mod Mod
	}
	Home      struct{ Mod Mod }
	End       struct{ Mod Mod }
	Enter     struct{}
	Tab       struct{}
	Backspace struct{ Mod Mod }
	Delete    struct{ Mod Mod }
	Escape    struct{}
	Save      struct{}
)

func (Insert) event()    {}
func (Move) event()      {}
func (Home) event()      {}
func (End) event()       {}
func (Enter) event()     {}
func (Tab) event()       {}
func (Backspace) event() {}
func (Delete) event()    {}
func (Escape) event()    {}
func (Save) event()      {}

// Name returns a short label for logging.
func Name(ev Event) string {
	switch ev := ev.(type) {
	case Insert:
		return "insert"
	case Move:
		switch ev.Mod {
		case ModWord:
			return "word_" + ev.Dir.String()
		case ModSwap:
			return "move_line_" + ev.Dir.String()
		}
		return "move_" + ev.Dir.String()
	case Home:
		if ev.Mod == ModDocument {
			return "file_start"
		}
		return "line_start"
	case End:
		if ev.Mod == ModDocument {
			return "file_end"
		}
		return "line_end"
	case Enter:
		return "newline"
	case Tab:
		return "insert_tab"
	case Backspace:
		if ev.Mod == ModWord {
			return "delete_word_left"
		}
		return "backspace"
	case Delete:
		switch ev.Mod {
		case ModWord:
			return "delete_word_right"
		case ModLine:
			return "delete_line"
		}
		return "delete_char"
	case Escape:
		return "quit"
	case Save:
		return "save"
	}
	return "unknown"
}
