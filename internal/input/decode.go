package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

const (
	ActionMoveLeft        = "move_left"
	ActionMoveRight       = "move_right"
	ActionMoveUp          = "move_up"
	ActionMoveDown        = "move_down"
	ActionWordLeft        = "word_left"
	ActionWordRight       = "word_right"
	ActionMoveLineUp      = "move_line_up"
	ActionMoveLineDown    = "move_line_down"
	ActionLineStart       = "line_start"
	ActionLineEnd         = "line_end"
	ActionFileStart       = "file_start"
	ActionFileEnd         = "file_end"
	ActionNewline         = "newline"
	ActionInsertTab       = "insert_tab"
	ActionBackspace       = "backspace"
	ActionDeleteWordLeft  = "delete_word_left"
	ActionDeleteChar      = "delete_char"
	ActionDeleteWordRight = "delete_word_right"
	ActionDeleteLine      = "delete_line"
	ActionQuit            = "quit"
	ActionSave            = "save"
)

var actions = map[string]Event{
	ActionMoveLeft:        Move{Dir: Left},
	ActionMoveRight:       Move{Dir: Right},
	ActionMoveUp:          Move{Dir: Up},
	ActionMoveDown:        Move{Dir: Down},
	ActionWordLeft:        Move{Dir: Left, Mod: ModWord},
	ActionWordRight:       Move{Dir: Right, Mod: ModWord},
	ActionMoveLineUp:      Move{Dir: Up, Mod: ModSwap},
	ActionMoveLineDown:    Move{Dir: Down, Mod: ModSwap},
	ActionLineStart:       Home{},
	ActionLineEnd:         End{},
	ActionFileStart:       Home{Mod: ModDocument},
	ActionFileEnd:         End{Mod: ModDocument},
	ActionNewline:         Enter{},
	ActionInsertTab:       Tab{},
	ActionBackspace:       Backspace{},
	ActionDeleteWordLeft:  Backspace{Mod: ModWord},
	ActionDeleteChar:      Delete{},
	ActionDeleteWordRight: Delete{Mod: ModWord},
	ActionDeleteLine:      Delete{Mod: ModLine},
	ActionQuit:            Escape{},
	ActionSave:            Save{},
}

// ActionEvent returns the event bound to an action name.
func ActionEvent(action string) (Event, bool) {
	ev, ok := actions[action]
	return ev, ok
}

// Decoder maps terminal key events to editing events through a keymap of
// key strings ("ctrl+w", "alt+up") to action names.
type Decoder struct {
	keymap map[string]string
}

func NewDecoder(keymap map[string]string) *Decoder {
	km := make(map[string]string, len(keymap))
	for k, v := range keymap {
		km[k] = v
	}
	return &Decoder{keymap: km}
}

// Decode returns the event for ev. Keys bound to no action and runes typed
// with ctrl, alt or cmd held are ignored.
func (d *Decoder) Decode(ev *tcell.EventKey) (Event, bool) {
	key := KeyString(ev)
	if action, ok := d.keymap[key]; ok && key != "" {
		return ActionEvent(action)
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
		return Insert{Text: []rune{ev.Rune()}}, true
	}
	return nil, false
}

var keyNames = map[tcell.Key]string{
	tcell.KeyUp:     "up",
	tcell.KeyDown:   "down",
	tcell.KeyLeft:   "left",
	tcell.KeyRight:  "right",
	tcell.KeyHome:   "home",
	tcell.KeyEnd:    "end",
	tcell.KeyPgUp:   "pgup",
	tcell.KeyPgDn:   "pgdn",
	tcell.KeyDelete: "del",
	tcell.KeyInsert: "ins",
}

// KeyString renders ev as a keymap key: modifier prefixes in the order
// cmd, ctrl, alt, shift followed by the key name.
func KeyString(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		// Shift is already folded into the rune.
		return modPrefix(mods&^tcell.ModShift) + name
	case tcell.KeyTab:
		return modPrefix(mods) + "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyEnter:
		return modPrefix(mods) + "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		// tcell reports both codes as KeyBackspace; only the modifiers
		// tell plain and word backspace apart.
		return modPrefix(mods) + "backspace"
	}
	if name := ctrlKeyName(ev.Key()); name != "" {
		return name
	}
	if name, ok := keyNames[ev.Key()]; ok {
		return modPrefix(mods) + name
	}
	return ""
}

func modPrefix(mods tcell.ModMask) string {
	var b strings.Builder
	if mods&tcell.ModMeta != 0 {
		b.WriteString("cmd+")
	}
	if mods&tcell.ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if mods&tcell.ModAlt != 0 {
		b.WriteString("alt+")
	}
	if mods&tcell.ModShift != 0 {
		b.WriteString("shift+")
	}
	return b.String()
}

func ctrlKeyName(key tcell.Key) string {
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(key-tcell.KeyCtrlA)))
	}
	return ""
}
