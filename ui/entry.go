package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// ResetShortcut is Cmd+R on macOS and Ctrl+R elsewhere.
var ResetShortcut = &desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierShortcutDefault}

// HistoryEntry is a single-line entry that recalls previous inputs with the
// arrow keys and toggles the timer with Space while empty.
type HistoryEntry struct {
	widget.Entry

	OnHistoryPrevious func()
	OnHistoryNext     func()
	OnToggle          func()
	OnReset           func()
}

func NewHistoryEntry() *HistoryEntry {
	e := &HistoryEntry{}
	e.ExtendBaseWidget(e)
	return e
}

// TypedKey handles Up and Down; everything else goes to the entry.
func (e *HistoryEntry) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyUp:
		if e.OnHistoryPrevious != nil {
			e.OnHistoryPrevious()
		}
	case fyne.KeyDown:
		if e.OnHistoryNext != nil {
			e.OnHistoryNext()
		}
	default:
		e.Entry.TypedKey(ev)
	}
}

func (e *HistoryEntry) TypedRune(r rune) {
	if r == ' ' && e.Text == "" && e.OnToggle != nil {
		e.OnToggle()
		return
	}
	e.Entry.TypedRune(r)
}

// TypedShortcut catches the reset shortcut, which the canvas does not see
// while the entry has focus.
func (e *HistoryEntry) TypedShortcut(s fyne.Shortcut) {
	if s.ShortcutName() == ResetShortcut.ShortcutName() {
		if e.OnReset != nil {
			e.OnReset()
		}
		return
	}
	e.Entry.TypedShortcut(s)
}

// SetTextQuiet replaces the text without firing OnChanged and moves the
// cursor to the end.
func (e *HistoryEntry) SetTextQuiet(text string) {
	changed := e.OnChanged
	e.OnChanged = nil
	e.SetText(text)
	e.CursorColumn = len([]rune(text))
	e.OnChanged = changed
	e.Refresh()
}
