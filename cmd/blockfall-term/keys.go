package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/internal/input"
)

// keyAction maps a key press to a game action. quit is true for the keys
// that end the program.
func keyAction(ev *tcell.EventKey) (action input.Action, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.ActionNone, true
	case tcell.KeyLeft:
		return input.ActionLeft, false
	case tcell.KeyRight:
		return input.ActionRight, false
	case tcell.KeyDown:
		return input.ActionSoftDrop, false
	case tcell.KeyUp:
		return input.ActionRotate, false
	case tcell.KeyEnter:
		return input.ActionRestart, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return input.ActionHardDrop, false
		case 'p', 'P':
			return input.ActionPause, false
		case 'r', 'R':
			return input.ActionRestart, false
		case 'q', 'Q':
			return input.ActionNone, true
		}
	}
	return input.ActionNone, false
}
