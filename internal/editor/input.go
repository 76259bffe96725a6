package editor

import "github.com/gdamore/tcell/v2"

// Action represents an editor command requested from the keyboard.
type Action uint8

const (
	ActionNone Action = iota
	ActionPrevCharacter
	ActionNextCharacter
	ActionPrevSlot
	ActionNextSlot
	ActionPressSlot
	ActionToggleCurse
	ActionQuit
)

// keyToAction maps a tcell key event to an editor action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionPrevCharacter
	case tcell.KeyDown:
		return ActionNextCharacter
	case tcell.KeyLeft, tcell.KeyBacktab:
		return ActionPrevSlot
	case tcell.KeyRight, tcell.KeyTab:
		return ActionNextSlot
	case tcell.KeyEnter:
		return ActionPressSlot
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'k', 'K':
		return ActionPrevCharacter
	case 'j', 'J':
		return ActionNextCharacter
	case 'h', 'H':
		return ActionPrevSlot
	case 'l', 'L':
		return ActionNextSlot
	case ' ':
		return ActionPressSlot
	case 'c', 'C':
		return ActionToggleCurse
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// quickPick returns the character index for a digit key 1-9.
func quickPick(ev *tcell.EventKey) (int, bool) {
	if ev.Key() != tcell.KeyRune {
		return 0, false
	}
	r := ev.Rune()
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}
