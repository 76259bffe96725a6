package editor

import (
	"log/slog"

	"unawareness/internal/necro"

	"github.com/gdamore/tcell/v2"
)

// Editor drives a State from keyboard input on a tcell screen.
type Editor struct {
	screen tcell.Screen
	state  *State
	slots  []necro.Slot
	focus  int    // index into slots
	source string // document path shown in the title bar
	logger *slog.Logger
}

// New creates an Editor drawing to an initialised screen.
func New(screen tcell.Screen, state *State, source string, logger *slog.Logger) *Editor {
	return &Editor{
		screen: screen,
		state:  state,
		slots:  necro.AllSlots(),
		source: source,
		logger: logger,
	}
}

// State returns the state being edited.
func (e *Editor) State() *State { return e.state }

// FocusedSlot returns the slot under the cursor.
func (e *Editor) FocusedSlot() necro.Slot { return e.slots[e.focus] }

// Run is the main editor loop. It returns when the user quits, the terminal
// input fails (a dropped SSH client) or the screen is finalised, and
// finalises the screen itself on the way out.
func (e *Editor) Run() {
	defer e.screen.Fini()

	e.logger.Info("editor started", "source", e.source, "characters", len(e.state.Document().Characters))
	for {
		e.Draw()
		switch ev := e.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventError:
			e.logger.Warn("terminal input failed", "error", ev.Error())
			return
		case *tcell.EventResize:
			e.screen.Sync()
		case *tcell.EventKey:
			if !e.HandleKey(ev) {
				e.logger.Info("editor closed")
				return
			}
		}
	}
}

// HandleKey applies one key press. It returns false when the key asks the
// editor to quit.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	if idx, ok := quickPick(ev); ok {
		e.state.Update(CharPicked{Index: idx})
		return true
	}

	n := len(e.state.Document().Characters)
	switch keyToAction(ev) {
	case ActionQuit:
		return false
	case ActionPrevCharacter:
		if n > 0 {
			e.state.Update(CharPicked{Index: (e.state.CurrentIndex() - 1 + n) % n})
		}
	case ActionNextCharacter:
		if n > 0 {
			e.state.Update(CharPicked{Index: (e.state.CurrentIndex() + 1) % n})
		}
	case ActionPrevSlot:
		e.focus = (e.focus - 1 + len(e.slots)) % len(e.slots)
	case ActionNextSlot:
		e.focus = (e.focus + 1) % len(e.slots)
	case ActionPressSlot:
		e.state.Update(SlotPressed{Slot: e.FocusedSlot()})
	case ActionToggleCurse:
		if c := e.state.Current(); c != nil {
			slot := e.FocusedSlot()
			e.state.Update(CurseSlot{Slot: slot, Cursed: !c.IsCursed(slot)})
		}
	}
	return true
}
