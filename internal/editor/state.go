// Package editor implements the terminal interface for editing each
// character's starting items and cursed slots.
package editor

import (
	"log/slog"

	"unawareness/internal/necro"
	"unawareness/internal/necroxml"
)

// Message is a request from the interface to change editor state.
type Message interface{ message() }

// CharPicked selects the character at Index and closes any open slot.
type CharPicked struct{ Index int }

// SlotPressed opens the slot's item list, or closes it if already open.
type SlotPressed struct{ Slot necro.Slot }

// CurseSlot sets or clears the curse on Slot for the selected character.
type CurseSlot struct {
	Slot   necro.Slot
	Cursed bool
}

func (CharPicked) message()  {}
func (SlotPressed) message() {}
func (CurseSlot) message()   {}

// State is the editor's application state: the loaded document, the
// selected character and the slot whose item list is expanded. It is owned
// by a single Editor and is not safe for concurrent use.
type State struct {
	doc      *necroxml.Document
	current  int
	open     necro.Slot
	expanded bool
	logger   *slog.Logger
}

// NewState returns a State with the first character selected.
func NewState(doc *necroxml.Document, logger *slog.Logger) *State {
	return &State{doc: doc, logger: logger}
}

// Document returns the document being edited.
func (s *State) Document() *necroxml.Document { return s.doc }

// CurrentIndex returns the index of the selected character.
func (s *State) CurrentIndex() int { return s.current }

// Current returns the selected character, or nil when the document has none.
func (s *State) Current() *necro.Character {
	if s.current < 0 || s.current >= len(s.doc.Characters) {
		return nil
	}
	return &s.doc.Characters[s.current]
}

// OpenSlot returns the slot whose item list is expanded, if any.
func (s *State) OpenSlot() (necro.Slot, bool) { return s.open, s.expanded }

// Update applies msg to the state.
func (s *State) Update(msg Message) {
	s.logger.Debug("got message", "message", msg)

	switch msg := msg.(type) {
	case CharPicked:
		if msg.Index < 0 || msg.Index >= len(s.doc.Characters) {
			s.logger.Warn("character index out of range", "index", msg.Index, "characters", len(s.doc.Characters))
			return
		}
		s.current = msg.Index
		s.expanded = false
	case SlotPressed:
		if s.expanded && s.open == msg.Slot {
			s.expanded = false
			return
		}
		s.open = msg.Slot
		s.expanded = true
	case CurseSlot:
		c := s.Current()
		if c == nil {
			return
		}
		c.SetCursed(msg.Slot, msg.Cursed)
		s.logger.Info("curse changed", "character", c.Name, "slot", msg.Slot.String(), "cursed", msg.Cursed)
	}
}
