// Package necro holds the record types edited by unawareness: equipment
// slots, item definitions and playable characters.
package necro

import (
	"errors"
	"fmt"
)

// Slot is the equipment category an item occupies or a curse applies to.
type Slot uint8

const (
	SlotShovel Slot = iota
	SlotWeapon
	SlotHead
	SlotFeet
	SlotBody
	SlotRing
	SlotSpell
	SlotTorch
	SlotAction
	SlotMisc
	SlotOther // also covers the game's hud and bomb slots
)

// ErrNoMatch is returned by ParseSlot for a token that names no slot.
var ErrNoMatch = errors.New("no match")

var slotNames = [...]string{
	SlotShovel: "shovel",
	SlotWeapon: "weapon",
	SlotHead:   "head",
	SlotFeet:   "feet",
	SlotBody:   "body",
	SlotRing:   "ring",
	SlotSpell:  "spell",
	SlotTorch:  "torch",
	SlotAction: "action",
	SlotMisc:   "misc",
	SlotOther:  "other",
}

// slotTokens maps the lowercase tokens found in necrodancer.xml to slots.
// "other" is deliberately absent: the game never writes it.
var slotTokens = map[string]Slot{
	"shovel": SlotShovel,
	"weapon": SlotWeapon,
	"head":   SlotHead,
	"feet":   SlotFeet,
	"body":   SlotBody,
	"ring":   SlotRing,
	"spell":  SlotSpell,
	"torch":  SlotTorch,
	"action": SlotAction,
	"misc":   SlotMisc,
	"hud":    SlotOther,
	"bomb":   SlotOther,
}

// ParseSlot converts a lowercase slot token to a Slot.
// Unknown tokens return an error wrapping ErrNoMatch.
func ParseSlot(s string) (Slot, error) {
	if slot, ok := slotTokens[s]; ok {
		return slot, nil
	}
	return 0, fmt.Errorf("slot %q: %w", s, ErrNoMatch)
}

// String returns the canonical token for the slot.
func (s Slot) String() string {
	if int(s) < len(slotNames) {
		return slotNames[s]
	}
	return fmt.Sprintf("Slot(%d)", uint8(s))
}

// AllSlots returns every slot in the order the editor lays them out.
func AllSlots() []Slot {
	return []Slot{
		SlotShovel, SlotWeapon, SlotBody, SlotHead, SlotFeet, SlotTorch,
		SlotRing, SlotSpell, SlotAction, SlotMisc, SlotOther,
	}
}

// SlotSet is a set of slots stored as a bitmask. The zero value is empty.
// Being a plain value, two sets compare equal with ==.
type SlotSet uint16

// NewSlotSet returns a set holding the given slots.
func NewSlotSet(slots ...Slot) SlotSet {
	var set SlotSet
	for _, s := range slots {
		set.Add(s)
	}
	return set
}

// Add inserts s. Adding a slot already present is a no-op.
func (set *SlotSet) Add(s Slot) { *set |= 1 << s }

// Remove deletes s. Removing an absent slot is a no-op.
func (set *SlotSet) Remove(s Slot) { *set &^= 1 << s }

// Has reports whether s is in the set.
func (set SlotSet) Has(s Slot) bool { return set&(1<<s) != 0 }

// Len returns the number of slots in the set.
func (set SlotSet) Len() int {
	n := 0
	for b := set; b != 0; b &= b - 1 {
		n++
	}
	return n
}

// Slots returns the members of the set in AllSlots order.
func (set SlotSet) Slots() []Slot {
	var out []Slot
	for _, s := range AllSlots() {
		if set.Has(s) {
			out = append(out, s)
		}
	}
	return out
}
