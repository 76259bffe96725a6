package necro

import "slices"

// Character is a playable character and its initial equipment.
//
// Items holds item ids in document order. They are lookup keys into the
// document's item list, and an id with no matching Item is representable.
type Character struct {
	ID     string
	Name   string
	Items  []string
	Curses SlotSet
}

// IsCursed reports whether the character starts with slot s cursed.
func (c *Character) IsCursed(s Slot) bool { return c.Curses.Has(s) }

// SetCursed adds or removes the curse on slot s.
func (c *Character) SetCursed(s Slot, cursed bool) {
	if cursed {
		c.Curses.Add(s)
	} else {
		c.Curses.Remove(s)
	}
}

// HasItem reports whether id is in the character's starting items.
func (c *Character) HasItem(id string) bool { return slices.Contains(c.Items, id) }

// AddItem appends id to the starting items.
func (c *Character) AddItem(id string) { c.Items = append(c.Items, id) }

// RemoveItem deletes the first occurrence of id. It returns false when the
// character does not carry the item.
func (c *Character) RemoveItem(id string) bool {
	i := slices.Index(c.Items, id)
	if i < 0 {
		return false
	}
	c.Items = slices.Delete(c.Items, i, i+1)
	return true
}
