package necroxml

import "unawareness/internal/necro"

// ItemByID returns the item with the given id.
func (d *Document) ItemByID(id string) (necro.Item, bool) {
	for _, it := range d.Items {
		if it.ID == id {
			return it, true
		}
	}
	return necro.Item{}, false
}

// ItemsBySlot returns the items that occupy slot s, in document order.
func (d *Document) ItemsBySlot(s necro.Slot) []necro.Item {
	var out []necro.Item
	for _, it := range d.Items {
		if it.Slot == s {
			out = append(out, it)
		}
	}
	return out
}

// DanglingRef is a character item entry naming an id that no <items> child
// defines.
type DanglingRef struct {
	CharacterID string
	ItemID      string
}

// DanglingRefs lists every item reference without a matching item, in
// character then equipment order. Loading never checks this; callers that
// want referential integrity ask for it explicitly.
func (d *Document) DanglingRefs() []DanglingRef {
	known := make(map[string]bool, len(d.Items))
	for _, it := range d.Items {
		known[it.ID] = true
	}
	var refs []DanglingRef
	for _, c := range d.Characters {
		for _, id := range c.Items {
			if !known[id] {
				refs = append(refs, DanglingRef{CharacterID: c.ID, ItemID: id})
			}
		}
	}
	return refs
}
