package necroxml

import (
	"io"

	"unawareness/internal/necro"

	"github.com/beevik/etree"
)

// CharactersElement builds a <characters> element from chars. Each character
// lists its items in order followed by its curses in necro.AllSlots order.
//
// A curse on necro.SlotOther is written as "other", which the loader does
// not accept: the hud/bomb distinction is lost on load.
func CharactersElement(chars []necro.Character) *etree.Element {
	charsEl := etree.NewElement("characters")
	for _, c := range chars {
		cel := charsEl.CreateElement("character")
		cel.CreateAttr("id", c.ID)
		equip := cel.CreateElement("initial_equipment")
		for _, id := range c.Items {
			equip.CreateElement("item").CreateAttr("type", id)
		}
		for _, s := range c.Curses.Slots() {
			equip.CreateElement("cursed").CreateAttr("slot", s.String())
		}
	}
	return charsEl
}

// ReplaceCharacters swaps the retained <characters> element for one rebuilt
// from d.Characters, keeping its position under the root. Every other part
// of the tree is left as loaded.
func (d *Document) ReplaceCharacters() {
	root := d.Tree.Root()
	rebuilt := CharactersElement(d.Characters)
	old := root.SelectElement("characters")
	if old == nil {
		root.AddChild(rebuilt)
		return
	}
	idx := old.Index()
	root.RemoveChild(old)
	root.InsertChildAt(idx, rebuilt)
}

// WriteTo writes the retained tree to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.Tree.WriteTo(w)
}
