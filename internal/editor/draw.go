package editor

import (
	"fmt"
	"strings"

	"unawareness/internal/necro"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Layout columns and rows.
const (
	slotListY   = 5
	itemListX   = 34
	checkboxCol = 14
)

var (
	titleStyle     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 100, 255)).Bold(true)
	normalStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	highlightStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(180, 100, 255))
	curseStyle     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 80, 80))
	ownedStyle     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 220, 255))
	missingStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Draw renders the whole editor to the screen.
func (e *Editor) Draw() {
	e.screen.Clear()
	w, h := e.screen.Size()

	drawText(e.screen, 1, 0, w, "Unawareness", titleStyle)
	drawText(e.screen, 1, 1, w, e.source, dimStyle)

	c := e.state.Current()
	if c == nil {
		drawText(e.screen, 1, 3, w, "No characters in document.", normalStyle)
		drawText(e.screen, 1, h-1, w, "[q] Quit", dimStyle)
		e.screen.Show()
		return
	}

	e.drawPicker(c, w)
	e.drawSlots(c, w)
	if slot, open := e.state.OpenSlot(); open {
		e.drawItemList(c, slot, w, h)
	}
	e.drawEquipment(c, w, h)
	drawText(e.screen, 1, h-1, w,
		"[j/k ↑/↓] Character  [h/l ←/→] Slot  [Enter] Items  [c] Curse  [1-9] Pick  [q] Quit", dimStyle)

	e.screen.Show()
}

// drawPicker renders the character selector line.
func (e *Editor) drawPicker(c *necro.Character, w int) {
	n := len(e.state.Document().Characters)
	x := drawText(e.screen, 1, 3, w, "Character: ", normalStyle)
	x = drawText(e.screen, x, 3, w, fmt.Sprintf("◄ %s ►", c.Name), highlightStyle)
	drawText(e.screen, x+1, 3, w, fmt.Sprintf("(%d/%d, id %s)", e.state.CurrentIndex()+1, n, c.ID), dimStyle)
}

// drawSlots renders one row per slot: a button and its curse checkbox.
func (e *Editor) drawSlots(c *necro.Character, w int) {
	open, expanded := e.state.OpenSlot()
	for i, slot := range e.slots {
		y := slotListY + i
		prefix := "  "
		style := normalStyle
		if i == e.focus {
			prefix = "► "
			style = highlightStyle
		}
		label := "[" + slot.String() + "]"
		if expanded && open == slot {
			label += "▾"
		}
		drawText(e.screen, 1, y, w, prefix+label, style)

		box, boxStyle := "[ ] cursed", dimStyle
		if c.IsCursed(slot) {
			box, boxStyle = "[x] cursed", curseStyle
		}
		drawText(e.screen, 1+checkboxCol+2, y, w, box, boxStyle)
	}
}

// drawItemList renders the items of the open slot, marking those the
// character starts with.
func (e *Editor) drawItemList(c *necro.Character, slot necro.Slot, w, h int) {
	items := e.state.Document().ItemsBySlot(slot)
	drawText(e.screen, itemListX, slotListY-1, w, fmt.Sprintf("%s items (%d)", slot, len(items)), titleStyle)
	if len(items) == 0 {
		drawText(e.screen, itemListX, slotListY, w, "(none)", dimStyle)
		return
	}
	// Rows stop above the equipment line.
	maxRows := min(h-slotListY-4, len(e.slots))
	for i, it := range items {
		if i >= maxRows {
			drawText(e.screen, itemListX, slotListY+i, w, fmt.Sprintf("… %d more", len(items)-i), dimStyle)
			break
		}
		mark, style := "  ", normalStyle
		if c.HasItem(it.ID) {
			mark, style = "✓ ", ownedStyle
		}
		drawText(e.screen, itemListX, slotListY+i, w, mark+it.Name+" ("+it.ID+")", style)
	}
}

// drawEquipment renders the character's starting items by display name.
// Ids with no item definition are shown raw with a marker.
func (e *Editor) drawEquipment(c *necro.Character, w, h int) {
	y := slotListY + len(e.slots) + 1
	if y >= h-1 {
		return
	}
	doc := e.state.Document()
	x := drawText(e.screen, 1, y, w, "Starts with: ", normalStyle)
	if len(c.Items) == 0 {
		drawText(e.screen, x, y, w, "nothing", dimStyle)
		return
	}
	names := make([]string, 0, len(c.Items))
	var missing []string
	for _, id := range c.Items {
		if it, ok := doc.ItemByID(id); ok {
			names = append(names, it.Name)
		} else {
			missing = append(missing, id)
		}
	}
	x = drawText(e.screen, x, y, w, strings.Join(names, ", "), ownedStyle)
	if len(missing) > 0 {
		if len(names) > 0 {
			x = drawText(e.screen, x, y, w, ", ", ownedStyle)
		}
		drawText(e.screen, x, y, w, "?"+strings.Join(missing, ", ?"), missingStyle)
	}
}

// drawText writes text at (x, y), advancing by each rune's display width and
// stopping before column maxX. It returns the column after the last rune.
func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > maxX {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += rw
	}
	return x
}
