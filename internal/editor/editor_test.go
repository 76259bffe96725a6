package editor

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"unawareness/internal/logging"
	"unawareness/internal/necro"
	"unawareness/internal/necroxml"

	"github.com/gdamore/tcell/v2"
)

// ─── helpers ──────────────────────────────────────────────────────────────────

const testDoc = `<necrodancer>
  <items>
    <shovel_basic flyaway="|0|Shovel|" slot="shovel">s.png</shovel_basic>
    <weapon_dagger flyaway="|1|Dagger|" slot="weapon">d.png</weapon_dagger>
    <weapon_broadsword flyaway="|2|Broadsword|" slot="weapon">b.png</weapon_broadsword>
  </items>
  <characters>
    <character id="0"><initial_equipment>
      <item type="shovel_basic"/><item type="weapon_dagger"/>
    </initial_equipment></character>
    <character id="1"><initial_equipment>
      <item type="weapon_gone"/><cursed slot="head"/>
    </initial_equipment></character>
    <character id="42"><initial_equipment/></character>
  </characters>
</necrodancer>`

func newTestDoc(t *testing.T) *necroxml.Document {
	t.Helper()
	doc, err := necroxml.Load(strings.NewReader(testDoc))
	if err != nil {
		t.Fatalf("load test document: %v", err)
	}
	return doc
}

func newSimScreen(t *testing.T) tcell.Screen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	ss.SetSize(100, 24)
	return ss
}

func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	state := NewState(newTestDoc(t), logging.Discard())
	return New(newSimScreen(t), state, "mods/Unawareness/necrodancer.xml", logging.Discard())
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

// screenRow reads back row y of the screen as a string.
func screenRow(scr tcell.Screen, y int) string {
	w, _ := scr.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := scr.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func screenText(scr tcell.Screen) string {
	_, h := scr.Size()
	rows := make([]string, h)
	for y := range h {
		rows[y] = screenRow(scr, y)
	}
	return strings.Join(rows, "\n")
}

// ─── key handling ─────────────────────────────────────────────────────────────

func TestHandleKeyCharacterNavigation(t *testing.T) {
	e := newTestEditor(t)

	cases := []struct {
		ev   *tcell.EventKey
		want int
	}{
		{key(tcell.KeyDown), 1},
		{runeKey('j'), 2},
		{runeKey('j'), 0}, // wraps forward
		{key(tcell.KeyUp), 2},
		{runeKey('k'), 1},
		{runeKey('1'), 0},
		{runeKey('3'), 2},
		{runeKey('9'), 2}, // out of range, ignored
	}
	for i, tc := range cases {
		if !e.HandleKey(tc.ev) {
			t.Fatalf("step %d: HandleKey returned false", i)
		}
		if got := e.State().CurrentIndex(); got != tc.want {
			t.Errorf("step %d: current = %d, want %d", i, got, tc.want)
		}
	}
}

func TestHandleKeySlotFocusWraps(t *testing.T) {
	e := newTestEditor(t)
	if e.FocusedSlot() != necro.SlotShovel {
		t.Fatalf("initial focus = %v, want shovel", e.FocusedSlot())
	}
	e.HandleKey(key(tcell.KeyLeft))
	if e.FocusedSlot() != necro.SlotOther {
		t.Errorf("focus after left from first = %v, want other", e.FocusedSlot())
	}
	e.HandleKey(runeKey('l'))
	e.HandleKey(runeKey('l'))
	if e.FocusedSlot() != necro.SlotWeapon {
		t.Errorf("focus = %v, want weapon", e.FocusedSlot())
	}
}

func TestHandleKeyToggleCurse(t *testing.T) {
	e := newTestEditor(t)
	for range 6 { // shovel weapon body head feet torch ring
		e.HandleKey(runeKey('l'))
	}
	if e.FocusedSlot() != necro.SlotRing {
		t.Fatalf("focus = %v, want ring", e.FocusedSlot())
	}
	c := e.State().Current()
	before := c.Curses

	e.HandleKey(runeKey('c'))
	if !c.IsCursed(necro.SlotRing) {
		t.Fatal("ring should be cursed after c")
	}
	e.HandleKey(runeKey('c'))
	if c.Curses != before {
		t.Errorf("curses = %v after two toggles, want %v", c.Curses.Slots(), before.Slots())
	}
}

func TestHandleKeyPressSlot(t *testing.T) {
	e := newTestEditor(t)
	e.HandleKey(runeKey('l')) // weapon
	e.HandleKey(key(tcell.KeyEnter))
	if slot, open := e.State().OpenSlot(); !open || slot != necro.SlotWeapon {
		t.Fatalf("OpenSlot = %v,%v; want weapon,true", slot, open)
	}
	e.HandleKey(runeKey(' '))
	if _, open := e.State().OpenSlot(); open {
		t.Error("second press should close the slot")
	}
}

func TestHandleKeyQuit(t *testing.T) {
	for _, ev := range []*tcell.EventKey{runeKey('q'), runeKey('Q'), key(tcell.KeyEscape), key(tcell.KeyCtrlC)} {
		e := newTestEditor(t)
		if e.HandleKey(ev) {
			t.Errorf("key %v should quit", ev.Name())
		}
	}
}

func TestKeyToActionUnboundKey(t *testing.T) {
	if got := keyToAction(runeKey('z')); got != ActionNone {
		t.Errorf("keyToAction('z') = %v, want ActionNone", got)
	}
	if _, ok := quickPick(runeKey('0')); ok {
		t.Error("0 is not a quick-pick key")
	}
}

// ─── drawing ──────────────────────────────────────────────────────────────────

func TestDrawShowsCharacterAndSlots(t *testing.T) {
	e := newTestEditor(t)
	e.Draw()
	text := screenText(e.screen)

	for _, want := range []string{"Unawareness", "Character: ◄ Cadence ►", "(1/3, id 0)", "► [shovel]", "[other]", "Starts with: Shovel, Dagger"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "[x] cursed") {
		t.Errorf("Cadence has no curses, screen shows one:\n%s", text)
	}
}

func TestDrawShowsCursesAndDanglingItems(t *testing.T) {
	e := newTestEditor(t)
	e.HandleKey(runeKey('2'))
	e.Draw()

	headRow := screenRow(e.screen, slotListY+3) // shovel weapon body head
	if !strings.Contains(headRow, "[head]") || !strings.Contains(headRow, "[x] cursed") {
		t.Errorf("head row = %q, want cursed head", headRow)
	}
	if text := screenText(e.screen); !strings.Contains(text, "?weapon_gone") {
		t.Errorf("dangling item not marked:\n%s", text)
	}
}

func TestDrawUnknownCharacterUsesRawID(t *testing.T) {
	e := newTestEditor(t)
	e.HandleKey(runeKey('3'))
	e.Draw()
	text := screenText(e.screen)
	if !strings.Contains(text, "◄ 42 ►") {
		t.Errorf("expected raw id 42 as name:\n%s", text)
	}
	if !strings.Contains(text, "Starts with: nothing") {
		t.Errorf("expected empty equipment line:\n%s", text)
	}
}

func TestDrawOpenSlotListsItems(t *testing.T) {
	e := newTestEditor(t)
	e.HandleKey(runeKey('l'))
	e.HandleKey(key(tcell.KeyEnter))
	e.Draw()
	text := screenText(e.screen)

	for _, want := range []string{"weapon items (2)", "✓ Dagger (weapon_dagger)", "Broadsword (weapon_broadsword)", "[weapon]▾"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "✓ Broadsword") {
		t.Error("Broadsword is not a starting item")
	}
}

func TestDrawLongItemListStopsAboveEquipment(t *testing.T) {
	var b strings.Builder
	b.WriteString("<necrodancer><items>")
	for i := range 20 {
		fmt.Fprintf(&b, `<weapon_%02d flyaway="|%d|Blade %02d|" slot="weapon">w.png</weapon_%02d>`, i, i, i, i)
	}
	b.WriteString(`</items><characters><character id="0"><initial_equipment>`)
	b.WriteString(`<item type="weapon_00"/></initial_equipment></character></characters></necrodancer>`)
	doc, err := necroxml.Load(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	scr := newSimScreen(t)
	scr.SetSize(100, 40)
	e := New(scr, NewState(doc, logging.Discard()), "data/necrodancer.xml", logging.Discard())
	e.HandleKey(runeKey('l'))
	e.HandleKey(key(tcell.KeyEnter))
	e.Draw()

	equipRow := screenRow(scr, slotListY+len(e.slots)+1)
	if !strings.Contains(equipRow, "Starts with: Blade 00") {
		t.Errorf("equipment row = %q", equipRow)
	}
	if strings.Contains(equipRow, "weapon_") {
		t.Errorf("item list bleeds into equipment row: %q", equipRow)
	}
	more := fmt.Sprintf("… %d more", 20-len(e.slots))
	if !strings.Contains(screenRow(scr, slotListY+len(e.slots)), more) {
		t.Errorf("screen missing %q:\n%s", more, screenText(scr))
	}
}

func TestDrawEmptyDocument(t *testing.T) {
	doc, err := necroxml.Load(strings.NewReader("<necrodancer><items/><characters/></necrodancer>"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	e := New(newSimScreen(t), NewState(doc, logging.Discard()), "data/necrodancer.xml", logging.Discard())
	e.Draw()
	if text := screenText(e.screen); !strings.Contains(text, "No characters in document.") {
		t.Errorf("expected empty-document message:\n%s", text)
	}
	// Keys that need a character are harmless.
	for _, ev := range []*tcell.EventKey{runeKey('j'), runeKey('c'), runeKey('1'), key(tcell.KeyEnter)} {
		if !e.HandleKey(ev) {
			t.Errorf("key %v should not quit", ev.Name())
		}
	}
}

func TestDrawTextClipsAtMaxX(t *testing.T) {
	scr := newSimScreen(t)
	end := drawText(scr, 0, 0, 5, "abcdefgh", normalStyle)
	if end != 5 {
		t.Errorf("drawText returned column %d, want 5", end)
	}
	if got := screenRow(scr, 0); got != "abcde" {
		t.Errorf("row = %q, want %q", got, "abcde")
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	e := newTestEditor(t)
	ss := e.screen.(tcell.SimulationScreen)
	ss.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)
	ss.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	e.Run()
	if e.State().CurrentIndex() != 1 {
		t.Errorf("current = %d after j, want 1", e.State().CurrentIndex())
	}
}

func TestRunReturnsOnInputError(t *testing.T) {
	e := newTestEditor(t)
	ss := e.screen.(tcell.SimulationScreen)
	if err := ss.PostEvent(tcell.NewEventError(io.EOF)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run still polling after an input error")
	}
}
