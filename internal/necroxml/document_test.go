package necroxml

import (
	"testing"

	"unawareness/internal/necro"

	"github.com/stretchr/testify/assert"
)

func TestItemsBySlot(t *testing.T) {
	doc := loadFixture(t)

	var weapons []string
	for _, it := range doc.ItemsBySlot(necro.SlotWeapon) {
		weapons = append(weapons, it.ID)
	}
	assert.Equal(t, []string{"weapon_dagger", "weapon_golden_lute"}, weapons)
	assert.Len(t, doc.ItemsBySlot(necro.SlotOther), 3)
	assert.Empty(t, doc.ItemsBySlot(necro.SlotSpell))
}

func TestItemByIDMissing(t *testing.T) {
	doc := loadFixture(t)
	_, ok := doc.ItemByID("weapon_crossbow")
	assert.False(t, ok)
}

func TestDanglingRefs(t *testing.T) {
	doc := loadFixture(t)
	assert.Equal(t, []DanglingRef{{CharacterID: "99", ItemID: "weapon_crossbow"}}, doc.DanglingRefs())

	doc.Characters[2].RemoveItem("weapon_crossbow")
	assert.Empty(t, doc.DanglingRefs())
}
