package assets

import "strconv"

// characterNames maps the numeric character id used in necrodancer.xml to the
// name the game shows on its character select screen.
var characterNames = map[string]string{
	"0":  "Cadence",
	"1":  "Melody",
	"2":  "Aria",
	"3":  "Dorian",
	"4":  "Eli",
	"5":  "Monk",
	"6":  "Dove",
	"7":  "Coda",
	"8":  "Bolt",
	"9":  "Bard",
	"10": "Nocturna",
	"11": "Diamond",
	"12": "Mary",
	"13": "Tempo",
	"14": "Reaper",
}

// CharacterName returns the display name for a character id.
// Ids outside the known roster display as themselves.
func CharacterName(id string) string {
	if name, ok := characterNames[id]; ok {
		return name
	}
	return id // fallback
}

// KnownCharacterIDs returns the ids of the built-in roster in game order.
func KnownCharacterIDs() []string {
	ids := make([]string, 0, len(characterNames))
	for i := range len(characterNames) {
		ids = append(ids, strconv.Itoa(i))
	}
	return ids
}

