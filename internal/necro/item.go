package necro

import "regexp"

// Item is one equipment definition from the <items> section.
// Items are never modified after loading.
type Item struct {
	ID    string // element tag name; unique within a document
	Name  string // display name taken from the flyaway label
	Slot  Slot
	Image string // element text, kept verbatim
}

// flyawayPattern matches labels of the form |anything|NAME|.
var flyawayPattern = regexp.MustCompile(`^\|[^|]*\|([^|]*)\|$`)

// FlyawayName extracts the display name from a flyaway label. Labels that
// don't follow the |x|NAME| layout are returned unchanged.
func FlyawayName(flyaway string) string {
	if m := flyawayPattern.FindStringSubmatch(flyaway); m != nil {
		return m[1]
	}
	return flyaway
}
