// Package necroxml reads necrodancer.xml into the necro data model and
// rebuilds its <characters> section from edited characters.
package necroxml

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"unawareness/assets"
	apperrors "unawareness/internal/errors"
	"unawareness/internal/necro"

	"github.com/beevik/etree"
)

// Document locations relative to the game directory. The mod copy wins when
// present; otherwise the game's own data file is used.
const (
	ModDir       = "mods/Unawareness"
	PrimaryPath  = ModDir + "/necrodancer.xml"
	FallbackPath = "data/necrodancer.xml"
)

// Document is a loaded necrodancer.xml. The parsed tree is retained so the
// characters section can be rebuilt without disturbing the rest of the file.
type Document struct {
	Tree       *etree.Document
	Items      []necro.Item
	Characters []necro.Character
}

// openSource opens the mod copy under gameDir, or the game's data file when
// the mod copy cannot be opened as a file for any reason.
func openSource(gameDir string) (*os.File, string, error) {
	primary := filepath.Join(gameDir, filepath.FromSlash(PrimaryPath))
	if f, err := os.Open(primary); err == nil {
		if info, err := f.Stat(); err == nil && !info.IsDir() {
			return f, primary, nil
		}
		f.Close()
	}
	fallback := filepath.Join(gameDir, filepath.FromSlash(FallbackPath))
	f, err := os.Open(fallback)
	if err != nil {
		return nil, "", apperrors.Wrapf(err, apperrors.CodeIO, "open necrodancer.xml")
	}
	return f, fallback, nil
}

// Open loads the document under gameDir and reports which file it came from.
// The path is returned even when the file fails to parse.
func Open(gameDir string) (*Document, string, error) {
	f, path, err := openSource(gameDir)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	doc, err := Load(f)
	if err != nil {
		return nil, path, err
	}
	return doc, path, nil
}

// LoadFile loads the document at path. The file is closed before returning.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeIO, "open %s", path)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a necrodancer.xml stream. It stops at the first violation of
// the expected layout; there is no partial result.
func Load(r io.Reader) (*Document, error) {
	tree := etree.NewDocument()
	if _, err := tree.ReadFrom(r); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, apperrors.Wrap(err, apperrors.CodeIO, "read necrodancer.xml")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeSyntax, "parse necrodancer.xml")
	}
	root := tree.Root()
	if root == nil {
		return nil, apperrors.New(apperrors.CodeSyntax, "parse necrodancer.xml: no root element")
	}

	itemsEl := root.SelectElement("items")
	if itemsEl == nil {
		return nil, apperrors.Schemaf("missing <items> tag")
	}
	items, err := parseItems(itemsEl)
	if err != nil {
		return nil, err
	}

	charsEl := root.SelectElement("characters")
	if charsEl == nil {
		return nil, apperrors.Schemaf("missing <characters> tag")
	}
	characters, err := parseCharacters(charsEl)
	if err != nil {
		return nil, err
	}

	return &Document{Tree: tree, Items: items, Characters: characters}, nil
}

// ─── items ───────────────────────────────────────────────────────────────────

func parseItems(itemsEl *etree.Element) ([]necro.Item, error) {
	children := itemsEl.ChildElements()
	items := make([]necro.Item, 0, len(children))
	seen := make(map[string]bool, len(children))
	for _, el := range children {
		item, err := parseItem(el)
		if err != nil {
			return nil, err
		}
		if seen[item.ID] {
			return nil, apperrors.Schemaf("duplicate item: %s", item.ID)
		}
		seen[item.ID] = true
		items = append(items, item)
	}
	return items, nil
}

// parseItem builds an Item from one child of <items>. A missing flyaway
// falls back to the tag name; a missing slot defaults to SlotOther.
func parseItem(el *etree.Element) (necro.Item, error) {
	id := el.Tag
	flyaway, ok := attr(el, "flyaway")
	if !ok {
		flyaway = id
	}

	slot := necro.SlotOther
	if raw, ok := attr(el, "slot"); ok {
		s, err := necro.ParseSlot(raw)
		if err != nil {
			return necro.Item{}, apperrors.Schemaf("bad item slot: %s", raw)
		}
		slot = s
	}

	return necro.Item{
		ID:    id,
		Name:  necro.FlyawayName(flyaway),
		Slot:  slot,
		Image: text(el),
	}, nil
}

// ─── characters ──────────────────────────────────────────────────────────────

func parseCharacters(charsEl *etree.Element) ([]necro.Character, error) {
	children := charsEl.ChildElements()
	characters := make([]necro.Character, 0, len(children))
	for _, el := range children {
		c, err := parseCharacter(el)
		if err != nil {
			return nil, err
		}
		characters = append(characters, c)
	}
	return characters, nil
}

func parseCharacter(el *etree.Element) (necro.Character, error) {
	if el.Tag != "character" {
		return necro.Character{}, apperrors.Schemaf("bad character tag: <%s>", el.Tag)
	}
	id, ok := attr(el, "id")
	if !ok {
		return necro.Character{}, apperrors.Schemaf("character missing id attr")
	}
	equip := el.SelectElement("initial_equipment")
	if equip == nil {
		return necro.Character{}, apperrors.Schemaf("character %s missing <initial_equipment>", id)
	}

	c := necro.Character{ID: id, Name: assets.CharacterName(id)}
	for _, x := range equip.ChildElements() {
		switch x.Tag {
		case "item":
			typ, ok := attr(x, "type")
			if !ok {
				return necro.Character{}, apperrors.Schemaf("character %s: item missing type attr", id)
			}
			c.Items = append(c.Items, typ)
		case "cursed":
			raw, ok := attr(x, "slot")
			if !ok {
				return necro.Character{}, apperrors.Schemaf("character %s: cursed missing slot attr", id)
			}
			s, err := necro.ParseSlot(raw)
			if err != nil {
				return necro.Character{}, apperrors.Schemaf("character %s: bad cursed slot: %s", id, raw)
			}
			c.Curses.Add(s)
		default:
			return necro.Character{}, apperrors.Schemaf("character %s: bad initial equipment <%s>", id, x.Tag)
		}
	}
	return c, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// attr returns the value of the named attribute and whether it is present.
// A present-but-empty attribute counts as present.
func attr(el *etree.Element, name string) (string, bool) {
	a := el.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// text concatenates the element's direct character data, untrimmed.
func text(el *etree.Element) string {
	var sb strings.Builder
	for _, tok := range el.Child {
		if cd, ok := tok.(*etree.CharData); ok {
			sb.WriteString(cd.Data)
		}
	}
	return sb.String()
}
