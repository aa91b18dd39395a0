// Package itemtype models the hierarchy of item bases runewords can be socketed into.
package itemtype

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rsned/runeword-tracker/internal/tracker/runes"
)

// ErrUnknownItemType is returned when a name does not resolve against the hierarchy.
var ErrUnknownItemType = errors.New("unknown item type")

// ItemType is a node of the hierarchy. Abstract types only group other types.
type ItemType struct {
	ID         int
	Name       string
	Parent     *ItemType
	MaxSockets int // effective: the maximum over the type and its descendants

	concrete    bool
	descendants []*ItemType // concrete descendants, hierarchy order, excluding self
}

// Concrete reports whether items of exactly this type exist.
func (t *ItemType) Concrete() bool {
	return t.concrete
}

// Descendants returns the concrete types beneath t.
func (t *ItemType) Descendants() []*ItemType {
	out := make([]*ItemType, len(t.descendants))
	copy(out, t.descendants)
	return out
}

func (t *ItemType) String() string {
	return t.Name
}

// Definition is one row of the static adjacency list. A negative MaxSockets
// marks an abstract container.
type Definition struct {
	Name       string
	Parent     string
	MaxSockets int
}

var standardDefinitions = []Definition{
	{Name: "Weapon", MaxSockets: -1},
	{Name: "Melee", Parent: "Weapon", MaxSockets: -1},
	{Name: "Missile", Parent: "Weapon", MaxSockets: -1},
	{Name: "Shield", MaxSockets: 4},
	{Name: "Auric", Parent: "Shield", MaxSockets: 4},
	{Name: "Axe", Parent: "Melee", MaxSockets: 6},
	{Name: "Armor", MaxSockets: 4},
	{Name: "Bow", Parent: "Missile", MaxSockets: 6},
	{Name: "Claw", Parent: "Melee", MaxSockets: 3},
	{Name: "Club", Parent: "Melee", MaxSockets: 3},
	{Name: "Crossbow", Parent: "Missile", MaxSockets: 6},
	{Name: "Hammer", Parent: "Melee", MaxSockets: 6},
	{Name: "Helm", MaxSockets: 4},
	{Name: "Mace", Parent: "Melee", MaxSockets: 5},
	{Name: "Orb", MaxSockets: 3},
	{Name: "Polearm", Parent: "Melee", MaxSockets: 6},
	{Name: "Scepter", Parent: "Melee", MaxSockets: 5},
	{Name: "Staff", Parent: "Melee", MaxSockets: 6},
	{Name: "Sword", Parent: "Melee", MaxSockets: 6},
	{Name: "Wand", Parent: "Melee", MaxSockets: 2},
}

// lookupKey normalises an item type name for lookup.
func lookupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func unknown(name string, h *Hierarchy) error {
	names := make([]string, len(h.types))
	for i, t := range h.types {
		names[i] = t.Name
	}
	return runes.NewUnknownNameError("item type", name, runes.Suggest(lookupKey(name), names), ErrUnknownItemType)
}

// Lookup resolves an item type by name.
func (h *Hierarchy) Lookup(name string) (*ItemType, error) {
	if t, ok := h.byName[lookupKey(name)]; ok {
		return t, nil
	}
	return nil, unknown(name, h)
}

// MustLookup is Lookup for names known at compile time.
func (h *Hierarchy) MustLookup(name string) *ItemType {
	t, err := h.Lookup(name)
	if err != nil {
		panic(fmt.Sprintf("itemtype: %v", err))
	}
	return t
}
