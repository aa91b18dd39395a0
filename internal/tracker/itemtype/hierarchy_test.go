package itemtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(ts []*ItemType) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}

func TestStandardHierarchy(t *testing.T) {
	h := Standard()

	weapon := h.MustLookup("weapon")
	assert.False(t, weapon.Concrete())
	assert.Equal(t, 6, weapon.MaxSockets)
	assert.ElementsMatch(t,
		[]string{"Axe", "Bow", "Claw", "Club", "Crossbow", "Hammer", "Mace", "Polearm", "Scepter", "Staff", "Sword", "Wand"},
		names(weapon.Descendants()))

	missile := h.MustLookup("Missile")
	assert.Equal(t, []string{"Bow", "Crossbow"}, names(missile.Descendants()))
	assert.Equal(t, "Weapon", missile.Parent.Name)

	shield := h.MustLookup("shield")
	assert.True(t, shield.Concrete())
	assert.Equal(t, []string{"Auric"}, names(shield.Descendants()))

	assert.Empty(t, h.MustLookup("Armor").Descendants())
}

func TestExpandIncludesSelfAndFiltersBySockets(t *testing.T) {
	h := Standard()

	got := h.Expand([]*ItemType{h.MustLookup("Shield")}, 3)
	assert.Equal(t, []string{"Shield", "Auric"}, names(got))

	got = h.Expand([]*ItemType{h.MustLookup("Melee")}, 4)
	assert.Equal(t, []string{"Axe", "Hammer", "Mace", "Polearm", "Scepter", "Staff", "Sword"}, names(got))

	got = h.Expand([]*ItemType{h.MustLookup("Weapon"), h.MustLookup("Sword"), h.MustLookup("Wand")}, 6)
	assert.Equal(t, []string{"Axe", "Bow", "Crossbow", "Hammer", "Polearm", "Staff", "Sword"}, names(got))

	assert.Empty(t, h.Expand([]*ItemType{h.MustLookup("Wand")}, 3))
}

func TestLookupUnknown(t *testing.T) {
	_, err := Standard().Lookup("polarm")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownItemType)
	assert.Contains(t, err.Error(), "Polearm")
}

func TestNewHierarchyRejectsBadInput(t *testing.T) {
	_, err := NewHierarchy([]Definition{{Name: "A", Parent: "B", MaxSockets: 1}})
	assert.ErrorContains(t, err, "unknown parent")

	_, err = NewHierarchy([]Definition{
		{Name: "A", Parent: "B", MaxSockets: -1},
		{Name: "B", Parent: "A", MaxSockets: -1},
	})
	assert.ErrorContains(t, err, "cycle")

	_, err = NewHierarchy([]Definition{{Name: "A", MaxSockets: 1}, {Name: "a", MaxSockets: 2}})
	assert.ErrorContains(t, err, "duplicate")
}

func TestParentsDeclaredAfterChildren(t *testing.T) {
	h, err := NewHierarchy([]Definition{
		{Name: "Leaf", Parent: "Mid", MaxSockets: 5},
		{Name: "Mid", Parent: "Root", MaxSockets: -1},
		{Name: "Root", MaxSockets: -1},
	})
	require.NoError(t, err)

	root := h.MustLookup("root")
	assert.Equal(t, []string{"Leaf"}, names(root.Descendants()))
	assert.Equal(t, 5, root.MaxSockets)
}
