package runeword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsned/runeword-tracker/internal/tracker/itemtype"
	"github.com/rsned/runeword-tracker/internal/tracker/runes"
)

// mustRuneword builds a runeword from names against the standard tables.
func mustRuneword(t *testing.T, name string, level int, bases []string, seq ...string) *Runeword {
	t.Helper()
	h := itemtype.Standard()
	types := make([]*itemtype.ItemType, 0, len(bases))
	for _, b := range bases {
		it, err := h.Lookup(b)
		require.NoError(t, err)
		types = append(types, it)
	}
	rs := make([]runes.Rune, 0, len(seq))
	for _, s := range seq {
		r, err := runes.Standard().Lookup(s)
		require.NoError(t, err)
		rs = append(rs, r)
	}
	rw, err := New(name, level, "", types, rs, h)
	require.NoError(t, err)
	return rw
}

func owned(t *testing.T, counts map[string]int) *runes.Multiset {
	t.Helper()
	m := runes.NewMultiset()
	for name, n := range counts {
		require.NoError(t, m.Add(runes.Standard().MustLookup(name), n))
	}
	return m
}

func TestNewRuneword(t *testing.T) {
	rw := mustRuneword(t, "Enigma", 65, []string{"Armor"}, "Jah", "Ith", "Ber")

	assert.Equal(t, "enigma", rw.Key())
	assert.Equal(t, "JahIthBer", rw.Word())
	assert.Equal(t, 3, rw.Sockets())
	assert.Equal(t, 3, rw.Len())
	require.Len(t, rw.Types(), 1)
	assert.Equal(t, "Armor", rw.Types()[0].Name)

	var want float64
	for _, r := range rw.Sequence() {
		want += r.Scarcity()
	}
	assert.InDelta(t, want, rw.Appraise(), 1e-9)
}

func TestNewRunewordCountsRepeats(t *testing.T) {
	rw := mustRuneword(t, "Infinity", 63, []string{"Polearm"}, "Ber", "Mal", "Ber", "Ist")
	assert.Equal(t, 4, rw.Sockets())
	assert.Equal(t, 3, rw.Len())
	assert.Equal(t, 2, rw.Quantity(runes.Standard().MustLookup("Ber")))
}

func TestNewRunewordFiltersBasesBySockets(t *testing.T) {
	rw := mustRuneword(t, "Silence", 55, []string{"Weapon"}, "Dol", "Eld", "Hel", "Ist", "Tir", "Vex")
	var names []string
	for _, it := range rw.Types() {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Axe", "Bow", "Crossbow", "Hammer", "Polearm", "Staff", "Sword"}, names)
}

func TestNewRunewordValidation(t *testing.T) {
	h := itemtype.Standard()
	el := runes.Standard().MustLookup("El")

	for _, level := range []int{0, -5, 100} {
		_, err := New("Bad", level, "", nil, []runes.Rune{el}, h)
		assert.ErrorIs(t, err, ErrInvalidLevel, "level %d", level)
	}
	_, err := New("Empty", 10, "", nil, nil, h)
	assert.ErrorIs(t, err, ErrEmptyRecipe)

	_, err = New("Edge", MaxLevel, "", nil, []runes.Rune{el}, h)
	assert.NoError(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "ancients_pledge", Key("Ancient's Pledge"))
	assert.Equal(t, "breath_of_the_dying", Key("  Breath of  the Dying "))
	assert.Equal(t, "kings_grace", Key("King's Grace"))
}

func TestCatalogLookup(t *testing.T) {
	enigma := mustRuneword(t, "Enigma", 65, []string{"Armor"}, "Jah", "Ith", "Ber")
	pledge := mustRuneword(t, "Ancient's Pledge", 21, []string{"Shield"}, "Ral", "Ort", "Tal")
	c, err := NewCatalog([]*Runeword{enigma, pledge})
	require.NoError(t, err)

	got, err := c.Lookup("ancients_pledge")
	require.NoError(t, err)
	assert.Same(t, pledge, got)

	got, err = c.Lookup("ENIGMA")
	require.NoError(t, err)
	assert.Same(t, enigma, got)

	_, err = c.Lookup("enigam")
	require.ErrorIs(t, err, ErrUnknownRuneword)
	assert.Contains(t, err.Error(), "Enigma")

	_, err = NewCatalog([]*Runeword{enigma, enigma})
	assert.Error(t, err)
}

func TestZeroCatalogIsEmpty(t *testing.T) {
	var c Catalog
	assert.Zero(t, c.Len())
	assert.Empty(t, c.All())

	_, err := c.Lookup("enigma")
	assert.ErrorIs(t, err, ErrUnknownRuneword)

	f := NewFilter(&c, runes.NewMultiset())
	require.NoError(t, f.SetThreshold(0))
	assert.Empty(t, f.Runewords())
}

func TestProgressAgainstRuneword(t *testing.T) {
	enigma := mustRuneword(t, "Enigma", 65, []string{"Armor"}, "Jah", "Ith", "Ber")

	assert.Equal(t, 0.0, runes.NewMultiset().ProgressTowards(enigma))

	inv := owned(t, map[string]int{"Jah": 1, "Ith": 1, "Ber": 1})
	assert.True(t, runes.IsComplete(inv, enigma))

	// A recipe compares like any other multiset.
	assert.InDelta(t, 1.0, enigma.ProgressTowards(inv), 1e-9)
}
