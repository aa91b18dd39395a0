package runeword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsned/runeword-tracker/internal/tracker/runes"
)

// countingInventory records how often progress is evaluated against it.
type countingInventory struct {
	*runes.Multiset
	calls int
}

func (c *countingInventory) Len() int {
	c.calls++
	return c.Multiset.Len()
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey(" Sockets ")
	require.NoError(t, err)
	assert.Equal(t, SortBySockets, k)

	_, err = ParseSortKey("weight")
	assert.ErrorIs(t, err, ErrOutOfRange)

	s := NewSorter(runes.NewMultiset())
	assert.Equal(t, DefaultSortKey, s.Key())
	assert.ErrorIs(t, s.SetKey("bogus"), ErrOutOfRange)
	assert.Equal(t, DefaultSortKey, s.Key())
}

func TestSortChains(t *testing.T) {
	s := NewSorter(runes.NewMultiset())
	assert.Len(t, s.Chain(SortByName), 1)
	assert.Len(t, s.Chain(SortByRarity), 2)
	assert.Len(t, s.Chain(SortByLevel), 3)
	assert.Len(t, s.Chain(SortBySockets), 4)
	assert.Len(t, s.Chain(SortByProgress), 3)
}

func TestSortBySocketsTieBreaks(t *testing.T) {
	words := []*Runeword{
		mustRuneword(t, "Zeta", 10, []string{"Armor"}, "El", "El"),
		mustRuneword(t, "Alpha", 10, []string{"Armor"}, "Tir", "Tir"),
		mustRuneword(t, "Echo", 10, []string{"Armor"}, "El", "Eld"),
		mustRuneword(t, "Beta", 10, []string{"Armor"}, "El", "Eld"),
		mustRuneword(t, "Gamma", 5, []string{"Armor"}, "Zod", "Zod"),
		mustRuneword(t, "Delta", 1, []string{"Armor"}, "El"),
	}
	s := NewSorter(runes.NewMultiset())
	require.NoError(t, s.SetKey(SortBySockets))

	got := s.Sort(words)
	assert.Equal(t, []string{"Delta", "Gamma", "Zeta", "Beta", "Echo", "Alpha"}, wordNames(got))
	// Input is left alone.
	assert.Equal(t, "Zeta", words[0].Name())
}

func TestSortByOtherKeys(t *testing.T) {
	c := testCatalog(t)
	inv := owned(t, map[string]int{"Tir": 1})
	s := NewSorter(inv)

	require.NoError(t, s.SetKey(SortByName))
	assert.Equal(t, []string{"Enigma", "Leaf", "Spirit", "Stealth", "Steel"}, wordNames(s.Sort(c.All())))

	require.NoError(t, s.SetKey(SortByLevel))
	assert.Equal(t, []string{"Steel", "Stealth", "Leaf", "Spirit", "Enigma"}, wordNames(s.Sort(c.All())))

	require.NoError(t, s.SetKey(SortByRarity))
	got := s.Sort(c.All())
	assert.Equal(t, "Enigma", got[len(got)-1].Name())
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Appraise(), got[i].Appraise())
	}

	// Stealth, Spirit and Enigma have no progress and fall back to rarity.
	require.NoError(t, s.SetKey(SortByProgress))
	got = s.Sort(c.All())
	require.Len(t, got, 5)
	assert.Equal(t, []string{"Leaf", "Steel"}, wordNames(got[3:]))
}

func TestCompareIdentitySkipsProgress(t *testing.T) {
	inv := &countingInventory{Multiset: owned(t, map[string]int{"Tir": 1})}
	s := NewSorter(inv)
	require.NoError(t, s.SetKey(SortByProgress))

	steel := mustRuneword(t, "Steel", 13, []string{"Sword"}, "Tir", "El")
	leaf := mustRuneword(t, "Leaf", 19, []string{"Staff"}, "Tir", "Ral")

	assert.Equal(t, 0, s.Compare(steel, steel))
	assert.Zero(t, inv.calls)

	assert.Equal(t, -1, s.Compare(leaf, steel))
	assert.Positive(t, inv.calls)
}
