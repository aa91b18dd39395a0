package runeword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsned/runeword-tracker/internal/tracker/runes"
)

func asMap(qs []runes.Quantity) map[string]int {
	out := make(map[string]int, len(qs))
	for _, q := range qs {
		out[q.Rune.Name] = q.Quantity
	}
	return out
}

func TestTossableScenario(t *testing.T) {
	inv := owned(t, map[string]int{"Eth": 1, "Ko": 2, "Tir": 4})
	tracked := []*Runeword{
		mustRuneword(t, "A", 10, []string{"Armor"}, "Eth", "Tir"),
		mustRuneword(t, "B", 10, []string{"Armor"}, "Tir"),
		mustRuneword(t, "C", 10, []string{"Armor"}, "Tir"),
	}

	got := Tossable(inv, tracked, DefaultProtection(runes.Standard()))
	assert.Equal(t, map[string]int{"Ko": 2, "Tir": 1}, asMap(got))

	// Table order.
	require.Len(t, got, 2)
	assert.Equal(t, "Tir", got[0].Rune.Name)
	assert.Equal(t, "Ko", got[1].Rune.Name)
}

func TestTossableOrderIndependent(t *testing.T) {
	inv := owned(t, map[string]int{"Eth": 1, "Ko": 2, "Tir": 4})
	a := mustRuneword(t, "A", 10, []string{"Armor"}, "Eth", "Tir")
	b := mustRuneword(t, "B", 10, []string{"Armor"}, "Tir")
	c := mustRuneword(t, "C", 10, []string{"Armor"}, "Tir")
	p := DefaultProtection(runes.Standard())

	assert.Equal(t,
		asMap(Tossable(inv, []*Runeword{a, b, c}, p)),
		asMap(Tossable(inv, []*Runeword{c, a, b}, p)))
}

func TestTossableProtectsUtilityAndHighRunes(t *testing.T) {
	inv := owned(t, map[string]int{"Hel": 3, "Ber": 1, "Zod": 2, "El": 1})
	got := Tossable(inv, nil, DefaultProtection(runes.Standard()))
	assert.Equal(t, map[string]int{"El": 1}, asMap(got))
}

func TestTossableWithoutProtection(t *testing.T) {
	inv := owned(t, map[string]int{"Hel": 1, "Ber": 1})
	got := Tossable(inv, nil, Protection{})
	assert.Equal(t, map[string]int{"Hel": 1, "Ber": 1}, asMap(got))
}

func TestTossableEmptyOwned(t *testing.T) {
	tracked := []*Runeword{mustRuneword(t, "Steel", 13, []string{"Sword"}, "Tir", "El")}
	assert.Empty(t, Tossable(runes.NewMultiset(), tracked, DefaultProtection(runes.Standard())))
}

func TestTossableIsConservative(t *testing.T) {
	inv := owned(t, map[string]int{"El": 3, "Tir": 2, "Ral": 5, "Sol": 1, "Amn": 2, "Ort": 1, "Um": 2})
	tracked := []*Runeword{
		mustRuneword(t, "Steel", 13, []string{"Sword"}, "Tir", "El"),
		mustRuneword(t, "Leaf", 19, []string{"Staff"}, "Tir", "Ral"),
		mustRuneword(t, "Insight", 27, []string{"Polearm"}, "Ral", "Tir", "Tal", "Sol"),
		mustRuneword(t, "Bone", 47, []string{"Armor"}, "Sol", "Um", "Um"),
	}

	toss := Tossable(inv, tracked, DefaultProtection(runes.Standard()))
	require.NotEmpty(t, toss)

	after := inv.Clone()
	for _, q := range toss {
		require.NoError(t, after.Remove(q.Rune, q.Quantity))
	}
	for _, rw := range tracked {
		assert.InDelta(t, inv.ProgressTowards(rw), after.ProgressTowards(rw), 1e-12, rw.Name())
	}
}
