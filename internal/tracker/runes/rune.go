// Package runes contains the rune catalog and the rune multiset used to
// appraise inventories and measure progress towards runewords.
package runes

// DropSampleSize is the number of rune drops the rarity table was measured over.
const DropSampleSize = 1_000_000

// Tier partitions the rune table into thirds by definition order.
type Tier int

const (
	TierLow  Tier = -1
	TierMid  Tier = 0
	TierHigh Tier = 1
)

// String returns the display name of the tier.
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMid:
		return "mid"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Rune is an immutable entry of a Table.
type Rune struct {
	ID     int     // position in the table
	Name   string  // display name, e.g. "Ber"
	Rarity float64 // drop probability
	Tier   Tier
}

// Scarcity is the inverse of the drop probability; rarer runes score higher.
func (r Rune) Scarcity() float64 {
	return 1 / r.Rarity
}

// String returns the rune's display name.
func (r Rune) String() string {
	return r.Name
}

// Definition is a single row of a rune rarity table.
type Definition struct {
	Name  string
	Drops int // occurrences per DropSampleSize drops
}

// standardDefinitions lists the Diablo II runes with their 1.10 drop counts.
var standardDefinitions = []Definition{
	{"El", 215493},
	{"Eld", 143662},
	{"Tir", 119718},
	{"Nef", 79812},
	{"Eth", 83803},
	{"Ith", 55868},
	{"Tal", 69836},
	{"Ral", 46557},
	{"Ort", 48885},
	{"Thul", 32590},
	{"Amn", 29874},
	{"Sol", 19916},
	{"Shael", 15767},
	{"Dol", 10511},
	{"Hel", 8102},
	{"Io", 5402},
	{"Lum", 4107},
	{"Ko", 2738},
	{"Fal", 2068},
	{"Lem", 1379},
	{"Pul", 1038},
	{"Um", 692},
	{"Mal", 594},
	{"Ist", 396},
	{"Gul", 340},
	{"Vex", 226},
	{"Ohm", 194},
	{"Lo", 129},
	{"Sur", 111},
	{"Ber", 74},
	{"Jah", 63},
	{"Cham", 42},
	{"Zod", 12},
}

// UtilityRune is kept out of discard advice; it is spent on unsocketing items.
const UtilityRune = "Hel"
