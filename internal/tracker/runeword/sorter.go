package runeword

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/rsned/runeword-tracker/internal/tracker/runes"
)

// SortKey selects the ordering applied by a Sorter.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByRarity   SortKey = "rarity"
	SortByLevel    SortKey = "level"
	SortBySockets  SortKey = "sockets"
	SortByProgress SortKey = "progress"
)

// DefaultSortKey is the ordering used until the player picks another.
const DefaultSortKey = SortByRarity

// SortKeys returns all sort keys.
func SortKeys() []SortKey {
	return []SortKey{SortByName, SortByRarity, SortByLevel, SortBySockets, SortByProgress}
}

// IsValid checks if the key is a known sort key.
func (k SortKey) IsValid() bool {
	return slices.Contains(SortKeys(), k)
}

// ParseSortKey resolves a sort key name, ignoring case.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("sort key %q: %w", s, ErrOutOfRange)
	}
	return k, nil
}

// Comparator is one layer of a sort chain.
type Comparator func(a, b *Runeword) int

func byName(a, b *Runeword) int    { return strings.Compare(a.name, b.name) }
func byRarity(a, b *Runeword) int  { return cmp.Compare(a.appraisal, b.appraisal) }
func byLevel(a, b *Runeword) int   { return cmp.Compare(a.level, b.level) }
func bySockets(a, b *Runeword) int { return cmp.Compare(len(a.sequence), len(b.sequence)) }

// Sorter orders runewords by a selectable key with fixed tie-break chains.
type Sorter struct {
	owned  runes.ReadOnly
	key    SortKey
	chains map[SortKey][]Comparator
}

// NewSorter returns a sorter using owned for the progress key.
func NewSorter(owned runes.ReadOnly) *Sorter {
	s := &Sorter{owned: owned, key: DefaultSortKey}
	byProgress := func(a, b *Runeword) int {
		return cmp.Compare(runes.ProgressTowards(s.owned, a), runes.ProgressTowards(s.owned, b))
	}
	s.chains = map[SortKey][]Comparator{
		SortByName:     {byName},
		SortByRarity:   {byRarity, byName},
		SortByLevel:    {byLevel, byRarity, byName},
		SortBySockets:  {bySockets, byLevel, byRarity, byName},
		SortByProgress: {byProgress, byRarity, byName},
	}
	return s
}

// Key returns the current sort key.
func (s *Sorter) Key() SortKey {
	return s.key
}

// SetKey selects the sort key.
func (s *Sorter) SetKey(key SortKey) error {
	if !key.IsValid() {
		return fmt.Errorf("sort key %q: %w", key, ErrOutOfRange)
	}
	s.key = key
	return nil
}

// Chain returns the comparator layers for key, first layer first.
func (s *Sorter) Chain(key SortKey) []Comparator {
	return slices.Clone(s.chains[key])
}

// Compare orders a and b by the current key, walking the chain until a
// layer tells them apart.
func (s *Sorter) Compare(a, b *Runeword) int {
	if a == b {
		return 0
	}
	for _, layer := range s.chains[s.key] {
		if c := layer(a, b); c != 0 {
			return c
		}
	}
	return 0
}

// Sort returns a new slice ordered ascending by the current key.
func (s *Sorter) Sort(words []*Runeword) []*Runeword {
	out := slices.Clone(words)
	slices.SortStableFunc(out, s.Compare)
	return out
}
