package runes

import (
	"fmt"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// Table is the fixed, ordered rune catalog. It is built once and never mutated.
type Table struct {
	runes  []Rune
	byName map[string]int
}

// NewTable builds a table from definitions in the given order.
func NewTable(defs []Definition) (*Table, error) {
	t := &Table{
		runes:  make([]Rune, 0, len(defs)),
		byName: make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("rune definition %d: empty name", i)
		}
		if d.Drops <= 0 {
			return nil, fmt.Errorf("rune %s: drop count must be positive, got %d", d.Name, d.Drops)
		}
		key := strings.ToLower(d.Name)
		if _, dup := t.byName[key]; dup {
			return nil, fmt.Errorf("rune %s: duplicate definition", d.Name)
		}
		t.byName[key] = i
		t.runes = append(t.runes, Rune{
			ID:     i,
			Name:   d.Name,
			Rarity: float64(d.Drops) / DropSampleSize,
			Tier:   Tier(i*3/len(defs) - 1),
		})
	}
	return t, nil
}

var (
	standardOnce  sync.Once
	standardTable *Table
)

// Standard returns the shared table of the 33 Diablo II runes.
func Standard() *Table {
	standardOnce.Do(func() {
		t, err := NewTable(standardDefinitions)
		if err != nil {
			panic(fmt.Sprintf("standard rune table: %v", err))
		}
		standardTable = t
	})
	return standardTable
}

// Len returns the number of runes in the table.
func (t *Table) Len() int {
	return len(t.runes)
}

// All returns the runes in definition order.
func (t *Table) All() []Rune {
	out := make([]Rune, len(t.runes))
	copy(out, t.runes)
	return out
}

// Lookup resolves a rune by name, ignoring case and surrounding space.
// A miss returns an *UnknownNameError carrying the closest known name.
func (t *Table) Lookup(name string) (Rune, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := t.byName[key]; ok {
		return t.runes[id], nil
	}
	return Rune{}, &UnknownNameError{
		Kind:       "rune",
		Name:       name,
		Suggestion: t.suggest(key),
		sentinel:   ErrUnknownRune,
	}
}

// MustLookup is Lookup for names known at compile time.
func (t *Table) MustLookup(name string) Rune {
	r, err := t.Lookup(name)
	if err != nil {
		panic(err)
	}
	return r
}

func (t *Table) suggest(key string) string {
	names := make([]string, len(t.runes))
	for i, r := range t.runes {
		names[i] = r.Name
	}
	return Suggest(key, names)
}

// Suggest returns the candidate closest to input by edit distance, or "" when
// nothing is close enough to be a plausible typo.
func Suggest(input string, candidates []string) string {
	input = strings.ToLower(input)
	if input == "" {
		return ""
	}
	best := ""
	bestDist := -1
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, strings.ToLower(c))
		if dist > suggestionLimit(len(c)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}

func suggestionLimit(length int) int {
	switch {
	case length <= 3:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
