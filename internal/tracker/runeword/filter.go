package runeword

import (
	"fmt"
	"math"
	"sort"

	"github.com/rsned/runeword-tracker/internal/tracker/itemtype"
	"github.com/rsned/runeword-tracker/internal/tracker/runes"
)

// DefaultThreshold is the minimum progress a runeword needs to be shown.
const DefaultThreshold = 0.15

// Filter narrows the catalog to the runewords relevant to the player.
// Results are recomputed on every call since the owned runes may change
// between calls.
type Filter struct {
	catalog      *Catalog
	owned        runes.ReadOnly
	ignoredWords map[*Runeword]bool
	ignoredTypes map[*itemtype.ItemType]bool
	threshold    float64
}

// NewFilter returns a filter over catalog measuring progress from owned.
func NewFilter(catalog *Catalog, owned runes.ReadOnly) *Filter {
	return &Filter{
		catalog:      catalog,
		owned:        owned,
		ignoredWords: make(map[*Runeword]bool),
		ignoredTypes: make(map[*itemtype.ItemType]bool),
		threshold:    DefaultThreshold,
	}
}

// Runewords returns, in catalog order, every runeword that is not ignored,
// meets the progress threshold and still has a base that is not ignored.
func (f *Filter) Runewords() []*Runeword {
	var out []*Runeword
	for _, rw := range f.catalog.words {
		if f.Allows(rw) {
			out = append(out, rw)
		}
	}
	return out
}

// Allows reports whether rw passes every filter predicate.
func (f *Filter) Allows(rw *Runeword) bool {
	if f.ignoredWords[rw] {
		return false
	}
	if f.allTypesIgnored(rw) {
		return false
	}
	return runes.ProgressTowards(f.owned, rw) >= f.threshold
}

func (f *Filter) allTypesIgnored(rw *Runeword) bool {
	for _, t := range rw.types {
		if !f.ignoredTypes[t] {
			return false
		}
	}
	return true
}

// ToggleRuneword flips whether rw is ignored and returns the new state.
func (f *Filter) ToggleRuneword(rw *Runeword) bool {
	if f.ignoredWords[rw] {
		delete(f.ignoredWords, rw)
		return false
	}
	f.ignoredWords[rw] = true
	return true
}

// ToggleItemType flips whether t is ignored and returns the new state.
// Only concrete types can be ignored; callers expand containers first.
func (f *Filter) ToggleItemType(t *itemtype.ItemType) (bool, error) {
	if !t.Concrete() {
		return false, fmt.Errorf("ignoring %s: %w", t.Name, ErrAbstractItemType)
	}
	if f.ignoredTypes[t] {
		delete(f.ignoredTypes, t)
		return false, nil
	}
	f.ignoredTypes[t] = true
	return true, nil
}

// SetThreshold sets the minimum progress, which must lie in [0, 1].
func (f *Filter) SetThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("progress threshold %v must be within [0, 1]: %w", threshold, ErrOutOfRange)
	}
	f.threshold = threshold
	return nil
}

// Threshold returns the current minimum progress.
func (f *Filter) Threshold() float64 {
	return f.threshold
}

// IgnoredRunewords returns the ignored runewords in catalog order.
func (f *Filter) IgnoredRunewords() []*Runeword {
	var out []*Runeword
	for _, rw := range f.catalog.words {
		if f.ignoredWords[rw] {
			out = append(out, rw)
		}
	}
	return out
}

// IgnoredItemTypes returns the ignored item types in hierarchy order.
func (f *Filter) IgnoredItemTypes() []*itemtype.ItemType {
	out := make([]*itemtype.ItemType, 0, len(f.ignoredTypes))
	for t := range f.ignoredTypes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ItemTypeIgnored reports whether t is ignored.
func (f *Filter) ItemTypeIgnored(t *itemtype.ItemType) bool {
	return f.ignoredTypes[t]
}

// RunewordIgnored reports whether rw is ignored.
func (f *Filter) RunewordIgnored(rw *Runeword) bool {
	return f.ignoredWords[rw]
}
