package runes

import (
	"fmt"
	"sort"
)

// CompleteThreshold is the progress at or above which a runeword counts as complete.
// Progress can land a hair under 1.0 from floating point rounding.
const CompleteThreshold = 0.999

// Quantity pairs a rune with a count.
type Quantity struct {
	Rune     Rune
	Quantity int
}

// ReadOnly is the read contract shared by owned inventories and runeword recipes.
type ReadOnly interface {
	// Quantities returns the entries in table order.
	Quantities() []Quantity
	// Quantity returns the count held of r, or 0.
	Quantity(r Rune) int
	// Len returns the number of distinct runes.
	Len() int
	// Appraise returns the sum of scarcity times quantity.
	Appraise() float64
}

// Multiset is a mutable collection of runes with positive quantities.
// It is not safe for concurrent use.
type Multiset struct {
	counts    map[Rune]int
	appraisal float64
	dirty     bool
}

// NewMultiset returns an empty multiset.
func NewMultiset() *Multiset {
	return &Multiset{counts: make(map[Rune]int)}
}

// FromQuantities rebuilds a multiset from exported pairs. Pairs for the same
// rune are merged. A pair with a non-positive quantity is skipped and
// reported; the rest are still restored.
func FromQuantities(qs []Quantity) (*Multiset, []Rejection) {
	m := NewMultiset()
	var rejected []Rejection
	for _, q := range qs {
		if err := m.Add(q.Rune, q.Quantity); err != nil {
			rejected = append(rejected, Rejection{Input: q.Rune.Name, Reason: err.Error()})
		}
	}
	return m, rejected
}

// Of builds a multiset with one unit per listed rune.
func Of(rs ...Rune) *Multiset {
	m := NewMultiset()
	for _, r := range rs {
		m.counts[r]++
	}
	m.dirty = true
	return m
}

// Add merges n units of r into the multiset.
func (m *Multiset) Add(r Rune, n int) error {
	if n <= 0 {
		return fmt.Errorf("adding %d %s: %w", n, r.Name, ErrInvalidQuantity)
	}
	m.counts[r] += n
	m.dirty = true
	return nil
}

// Remove takes n units of r out of the multiset. If fewer than n are owned the
// multiset is left unchanged and an *InsufficientQuantityError is returned.
func (m *Multiset) Remove(r Rune, n int) error {
	if n <= 0 {
		return fmt.Errorf("tossing %d %s: %w", n, r.Name, ErrInvalidQuantity)
	}
	have := m.counts[r]
	if n > have {
		return &InsufficientQuantityError{Rune: r, Requested: n, Available: have}
	}
	if n == have {
		delete(m.counts, r)
	} else {
		m.counts[r] = have - n
	}
	m.dirty = true
	return nil
}

// Quantities returns the entries ordered by rune id.
func (m *Multiset) Quantities() []Quantity {
	out := make([]Quantity, 0, len(m.counts))
	for r, n := range m.counts {
		if n <= 0 {
			panic(fmt.Sprintf("runes: non-positive quantity %d stored for %s", n, r.Name))
		}
		out = append(out, Quantity{Rune: r, Quantity: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rune.ID < out[j].Rune.ID })
	return out
}

// Quantity returns the count of r, or 0 when absent.
func (m *Multiset) Quantity(r Rune) int {
	return m.counts[r]
}

// Len returns the number of distinct runes held.
func (m *Multiset) Len() int {
	return len(m.counts)
}

// Empty reports whether no runes are held.
func (m *Multiset) Empty() bool {
	return len(m.counts) == 0
}

// Total returns the number of rune units held.
func (m *Multiset) Total() int {
	total := 0
	for _, n := range m.counts {
		total += n
	}
	return total
}

// Appraise returns the cached appraisal, recomputing it after a mutation.
func (m *Multiset) Appraise() float64 {
	if m.dirty {
		m.appraisal = appraise(m.counts)
		m.dirty = false
	}
	return m.appraisal
}

// ProgressTowards measures how much of other is covered by m.
func (m *Multiset) ProgressTowards(other ReadOnly) float64 {
	return ProgressTowards(m, other)
}

// Clone returns an independent copy.
func (m *Multiset) Clone() *Multiset {
	c := &Multiset{counts: make(map[Rune]int, len(m.counts)), appraisal: m.appraisal, dirty: m.dirty}
	for r, n := range m.counts {
		c.counts[r] = n
	}
	return c
}

func appraise(counts map[Rune]int) float64 {
	var sum float64
	for r, n := range counts {
		sum += r.Scarcity() * float64(n)
	}
	return sum
}

// ProgressTowards returns the scarcity-weighted share of other's runes that
// owned already holds, counting each rune at most up to other's quantity.
// An empty target is always complete.
func ProgressTowards(owned, other ReadOnly) float64 {
	if other.Len() == 0 {
		return 1
	}
	total := other.Appraise()
	if total <= 0 {
		return 1
	}

	// Walk the smaller side.
	small, large := owned, other
	if other.Len() < owned.Len() {
		small, large = other, owned
	}
	var common float64
	for _, q := range small.Quantities() {
		n := large.Quantity(q.Rune)
		if n == 0 {
			continue
		}
		common += q.Rune.Scarcity() * float64(min(n, q.Quantity))
	}
	return common / total
}

// IsComplete reports whether owned covers all of other.
func IsComplete(owned, other ReadOnly) bool {
	return ProgressTowards(owned, other) >= CompleteThreshold
}
