package runeword

import (
	"github.com/rsned/runeword-tracker/internal/tracker/runes"
)

// Protection lists runes that are never suggested for tossing.
type Protection struct {
	Runes map[runes.Rune]bool
	Tiers map[runes.Tier]bool
}

// DefaultProtection keeps the utility rune and the whole high tier.
func DefaultProtection(t *runes.Table) Protection {
	p := Protection{
		Runes: make(map[runes.Rune]bool),
		Tiers: map[runes.Tier]bool{runes.TierHigh: true},
	}
	if r, err := t.Lookup(runes.UtilityRune); err == nil {
		p.Runes[r] = true
	}
	return p
}

// Protects reports whether r must be kept regardless of tracked runewords.
func (p Protection) Protects(r runes.Rune) bool {
	return p.Runes[r] || p.Tiers[r.Tier]
}

// Tossable returns the owned runes that no tracked runeword needs. Each
// runeword reserves its full requirement on its own, so a rune is kept if
// any tracked runeword still wants it. Removing the returned quantities
// leaves the progress towards every tracked runeword unchanged.
func Tossable(owned runes.ReadOnly, tracked []*Runeword, protect Protection) []runes.Quantity {
	spare := make(map[runes.Rune]int)
	for _, q := range owned.Quantities() {
		if protect.Protects(q.Rune) {
			continue
		}
		spare[q.Rune] = q.Quantity
	}

	for _, rw := range tracked {
		if len(spare) == 0 {
			break
		}
		for _, req := range rw.Quantities() {
			have, ok := spare[req.Rune]
			if !ok {
				continue
			}
			if left := have - req.Quantity; left > 0 {
				spare[req.Rune] = left
			} else {
				delete(spare, req.Rune)
			}
		}
	}

	out := make([]runes.Quantity, 0, len(spare))
	for _, q := range owned.Quantities() {
		if n, ok := spare[q.Rune]; ok {
			out = append(out, runes.Quantity{Rune: q.Rune, Quantity: n})
		}
	}
	return out
}
