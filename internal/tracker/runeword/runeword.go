// Package runeword contains the runeword catalog and the views computed over
// it: filtering, layered sorting and tossable rune advice.
package runeword

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rsned/runeword-tracker/internal/tracker/itemtype"
	"github.com/rsned/runeword-tracker/internal/tracker/runes"
)

// Level bounds for a runeword's required character level.
const (
	MinLevel = 1
	MaxLevel = 99
)

var (
	ErrInvalidLevel     = errors.New("runeword level out of bounds")
	ErrEmptyRecipe      = errors.New("runeword requires at least one rune")
	ErrOutOfRange       = errors.New("value out of range")
	ErrUnknownRuneword  = errors.New("unknown runeword")
	ErrAbstractItemType = errors.New("item type is not concrete")
)

// Runeword is an immutable recipe. It satisfies runes.ReadOnly so it can be
// appraised and compared like an owned inventory.
type Runeword struct {
	name        string
	key         string
	level       int
	description string
	word        string
	sequence    []runes.Rune
	types       []*itemtype.ItemType
	recipe      *runes.Multiset
	appraisal   float64
}

// New builds a runeword. bases are expanded through h to the concrete item
// types with enough sockets for the recipe. sequence lists one rune per socket
// in insertion order.
func New(name string, level int, description string, bases []*itemtype.ItemType, sequence []runes.Rune, h *itemtype.Hierarchy) (*Runeword, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, fmt.Errorf("runeword %s: level %d not within [%d, %d]: %w", name, level, MinLevel, MaxLevel, ErrInvalidLevel)
	}
	if len(sequence) == 0 {
		return nil, fmt.Errorf("runeword %s: %w", name, ErrEmptyRecipe)
	}

	var word strings.Builder
	for _, r := range sequence {
		word.WriteString(r.Name)
	}
	seq := make([]runes.Rune, len(sequence))
	copy(seq, sequence)

	rw := &Runeword{
		name:        name,
		key:         Key(name),
		level:       level,
		description: description,
		word:        word.String(),
		sequence:    seq,
		types:       h.Expand(bases, len(sequence)),
		recipe:      runes.Of(sequence...),
	}
	rw.appraisal = rw.recipe.Appraise()
	return rw, nil
}

// Key normalises a runeword name for lookup: "Ancient's Pledge" becomes
// "ancients_pledge".
func Key(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	k = strings.ReplaceAll(k, "'", "")
	return strings.Join(strings.Fields(k), "_")
}

func (rw *Runeword) Name() string        { return rw.name }
func (rw *Runeword) Key() string         { return rw.key }
func (rw *Runeword) Level() int          { return rw.level }
func (rw *Runeword) Description() string { return rw.description }

// Word is the rune names concatenated in socket order, e.g. "JahIthBer".
func (rw *Runeword) Word() string { return rw.word }

// Sockets is the number of sockets the runeword occupies.
func (rw *Runeword) Sockets() int { return len(rw.sequence) }

// Sequence returns the runes in socket order.
func (rw *Runeword) Sequence() []runes.Rune {
	out := make([]runes.Rune, len(rw.sequence))
	copy(out, rw.sequence)
	return out
}

// Types returns the concrete item types the runeword can be made in.
func (rw *Runeword) Types() []*itemtype.ItemType {
	out := make([]*itemtype.ItemType, len(rw.types))
	copy(out, rw.types)
	return out
}

// Quantities implements runes.ReadOnly.
func (rw *Runeword) Quantities() []runes.Quantity { return rw.recipe.Quantities() }

// Quantity implements runes.ReadOnly.
func (rw *Runeword) Quantity(r runes.Rune) int { return rw.recipe.Quantity(r) }

// Len implements runes.ReadOnly.
func (rw *Runeword) Len() int { return rw.recipe.Len() }

// Appraise implements runes.ReadOnly. The value is computed once at construction.
func (rw *Runeword) Appraise() float64 { return rw.appraisal }

// ProgressTowards measures how much of other this recipe covers.
func (rw *Runeword) ProgressTowards(other runes.ReadOnly) float64 {
	return runes.ProgressTowards(rw, other)
}

func (rw *Runeword) String() string {
	return rw.name
}
