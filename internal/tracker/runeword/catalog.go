package runeword

import (
	"fmt"

	"github.com/rsned/runeword-tracker/internal/tracker/runes"
)

// Catalog is the ordered, name-indexed set of known runewords. It is built
// once at load time and only read afterwards. The zero value is an empty
// catalog.
type Catalog struct {
	words []*Runeword
	byKey map[string]*Runeword
}

// NewCatalog indexes runewords in the given order. Names must be unique
// after normalisation.
func NewCatalog(words []*Runeword) (*Catalog, error) {
	c := &Catalog{
		words: make([]*Runeword, 0, len(words)),
		byKey: make(map[string]*Runeword, len(words)),
	}
	for _, rw := range words {
		if _, dup := c.byKey[rw.Key()]; dup {
			return nil, fmt.Errorf("runeword %s: duplicate name", rw.Name())
		}
		c.byKey[rw.Key()] = rw
		c.words = append(c.words, rw)
	}
	return c, nil
}

// Len returns the number of runewords.
func (c *Catalog) Len() int {
	return len(c.words)
}

// All returns the runewords in catalog order.
func (c *Catalog) All() []*Runeword {
	out := make([]*Runeword, len(c.words))
	copy(out, c.words)
	return out
}

// Lookup resolves a runeword by display name or key.
func (c *Catalog) Lookup(name string) (*Runeword, error) {
	if rw, ok := c.byKey[Key(name)]; ok {
		return rw, nil
	}
	keys := make([]string, len(c.words))
	for i, rw := range c.words {
		keys[i] = rw.Key()
	}
	suggestion := runes.Suggest(Key(name), keys)
	if s, ok := c.byKey[suggestion]; ok {
		suggestion = s.Name()
	}
	return nil, runes.NewUnknownNameError("runeword", name, suggestion, ErrUnknownRuneword)
}
