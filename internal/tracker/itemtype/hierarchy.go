package itemtype

import (
	"fmt"
	"sort"
	"sync"
)

// Hierarchy is the resolved item type tree. Every node knows its concrete
// descendants up front, so expansion never recurses.
type Hierarchy struct {
	types  []*ItemType
	byName map[string]*ItemType
}

// NewHierarchy resolves an adjacency list. Parents may be declared after
// their children; cycles and unknown parents are rejected.
func NewHierarchy(defs []Definition) (*Hierarchy, error) {
	h := &Hierarchy{
		types:  make([]*ItemType, 0, len(defs)),
		byName: make(map[string]*ItemType, len(defs)),
	}
	for i, d := range defs {
		key := lookupKey(d.Name)
		if key == "" {
			return nil, fmt.Errorf("item type definition %d: empty name", i)
		}
		if _, dup := h.byName[key]; dup {
			return nil, fmt.Errorf("item type %s: duplicate definition", d.Name)
		}
		t := &ItemType{ID: i, Name: d.Name, MaxSockets: d.MaxSockets, concrete: d.MaxSockets >= 0}
		h.types = append(h.types, t)
		h.byName[key] = t
	}

	children := make(map[*ItemType][]*ItemType)
	for i, d := range defs {
		if d.Parent == "" {
			continue
		}
		parent, ok := h.byName[lookupKey(d.Parent)]
		if !ok {
			return nil, fmt.Errorf("item type %s: unknown parent %q", d.Name, d.Parent)
		}
		h.types[i].Parent = parent
		children[parent] = append(children[parent], h.types[i])
	}

	order, err := postOrder(h.types, children)
	if err != nil {
		return nil, err
	}

	// Children are resolved before parents, so one pass fills every closure.
	for _, t := range order {
		seen := make(map[*ItemType]bool)
		for _, c := range children[t] {
			if c.concrete && !seen[c] {
				seen[c] = true
				t.descendants = append(t.descendants, c)
			}
			for _, d := range c.descendants {
				if !seen[d] {
					seen[d] = true
					t.descendants = append(t.descendants, d)
				}
			}
			if c.MaxSockets > t.MaxSockets {
				t.MaxSockets = c.MaxSockets
			}
		}
		sortByID(t.descendants)
	}
	return h, nil
}

// postOrder returns the types with every child ahead of its parent.
func postOrder(types []*ItemType, children map[*ItemType][]*ItemType) ([]*ItemType, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[*ItemType]int, len(types))
	order := make([]*ItemType, 0, len(types))

	var visit func(t *ItemType) error
	visit = func(t *ItemType) error {
		switch state[t] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("item type %s: cycle in hierarchy", t.Name)
		}
		state[t] = visiting
		for _, c := range children[t] {
			if err := visit(c); err != nil {
				return err
			}
		}
		state[t] = done
		order = append(order, t)
		return nil
	}
	for _, t := range types {
		if err := visit(t); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func sortByID(ts []*ItemType) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].ID < ts[j].ID })
}

var (
	standardOnce sync.Once
	standard     *Hierarchy
)

// Standard returns the shared Diablo II item type hierarchy.
func Standard() *Hierarchy {
	standardOnce.Do(func() {
		h, err := NewHierarchy(standardDefinitions)
		if err != nil {
			panic(fmt.Sprintf("standard item type hierarchy: %v", err))
		}
		standard = h
	})
	return standard
}

// Expand flattens types into the deduplicated set of concrete types they
// cover, keeping only those that can hold at least minSockets sockets.
// The result is in definition order.
func (h *Hierarchy) Expand(types []*ItemType, minSockets int) []*ItemType {
	seen := make(map[*ItemType]bool)
	var out []*ItemType
	add := func(t *ItemType) {
		if seen[t] || t.MaxSockets < minSockets {
			return
		}
		seen[t] = true
		out = append(out, t)
	}
	for _, t := range types {
		if t.concrete {
			add(t)
		}
		for _, d := range t.descendants {
			add(d)
		}
	}
	sortByID(out)
	return out
}
