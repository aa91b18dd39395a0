package engine

import (
	"context"
	"fmt"

	"github.com/rsned/runeword-tracker/internal/tracker/itemtype"
	"github.com/rsned/runeword-tracker/internal/tracker/runeword"
	"github.com/rsned/runeword-tracker/pkg/tracker"
)

// ToggleIgnore executes the toggle_ignore tool logic. A runeword flips on
// its own. An item type flips together with all its concrete descendants:
// they become ignored unless every one of them already is.
func (e *Engine) ToggleIgnore(ctx context.Context, req tracker.ToggleIgnoreRequest) (*tracker.ToggleIgnoreResponse, error) {
	if (req.Runeword == "") == (req.ItemType == "") {
		return nil, fmt.Errorf("exactly one of runeword and item_type must be set: %w", ErrInvalidRequest)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if req.Runeword != "" {
		return e.toggleRuneword(ctx, req.Runeword)
	}
	return e.toggleItemType(ctx, req.ItemType)
}

func (e *Engine) toggleRuneword(ctx context.Context, name string) (*tracker.ToggleIgnoreResponse, error) {
	rw, err := e.catalog.Lookup(name)
	if err != nil {
		return nil, err
	}

	ignored := e.filter.ToggleRuneword(rw)
	if err := e.prefs.SetRunewordIgnored(ctx, rw.Key(), ignored); err != nil {
		e.filter.ToggleRuneword(rw)
		return nil, err
	}

	e.logger.Info("runeword toggled", "runeword", rw.Name(), "ignored", ignored)
	return &tracker.ToggleIgnoreResponse{Names: []string{rw.Name()}, Ignored: ignored}, nil
}

func (e *Engine) toggleItemType(ctx context.Context, name string) (*tracker.ToggleIgnoreResponse, error) {
	t, err := e.types.Lookup(name)
	if err != nil {
		return nil, err
	}

	targets := e.types.Expand([]*itemtype.ItemType{t}, 0)
	ignore := false
	for _, c := range targets {
		if !e.filter.ItemTypeIgnored(c) {
			ignore = true
			break
		}
	}

	var changed []*itemtype.ItemType
	names := make([]string, 0, len(targets))
	for _, c := range targets {
		names = append(names, c.Name)
		if e.filter.ItemTypeIgnored(c) == ignore {
			continue
		}
		if _, err := e.filter.ToggleItemType(c); err != nil {
			e.revertItemTypes(changed)
			return nil, err
		}
		changed = append(changed, c)
	}

	if err := e.prefs.SetItemTypesIgnored(ctx, names, ignore); err != nil {
		e.revertItemTypes(changed)
		return nil, err
	}

	e.logger.Info("item types toggled", "item_type", t.Name, "count", len(names), "ignored", ignore)
	return &tracker.ToggleIgnoreResponse{Names: names, Ignored: ignore}, nil
}

func (e *Engine) revertItemTypes(changed []*itemtype.ItemType) {
	for _, c := range changed {
		_, _ = e.filter.ToggleItemType(c)
	}
}

// SetThreshold executes the set_threshold tool logic.
func (e *Engine) SetThreshold(ctx context.Context, req tracker.SetThresholdRequest) (*tracker.Preferences, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	old := e.filter.Threshold()
	if err := e.filter.SetThreshold(req.Threshold); err != nil {
		return nil, err
	}
	if err := e.prefs.SetThreshold(ctx, req.Threshold); err != nil {
		_ = e.filter.SetThreshold(old)
		return nil, err
	}

	prefs := e.preferences()
	return &prefs, nil
}

// SetSort executes the set_sort tool logic.
func (e *Engine) SetSort(ctx context.Context, req tracker.SetSortRequest) (*tracker.Preferences, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key, err := runeword.ParseSortKey(string(req.Sort))
	if err != nil {
		return nil, err
	}
	old := e.sorter.Key()
	if err := e.sorter.SetKey(key); err != nil {
		return nil, err
	}
	if err := e.prefs.SetSort(ctx, tracker.SortKey(key)); err != nil {
		_ = e.sorter.SetKey(old)
		return nil, err
	}

	prefs := e.preferences()
	return &prefs, nil
}
