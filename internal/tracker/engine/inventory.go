package engine

import (
	"context"
	"fmt"

	"github.com/rsned/runeword-tracker/internal/tracker/runes"
	"github.com/rsned/runeword-tracker/internal/tracker/runeword"
	"github.com/rsned/runeword-tracker/pkg/tracker"
)

// Inventory executes the inventory lookup.
func (e *Engine) Inventory(ctx context.Context) (*tracker.InventoryResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	resp := e.inventoryResponse()
	return &resp, nil
}

func (e *Engine) inventoryResponse() tracker.InventoryResponse {
	return tracker.InventoryResponse{
		Runes:     runeCounts(e.owned.Quantities()),
		Total:     e.owned.Total(),
		Appraisal: e.owned.Appraise(),
	}
}

// AddRunes executes the add_runes tool logic. Unparseable entries are
// rejected individually; the rest are added and stored.
func (e *Engine) AddRunes(ctx context.Context, req tracker.RunesRequest) (*tracker.RunesResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	qs, rejected := runes.ParseQuantities(e.runes, req.Runes)
	resp := &tracker.RunesResponse{Rejected: wireRejections(rejected)}

	next := e.owned.Clone()
	applied := runes.NewMultiset()
	resp.Rejected = append(resp.Rejected, apply(qs, next, applied, (*runes.Multiset).Add)...)

	if err := e.commit(ctx, next, applied, (*runes.Multiset).Add); err != nil {
		return nil, err
	}
	resp.Applied = runeCounts(applied.Quantities())
	resp.Inventory = e.inventoryResponse()

	e.logger.Info("runes added", "applied", applied.Total(), "rejected", len(resp.Rejected))
	return resp, nil
}

// TossRunes executes the toss_runes tool logic. An entry asking for more
// than is owned is rejected and leaves that rune untouched. With AllTossable
// set, whatever the shown runewords do not need after the named runes are
// gone is tossed as well.
func (e *Engine) TossRunes(ctx context.Context, req tracker.RunesRequest) (*tracker.RunesResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	qs, rejected := runes.ParseQuantities(e.runes, req.Runes)
	resp := &tracker.RunesResponse{Rejected: wireRejections(rejected)}

	next := e.owned.Clone()
	tossed := runes.NewMultiset()
	resp.Rejected = append(resp.Rejected, apply(qs, next, tossed, (*runes.Multiset).Remove)...)
	if req.AllTossable {
		spare := runeword.Tossable(next, e.filter.Runewords(), runeword.DefaultProtection(e.runes))
		resp.Rejected = append(resp.Rejected, apply(spare, next, tossed, (*runes.Multiset).Remove)...)
	}

	if err := e.commit(ctx, next, tossed, (*runes.Multiset).Remove); err != nil {
		return nil, err
	}
	resp.Applied = runeCounts(tossed.Quantities())
	resp.Inventory = e.inventoryResponse()

	e.logger.Info("runes tossed", "applied", tossed.Total(), "rejected", len(resp.Rejected))
	return resp, nil
}

// apply runs op for each quantity against next, recording the ones that
// succeed in applied.
func apply(qs []runes.Quantity, next, applied *runes.Multiset, op func(*runes.Multiset, runes.Rune, int) error) []tracker.Rejection {
	var rejected []tracker.Rejection
	for _, q := range qs {
		if err := op(next, q.Rune, q.Quantity); err != nil {
			rejected = append(rejected, tracker.Rejection{Input: q.Rune.Name, Reason: err.Error()})
			continue
		}
		// Positive by construction.
		_ = applied.Add(q.Rune, q.Quantity)
	}
	return rejected
}

// commit stores next and then replays applied onto the live inventory, so
// the filter and sorter, which hold the live multiset, see the change.
func (e *Engine) commit(ctx context.Context, next, applied *runes.Multiset, op func(*runes.Multiset, runes.Rune, int) error) error {
	if applied.Empty() {
		return nil
	}
	var counts []tracker.RuneCount
	for _, q := range next.Quantities() {
		counts = append(counts, tracker.RuneCount{Rune: q.Rune.Name, Quantity: q.Quantity})
	}
	if err := e.inventory.ReplaceInventory(ctx, counts); err != nil {
		return fmt.Errorf("storing inventory: %w", err)
	}
	for _, q := range applied.Quantities() {
		// Already applied to next without error.
		if err := op(e.owned, q.Rune, q.Quantity); err != nil {
			panic(fmt.Sprintf("engine: replaying %s x%d: %v", q.Rune, q.Quantity, err))
		}
	}
	return nil
}

func wireRejections(rs []runes.Rejection) []tracker.Rejection {
	if len(rs) == 0 {
		return nil
	}
	out := make([]tracker.Rejection, len(rs))
	for i, r := range rs {
		out[i] = tracker.Rejection{Input: r.Input, Reason: r.Reason}
	}
	return out
}
