package engine

import (
	"context"
	"time"

	"github.com/rsned/runeword-tracker/internal/tracker/runeword"
	"github.com/rsned/runeword-tracker/pkg/tracker"
)

// Status executes the tracker_status tool logic: the filtered and sorted
// runewords, the runes none of them need, and the current inventory.
func (e *Engine) Status(ctx context.Context, req tracker.StatusRequest) (*tracker.StatusResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	lastImport, err := e.db.LastImport(ctx)
	if err != nil {
		return nil, err
	}

	shown := e.sorter.Sort(e.filter.Runewords())
	resp := &tracker.StatusResponse{
		Tossable:    runeCounts(runeword.Tossable(e.owned, shown, runeword.DefaultProtection(e.runes))),
		Inventory:   e.inventoryResponse(),
		Preferences: e.preferences(),
		Stats: tracker.StatusStats{
			CatalogSize: e.catalog.Len(),
			Shown:       len(shown),
		},
	}
	if !lastImport.IsZero() {
		resp.Stats.LastImport = lastImport.Format(time.RFC3339)
	}

	for _, rw := range shown {
		p := e.progress(rw)
		if p.Complete {
			resp.Stats.Complete++
		}
		if req.Limit > 0 && len(resp.Runewords) >= req.Limit {
			continue
		}
		resp.Runewords = append(resp.Runewords, p)
	}

	return resp, nil
}
