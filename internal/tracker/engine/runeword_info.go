package engine

import (
	"context"

	"github.com/rsned/runeword-tracker/pkg/tracker"
)

// RunewordInfo executes the runeword_info tool logic.
func (e *Engine) RunewordInfo(ctx context.Context, req tracker.RunewordInfoRequest) (*tracker.RunewordInfoResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rw, err := e.catalog.Lookup(req.Name)
	if err != nil {
		return nil, err
	}

	return &tracker.RunewordInfoResponse{
		Runeword:    e.progress(rw),
		Description: rw.Description(),
		Ignored:     e.filter.RunewordIgnored(rw),
		Shown:       e.filter.Allows(rw),
	}, nil
}
