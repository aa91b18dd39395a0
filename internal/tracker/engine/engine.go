// Package engine contains the runeword tracker business logic: it owns the
// live inventory and answers the tool requests.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rsned/runeword-tracker/internal/tracker/db"
	"github.com/rsned/runeword-tracker/internal/tracker/itemtype"
	"github.com/rsned/runeword-tracker/internal/tracker/runes"
	"github.com/rsned/runeword-tracker/internal/tracker/runeword"
	"github.com/rsned/runeword-tracker/pkg/tracker"
)

// ErrInvalidRequest is returned for requests that are malformed as a whole.
var ErrInvalidRequest = errors.New("invalid request")

// Defaults are the preferences used until the player changes them.
type Defaults struct {
	Threshold float64
	Sort      tracker.SortKey
}

// DefaultDefaults returns the built-in preferences.
func DefaultDefaults() Defaults {
	return Defaults{Threshold: runeword.DefaultThreshold, Sort: tracker.SortKey(runeword.DefaultSortKey)}
}

// Engine is the main query engine for tracker operations. All methods are
// safe for concurrent use; they are serialised on one mutex.
type Engine struct {
	mu     sync.Mutex
	logger *slog.Logger

	db        *db.DB
	words     *db.RunewordStore
	inventory *db.InventoryStore
	prefs     *db.PreferenceStore

	runes   *runes.Table
	types   *itemtype.Hierarchy
	catalog *runeword.Catalog
	owned   *runes.Multiset
	filter  *runeword.Filter
	sorter  *runeword.Sorter
}

// New creates a new Engine with the given database. The engine starts with
// an empty catalog and inventory; call Load to read the stored state.
func New(database *db.DB, logger *slog.Logger) *Engine {
	e := &Engine{
		logger:    logger,
		db:        database,
		words:     db.NewRunewordStore(database),
		inventory: db.NewInventoryStore(database),
		prefs:     db.NewPreferenceStore(database),
		runes:     runes.Standard(),
		types:     itemtype.Standard(),
	}
	e.reset(&runeword.Catalog{}, runes.NewMultiset())
	return e
}

func (e *Engine) reset(catalog *runeword.Catalog, owned *runes.Multiset) {
	e.catalog = catalog
	e.owned = owned
	e.filter = runeword.NewFilter(catalog, owned)
	e.sorter = runeword.NewSorter(owned)
}

// Load reads the catalog, the inventory and the preferences from the
// database, replacing the engine's state. Stored entries that no longer
// resolve are logged and dropped.
func (e *Engine) Load(ctx context.Context, defaults Defaults) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	stored, err := e.words.GetAllRunewords(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	words := make([]*runeword.Runeword, 0, len(stored))
	for _, s := range stored {
		rw, err := e.buildRuneword(s)
		if err != nil {
			e.logger.Warn("dropping stored runeword", "key", s.Key, "error", err)
			continue
		}
		words = append(words, rw)
	}
	catalog, err := runeword.NewCatalog(words)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}

	counts, err := e.inventory.GetInventory(ctx)
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}
	pairs := make([]runes.Quantity, 0, len(counts))
	for _, c := range counts {
		r, err := e.runes.Lookup(c.Rune)
		if err != nil {
			e.logger.Warn("dropping stored rune", "rune", c.Rune, "error", err)
			continue
		}
		pairs = append(pairs, runes.Quantity{Rune: r, Quantity: c.Quantity})
	}
	owned, rejected := runes.FromQuantities(pairs)
	for _, r := range rejected {
		e.logger.Warn("dropping stored rune", "rune", r.Input, "error", r.Reason)
	}

	prefs, err := e.prefs.GetPreferences(ctx, tracker.Preferences{Threshold: defaults.Threshold, Sort: defaults.Sort})
	if err != nil {
		return fmt.Errorf("loading preferences: %w", err)
	}

	e.reset(catalog, owned)
	e.applyPreferences(prefs, defaults)

	e.logger.Debug("engine loaded",
		"runewords", catalog.Len(),
		"runes_owned", owned.Total(),
		"threshold", e.filter.Threshold(),
		"sort", e.sorter.Key())
	return nil
}

func (e *Engine) applyPreferences(prefs tracker.Preferences, defaults Defaults) {
	if err := e.filter.SetThreshold(prefs.Threshold); err != nil {
		e.logger.Warn("ignoring stored threshold", "error", err)
		if err := e.filter.SetThreshold(defaults.Threshold); err != nil {
			e.logger.Warn("ignoring default threshold", "error", err)
		}
	}

	key, err := runeword.ParseSortKey(string(prefs.Sort))
	if err != nil {
		e.logger.Warn("ignoring stored sort key", "error", err)
		key = runeword.DefaultSortKey
	}
	_ = e.sorter.SetKey(key)

	for _, k := range prefs.IgnoredRunewords {
		rw, err := e.catalog.Lookup(k)
		if err != nil {
			// Kept in the database; the runeword may come back with the next import.
			e.logger.Debug("ignored runeword not in catalog", "key", k)
			continue
		}
		e.filter.ToggleRuneword(rw)
	}
	for _, name := range prefs.IgnoredItemTypes {
		t, err := e.types.Lookup(name)
		if err != nil {
			e.logger.Warn("dropping ignored item type", "item_type", name, "error", err)
			continue
		}
		if _, err := e.filter.ToggleItemType(t); err != nil {
			e.logger.Warn("dropping ignored item type", "item_type", name, "error", err)
		}
	}
}

// buildRuneword resolves a stored catalog entry against the rune table and
// item type hierarchy.
func (e *Engine) buildRuneword(s tracker.Runeword) (*runeword.Runeword, error) {
	bases := make([]*itemtype.ItemType, 0, len(s.Bases))
	for _, b := range s.Bases {
		t, err := e.types.Lookup(b)
		if err != nil {
			return nil, err
		}
		bases = append(bases, t)
	}
	seq := make([]runes.Rune, 0, len(s.Runes))
	for _, name := range s.Runes {
		r, err := e.runes.Lookup(name)
		if err != nil {
			return nil, err
		}
		seq = append(seq, r)
	}
	return runeword.New(s.Name, s.Level, s.Description, bases, seq, e.types)
}

// Preferences returns the current filter and sort settings.
func (e *Engine) Preferences() tracker.Preferences {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.preferences()
}

func (e *Engine) preferences() tracker.Preferences {
	prefs := tracker.Preferences{
		Threshold: e.filter.Threshold(),
		Sort:      tracker.SortKey(e.sorter.Key()),
	}
	for _, rw := range e.filter.IgnoredRunewords() {
		prefs.IgnoredRunewords = append(prefs.IgnoredRunewords, rw.Name())
	}
	for _, t := range e.filter.IgnoredItemTypes() {
		prefs.IgnoredItemTypes = append(prefs.IgnoredItemTypes, t.Name)
	}
	return prefs
}

// runeCounts converts quantities to their wire form.
func runeCounts(qs []runes.Quantity) []tracker.RuneCount {
	out := make([]tracker.RuneCount, 0, len(qs))
	for _, q := range qs {
		out = append(out, tracker.RuneCount{Rune: q.Rune.Name, Quantity: q.Quantity, Tier: q.Rune.Tier.String()})
	}
	return out
}

// progress describes rw against the owned runes.
func (e *Engine) progress(rw *runeword.Runeword) tracker.RunewordProgress {
	p := runes.ProgressTowards(e.owned, rw)
	out := tracker.RunewordProgress{
		Key:      rw.Key(),
		Name:     rw.Name(),
		Level:    rw.Level(),
		Word:     rw.Word(),
		Sockets:  rw.Sockets(),
		Rarity:   rw.Appraise(),
		Progress: p,
		Complete: runes.IsComplete(e.owned, rw),
	}
	for _, r := range rw.Sequence() {
		out.Runes = append(out.Runes, r.Name)
	}
	for _, t := range rw.Types() {
		out.Types = append(out.Types, t.Name)
	}
	for _, req := range rw.Quantities() {
		if short := req.Quantity - e.owned.Quantity(req.Rune); short > 0 {
			out.Missing = append(out.Missing, tracker.RuneCount{Rune: req.Rune.Name, Quantity: short, Tier: req.Rune.Tier.String()})
		}
	}
	return out
}
