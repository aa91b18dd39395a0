package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/rsned/runeword-tracker/pkg/tracker"
)

const (
	prefThreshold = "threshold"
	prefSort      = "sort"
)

// PreferenceStore handles the player's filter and sort settings.
type PreferenceStore struct {
	db *DB
}

// NewPreferenceStore creates a new PreferenceStore.
func NewPreferenceStore(db *DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// GetPreferences loads the stored preferences. Settings that were never
// stored keep the values from defaults.
func (s *PreferenceStore) GetPreferences(ctx context.Context, defaults tracker.Preferences) (tracker.Preferences, error) {
	prefs := tracker.Preferences{Threshold: defaults.Threshold, Sort: defaults.Sort}

	v, err := s.get(ctx, prefThreshold)
	if err != nil {
		return prefs, err
	}
	if v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return prefs, fmt.Errorf("parsing stored threshold %q: %w", v, err)
		}
		prefs.Threshold = t
	}

	v, err = s.get(ctx, prefSort)
	if err != nil {
		return prefs, err
	}
	if v != "" {
		prefs.Sort = tracker.SortKey(v)
	}

	prefs.IgnoredRunewords, err = s.list(ctx, `SELECT runeword_key FROM ignored_runewords ORDER BY runeword_key`)
	if err != nil {
		return prefs, fmt.Errorf("querying ignored runewords: %w", err)
	}
	prefs.IgnoredItemTypes, err = s.list(ctx, `SELECT item_type FROM ignored_item_types ORDER BY item_type`)
	if err != nil {
		return prefs, fmt.Errorf("querying ignored item types: %w", err)
	}

	return prefs, nil
}

// SetThreshold stores the progress threshold.
func (s *PreferenceStore) SetThreshold(ctx context.Context, threshold float64) error {
	return s.set(ctx, prefThreshold, strconv.FormatFloat(threshold, 'g', -1, 64))
}

// SetSort stores the sort key.
func (s *PreferenceStore) SetSort(ctx context.Context, key tracker.SortKey) error {
	return s.set(ctx, prefSort, string(key))
}

// SetRunewordIgnored adds or removes a runeword key from the ignore list.
func (s *PreferenceStore) SetRunewordIgnored(ctx context.Context, key string, ignored bool) error {
	q := `DELETE FROM ignored_runewords WHERE runeword_key = ?`
	if ignored {
		q = `INSERT OR IGNORE INTO ignored_runewords (runeword_key) VALUES (?)`
	}
	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("updating ignored runeword %s: %w", key, err)
	}
	return nil
}

// SetItemTypesIgnored adds or removes item types from the ignore list in
// one transaction.
func (s *PreferenceStore) SetItemTypesIgnored(ctx context.Context, names []string, ignored bool) error {
	q := `DELETE FROM ignored_item_types WHERE item_type = ?`
	if ignored {
		q = `INSERT OR IGNORE INTO ignored_item_types (item_type) VALUES (?)`
	}
	return s.db.InTransaction(ctx, func(tx *sql.Tx) error {
		for _, name := range names {
			if _, err := tx.ExecContext(ctx, q, name); err != nil {
				return fmt.Errorf("updating ignored item type %s: %w", name, err)
			}
		}
		return nil
	})
}

func (s *PreferenceStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying preference %s: %w", key, err)
	}
	return value, nil
}

func (s *PreferenceStore) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("setting preference %s: %w", key, err)
	}
	return nil
}

func (s *PreferenceStore) list(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
