package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/rsned/runeword-tracker/pkg/tracker"
)

// RunewordStore handles runeword catalog data access.
type RunewordStore struct {
	db *DB
}

// NewRunewordStore creates a new RunewordStore.
func NewRunewordStore(db *DB) *RunewordStore {
	return &RunewordStore{db: db}
}

// GetAllRunewords retrieves the whole catalog in import order.
func (s *RunewordStore) GetAllRunewords(ctx context.Context) ([]tracker.Runeword, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, name, level, description
		FROM runewords
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying all runewords: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var words []tracker.Runeword
	for rows.Next() {
		var rw tracker.Runeword
		if err := rows.Scan(&rw.Key, &rw.Name, &rw.Level, &rw.Description); err != nil {
			return nil, fmt.Errorf("scanning runeword: %w", err)
		}
		words = append(words, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	_ = rows.Close()

	runes, err := s.getRunes(ctx)
	if err != nil {
		return nil, err
	}
	bases, err := s.getBases(ctx)
	if err != nil {
		return nil, err
	}
	for i := range words {
		words[i].Runes = runes[words[i].Key]
		words[i].Bases = bases[words[i].Key]
	}

	return words, nil
}

// getRunes returns the rune sequences of every runeword by key.
func (s *RunewordStore) getRunes(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT runeword_key, rune
		FROM runeword_runes
		ORDER BY runeword_key, slot
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runeword runes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string][]string)
	for rows.Next() {
		var k, r string
		if err := rows.Scan(&k, &r); err != nil {
			return nil, fmt.Errorf("scanning runeword rune: %w", err)
		}
		out[k] = append(out[k], r)
	}

	return out, rows.Err()
}

func (s *RunewordStore) getBases(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT runeword_key, item_type
		FROM runeword_bases
		ORDER BY runeword_key, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runeword bases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string][]string)
	for rows.Next() {
		var k, b string
		if err := rows.Scan(&k, &b); err != nil {
			return nil, fmt.Errorf("scanning runeword base: %w", err)
		}
		out[k] = append(out[k], b)
	}

	return out, rows.Err()
}

// CountRunewords returns the number of runewords in the catalog.
func (s *RunewordStore) CountRunewords(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runewords`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting runewords: %w", err)
	}
	return count, nil
}

// ReplaceCatalog swaps the stored catalog for words in one transaction and
// records the import in the sync metadata. Ignores and inventory are kept.
func (s *RunewordStore) ReplaceCatalog(ctx context.Context, words []tracker.Runeword, source string) error {
	return s.db.InTransaction(ctx, func(tx *sql.Tx) error {
		// Foreign keys cascade to runes and bases
		if _, err := tx.ExecContext(ctx, `DELETE FROM runewords`); err != nil {
			return fmt.Errorf("clearing runewords: %w", err)
		}

		wordStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO runewords (key, name, level, description, position)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing runeword statement: %w", err)
		}
		defer func() { _ = wordStmt.Close() }()

		runeStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO runeword_runes (runeword_key, slot, rune)
			VALUES (?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing rune statement: %w", err)
		}
		defer func() { _ = runeStmt.Close() }()

		baseStmt, err := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO runeword_bases (runeword_key, item_type)
			VALUES (?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing base statement: %w", err)
		}
		defer func() { _ = baseStmt.Close() }()

		for i, rw := range words {
			if _, err := wordStmt.ExecContext(ctx, rw.Key, rw.Name, rw.Level, rw.Description, i); err != nil {
				return fmt.Errorf("inserting runeword %s: %w", rw.Key, err)
			}
			for slot, r := range rw.Runes {
				if _, err := runeStmt.ExecContext(ctx, rw.Key, slot, r); err != nil {
					return fmt.Errorf("inserting rune for %s: %w", rw.Key, err)
				}
			}
			for _, b := range rw.Bases {
				if _, err := baseStmt.ExecContext(ctx, rw.Key, b); err != nil {
					return fmt.Errorf("inserting base for %s: %w", rw.Key, err)
				}
			}
		}

		if err := setSyncMetadata(ctx, tx, MetaCatalogLastImport, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return err
		}
		if err := setSyncMetadata(ctx, tx, MetaCatalogCount, strconv.Itoa(len(words))); err != nil {
			return err
		}
		return setSyncMetadata(ctx, tx, MetaCatalogSource, source)
	})
}
