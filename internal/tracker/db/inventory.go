package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rsned/runeword-tracker/pkg/tracker"
)

// InventoryStore handles the owned runes.
type InventoryStore struct {
	db *DB
}

// NewInventoryStore creates a new InventoryStore.
func NewInventoryStore(db *DB) *InventoryStore {
	return &InventoryStore{db: db}
}

// GetInventory returns every stored rune with its quantity.
func (s *InventoryStore) GetInventory(ctx context.Context) ([]tracker.RuneCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rune, quantity FROM inventory ORDER BY rune
	`)
	if err != nil {
		return nil, fmt.Errorf("querying inventory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []tracker.RuneCount
	for rows.Next() {
		var rc tracker.RuneCount
		if err := rows.Scan(&rc.Rune, &rc.Quantity); err != nil {
			return nil, fmt.Errorf("scanning inventory row: %w", err)
		}
		out = append(out, rc)
	}

	return out, rows.Err()
}

// ReplaceInventory stores counts as the complete inventory. Entries with a
// non-positive quantity are dropped.
func (s *InventoryStore) ReplaceInventory(ctx context.Context, counts []tracker.RuneCount) error {
	return s.db.InTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM inventory`); err != nil {
			return fmt.Errorf("clearing inventory: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO inventory (rune, quantity) VALUES (?, ?)
			ON CONFLICT(rune) DO UPDATE SET quantity = quantity + excluded.quantity
		`)
		if err != nil {
			return fmt.Errorf("preparing inventory statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, rc := range counts {
			if rc.Quantity <= 0 {
				continue
			}
			if _, err := stmt.ExecContext(ctx, rc.Rune, rc.Quantity); err != nil {
				return fmt.Errorf("inserting %s: %w", rc.Rune, err)
			}
		}
		return nil
	})
}
