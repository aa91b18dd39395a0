package sync

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsned/runeword-tracker/internal/tracker/db"
)

func newTestSyncer(t *testing.T) (*Syncer, *db.DB) {
	t.Helper()
	database, err := db.OpenAndInit(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewSyncer(database, slog.New(slog.NewTextHandler(io.Discard, nil))), database
}

const catalogJSON = `{"runewords": [
	{"name": "Steel", "level": 13, "bases": ["sword", "axe", "mace"], "runes": ["tir", "EL"]},
	{"name": "Ancient's Pledge", "level": 21, "bases": ["shield"], "runes": ["Ral", "Ort", "Tal"], "description": "Cold resist"},
	{"name": "Typo", "level": 10, "bases": ["armor"], "runes": ["Shale"]},
	{"name": "Too Young", "level": 0, "bases": ["armor"], "runes": ["El"]},
	{"name": "No Bases", "level": 10, "bases": [], "runes": ["El"]},
	{"name": "Wand Overflow", "level": 10, "bases": ["wand"], "runes": ["El", "El", "El"]},
	{"name": "steel", "level": 13, "bases": ["sword"], "runes": ["Tir", "El"]},
	{"name": "Silence", "level": 55, "bases": ["weapon"], "runes": ["Dol", "Eld", "Hel", "Ist", "Tir", "Vex"]}
]}`

func TestImportRunewordsSkipsAndReports(t *testing.T) {
	ctx := context.Background()
	s, database := newTestSyncer(t)

	report, err := s.ImportRunewords(ctx, strings.NewReader(catalogJSON), "inline")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Imported)

	var skipped []string
	for _, r := range report.Skipped {
		skipped = append(skipped, r.Input)
	}
	assert.Equal(t, []string{"Typo", "Too Young", "No Bases", "Wand Overflow", "steel"}, skipped)
	assert.Contains(t, report.Skipped[0].Reason, "Shael")

	words, err := db.NewRunewordStore(database).GetAllRunewords(ctx)
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, "steel", words[0].Key)
	assert.Equal(t, []string{"Tir", "El"}, words[0].Runes)
	assert.Equal(t, []string{"Sword", "Axe", "Mace"}, words[0].Bases)
	assert.Equal(t, "ancients_pledge", words[1].Key)
	assert.Equal(t, "Cold resist", words[1].Description)
	assert.Equal(t, []string{"Weapon"}, words[2].Bases)
}

func TestImportRunewordsEmpty(t *testing.T) {
	s, _ := newTestSyncer(t)
	_, err := s.ImportRunewords(context.Background(), strings.NewReader(`{"runewords": []}`), "empty")
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = s.ImportRunewords(context.Background(), strings.NewReader(`{"runewords": `), "broken")
	assert.Error(t, err)
}

func TestImportRunewordsFromFile(t *testing.T) {
	ctx := context.Background()
	s, database := newTestSyncer(t)

	path := filepath.Join(t.TempDir(), "runewords.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))

	report, err := s.ImportRunewordsFromFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, path, report.Source)

	src, err := database.GetSyncMetadata(ctx, db.MetaCatalogSource)
	require.NoError(t, err)
	assert.Equal(t, path, src)

	_, err = s.ImportRunewordsFromFile(ctx, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestBundledCatalogImports(t *testing.T) {
	s, _ := newTestSyncer(t)
	report, err := s.ImportRunewordsFromFile(context.Background(), filepath.Join("..", "..", "..", "data", "runewords.json"))
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)
	assert.Greater(t, report.Imported, 20)
}
