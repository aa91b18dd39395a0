// Package sync imports the runeword catalog from JSON into the database.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rsned/runeword-tracker/internal/tracker/db"
	"github.com/rsned/runeword-tracker/internal/tracker/itemtype"
	"github.com/rsned/runeword-tracker/internal/tracker/runes"
	"github.com/rsned/runeword-tracker/internal/tracker/runeword"
	"github.com/rsned/runeword-tracker/pkg/tracker"
)

// ErrEmptyCatalog is returned when an import contains no usable runewords.
var ErrEmptyCatalog = errors.New("catalog contains no valid runewords")

var validate = validator.New()

// Syncer imports catalog files.
type Syncer struct {
	db     *db.DB
	runes  *runes.Table
	types  *itemtype.Hierarchy
	logger *slog.Logger
}

// NewSyncer creates a new Syncer resolving names against the standard rune
// table and item type hierarchy.
func NewSyncer(database *db.DB, logger *slog.Logger) *Syncer {
	return &Syncer{
		db:     database,
		runes:  runes.Standard(),
		types:  itemtype.Standard(),
		logger: logger,
	}
}

// CatalogFile is the on-disk catalog format.
type CatalogFile struct {
	Runewords []RunewordImport `json:"runewords"`
}

// RunewordImport is one catalog entry as it appears in the file.
type RunewordImport struct {
	Name        string   `json:"name" validate:"required"`
	Level       int      `json:"level" validate:"min=1,max=99"`
	Bases       []string `json:"bases" validate:"required,min=1,dive,required"`
	Runes       []string `json:"runes" validate:"required,min=1,max=6,dive,required"`
	Description string   `json:"description,omitempty"`
}

// ImportRunewordsFromFile imports the catalog from a JSON file, replacing
// the stored catalog.
func (s *Syncer) ImportRunewordsFromFile(ctx context.Context, path string) (*tracker.ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return s.ImportRunewords(ctx, f, path)
}

// ImportRunewords imports the catalog from r. Entries that fail validation
// or name unknown runes or item types are skipped and reported; the rest
// replace the stored catalog in one transaction.
func (s *Syncer) ImportRunewords(ctx context.Context, r io.Reader, source string) (*tracker.ImportReport, error) {
	var file CatalogFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	report := &tracker.ImportReport{Source: source}
	words := make([]tracker.Runeword, 0, len(file.Runewords))
	seen := make(map[string]bool, len(file.Runewords))

	for i, imp := range file.Runewords {
		rw, err := s.transformRuneword(imp)
		if err == nil && seen[rw.Key] {
			err = fmt.Errorf("duplicate runeword %s", imp.Name)
		}
		if err != nil {
			label := imp.Name
			if label == "" {
				label = fmt.Sprintf("entry %d", i)
			}
			s.logger.Warn("skipping runeword", "name", label, "error", err)
			report.Skipped = append(report.Skipped, tracker.Rejection{Input: label, Reason: err.Error()})
			continue
		}
		seen[rw.Key] = true
		words = append(words, rw)
	}

	if len(words) == 0 {
		return report, ErrEmptyCatalog
	}

	store := db.NewRunewordStore(s.db)
	if err := store.ReplaceCatalog(ctx, words, source); err != nil {
		return report, fmt.Errorf("inserting runewords: %w", err)
	}
	report.Imported = len(words)

	s.logger.Info("catalog imported", "source", source, "imported", report.Imported, "skipped", len(report.Skipped))
	return report, nil
}

// transformRuneword validates an entry and normalises its names to the
// canonical rune and item type spelling.
func (s *Syncer) transformRuneword(imp RunewordImport) (tracker.Runeword, error) {
	if err := validate.Struct(imp); err != nil {
		return tracker.Runeword{}, describeValidation(err)
	}

	bases := make([]*itemtype.ItemType, 0, len(imp.Bases))
	baseNames := make([]string, 0, len(imp.Bases))
	for _, b := range imp.Bases {
		t, err := s.types.Lookup(b)
		if err != nil {
			return tracker.Runeword{}, err
		}
		bases = append(bases, t)
		baseNames = append(baseNames, t.Name)
	}

	seq := make([]runes.Rune, 0, len(imp.Runes))
	runeNames := make([]string, 0, len(imp.Runes))
	for _, name := range imp.Runes {
		r, err := s.runes.Lookup(name)
		if err != nil {
			return tracker.Runeword{}, err
		}
		seq = append(seq, r)
		runeNames = append(runeNames, r.Name)
	}

	rw, err := runeword.New(imp.Name, imp.Level, imp.Description, bases, seq, s.types)
	if err != nil {
		return tracker.Runeword{}, err
	}
	if len(rw.Types()) == 0 {
		return tracker.Runeword{}, fmt.Errorf("no base item type takes %d sockets", rw.Sockets())
	}

	return tracker.Runeword{
		Key:         rw.Key(),
		Name:        strings.TrimSpace(imp.Name),
		Level:       imp.Level,
		Description: imp.Description,
		Bases:       baseNames,
		Runes:       runeNames,
	}, nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid entry: %s", strings.Join(parts, "; "))
}
