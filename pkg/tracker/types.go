// Package tracker contains the wire types for the runeword tracker.
package tracker

// ============================================
// INPUT TYPES
// ============================================

// RuneCount represents a rune with quantity.
type RuneCount struct {
	Rune     string `json:"rune"`
	Quantity int    `json:"quantity"`
	Tier     string `json:"tier,omitempty"`
}

// Rejection describes an input token that was not applied.
type Rejection struct {
	Input  string `json:"input"`
	Reason string `json:"reason"`
}

// SortKey names a runeword ordering.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByRarity   SortKey = "rarity"
	SortByLevel    SortKey = "level"
	SortBySockets  SortKey = "sockets"
	SortByProgress SortKey = "progress"
)

// ValidSortKeys returns all valid sort keys.
func ValidSortKeys() []SortKey {
	return []SortKey{
		SortByName,
		SortByRarity,
		SortByLevel,
		SortBySockets,
		SortByProgress,
	}
}

// IsValid checks if the key is a known sort key.
func (k SortKey) IsValid() bool {
	for _, valid := range ValidSortKeys() {
		if k == valid {
			return true
		}
	}
	return false
}

// ============================================
// CATALOG TYPES
// ============================================

// Runeword is a catalog entry as imported and stored. Bases may name
// abstract item types; they are expanded when the catalog is loaded.
type Runeword struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Description string   `json:"description,omitempty"`
	Bases       []string `json:"bases"`
	Runes       []string `json:"runes"` // socket order
}

// RunewordProgress is a runeword measured against the owned runes.
type RunewordProgress struct {
	Key      string      `json:"key"`
	Name     string      `json:"name"`
	Level    int         `json:"level"`
	Word     string      `json:"word"`
	Runes    []string    `json:"runes"` // socket order
	Sockets  int         `json:"sockets"`
	Types    []string    `json:"types"`
	Rarity   float64     `json:"rarity"`
	Progress float64     `json:"progress"`
	Complete bool        `json:"complete"`
	Missing  []RuneCount `json:"missing,omitempty"`
}

// ImportReport summarizes a catalog import.
type ImportReport struct {
	Source   string      `json:"source"`
	Imported int         `json:"imported"`
	Skipped  []Rejection `json:"skipped,omitempty"`
}

// ============================================
// PREFERENCE TYPES
// ============================================

// Preferences holds the player's filter and sort settings.
type Preferences struct {
	Threshold        float64  `json:"threshold"`
	Sort             SortKey  `json:"sort"`
	IgnoredRunewords []string `json:"ignored_runewords,omitempty"`
	IgnoredItemTypes []string `json:"ignored_item_types,omitempty"`
}

// ============================================
// TOOL REQUEST/RESPONSE TYPES
// ============================================

// StatusRequest is the input for the tracker_status tool.
type StatusRequest struct {
	Limit int `json:"limit,omitempty"`
}

// StatusResponse is the output for the tracker_status tool.
type StatusResponse struct {
	Runewords   []RunewordProgress `json:"runewords"`
	Tossable    []RuneCount        `json:"tossable"`
	Inventory   InventoryResponse  `json:"inventory"`
	Preferences Preferences        `json:"preferences"`
	Stats       StatusStats        `json:"stats"`
}

// StatusStats contains aggregate numbers for a status query.
type StatusStats struct {
	CatalogSize int    `json:"catalog_size"`
	Shown       int    `json:"shown"`
	Complete    int    `json:"complete"`
	LastImport  string `json:"last_import,omitempty"`
}

// InventoryResponse describes the owned runes.
type InventoryResponse struct {
	Runes     []RuneCount `json:"runes"`
	Total     int         `json:"total"`
	Appraisal float64     `json:"appraisal"`
}

// RunesRequest is the input for the add_runes and toss_runes tools.
// Each entry is a rune name with an optional quantity suffix, e.g. "ber2".
type RunesRequest struct {
	Runes []string `json:"runes"`
	// AllTossable tosses every rune no tracked runeword needs (toss only).
	AllTossable bool `json:"all_tossable,omitempty"`
}

// RunesResponse is the output for the add_runes and toss_runes tools.
type RunesResponse struct {
	Applied   []RuneCount       `json:"applied"`
	Rejected  []Rejection       `json:"rejected,omitempty"`
	Inventory InventoryResponse `json:"inventory"`
}

// ToggleIgnoreRequest is the input for the toggle_ignore tool. Exactly one
// of Runeword and ItemType must be set.
type ToggleIgnoreRequest struct {
	Runeword string `json:"runeword,omitempty"`
	ItemType string `json:"item_type,omitempty"`
}

// ToggleIgnoreResponse is the output for the toggle_ignore tool.
type ToggleIgnoreResponse struct {
	Names   []string `json:"names"`
	Ignored bool     `json:"ignored"`
}

// SetThresholdRequest is the input for the set_threshold tool.
type SetThresholdRequest struct {
	Threshold float64 `json:"threshold"`
}

// SetSortRequest is the input for the set_sort tool.
type SetSortRequest struct {
	Sort SortKey `json:"sort"`
}

// RunewordInfoRequest is the input for the runeword_info tool.
type RunewordInfoRequest struct {
	Name string `json:"name"`
}

// RunewordInfoResponse is the output for the runeword_info tool.
type RunewordInfoResponse struct {
	Runeword    RunewordProgress `json:"runeword"`
	Description string           `json:"description,omitempty"`
	Ignored     bool             `json:"ignored"`
	Shown       bool             `json:"shown"`
}
