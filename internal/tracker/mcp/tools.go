package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rsned/runeword-tracker/pkg/tracker"
)

// ToolDefinition is one entry of tools/list.
type ToolDefinition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	InputSchema JSONSchema `json:"inputSchema"`
}

// JSONSchema covers the subset of JSON Schema the tracker tools need.
type JSONSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Property is one tool argument.
type Property struct {
	Type        string    `json:"type,omitempty"`
	Description string    `json:"description,omitempty"`
	Default     any       `json:"default,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Minimum     *float64  `json:"minimum,omitempty"`
	Maximum     *float64  `json:"maximum,omitempty"`
	Items       *Property `json:"items,omitempty"`
}

// toolFunc runs one tool against decoded arguments.
type toolFunc func(ctx context.Context, args json.RawMessage) (any, error)

// GetToolDefinitions lists the tracker tools in a fixed order.
func GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		trackerStatusTool(),
		addRunesTool(),
		tossRunesTool(),
		toggleIgnoreTool(),
		setThresholdTool(),
		setSortTool(),
		runewordInfoTool(),
	}
}

func (s *Server) tools() map[string]toolFunc {
	return map[string]toolFunc{
		"tracker_status": s.toolTrackerStatus,
		"add_runes":      s.toolAddRunes,
		"toss_runes":     s.toolTossRunes,
		"toggle_ignore":  s.toolToggleIgnore,
		"set_threshold":  s.toolSetThreshold,
		"set_sort":       s.toolSetSort,
		"runeword_info":  s.toolRunewordInfo,
	}
}

func decodeArgs(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("decoding arguments: %w", err)
	}
	return nil
}

func sortKeyNames() []string {
	keys := tracker.ValidSortKeys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

var runeListProperty = Property{
	Type:        "array",
	Description: `Rune names with an optional quantity suffix, e.g. "ber", "ber2" or "Ber x2"`,
	Items:       &Property{Type: "string"},
}

func trackerStatusTool() ToolDefinition {
	minLimit := 1.0

	return ToolDefinition{
		Name:        "tracker_status",
		Description: "List the runewords worth pursuing with the owned runes, ordered by the current sort key, together with the runes no listed runeword needs and the current inventory.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"limit": {
					Type:        "integer",
					Description: "Max runewords to list (0 lists all)",
					Minimum:     &minLimit,
				},
			},
		},
	}
}

func (s *Server) toolTrackerStatus(ctx context.Context, args json.RawMessage) (any, error) {
	var req tracker.StatusRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	return s.engine.Status(ctx, req)
}

func addRunesTool() ToolDefinition {
	return ToolDefinition{
		Name:        "add_runes",
		Description: "Add runes to the inventory. Unknown names are rejected individually with a suggestion.",
		InputSchema: JSONSchema{
			Type:       "object",
			Properties: map[string]Property{"runes": runeListProperty},
			Required:   []string{"runes"},
		},
	}
}

func (s *Server) toolAddRunes(ctx context.Context, args json.RawMessage) (any, error) {
	var req tracker.RunesRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	req.AllTossable = false
	return s.engine.AddRunes(ctx, req)
}

func tossRunesTool() ToolDefinition {
	return ToolDefinition{
		Name:        "toss_runes",
		Description: "Remove runes from the inventory. A rune asked for more times than owned is rejected and left untouched.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"runes": runeListProperty,
				"all_tossable": {
					Type:        "boolean",
					Description: "Also toss every rune that no listed runeword needs",
					Default:     false,
				},
			},
		},
	}
}

func (s *Server) toolTossRunes(ctx context.Context, args json.RawMessage) (any, error) {
	var req tracker.RunesRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	return s.engine.TossRunes(ctx, req)
}

func toggleIgnoreTool() ToolDefinition {
	return ToolDefinition{
		Name:        "toggle_ignore",
		Description: "Toggle whether a runeword or an item type is ignored. Toggling a group such as \"melee\" applies to every concrete item type in it.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"runeword":  {Type: "string", Description: "Runeword name"},
				"item_type": {Type: "string", Description: "Item type name"},
			},
		},
	}
}

func (s *Server) toolToggleIgnore(ctx context.Context, args json.RawMessage) (any, error) {
	var req tracker.ToggleIgnoreRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	return s.engine.ToggleIgnore(ctx, req)
}

func setThresholdTool() ToolDefinition {
	minT := 0.0
	maxT := 1.0

	return ToolDefinition{
		Name:        "set_threshold",
		Description: "Set the minimum progress a runeword needs to be listed.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"threshold": {
					Type:        "number",
					Description: "Minimum progress (0.0-1.0)",
					Minimum:     &minT,
					Maximum:     &maxT,
				},
			},
			Required: []string{"threshold"},
		},
	}
}

func (s *Server) toolSetThreshold(ctx context.Context, args json.RawMessage) (any, error) {
	var req tracker.SetThresholdRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	return s.engine.SetThreshold(ctx, req)
}

func setSortTool() ToolDefinition {
	return ToolDefinition{
		Name:        "set_sort",
		Description: "Choose how runewords are ordered. Ties fall back to rarity and then name.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"sort": {
					Type:        "string",
					Description: "Sort key",
					Enum:        sortKeyNames(),
					Default:     string(tracker.SortByRarity),
				},
			},
			Required: []string{"sort"},
		},
	}
}

func (s *Server) toolSetSort(ctx context.Context, args json.RawMessage) (any, error) {
	var req tracker.SetSortRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	return s.engine.SetSort(ctx, req)
}

func runewordInfoTool() ToolDefinition {
	return ToolDefinition{
		Name:        "runeword_info",
		Description: "Show one runeword: its runes, item types, progress, missing runes and whether it is listed.",
		InputSchema: JSONSchema{
			Type: "object",
			Properties: map[string]Property{
				"name": {Type: "string", Description: "Runeword name, e.g. \"Ancient's Pledge\""},
			},
			Required: []string{"name"},
		},
	}
}

func (s *Server) toolRunewordInfo(ctx context.Context, args json.RawMessage) (any, error) {
	var req tracker.RunewordInfoRequest
	if err := decodeArgs(args, &req); err != nil {
		return nil, err
	}
	return s.engine.RunewordInfo(ctx, req)
}
