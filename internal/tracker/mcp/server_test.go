package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsned/runeword-tracker/internal/tracker/db"
	"github.com/rsned/runeword-tracker/internal/tracker/engine"
	"github.com/rsned/runeword-tracker/pkg/tracker"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()
	database, err := db.OpenAndInit(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.NewRunewordStore(database).ReplaceCatalog(ctx, []tracker.Runeword{
		{Key: "steel", Name: "Steel", Level: 13, Bases: []string{"Sword"}, Runes: []string{"Tir", "El"}},
		{Key: "stealth", Name: "Stealth", Level: 17, Bases: []string{"Armor"}, Runes: []string{"Tal", "Eth"}},
	}, "test"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(database, logger)
	require.NoError(t, eng.Load(ctx, engine.DefaultDefaults()))
	return NewServer(eng, logger)
}

// exchange feeds lines to the server and decodes every response.
func exchange(t *testing.T, s *Server, lines ...string) []Response {
	t.Helper()
	var out strings.Builder
	require.NoError(t, s.Serve(context.Background(), strings.NewReader(strings.Join(lines, "\n")), &out))

	var resps []Response
	sc := bufio.NewScanner(strings.NewReader(out.String()))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var r Response
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		resps = append(resps, r)
	}
	return resps
}

// toolText unwraps the text of a tools/call result.
func toolText(t *testing.T, r Response) (string, bool) {
	t.Helper()
	require.Nil(t, r.Error)
	raw, err := json.Marshal(r.Result)
	require.NoError(t, err)
	var res ToolCallResult
	require.NoError(t, json.Unmarshal(raw, &res))
	require.Len(t, res.Content, 1)
	return res.Content[0].Text, res.IsError
}

func TestInitializeAndList(t *testing.T) {
	s := newTestServer(t)
	resps := exchange(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"bogus"}`,
		`not json`,
	)
	require.Len(t, resps, 4)

	assert.Nil(t, resps[0].Error)
	assert.Nil(t, resps[1].Error)
	raw, err := json.Marshal(resps[1].Result)
	require.NoError(t, err)
	var list ToolsListResult
	require.NoError(t, json.Unmarshal(raw, &list))
	var names []string
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"tracker_status", "add_runes", "toss_runes", "toggle_ignore", "set_threshold", "set_sort", "runeword_info"}, names)

	require.NotNil(t, resps[2].Error)
	assert.Equal(t, ErrCodeMethodNotFound, resps[2].Error.Code)
	require.NotNil(t, resps[3].Error)
	assert.Equal(t, ErrCodeParse, resps[3].Error.Code)
}

func TestToolsCall(t *testing.T) {
	s := newTestServer(t)
	resps := exchange(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"add_runes","arguments":{"runes":["tir","el","shale"]}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"tracker_status"}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"set_threshold","arguments":{"threshold":2}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"runeword_info","arguments":{"name":"stealth"}}}`,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"nope"}}`,
	)
	require.Len(t, resps, 5)

	text, isErr := toolText(t, resps[0])
	require.False(t, isErr)
	var added tracker.RunesResponse
	require.NoError(t, json.Unmarshal([]byte(text), &added))
	assert.Equal(t, 2, added.Inventory.Total)
	require.Len(t, added.Rejected, 1)
	assert.Contains(t, added.Rejected[0].Reason, "Shael")

	text, isErr = toolText(t, resps[1])
	require.False(t, isErr)
	var status tracker.StatusResponse
	require.NoError(t, json.Unmarshal([]byte(text), &status))
	require.Len(t, status.Runewords, 1)
	assert.Equal(t, "Steel", status.Runewords[0].Name)
	assert.True(t, status.Runewords[0].Complete)

	text, isErr = toolText(t, resps[2])
	assert.True(t, isErr)
	assert.Contains(t, text, "within [0, 1]")

	text, isErr = toolText(t, resps[3])
	require.False(t, isErr)
	var info tracker.RunewordInfoResponse
	require.NoError(t, json.Unmarshal([]byte(text), &info))
	assert.Equal(t, "TalEth", info.Runeword.Word)
	assert.False(t, info.Shown)

	require.NotNil(t, resps[4].Error)
	assert.Equal(t, ErrCodeInvalidParams, resps[4].Error.Code)
}
