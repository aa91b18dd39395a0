package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsned/runeword-tracker/internal/config"
)

// testConfig writes a config pointing at a fresh database and the bundled
// catalog.
func testConfig(t *testing.T) string {
	t.Helper()
	for _, k := range []string{config.EnvDatabase, config.EnvCatalog, config.EnvLogLevel} {
		t.Setenv(k, "")
	}

	catalog, err := filepath.Abs(filepath.Join("..", "..", "data", "runewords.json"))
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("database: %s\ncatalog: %s\nlog_level: error\n", filepath.Join(dir, "tracker.db"), catalog)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(cfgPath, stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	cfg := testConfig(t)

	out, err := execute(cfg, "", "add", "ber", "ist2", "shale")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Ist x2, Ber")
	assert.Contains(t, out, `skipped "shale"`)
	assert.Contains(t, out, "Shael")

	out, err = execute(cfg, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Inventory")
	assert.Contains(t, out, "Ber")
	assert.Contains(t, out, "runewords shown")
	assert.Contains(t, out, "catalog imported")

	out, err = execute(cfg, "", "inventory")
	require.NoError(t, err)
	assert.Contains(t, out, "Ist")
	assert.Contains(t, out, "3 runes, appraised at")
	assert.NotContains(t, out, "Tossable")

	out, err = execute(cfg, "", "threshold", "50%")
	require.NoError(t, err)
	assert.Contains(t, out, "threshold set to 50.0%")

	out, err = execute(cfg, "", "sort", "Level")
	require.NoError(t, err)
	assert.Contains(t, out, "sorting by level")

	_, err = execute(cfg, "", "sort", "weight")
	assert.Error(t, err)

	out, err = execute(cfg, "", "ignore", "insight")
	require.NoError(t, err)
	assert.Contains(t, out, "Insight ignored")

	out, err = execute(cfg, "", "info", "insight")
	require.NoError(t, err)
	assert.Contains(t, out, "Insight")
	assert.Contains(t, out, "ignored")

	out, err = execute(cfg, "", "toss", "ist")
	require.NoError(t, err)
	assert.Contains(t, out, "Tossed Ist")

	_, err = execute(cfg, "", "toss")
	assert.Error(t, err)
}

func TestServeCommand(t *testing.T) {
	cfg := testConfig(t)
	out, err := execute(cfg,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`+"\n"+
			`{"jsonrpc":"2.0","id":2,"method":"ping"}`+"\n",
		"serve")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "runeword-tracker")
	assert.Contains(t, lines[1], `"id":2`)
}

func TestImportCommand(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"runewords":[
		{"name":"Steel","level":13,"bases":["sword"],"runes":["Tir","El"]},
		{"name":"Broken","level":5,"bases":["sword"],"runes":["Xyz"]}
	]}`), 0o644))

	out, err := execute(cfg, "", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 runewords")
	assert.Contains(t, out, `skipped "Broken"`)

	out, err = execute(cfg, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "of 1 runewords shown")
}
