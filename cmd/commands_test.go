package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	config string
	db     string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	dir := t.TempDir()

	return testEnv{
		config: filepath.Join(dir, "missing.ini"),
		db:     filepath.Join(dir, "entries.bolt"),
	}
}

// run executes the root command with the env's storage flags prepended.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	listPage, listJSON = 1, false
	configInitForce = false

	var out, errOut bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args,
		"--config", e.config,
		"--backend", "bolt",
		"--db", e.db,
		"--page-size", "5",
		"--ids", "counter",
		"--log-level", "error",
	))

	err := rootCmd.Execute()

	return out.String(), err
}

func TestAddAndList(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "add", "buy", "milk")
	require.NoError(t, err)
	assert.Equal(t, "Added #1: buy milk\n", out)

	out, err = env.run(t, "add", "  call mom  ")
	require.NoError(t, err)
	assert.Equal(t, "Added #2: call mom\n", out)

	out, err = env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "call mom")
	assert.NotContains(t, out, "Page ")
}

func TestAdd_Blank(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "add", "   ")
	require.NoError(t, err)
	assert.Equal(t, "Nothing to add.\n", out)

	out, err = env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No entries yet.")
}

func TestList_Pages(t *testing.T) {
	env := newTestEnv(t)

	for i := 1; i <= 6; i++ {
		_, err := env.run(t, "add", fmt.Sprintf("item %d", i))
		require.NoError(t, err)
	}

	out, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "item 5")
	assert.NotContains(t, out, "item 6")
	assert.Contains(t, out, "Page 1 of 2 (6 entries)")

	out, err = env.run(t, "list", "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "item 6")
	assert.NotContains(t, out, "item 1\n")
	assert.Contains(t, out, "Page 2 of 2 (6 entries)")

	// past the end clamps to the last page
	out, err = env.run(t, "list", "--page", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Page 2 of 2")
}

func TestList_JSON(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "list", "--json")
	require.NoError(t, err)

	var empty listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &empty))
	assert.NotNil(t, empty.Entries)
	assert.Empty(t, empty.Entries)
	assert.Equal(t, 1, empty.CurrentPage)

	_, err = env.run(t, "add", "one")
	require.NoError(t, err)

	out, err = env.run(t, "list", "--json")
	require.NoError(t, err)

	var got listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Entries, 1)
	assert.Equal(t, int64(1), got.Entries[0].ID)
	assert.Equal(t, "one", got.Entries[0].Value)
	assert.Equal(t, 1, got.PageCount)
	assert.Equal(t, 1, got.Total)
}

func TestRemove(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "add", "a")
	require.NoError(t, err)
	_, err = env.run(t, "add", "b")
	require.NoError(t, err)

	out, err := env.run(t, "remove", "1")
	require.NoError(t, err)
	assert.Equal(t, "Removed #1\n", out)

	out, err = env.run(t, "rm", "1")
	require.NoError(t, err)
	assert.Equal(t, "No entry with id 1\n", out)

	out, err = env.run(t, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "  a\n")
	assert.Contains(t, out, "b")

	_, err = env.run(t, "delete", "abc")
	assert.Error(t, err)
}

func TestRemove_IDsNotReused(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "add", "a")
	require.NoError(t, err)
	_, err = env.run(t, "add", "b")
	require.NoError(t, err)
	_, err = env.run(t, "remove", "1")
	require.NoError(t, err)

	out, err := env.run(t, "add", "c")
	require.NoError(t, err)
	assert.Equal(t, "Added #3: c\n", out)
}

func TestConfigCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "Backend: bolt")
	assert.Contains(t, out, "Page size: 5")
	assert.Contains(t, out, "Ids: counter")
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)
	env.config = filepath.Join(t.TempDir(), "config.ini")

	out, err := env.run(t, "config", "init")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Wrote "))
	assert.True(t, fileExists(env.config))

	_, err = env.run(t, "config", "init")
	assert.Error(t, err)

	_, err = env.run(t, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestInvalidBackend(t *testing.T) {
	env := newTestEnv(t)

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"list", "--config", env.config, "--db", env.db, "--backend", "etcd"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "etcd")
}
