package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("VOCABDRILL_DB", filepath.Join(t.TempDir(), "test.db"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vocabdrill")
}

func TestDatasetList(t *testing.T) {
	out, err := execute(t, "dataset", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "food")
	assert.Contains(t, out, "19")
}

func TestDatasetShowJSON(t *testing.T) {
	out, err := execute(t, "dataset", "show", "food", "--format", "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "food", decoded["name"])
}

func TestDatasetValidateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"bad","words":[{"target":"le pain","base":""}]}`), 0o644))

	_, err := execute(t, "dataset", "validate", path)
	assert.Error(t, err)
}

func TestPlainPlayStopsOnClosedInput(t *testing.T) {
	out, err := execute(t, "play", "--plain", "--seed", "1", "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "Session summary")
}

func TestStatsEmpty(t *testing.T) {
	out, err := execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No drills yet.")
}
