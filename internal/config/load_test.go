package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyDir isolates a test from any real config file.
func emptyDir(t *testing.T) Options {
	t.Helper()
	return Options{Dir: t.TempDir()}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(emptyDir(t))
	require.NoError(t, err)

	assert.Equal(t, "food", cfg.Dataset)
	assert.Equal(t, "words", cfg.Mode)
	assert.Equal(t, 2, cfg.Phases)
	assert.Equal(t, "mastery", cfg.Goal)
	assert.Equal(t, 4, cfg.Choices)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.False(t, cfg.ReaskInRound)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VOCABDRILL_MODE", "sentences")
	t.Setenv("VOCABDRILL_PHASES", "1")
	t.Setenv("VOCABDRILL_SEED", "42")
	t.Setenv("VOCABDRILL_REASK_IN_ROUND", "true")
	t.Setenv("VOCABDRILL_LOG_LEVEL", "debug")
	t.Setenv("VOCABDRILL_PAUSE", "750ms")

	cfg, err := Load(emptyDir(t))
	require.NoError(t, err)

	assert.Equal(t, "sentences", cfg.Mode)
	assert.Equal(t, 1, cfg.Phases)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.ReaskInRound)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 750*time.Millisecond, cfg.Pause)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	body := "mode: sentences\ngoal: coverage\nsample: 12\nlog:\n  file: /tmp/drill.log\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))

	cfg, err := Load(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "coverage", cfg.Goal)
	assert.Equal(t, 12, cfg.Sample)
	assert.Equal(t, "/tmp/drill.log", cfg.Log.File)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestFlagsOverrideEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("sample: 12\nphases: 1\n"), 0o644))
	t.Setenv("VOCABDRILL_SAMPLE", "30")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("sample", 0, "")
	flags.Int("phases", 2, "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--sample", "5", "--log-level", "warn"}))

	cfg, err := Load(Options{Dir: dir, Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Sample)
	assert.Equal(t, "warn", cfg.Log.Level)
	// Unchanged flags do not shadow the file.
	assert.Equal(t, 1, cfg.Phases)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad mode", map[string]string{"VOCABDRILL_MODE": "poems"}},
		{"bad phases", map[string]string{"VOCABDRILL_PHASES": "3"}},
		{"too many choices", map[string]string{"VOCABDRILL_CHOICES": "6"}},
		{"bad level", map[string]string{"VOCABDRILL_LOG_LEVEL": "loud"}},
		{"coverage with words", map[string]string{"VOCABDRILL_GOAL": "coverage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(emptyDir(t))
			assert.Error(t, err)
		})
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "vocabdrill"), dir)
}
