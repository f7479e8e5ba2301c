package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRunConfig_YAML(t *testing.T) {
	// GIVEN a YAML run config with relative paths
	dir := t.TempDir()
	path := writeFile(t, dir, "run.yaml", `
notes: notes.txt
policy: modulus
rounds: 10000
log: info
trace_level: rounds
trace_out: out/trace.jsonl.zst
format: json
`)

	// WHEN it is loaded
	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)

	// THEN every field is populated and paths resolve against the config dir
	assert.Equal(t, filepath.Join(dir, "notes.txt"), cfg.Notes)
	assert.Equal(t, "modulus", cfg.Policy)
	require.NotNil(t, cfg.Rounds)
	assert.Equal(t, 10000, *cfg.Rounds)
	assert.Equal(t, "info", cfg.Log)
	assert.Equal(t, "rounds", cfg.TraceLevel)
	assert.Equal(t, filepath.Join(dir, "out", "trace.jsonl.zst"), cfg.TraceOut)
	assert.Equal(t, "json", cfg.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRunConfig_TOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "run.toml", `
notes = "/abs/notes.txt"
policy = "damped"
rounds = 20
`)

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/abs/notes.txt", cfg.Notes)
	assert.Equal(t, "damped", cfg.Policy)
	require.NotNil(t, cfg.Rounds)
	assert.Equal(t, 20, *cfg.Rounds)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRunConfig_UnsetRoundsStaysNil(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "run.yaml", "policy: damped\n")

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Rounds)
	assert.Empty(t, cfg.Notes)
}

func TestLoadRunConfig_UnknownKey_ReturnsError(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRunConfig(writeFile(t, dir, "typo.yaml", "polcy: damped\n"))
	assert.Error(t, err, "YAML typo must be rejected")

	_, err = LoadRunConfig(writeFile(t, dir, "typo.toml", "polcy = \"damped\"\n"))
	assert.Error(t, err, "TOML typo must be rejected")
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunConfig_Validate_RejectsBadValues(t *testing.T) {
	negative := -1
	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"policy", RunConfig{Policy: "exact"}},
		{"rounds", RunConfig{Rounds: &negative}},
		{"log", RunConfig{Log: "loud"}},
		{"trace level", RunConfig{TraceLevel: "everything"}},
		{"format", RunConfig{Format: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestRunConfig_Validate_EmptyIsValid(t *testing.T) {
	assert.NoError(t, (&RunConfig{}).Validate())
}

func TestRunConfig_Validate_ZeroRoundsMeansPolicyDefault(t *testing.T) {
	zero := 0
	assert.NoError(t, (&RunConfig{Rounds: &zero}).Validate())
}
