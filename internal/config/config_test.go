package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/treecheck/internal/errors"
	"github.com/felixgeelhaar/treecheck/internal/structure"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, structure.DefaultRules(), cfg.Rules)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingDefaultFileGivesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.CodeOf(err))
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
rules:
  max_depth: 4
gate:
  min_score: 75
  fail_on_warnings: true
log:
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Rules.MaxDepth)
	assert.Equal(t, 8, cfg.Rules.MaxChildren, "unset keys keep defaults")
	assert.Equal(t, 75, cfg.Gate.MinScore)
	assert.True(t, cfg.Gate.FailOnWarnings)
	assert.Equal(t, 10000, cfg.Gate.MaxNodes)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := Load(writeFile(t, "gate:\n  min_scroe: 10\n"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigUnmarshal, errors.CodeOf(err))
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"score above 100", "gate:\n  min_score: 101\n", "gate.min_score"},
		{"negative node limit", "gate:\n  max_nodes: -1\n", "gate.max_nodes"},
		{"unknown level", "log:\n  level: loud\n", "log.level"},
		{"coverage above 1", "rules:\n  min_estimate_coverage: 1.5\n", "rules.min_estimate_coverage"},
		{"title bounds inverted", "rules:\n  min_title_length: 50\n  max_title_length: 10\n", "rules.max_title_length"},
		{"bad endpoint", "telemetry:\n  endpoint: not a host\n", "telemetry.endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeConfigInvalid, errors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvMinScore, "60")

	cfg, err := Load(writeFile(t, "gate:\n  min_score: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 60, cfg.Gate.MinScore)
}

func TestLoad_EnvMinScoreNotANumber(t *testing.T) {
	t.Setenv(EnvMinScore, "high")

	_, err := Load(writeFile(t, ""))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.CodeOf(err))
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFile)

	cfg := Default()
	cfg.Gate.MinScore = 80
	cfg.Telemetry = TelemetryConfig{Enabled: true, Endpoint: "localhost:4318"}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".treecheck", "config.yaml"), DefaultPath())
}
