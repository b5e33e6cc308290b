package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/treecheck/internal/config"
	"github.com/felixgeelhaar/treecheck/internal/errors"
)

func TestConfigInit(t *testing.T) {
	workdir(t)

	stdout, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+config.DefaultPath())

	cfg, err := config.Load(config.DefaultPath())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, _, err = execute(t, "config", "init")
	assert.Equal(t, errors.ErrCodeConfigExists, errors.CodeOf(err))

	_, _, err = execute(t, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigInit_RepairsBrokenConfig(t *testing.T) {
	dir := workdir(t)
	writeFile(t, filepath.Join(dir, ".treecheck", "config.yaml"), "gate: [")

	_, _, err := execute(t, "config", "view")
	assert.Equal(t, errors.ErrCodeConfigUnmarshal, errors.CodeOf(err))

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)

	_, _, err = execute(t, "config", "view")
	assert.NoError(t, err)
}

func TestConfigView(t *testing.T) {
	dir := workdir(t)
	writeFile(t, filepath.Join(dir, ".treecheck", "config.yaml"), "gate:\n  min_score: 75\n")

	stdout, _, err := execute(t, "config", "view")
	require.NoError(t, err)
	assert.Contains(t, stdout, "min_score: 75")

	stdout, _, err = execute(t, "config", "view", "--format", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	gate, ok := got["gate"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 75, gate["min_score"])
}

func TestConfigPath(t *testing.T) {
	dir := workdir(t)

	stdout, _, err := execute(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPath()+" (not found, using defaults)\n", stdout)

	// Found in a parent directory below the repository root.
	writeFile(t, filepath.Join(dir, ".treecheck", "config.yaml"), "log:\n  level: warn\n")
	sub := filepath.Join(dir, "docs")
	writeFile(t, filepath.Join(sub, "README"), "")
	t.Chdir(sub)

	stdout, _, err = execute(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(dir, ".treecheck", "config.yaml")+" (found)")
}

func TestConfigFlag_MissingFile(t *testing.T) {
	dir := workdir(t)

	_, _, err := execute(t, "config", "view", "--config", filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, errors.ErrCodeConfigNotFound, errors.CodeOf(err))
}
