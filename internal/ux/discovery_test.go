package ux

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
}

func TestDiscoverTree(t *testing.T) {
	dir := t.TempDir()

	_, err := DiscoverTree(dir)
	assert.ErrorIs(t, err, ErrNoTree)

	touch(t, filepath.Join(dir, ".treecheck", "tree.yaml"))
	path, err := DiscoverTree(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".treecheck", "tree.yaml"), path)

	touch(t, filepath.Join(dir, "tree.json"))
	path, err = DiscoverTree(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tree.json"), path, "working directory wins")
}

func TestDiscoverConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	rel := filepath.Join(".treecheck", "config.yaml")
	assert.Equal(t, "", DiscoverConfig(nested, rel))

	touch(t, filepath.Join(root, rel))
	assert.Equal(t, filepath.Join(root, rel), DiscoverConfig(nested, rel))
}
