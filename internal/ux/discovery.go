package ux

import (
	"errors"
	"os"
	"path/filepath"
)

// TreeFileNames are the file names looked for when no --in is given.
var TreeFileNames = []string{"tree.json", "tree.yaml", "tree.yml"}

// ErrNoTree is returned when no tree file can be discovered.
var ErrNoTree = errors.New("no tree file found")

// DiscoverTree looks for a tree file in dir, then in dir/.treecheck.
func DiscoverTree(dir string) (string, error) {
	for _, base := range []string{dir, filepath.Join(dir, ".treecheck")} {
		for _, name := range TreeFileNames {
			path := filepath.Join(base, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}
	return "", ErrNoTree
}

// DiscoverConfig searches dir and its parents for rel (for example
// .treecheck/config.yaml), stopping at the repository root. It returns ""
// when nothing is found.
func DiscoverConfig(dir, rel string) string {
	for {
		path := filepath.Join(dir, rel)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
