package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const cleanTreeJSON = `{
  "name": "importer",
  "nodes": [{
    "id": "obj",
    "type": "objective",
    "title": "Ship the importer",
    "description": "Customers can bring their existing data",
    "priority": "high",
    "estimatedHours": 8,
    "children": [{
      "id": "t1",
      "type": "task",
      "title": "Parse CSV input",
      "description": "Read rows and map columns",
      "priority": "medium",
      "estimatedHours": 8
    }]
  }]
}`

// brokenTreeJSON has two fixable errors on t1: an unknown priority and a
// dangling dependency.
const brokenTreeJSON = `[{
  "id": "obj",
  "type": "objective",
  "title": "Ship the importer",
  "description": "Customers can bring their existing data",
  "priority": "high",
  "estimatedHours": 8,
  "children": [{
    "id": "t1",
    "type": "task",
    "title": "Parse CSV input",
    "description": "Read rows and map columns",
    "priority": "urgent",
    "estimatedHours": 8,
    "dependencies": ["ghost"]
  }]
}]`

// workdir moves the test into an empty directory so tree and config
// discovery cannot see the repository.
func workdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	t.Chdir(dir)
	t.Setenv("TREECHECK_LOG_LEVEL", "")
	t.Setenv("TREECHECK_MIN_SCORE", "")
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command in-process and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default, since commands are
// package-level and keep flag values between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
