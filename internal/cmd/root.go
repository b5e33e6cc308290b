package cmd

import (
	"context"
	"time"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "treecheck",
	Short: "Structural quality gate for work breakdown trees",
	Long: dedent.Dedent(`
		treecheck validates analysis trees: hierarchical breakdowns of
		objectives, strategies, initiatives, tasks and subtasks.

		It reports structural errors and warnings, measures depth, breadth,
		completeness and feasibility, and rolls everything into a 0-100
		quality score that a pipeline can gate on.

		Trees are JSON or YAML files holding either a list of root nodes or
		an object with "name" and "nodes".`),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .treecheck/config.yaml, searched up to the repository root)")
	flags.StringP("format", "f", "text", "output format: text, json, or yaml")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "", "log level: debug, info, warn, or error (overrides config)")
	flags.String("log-format", "", "log format: text or json (overrides config)")
	flags.String("metrics-file", "", "write Prometheus metrics to this file when the command finishes")
}

// ExecuteContext runs the root command with ctx and releases the runtime
// afterwards, also when the command failed.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)

	if state != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if closeErr := state.close(closeCtx); closeErr != nil && err == nil {
			err = closeErr
		}
		state = nil
	}
	return err
}
