package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/treecheck/internal/config"
	"github.com/felixgeelhaar/treecheck/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create treecheck configuration",
	Long: dedent.Dedent(`
		Configuration lives in .treecheck/config.yaml, found by searching the
		working directory and its parents up to the repository root, or given
		with --config. It holds the rule thresholds, the gate policy, and the
		logging and tracing settings.

		TREECHECK_LOG_LEVEL and TREECHECK_MIN_SCORE override the file.`),
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigView,
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a config file with the default settings",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print which config file is used",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runConfigPath,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")

	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// yamlText renders a config as YAML for the text formatter.
type yamlText struct {
	cfg config.Config
}

func (y yamlText) String() string {
	data, err := yaml.Marshal(y.cfg)
	if err != nil {
		return fmt.Sprintf("# %v", err)
	}
	return strings.TrimSuffix(string(data), "\n")
}

func runConfigView(cmd *cobra.Command, _ []string) error {
	rs := current()

	formatter, err := newFormatter(rs.cc, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if rs.cc.Format == "text" {
		return formatter.Format(yamlText{rs.cfg})
	}
	return formatter.Format(rs.cfg)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	rs := current()
	force, _ := cmd.Flags().GetBool("force")

	path := rs.cc.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrCodeConfigExists, fmt.Sprintf("config file already exists: %s", path)).
			WithSuggestion("Use --force to overwrite it")
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	rs.logger.Info("config written", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	rs := current()

	status := "found"
	if _, err := os.Stat(rs.configPath); err != nil {
		status = "not found, using defaults"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", rs.configPath, status)
	return nil
}
