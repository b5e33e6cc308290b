package cmd

import (
	"github.com/spf13/cobra"
)

// CommandContext holds the persistent flags of one invocation, so run
// functions never read package-level flag variables for them.
type CommandContext struct {
	ConfigPath  string
	Format      string
	NoColor     bool
	LogLevel    string
	LogFormat   string
	MetricsFile string
}

// NewCommandContext extracts command context from cobra.Command flags.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	format, err := flags.GetString("format")
	if err != nil {
		return nil, err
	}
	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return nil, err
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return nil, err
	}
	logFormat, err := flags.GetString("log-format")
	if err != nil {
		return nil, err
	}
	metricsFile, err := flags.GetString("metrics-file")
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		ConfigPath:  configPath,
		Format:      format,
		NoColor:     noColor,
		LogLevel:    logLevel,
		LogFormat:   logFormat,
		MetricsFile: metricsFile,
	}, nil
}
